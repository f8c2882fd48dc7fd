// Package hw is the thin boundary to a serial-attached board
// controller: a frame codec for sensor readings and LED feedback.
// Everything past the byte stream (multiplexing, debouncing, LED
// driving) lives on the controller.
package hw

import (
	"encoding/binary"
	"io"
	"log"

	"github.com/hqpham/boardsense/pkg/board"
	"github.com/hqpham/boardsense/pkg/feedback"
)

// SensorFrameSize is two big-endian uint64 masks: white then black.
const SensorFrameSize = 16

// DecodeSensorFrame parses one sensor frame into a snapshot.
func DecodeSensorFrame(buf [SensorFrameSize]byte) (board.Snapshot, error) {
	white := board.Mask(binary.BigEndian.Uint64(buf[:8]))
	black := board.Mask(binary.BigEndian.Uint64(buf[8:]))
	return board.NewSnapshot(white, black)
}

// EncodeSensorFrame is the inverse, used by tests and simulators that
// stand in for the controller.
func EncodeSensorFrame(snap board.Snapshot) [SensorFrameSize]byte {
	var buf [SensorFrameSize]byte
	binary.BigEndian.PutUint64(buf[:8], uint64(snap.White))
	binary.BigEndian.PutUint64(buf[8:], uint64(snap.Black))
	return buf
}

// FrameSensor reads sensor frames from a stream. A short read or an
// overlapping frame cannot be surfaced through the sensor port, so the
// last good reading is repeated instead; the controller owns resolving
// its own ambiguity.
type FrameSensor struct {
	r    io.Reader
	last board.Snapshot
}

func NewFrameSensor(r io.Reader, initial board.Snapshot) *FrameSensor {
	return &FrameSensor{r: r, last: initial}
}

// Poll implements the sensor port.
func (s *FrameSensor) Poll() board.Snapshot {
	var buf [SensorFrameSize]byte
	if _, err := io.ReadFull(s.r, buf[:]); err != nil {
		return s.last
	}
	snap, err := DecodeSensorFrame(buf)
	if err != nil {
		log.Printf("hw: dropping sensor frame: %v", err)
		return s.last
	}
	s.last = snap
	return snap
}

// FrameDisplay writes feedback frames to a stream, one tag byte per
// square, a1 first.
type FrameDisplay struct {
	w io.Writer
}

func NewFrameDisplay(w io.Writer) *FrameDisplay {
	return &FrameDisplay{w: w}
}

// Accept implements the display port. Write failures are logged and
// dropped; the display has no back-channel into the tick loop.
func (d *FrameDisplay) Accept(fb feedback.Board) {
	var buf [board.NumSquares]byte
	for i, t := range fb {
		buf[i] = byte(t)
	}
	if _, err := d.w.Write(buf[:]); err != nil {
		log.Printf("hw: feedback frame write failed: %v", err)
	}
}
