// Package sim provides the simulated sensor and display backends: a
// scriptable sensor driven by the BoardScript mini-language, and
// terminal renderers for feedback boards.
package sim

import (
	"errors"
	"fmt"
	"unicode"

	"github.com/hqpham/boardsense/pkg/board"
	"github.com/hqpham/boardsense/pkg/rules"
)

var (
	// ErrMissingColor: a script placed a piece on an empty square
	// without a color marker and no color could be inferred.
	ErrMissingColor = errors.New("missing color marker")
	// ErrColorMismatch: an explicit marker disagrees with the color
	// actually occupying the square.
	ErrColorMismatch = errors.New("color marker does not match occupant")
)

// ScriptError is a parse or validation failure for one script token.
// Scripts are test fixtures, so unlike sensor noise these are surfaced
// to the caller.
type ScriptError struct {
	Token string
	Err   error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("script token %q: %v", e.Token, e.Err)
}

func (e *ScriptError) Unwrap() error { return e.Err }

type colorMark int8

const (
	markNone colorMark = iota
	markWhite
	markBlack
)

type toggle struct {
	sq   board.Square
	mark colorMark
}

// ScriptedSensor simulates the physical board. It keeps per-color
// truth masks and executes queued script groups, one group per tick.
//
// Script format:
//   - a square token is a file letter a-h and a rank digit 1-8,
//     optionally preceded by a color marker W or B
//   - whitespace separates tokens within a group
//   - "." flushes the current group as one atomic tick
//
// Examples:
//   - "e2 We4."   lift e2, place white on e4, one tick
//   - "e2.  We4." same move across two ticks
//
// The marker is required when placing onto a square whose color the
// sensor has never seen; lifting infers color from occupancy. Putting
// a just-lifted piece back down needs no marker: the sensor remembers
// the color last seen on each square.
type ScriptedSensor struct {
	white  board.Mask
	black  board.Mask
	memory [board.NumSquares]colorMark

	pending [][]toggle
}

// NewScriptedSensor starts from the standard starting position.
func NewScriptedSensor() *ScriptedSensor {
	return FromGame(rules.NewGame())
}

// FromGame starts from a rules-engine position.
func FromGame(g *rules.Game) *ScriptedSensor {
	return FromSnapshot(g.Snapshot())
}

// FromSnapshot starts from an already validated snapshot.
func FromSnapshot(s board.Snapshot) *ScriptedSensor {
	sensor := &ScriptedSensor{white: s.White, black: s.Black}
	for _, sq := range s.White.Squares() {
		sensor.memory[sq] = markWhite
	}
	for _, sq := range s.Black.Squares() {
		sensor.memory[sq] = markBlack
	}
	return sensor
}

// FromMasks starts from raw per-color masks, rejecting overlap.
func FromMasks(white, black board.Mask) (*ScriptedSensor, error) {
	snap, err := board.NewSnapshot(white, black)
	if err != nil {
		return nil, err
	}
	return FromSnapshot(snap), nil
}

// Snapshot is the current truth state.
func (s *ScriptedSensor) Snapshot() board.Snapshot {
	return board.Snapshot{White: s.white, Black: s.black}
}

// PushScript parses and validates script, then queues its groups. The
// whole script is validated against a copy of the truth state before
// anything is queued: a failed push leaves the sensor unchanged.
func (s *ScriptedSensor) PushScript(script string) error {
	groups, err := parseScript(script)
	if err != nil {
		return err
	}

	white, black, memory := s.white, s.black, s.memory
	for _, g := range s.pending {
		for _, tg := range g {
			// Already validated; replay to advance the copy.
			applyToggle(&white, &black, &memory, tg)
		}
	}
	for _, g := range groups {
		for _, tg := range g {
			if err := applyToggle(&white, &black, &memory, tg); err != nil {
				return err
			}
		}
	}

	s.pending = append(s.pending, groups...)
	return nil
}

// Tick applies the next queued group and reports the new snapshot.
// ok is false when nothing is queued.
func (s *ScriptedSensor) Tick() (snap board.Snapshot, ok bool) {
	if len(s.pending) == 0 {
		return s.Snapshot(), false
	}
	group := s.pending[0]
	s.pending = s.pending[1:]
	for _, tg := range group {
		applyToggle(&s.white, &s.black, &s.memory, tg)
	}
	return s.Snapshot(), true
}

// Drain runs every queued group, invoking fn once per tick.
func (s *ScriptedSensor) Drain(fn func(board.Snapshot)) {
	for {
		snap, ok := s.Tick()
		if !ok {
			return
		}
		fn(snap)
	}
}

// Poll implements the sensor port: it advances one queued group if any
// remain, otherwise repeats the current reading.
func (s *ScriptedSensor) Poll() board.Snapshot {
	snap, _ := s.Tick()
	return snap
}

func applyToggle(white, black *board.Mask, memory *[board.NumSquares]colorMark, tg toggle) error {
	switch {
	case white.Has(tg.sq):
		if tg.mark == markBlack {
			return &ScriptError{Token: "B" + tg.sq.String(), Err: ErrColorMismatch}
		}
		white.Toggle(tg.sq)
		memory[tg.sq] = markWhite
	case black.Has(tg.sq):
		if tg.mark == markWhite {
			return &ScriptError{Token: "W" + tg.sq.String(), Err: ErrColorMismatch}
		}
		black.Toggle(tg.sq)
		memory[tg.sq] = markBlack
	default:
		mark := tg.mark
		if mark == markNone {
			mark = memory[tg.sq]
		}
		switch mark {
		case markWhite:
			white.Toggle(tg.sq)
		case markBlack:
			black.Toggle(tg.sq)
		default:
			return &ScriptError{Token: tg.sq.String(), Err: ErrMissingColor}
		}
		memory[tg.sq] = mark
	}
	return nil
}

// parseScript splits a script into groups of toggles. Empty groups
// (consecutive delimiters) are dropped.
func parseScript(script string) ([][]toggle, error) {
	groups := [][]toggle{nil}
	var token []rune

	flush := func() error {
		if len(token) == 0 {
			return nil
		}
		tg, err := parseToken(string(token))
		token = token[:0]
		if err != nil {
			return err
		}
		groups[len(groups)-1] = append(groups[len(groups)-1], tg)
		return nil
	}

	for _, ch := range script {
		switch {
		case ch == '.':
			if err := flush(); err != nil {
				return nil, err
			}
			groups = append(groups, nil)
		case unicode.IsSpace(ch):
			if err := flush(); err != nil {
				return nil, err
			}
		default:
			token = append(token, ch)
			// A token is complete at two characters, or three
			// when it opens with a color marker.
			if len(token) == 2 && token[0] != 'W' && token[0] != 'B' || len(token) == 3 {
				if err := flush(); err != nil {
					return nil, err
				}
			}
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}

	out := groups[:0]
	for _, g := range groups {
		if len(g) > 0 {
			out = append(out, g)
		}
	}
	return out, nil
}

func parseToken(tok string) (toggle, error) {
	mark := markNone
	rest := tok
	if len(tok) == 3 {
		switch tok[0] {
		case 'W':
			mark = markWhite
		case 'B':
			mark = markBlack
		default:
			return toggle{}, &ScriptError{Token: tok, Err: errors.New("invalid color marker")}
		}
		rest = tok[1:]
	}
	sq, err := board.ParseSquare(rest)
	if err != nil {
		return toggle{}, &ScriptError{Token: tok, Err: err}
	}
	return toggle{sq: sq, mark: mark}, nil
}
