package board

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"
)

const NumSquares = 64

// Square is a board position, 0-63 with a1=0 and h8=63.
type Square uint8

// NewSquare builds a square from file (0-7, a-h) and rank (0-7, 1-8).
func NewSquare(file, rank int) Square {
	return Square(rank*8 + file)
}

func (s Square) File() int { return int(s) % 8 }
func (s Square) Rank() int { return int(s) / 8 }

func (s Square) String() string {
	return fmt.Sprintf("%c%c", 'a'+s.File(), '1'+s.Rank())
}

// ParseSquare reads two-character algebraic notation ("e2").
func ParseSquare(tok string) (Square, error) {
	if len(tok) != 2 || tok[0] < 'a' || tok[0] > 'h' || tok[1] < '1' || tok[1] > '8' {
		return 0, fmt.Errorf("invalid square notation %q", tok)
	}
	return NewSquare(int(tok[0]-'a'), int(tok[1]-'1')), nil
}

// Color of a piece side.
type Color int

const (
	White Color = iota
	Black
)

func (c Color) Other() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Mask is a 64-bit square set, bit N = square N.
type Mask uint64

func (m Mask) Has(s Square) bool { return m&(1<<s) != 0 }
func (m Mask) Add(s Square) Mask { return m | (1 << s) }
func (m Mask) Del(s Square) Mask { return m &^ (1 << s) }
func (m Mask) Count() int { return bits.OnesCount64(uint64(m)) }
func (m Mask) Empty() bool { return m == 0 }
func (m *Mask) Toggle(s Square) { *m ^= 1 << s }

// Single returns the only square in the mask, or ok=false when the
// mask is empty or holds more than one square.
func (m Mask) Single() (Square, bool) {
	if m.Count() != 1 {
		return 0, false
	}
	return Square(bits.TrailingZeros64(uint64(m))), true
}

// Squares lists the set squares in ascending order.
func (m Mask) Squares() []Square {
	out := make([]Square, 0, m.Count())
	for bb := uint64(m); bb != 0; bb &= bb - 1 {
		out = append(out, Square(bits.TrailingZeros64(bb)))
	}
	return out
}

func (m Mask) String() string {
	sqs := m.Squares()
	parts := make([]string, len(sqs))
	for i, s := range sqs {
		parts[i] = s.String()
	}
	return "{" + strings.Join(parts, " ") + "}"
}

// ErrOverlap reports a snapshot where both colors claim a square.
var ErrOverlap = errors.New("overlapping squares")

// Snapshot is one tick's per-color occupancy reading. The two masks
// are disjoint; NewSnapshot enforces this at construction.
type Snapshot struct {
	White Mask
	Black Mask
}

func NewSnapshot(white, black Mask) (Snapshot, error) {
	if both := white & black; !both.Empty() {
		return Snapshot{}, fmt.Errorf("%w: %s", ErrOverlap, both)
	}
	return Snapshot{White: white, Black: black}, nil
}

// Occupied is the combined occupancy of both colors.
func (s Snapshot) Occupied() Mask { return s.White | s.Black }

// Side returns the mask for one color.
func (s Snapshot) Side(c Color) Mask {
	if c == White {
		return s.White
	}
	return s.Black
}
