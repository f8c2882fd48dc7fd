// Package feedback derives per-square display instructions from game
// state. Derivation is pure: a fresh board is computed on every call,
// never retained or updated incrementally.
package feedback

import (
	"github.com/hqpham/boardsense/pkg/board"
	"github.com/hqpham/boardsense/pkg/engine"
)

// Tag is the visual instruction for one square.
type Tag uint8

const (
	None Tag = iota
	// Origin of the last committed move, or of a lifted piece.
	Origin
	// Destination square to place a piece on.
	Destination
	// Capture square: placing here (or the last move landing here) takes a piece.
	Capture
	// Check marks the king square of a side in check.
	Check
	// Checker marks a piece delivering check.
	Checker
)

func (t Tag) String() string {
	switch t {
	case Origin:
		return "origin"
	case Destination:
		return "destination"
	case Capture:
		return "capture"
	case Check:
		return "check"
	case Checker:
		return "checker"
	default:
		return "none"
	}
}

// Board maps every square to a tag. The zero value tags all squares None.
type Board [board.NumSquares]Tag

func (b Board) Get(sq board.Square) Tag { return b[sq] }

func (b *Board) set(sq board.Square, t Tag) { b[sq] = t }

func (b Board) IsEmpty() bool {
	for _, t := range b {
		if t != None {
			return false
		}
	}
	return true
}

// Display consumes derived feedback boards.
type Display interface {
	Accept(fb Board)
}

// Derive maps a committed game state to its feedback board. Tags are
// assigned lowest priority first so the priority order Checker > Check
// > Capture > Destination > Origin decides squares claimed twice.
func Derive(state *engine.GameState) Board {
	var fb Board
	if state == nil {
		return fb
	}
	if mv := state.LastMove; mv != nil {
		fb.set(mv.From, Origin)
		fb.set(mv.To, Destination)
		if mv.Capture {
			fb.set(mv.CaptureSq, Capture)
		}
	}
	if state.InCheck {
		fb.set(state.King, Check)
		for _, sq := range state.Checkers.Squares() {
			fb.set(sq, Checker)
		}
	}
	return fb
}
