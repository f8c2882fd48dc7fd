package feedback

import (
	"github.com/hqpham/boardsense/pkg/board"
	"github.com/hqpham/boardsense/pkg/engine"
	"github.com/hqpham/boardsense/pkg/rules"
)

// Guide derives in-progress move guidance from the pending transition:
// a lifted piece lights its legal destinations, a removed opponent
// piece lights the pieces that can capture it. With nothing in flight
// it falls back to Derive.
func Guide(state *engine.GameState, pending engine.Transition) Board {
	if state == nil {
		return Board{}
	}
	mover := state.Turn
	lifted, liftedOne := pending.Lifted(mover).Single()
	captured, capturedOne := pending.Lifted(mover.Other()).Single()

	switch {
	case capturedOne && liftedOne:
		return captureCompletion(state.LegalMoves, lifted, captured)
	case capturedOne:
		return captureOptions(state.LegalMoves, captured)
	case liftedOne:
		return destinationsFor(state.LegalMoves, lifted)
	default:
		return Derive(state)
	}
}

// destinationsFor lights the legal destinations of a lifted piece.
func destinationsFor(moves []rules.Move, from board.Square) Board {
	var fb Board
	fb.set(from, Origin)
	for _, mv := range moves {
		if mv.From != from {
			continue
		}
		if mv.Capture {
			fb.set(mv.To, Capture)
		} else {
			fb.set(mv.To, Destination)
		}
	}
	return fb
}

// captureOptions lights every piece that can take on the removed
// opponent piece's square, and where it would land.
func captureOptions(moves []rules.Move, capturedSq board.Square) Board {
	var fb Board
	for _, mv := range moves {
		if !mv.Capture || mv.CaptureSq != capturedSq {
			continue
		}
		fb.set(mv.To, Destination)
		fb.set(mv.From, Origin)
	}
	return fb
}

// captureCompletion lights where to place the lifted piece to finish
// the capture in progress.
func captureCompletion(moves []rules.Move, from, capturedSq board.Square) Board {
	var fb Board
	fb.set(from, Origin)
	for _, mv := range moves {
		if mv.From == from && mv.Capture && mv.CaptureSq == capturedSq {
			fb.set(mv.To, Destination)
		}
	}
	return fb
}
