// Package engine infers physical chess moves from successive occupancy
// snapshots. It tracks lifted and placed squares against the committed
// position and commits a move only when the accumulated transition
// matches exactly one legal move.
package engine

import (
	"github.com/hqpham/boardsense/pkg/board"
	"github.com/hqpham/boardsense/pkg/rules"
)

// GameState is the snapshot produced after each committed move. Its
// fields are fixed at commit time; the value is replaced, never
// mutated in place. Game() is the exception, see its doc.
type GameState struct {
	FEN        string
	Turn       board.Color
	LastMove   *rules.Move
	InCheck    bool
	King       board.Square
	Checkers   board.Mask
	Checkmate  bool
	Stalemate  bool
	LegalMoves []rules.Move

	pos *rules.Game
}

// Game exposes the rules-engine view of the engine's current committed
// position, not the position this state was captured at: the engine
// owns one live game, and every state it hands out shares it. Callers
// holding an old state must use its fields (FEN, LegalMoves) for
// as-of-then data.
func (s *GameState) Game() *rules.Game { return s.pos }

// Transition is the accumulated lifted/placed state between the last
// committed position and the present tick. A square may appear lifted
// in one color and placed in the other: that is the signature of a
// capture landing on the captured piece's square. Same-color lift and
// place on one square cancel out during derivation and never coexist.
type Transition struct {
	LiftedWhite board.Mask
	LiftedBlack board.Mask
	PlacedWhite board.Mask
	PlacedBlack board.Mask
}

func (t Transition) Lifted(c board.Color) board.Mask {
	if c == board.White {
		return t.LiftedWhite
	}
	return t.LiftedBlack
}

func (t Transition) Placed(c board.Color) board.Mask {
	if c == board.White {
		return t.PlacedWhite
	}
	return t.PlacedBlack
}

func (t Transition) liftedCount() int { return t.LiftedWhite.Count() + t.LiftedBlack.Count() }
func (t Transition) placedCount() int { return t.PlacedWhite.Count() + t.PlacedBlack.Count() }

func (t Transition) Empty() bool {
	return t.liftedCount() == 0 && t.placedCount() == 0
}

// Engine is the move-inference state machine. It owns the committed
// game state and the pending transition; one instance per board,
// driven synchronously, one Tick per sensor scan.
type Engine struct {
	game    *rules.Game
	state   *GameState
	pending Transition

	// base is the occupancy the pending transition is measured
	// against: always the committed position's occupancy.
	base board.Snapshot
	last board.Snapshot

	// graceArmed marks a two-lifts-no-placement reading (the en
	// passant in-progress signature) that has been deferred one tick.
	graceArmed bool
}

// New starts an engine at the standard starting position.
func New() *Engine {
	return FromGame(rules.NewGame())
}

// FromFEN starts an engine at an arbitrary position.
func FromFEN(fen string) (*Engine, error) {
	g, err := rules.GameFromFEN(fen)
	if err != nil {
		return nil, err
	}
	return FromGame(g), nil
}

func FromGame(g *rules.Game) *Engine {
	e := &Engine{game: g}
	e.base = g.Snapshot()
	e.last = e.base
	e.state = e.snapshotState(nil)
	return e
}

// State returns the current committed game state.
func (e *Engine) State() *GameState { return e.state }

// Pending returns a copy of the pending transition.
func (e *Engine) Pending() Transition { return e.pending }

// Tick processes one occupancy reading. It returns the new game state
// when the reading completes exactly one legal move, and nil
// otherwise. The tick path never fails: patterns that cannot resolve
// to a legal move are retained or silently dropped, because a physical
// board produces many illegal-looking intermediate states mid-move.
func (e *Engine) Tick(snap board.Snapshot) *GameState {
	if snap == e.last {
		return nil // board hasn't changed
	}
	e.last = snap
	e.pending = diff(e.base, snap)

	// Two pieces in the air with nothing placed is how an en passant
	// capture starts. Give it one changed reading of grace; a second
	// reading still in that shape is discarded as noise. The discard is
	// not sticky: the squares re-enter the pending transition on the
	// next reading and get a fresh grace window.
	if e.pending.liftedCount() == 2 && e.pending.placedCount() == 0 {
		if e.graceArmed {
			e.pending = Transition{}
			e.graceArmed = false
		} else {
			e.graceArmed = true
		}
		return nil
	}
	e.graceArmed = false

	if e.pending.Empty() || !e.settled() {
		return nil
	}

	var match rules.Move
	found := 0
	for _, mv := range e.game.LegalMoves() {
		// The board has no piece-selection mechanism; promotions
		// always resolve to a queen.
		if mv.Promotion && !mv.PromoQueen {
			continue
		}
		if e.game.SnapshotAfter(mv) == snap {
			match = mv
			found++
		}
	}
	if found != 1 {
		return nil
	}

	e.game.Apply(match)
	e.base = e.game.Snapshot()
	e.pending = Transition{}
	e.state = e.snapshotState(&match)
	return e.state
}

// settled reports whether the transition has no mover pieces left in
// the air: every mover lift has a mover placement, at most one
// opponent piece is gone (the capture target), and nothing appeared in
// the opponent's color.
func (e *Engine) settled() bool {
	mover := e.game.Turn()
	opp := mover.Other()
	moverLifts := e.pending.Lifted(mover).Count()
	moverPlaces := e.pending.Placed(mover).Count()
	return moverPlaces >= 1 &&
		moverLifts == moverPlaces &&
		e.pending.Lifted(opp).Count() <= 1 &&
		e.pending.Placed(opp).Empty()
}

// diff derives the lifted/placed sets of snap relative to base.
// Lifted colors come from the committed position, placed colors from
// the current snapshot.
func diff(base, snap board.Snapshot) Transition {
	return Transition{
		LiftedWhite: base.White &^ snap.White,
		LiftedBlack: base.Black &^ snap.Black,
		PlacedWhite: snap.White &^ base.White,
		PlacedBlack: snap.Black &^ base.Black,
	}
}

func (e *Engine) snapshotState(last *rules.Move) *GameState {
	check := e.game.CheckInfo()
	status := e.game.Status()
	return &GameState{
		FEN:        e.game.FEN(),
		Turn:       e.game.Turn(),
		LastMove:   last,
		InCheck:    check.InCheck,
		King:       check.King,
		Checkers:   check.Checkers,
		Checkmate:  status == rules.Checkmate,
		Stalemate:  status == rules.Stalemate,
		LegalMoves: e.game.LegalMoves(),
		pos:        e.game,
	}
}
