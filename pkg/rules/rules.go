// Package rules adapts github.com/notnil/chess to the capability the
// move-inference engine consumes: legal-move generation, move
// application, and check detection. Nothing outside this package
// decides chess legality.
package rules

import (
	"fmt"
	"log"

	"github.com/notnil/chess"

	"github.com/hqpham/boardsense/pkg/board"
)

// Move is one fully specified legal move.
type Move struct {
	From board.Square
	To   board.Square

	// Capture square differs from To only for en passant.
	Capture   bool
	CaptureSq board.Square

	Promotion  bool
	PromoQueen bool

	Castle   bool
	RookFrom board.Square
	RookTo   board.Square

	inner *chess.Move
}

func (m Move) String() string {
	if m.inner != nil {
		return m.inner.String()
	}
	return m.From.String() + m.To.String()
}

// CheckInfo describes the side to move's check situation.
type CheckInfo struct {
	InCheck  bool
	King     board.Square
	Checkers board.Mask
}

// Status of the game from the side to move's perspective.
type Status int

const (
	Ongoing Status = iota
	Checkmate
	Stalemate
)

// Game wraps a notnil/chess game as the authoritative position.
type Game struct {
	g *chess.Game
}

func NewGame() *Game {
	return &Game{g: chess.NewGame(chess.UseNotation(chess.UCINotation{}))}
}

// GameFromFEN builds a game from a FEN position.
func GameFromFEN(gamefen string) (*Game, error) {
	fen, err := chess.FEN(gamefen)
	if err != nil {
		return nil, fmt.Errorf("invalid FEN %q: %w", gamefen, err)
	}
	return &Game{g: chess.NewGame(fen, chess.UseNotation(chess.UCINotation{}))}, nil
}

func (g *Game) FEN() string {
	return g.g.Position().String()
}

func (g *Game) Turn() board.Color {
	return colorFrom(g.g.Position().Turn())
}

// Position exposes the underlying position for rendering.
func (g *Game) Position() *chess.Position {
	return g.g.Position()
}

func (g *Game) PieceAt(sq board.Square) chess.Piece {
	return g.g.Position().Board().Piece(chess.Square(sq))
}

// LegalMoves returns the complete legal-move list for the side to move.
func (g *Game) LegalMoves() []Move {
	pos := g.g.Position()
	valid := pos.ValidMoves()
	moves := make([]Move, 0, len(valid))
	for _, mv := range valid {
		moves = append(moves, describe(pos, mv))
	}
	return moves
}

// describe translates a chess.Move into the fully specified form.
func describe(pos *chess.Position, mv *chess.Move) Move {
	m := Move{
		From:  board.Square(mv.S1()),
		To:    board.Square(mv.S2()),
		inner: mv,
	}
	if mv.HasTag(chess.Capture) || mv.HasTag(chess.EnPassant) {
		m.Capture = true
		m.CaptureSq = m.To
		if mv.HasTag(chess.EnPassant) {
			// The captured pawn sits beside the destination.
			m.CaptureSq = board.NewSquare(m.To.File(), m.From.Rank())
		}
	}
	if mv.Promo() != chess.NoPieceType {
		m.Promotion = true
		m.PromoQueen = mv.Promo() == chess.Queen
	}
	if mv.HasTag(chess.KingSideCastle) || mv.HasTag(chess.QueenSideCastle) {
		m.Castle = true
		rank := m.From.Rank()
		if mv.HasTag(chess.KingSideCastle) {
			m.RookFrom = board.NewSquare(7, rank)
			m.RookTo = board.NewSquare(5, rank)
		} else {
			m.RookFrom = board.NewSquare(0, rank)
			m.RookTo = board.NewSquare(3, rank)
		}
	}
	return m
}

// Apply plays a move previously returned by LegalMoves. A move the
// underlying engine rejects is a contract violation; continuing on an
// inconsistent position would corrupt game history, so halt.
func (g *Game) Apply(m Move) {
	if m.inner == nil {
		log.Panicf("rules: applying unspecified move %s", m)
	}
	if err := g.g.Move(m.inner); err != nil {
		log.Panicf("rules: engine rejected its own legal move %s: %v", m, err)
	}
}

// Snapshot is the per-color occupancy of the current position.
func (g *Game) Snapshot() board.Snapshot {
	return snapshotOf(g.g.Position())
}

// SnapshotAfter is the per-color occupancy after playing m, without
// mutating the game.
func (g *Game) SnapshotAfter(m Move) board.Snapshot {
	return snapshotOf(g.g.Position().Update(m.inner))
}

func snapshotOf(pos *chess.Position) board.Snapshot {
	var snap board.Snapshot
	for sq, p := range pos.Board().SquareMap() {
		if p.Color() == chess.White {
			snap.White = snap.White.Add(board.Square(sq))
		} else {
			snap.Black = snap.Black.Add(board.Square(sq))
		}
	}
	return snap
}

func (g *Game) Status() Status {
	switch g.g.Position().Status() {
	case chess.Checkmate:
		return Checkmate
	case chess.Stalemate:
		return Stalemate
	default:
		return Ongoing
	}
}

func colorFrom(c chess.Color) board.Color {
	if c == chess.White {
		return board.White
	}
	return board.Black
}
