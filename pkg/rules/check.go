package rules

import (
	"log"

	"github.com/notnil/chess"

	"github.com/hqpham/boardsense/pkg/board"
)

// CheckInfo reports whether the side to move is in check and which
// squares deliver that check. notnil/chess tags checks on moves but
// does not enumerate checking pieces, so the attack scan lives here,
// inside the rules boundary.
func (g *Game) CheckInfo() CheckInfo {
	pos := g.g.Position()
	brd := pos.Board()
	us := pos.Turn()

	var king chess.Square
	found := false
	for sq, p := range brd.SquareMap() {
		if p.Type() == chess.King && p.Color() == us {
			king = sq
			found = true
			break
		}
	}
	if !found {
		log.Panicf("rules: no %s king on board", us.Name())
	}

	info := CheckInfo{King: board.Square(king)}
	info.Checkers = attackers(brd, board.Square(king), us.Other())
	info.InCheck = !info.Checkers.Empty()
	return info
}

type step struct{ df, dr int }

var (
	knightSteps = []step{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	rookSteps   = []step{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	bishopSteps = []step{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
)

// attackers returns the squares of `by`-colored pieces attacking sq.
func attackers(brd *chess.Board, sq board.Square, by chess.Color) board.Mask {
	var out board.Mask
	f, r := sq.File(), sq.Rank()

	at := func(file, rank int) chess.Piece {
		if file < 0 || file > 7 || rank < 0 || rank > 7 {
			return chess.NoPiece
		}
		return brd.Piece(chess.Square(board.NewSquare(file, rank)))
	}
	add := func(file, rank int) {
		out = out.Add(board.NewSquare(file, rank))
	}

	// Knights.
	for _, s := range knightSteps {
		if p := at(f+s.df, r+s.dr); p != chess.NoPiece && p.Color() == by && p.Type() == chess.Knight {
			add(f+s.df, r+s.dr)
		}
	}

	// Pawns: a white pawn attacks upward, so it sits below its target.
	pawnRank := r - 1
	if by == chess.Black {
		pawnRank = r + 1
	}
	for _, df := range []int{-1, 1} {
		if p := at(f+df, pawnRank); p != chess.NoPiece && p.Color() == by && p.Type() == chess.Pawn {
			add(f+df, pawnRank)
		}
	}

	// Sliders: walk each ray to the first occupied square.
	ray := func(steps []step, want chess.PieceType) {
		for _, s := range steps {
			file, rank := f+s.df, r+s.dr
			for file >= 0 && file <= 7 && rank >= 0 && rank <= 7 {
				p := at(file, rank)
				if p != chess.NoPiece {
					if p.Color() == by && (p.Type() == want || p.Type() == chess.Queen) {
						add(file, rank)
					}
					break
				}
				file += s.df
				rank += s.dr
			}
		}
	}
	ray(rookSteps, chess.Rook)
	ray(bishopSteps, chess.Bishop)

	return out
}
