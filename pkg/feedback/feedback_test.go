package feedback_test

import (
	"testing"

	"github.com/hqpham/boardsense/pkg/board"
	"github.com/hqpham/boardsense/pkg/engine"
	"github.com/hqpham/boardsense/pkg/feedback"
	"github.com/hqpham/boardsense/pkg/sim"
)

func sq(t *testing.T, tok string) board.Square {
	t.Helper()
	s, err := board.ParseSquare(tok)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

// advance feeds a script to a fresh sensor/engine pair and returns the
// engine afterwards.
func advance(t *testing.T, fen, script string) *engine.Engine {
	t.Helper()
	var (
		eng *engine.Engine
		err error
	)
	if fen == "" {
		eng = engine.New()
	} else if eng, err = engine.FromFEN(fen); err != nil {
		t.Fatal(err)
	}
	sensor := sim.FromGame(eng.State().Game())
	if err := sensor.PushScript(script); err != nil {
		t.Fatal(err)
	}
	sensor.Drain(func(snap board.Snapshot) { eng.Tick(snap) })
	return eng
}

// wantTags asserts the given squares carry the given tags and every
// other square is untagged.
func wantTags(t *testing.T, fb feedback.Board, want map[string]feedback.Tag) {
	t.Helper()
	for tok, tag := range want {
		if got := fb.Get(sq(t, tok)); got != tag {
			t.Errorf("%s tagged %v, want %v", tok, got, tag)
		}
	}
	for i := 0; i < board.NumSquares; i++ {
		s := board.Square(i)
		if _, claimed := want[s.String()]; claimed {
			continue
		}
		if got := fb.Get(s); got != feedback.None {
			t.Errorf("%s tagged %v, want none", s, got)
		}
	}
}

func TestDeriveNilAndFreshState(t *testing.T) {
	if !feedback.Derive(nil).IsEmpty() {
		t.Fatal("nil state produced tags")
	}
	if !feedback.Derive(engine.New().State()).IsEmpty() {
		t.Fatal("fresh state produced tags")
	}
}

func TestDeriveQuietMove(t *testing.T) {
	eng := advance(t, "", "e2 We4.")
	wantTags(t, feedback.Derive(eng.State()), map[string]feedback.Tag{
		"e2": feedback.Origin,
		"e4": feedback.Destination,
	})
}

func TestDeriveCaptureOutranksDestination(t *testing.T) {
	eng := advance(t, "rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2",
		"d5 e4 Wd5.")
	wantTags(t, feedback.Derive(eng.State()), map[string]feedback.Tag{
		"e4": feedback.Origin,
		"d5": feedback.Capture,
	})
}

func TestDeriveEnPassantCaptureSquare(t *testing.T) {
	eng := advance(t, "rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3",
		"d5 e5 Wd6.")
	wantTags(t, feedback.Derive(eng.State()), map[string]feedback.Tag{
		"e5": feedback.Origin,
		"d6": feedback.Destination,
		"d5": feedback.Capture,
	})
}

func TestDeriveCheckWithoutLastMove(t *testing.T) {
	eng, err := engine.FromFEN("4k3/8/8/8/8/8/8/4R2K b - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	wantTags(t, feedback.Derive(eng.State()), map[string]feedback.Tag{
		"e8": feedback.Check,
		"e1": feedback.Checker,
	})
}

func TestDeriveCheckerOutranksDestination(t *testing.T) {
	eng := advance(t, "4k3/8/8/8/8/8/4R3/7K w - - 0 1", "e2 We7.")
	wantTags(t, feedback.Derive(eng.State()), map[string]feedback.Tag{
		"e2": feedback.Origin,
		"e7": feedback.Checker,
		"e8": feedback.Check,
	})
}

func TestGuideFallsBackWhenIdle(t *testing.T) {
	eng := advance(t, "", "e2 We4.")
	if feedback.Guide(eng.State(), eng.Pending()) != feedback.Derive(eng.State()) {
		t.Fatal("idle guidance differs from derived feedback")
	}
}

func TestGuideLiftedPieceDestinations(t *testing.T) {
	eng := advance(t, "", "e2.")
	wantTags(t, feedback.Guide(eng.State(), eng.Pending()), map[string]feedback.Tag{
		"e2": feedback.Origin,
		"e3": feedback.Destination,
		"e4": feedback.Destination,
	})
}

func TestGuideLiftedPieceWithCapture(t *testing.T) {
	eng := advance(t, "rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2",
		"e4.")
	wantTags(t, feedback.Guide(eng.State(), eng.Pending()), map[string]feedback.Tag{
		"e4": feedback.Origin,
		"e5": feedback.Destination,
		"d5": feedback.Capture,
	})
}

func TestGuideCaptureOptions(t *testing.T) {
	// Opponent piece removed first: light everything that can take it.
	eng := advance(t, "rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2",
		"d5.")
	wantTags(t, feedback.Guide(eng.State(), eng.Pending()), map[string]feedback.Tag{
		"e4": feedback.Origin,
		"d5": feedback.Destination,
	})
}

func TestGuideCaptureCompletion(t *testing.T) {
	eng := advance(t, "rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2",
		"d5 e4.")
	wantTags(t, feedback.Guide(eng.State(), eng.Pending()), map[string]feedback.Tag{
		"e4": feedback.Origin,
		"d5": feedback.Destination,
	})
}

func TestGuideNilState(t *testing.T) {
	if !feedback.Guide(nil, engine.Transition{}).IsEmpty() {
		t.Fatal("nil state produced guidance")
	}
}
