package sim

import (
	"errors"
	"testing"

	"github.com/hqpham/boardsense/pkg/board"
)

func sq(t *testing.T, tok string) board.Square {
	t.Helper()
	s, err := board.ParseSquare(tok)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func drainCount(s *ScriptedSensor) int {
	n := 0
	s.Drain(func(board.Snapshot) { n++ })
	return n
}

func TestStartingSnapshot(t *testing.T) {
	snap := NewScriptedSensor().Snapshot()
	if snap.White.Count() != 16 || snap.Black.Count() != 16 {
		t.Fatalf("snapshot counts %d/%d", snap.White.Count(), snap.Black.Count())
	}
	if !snap.White.Has(sq(t, "e2")) || !snap.Black.Has(sq(t, "e7")) {
		t.Fatalf("snapshot %+v", snap)
	}
}

func TestGroupPerTick(t *testing.T) {
	cases := []struct {
		script string
		ticks  int
	}{
		{"e2 We4.", 1},
		{"e2.  We4.", 2},
		{"e2. e2.", 2},
		{"e2 We4", 1}, // trailing group needs no delimiter
		{"...", 0},    // empty groups are dropped
		{"  ", 0},
	}
	for _, c := range cases {
		s := NewScriptedSensor()
		if err := s.PushScript(c.script); err != nil {
			t.Errorf("PushScript(%q): %v", c.script, err)
			continue
		}
		if n := drainCount(s); n != c.ticks {
			t.Errorf("script %q ran %d ticks, want %d", c.script, n, c.ticks)
		}
	}
}

func TestMoveTogglesTruth(t *testing.T) {
	s := NewScriptedSensor()
	if err := s.PushScript("e2 We4."); err != nil {
		t.Fatal(err)
	}
	drainCount(s)
	snap := s.Snapshot()
	if snap.White.Has(sq(t, "e2")) || !snap.White.Has(sq(t, "e4")) {
		t.Fatalf("snapshot %+v", snap)
	}
}

func TestLiftAndReplaceRemembersColor(t *testing.T) {
	// The second e2 places onto an empty square with no marker; the
	// sensor remembers which color it last saw there.
	s := NewScriptedSensor()
	before := s.Snapshot()
	if err := s.PushScript("e2. e2."); err != nil {
		t.Fatal(err)
	}
	drainCount(s)
	if s.Snapshot() != before {
		t.Fatalf("snapshot %+v, want %+v", s.Snapshot(), before)
	}
}

func TestMissingColor(t *testing.T) {
	s := NewScriptedSensor()
	err := s.PushScript("e4.")
	if !errors.Is(err, ErrMissingColor) {
		t.Fatalf("err = %v, want ErrMissingColor", err)
	}
}

func TestColorMismatch(t *testing.T) {
	s := NewScriptedSensor()
	err := s.PushScript("Be2.")
	if !errors.Is(err, ErrColorMismatch) {
		t.Fatalf("err = %v, want ErrColorMismatch", err)
	}
}

func TestBadTokens(t *testing.T) {
	for _, script := range []string{"i9.", "e0.", "Xe4.", "We9."} {
		s := NewScriptedSensor()
		err := s.PushScript(script)
		var serr *ScriptError
		if !errors.As(err, &serr) {
			t.Errorf("PushScript(%q) err = %v, want ScriptError", script, err)
		}
	}
}

func TestFailedPushLeavesSensorUnchanged(t *testing.T) {
	s := NewScriptedSensor()
	if err := s.PushScript("e2 We4."); err != nil {
		t.Fatal(err)
	}
	// Second group fails validation: d4 was never occupied.
	if err := s.PushScript("a7 Ba5. d4."); !errors.Is(err, ErrMissingColor) {
		t.Fatalf("err = %v, want ErrMissingColor", err)
	}
	// Only the first push's single group is queued.
	if n := drainCount(s); n != 1 {
		t.Fatalf("ran %d ticks, want 1", n)
	}
	if !s.Snapshot().White.Has(sq(t, "e4")) {
		t.Fatalf("snapshot %+v", s.Snapshot())
	}
}

func TestValidationReplaysQueuedGroups(t *testing.T) {
	// "We4" is only valid because the queued first group vacates e4's
	// origin; validation must replay pending groups before new ones.
	s := NewScriptedSensor()
	if err := s.PushScript("e2."); err != nil {
		t.Fatal(err)
	}
	if err := s.PushScript("We4."); err != nil {
		t.Fatal(err)
	}
	if err := s.PushScript("e4."); err != nil {
		t.Fatal(err)
	}
	if n := drainCount(s); n != 3 {
		t.Fatalf("ran %d ticks, want 3", n)
	}
	if s.Snapshot().White.Has(sq(t, "e4")) {
		t.Fatalf("snapshot %+v", s.Snapshot())
	}
}

func TestFromMasksRejectsOverlap(t *testing.T) {
	e4 := sq(t, "e4")
	_, err := FromMasks(board.Mask(0).Add(e4), board.Mask(0).Add(e4))
	if !errors.Is(err, board.ErrOverlap) {
		t.Fatalf("err = %v, want ErrOverlap", err)
	}
}

func TestPollRepeatsWhenDrained(t *testing.T) {
	s := NewScriptedSensor()
	if err := s.PushScript("e2 We4."); err != nil {
		t.Fatal(err)
	}
	first := s.Poll()
	if first == (board.Snapshot{}) || !first.White.Has(sq(t, "e4")) {
		t.Fatalf("first poll %+v", first)
	}
	for i := 0; i < 3; i++ {
		if got := s.Poll(); got != first {
			t.Fatalf("poll %d = %+v, want %+v", i, got, first)
		}
	}
}
