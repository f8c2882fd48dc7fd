package gui

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/hqpham/boardsense/pkg/board"
	"github.com/hqpham/boardsense/pkg/feedback"
)

func TestSquareBgTagColors(t *testing.T) {
	th := DefaultTheme()
	a1 := board.Square(0)
	cases := []struct {
		tag  feedback.Tag
		want tcell.Color
	}{
		{feedback.Origin, th.Origin},
		{feedback.Destination, th.Destination},
		{feedback.Capture, th.Capture},
		{feedback.Check, th.Check},
		{feedback.Checker, th.Checker},
	}
	for _, c := range cases {
		if got := th.squareBg(a1, c.tag); got != c.want {
			t.Errorf("squareBg(a1, %v) = %v, want %v", c.tag, got, c.want)
		}
	}
}

func TestSquareBgCheckerPattern(t *testing.T) {
	th := DefaultTheme()
	a1, _ := board.ParseSquare("a1")
	b1, _ := board.ParseSquare("b1")
	a2, _ := board.ParseSquare("a2")
	if th.squareBg(a1, feedback.None) != th.SquareDark {
		t.Error("a1 should be dark")
	}
	if th.squareBg(b1, feedback.None) != th.SquareLight {
		t.Error("b1 should be light")
	}
	if th.squareBg(a2, feedback.None) != th.SquareLight {
		t.Error("a2 should be light")
	}
}
