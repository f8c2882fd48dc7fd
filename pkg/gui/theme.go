package gui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/hqpham/boardsense/pkg/board"
	"github.com/hqpham/boardsense/pkg/feedback"
)

// Terminal safe color palette reference:
// https://upload.wikimedia.org/wikipedia/commons/1/15/Xterm_256color_chart.svg

// Theme colors the simulator UI.
type Theme struct {
	SquareDark  tcell.Color
	SquareLight tcell.Color
	Origin      tcell.Color
	Destination tcell.Color
	Capture     tcell.Color
	Check       tcell.Color
	Checker     tcell.Color
	Label       tcell.Color
	Msg         tcell.Color
}

func DefaultTheme() Theme {
	return Theme{
		SquareDark:  tcell.ColorDarkSlateGray,
		SquareLight: tcell.ColorGray,
		Origin:      tcell.ColorGreen,
		Destination: tcell.ColorBlue,
		Capture:     tcell.ColorRed,
		Check:       tcell.ColorPurple,
		Checker:     tcell.ColorYellow,
		Label:       tcell.ColorWhite,
		Msg:         tcell.ColorYellow,
	}
}

// squareBg picks the background for a square: its feedback tag when
// tagged, otherwise the checker pattern.
func (t Theme) squareBg(sq board.Square, tag feedback.Tag) tcell.Color {
	switch tag {
	case feedback.Origin:
		return t.Origin
	case feedback.Destination:
		return t.Destination
	case feedback.Capture:
		return t.Capture
	case feedback.Check:
		return t.Check
	case feedback.Checker:
		return t.Checker
	}
	if (sq.File()+sq.Rank())%2 == 0 {
		return t.SquareDark
	}
	return t.SquareLight
}
