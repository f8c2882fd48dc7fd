package board

import (
	"errors"
	"testing"
)

func TestParseSquare(t *testing.T) {
	cases := []struct {
		tok  string
		want Square
		ok   bool
	}{
		{"a1", 0, true},
		{"h1", 7, true},
		{"a8", 56, true},
		{"h8", 63, true},
		{"e4", NewSquare(4, 3), true},
		{"i4", 0, false},
		{"e9", 0, false},
		{"e", 0, false},
		{"", 0, false},
		{"e44", 0, false},
	}
	for _, c := range cases {
		sq, err := ParseSquare(c.tok)
		if c.ok != (err == nil) {
			t.Errorf("ParseSquare(%q) err = %v, want ok=%v", c.tok, err, c.ok)
			continue
		}
		if c.ok && sq != c.want {
			t.Errorf("ParseSquare(%q) = %v, want %v", c.tok, sq, c.want)
		}
	}
}

func TestSquareRoundTrip(t *testing.T) {
	for i := 0; i < NumSquares; i++ {
		sq := Square(i)
		got, err := ParseSquare(sq.String())
		if err != nil {
			t.Fatalf("ParseSquare(%q): %v", sq.String(), err)
		}
		if got != sq {
			t.Fatalf("round trip %v -> %q -> %v", sq, sq.String(), got)
		}
	}
}

func TestMaskOps(t *testing.T) {
	var m Mask
	e4, _ := ParseSquare("e4")
	d5, _ := ParseSquare("d5")

	m = m.Add(e4).Add(d5)
	if !m.Has(e4) || !m.Has(d5) || m.Count() != 2 {
		t.Fatalf("after adds: %v", m)
	}
	if _, one := m.Single(); one {
		t.Fatal("two squares reported as single")
	}

	m = m.Del(d5)
	if sq, one := m.Single(); !one || sq != e4 {
		t.Fatalf("Single() = %v, %v, want e4", sq, one)
	}

	m.Toggle(e4)
	if !m.Empty() {
		t.Fatalf("after toggle off: %v", m)
	}
	m.Toggle(e4)
	if !m.Has(e4) {
		t.Fatal("toggle did not set bit back")
	}
}

func TestMaskSquaresOrdered(t *testing.T) {
	var m Mask
	for _, tok := range []string{"h8", "a1", "e4"} {
		sq, _ := ParseSquare(tok)
		m = m.Add(sq)
	}
	got := m.Squares()
	if len(got) != 3 || got[0].String() != "a1" || got[1].String() != "e4" || got[2].String() != "h8" {
		t.Fatalf("Squares() = %v", got)
	}
}

func TestNewSnapshotRejectsOverlap(t *testing.T) {
	e4, _ := ParseSquare("e4")
	var w, b Mask
	w = w.Add(e4)
	b = b.Add(e4)
	if _, err := NewSnapshot(w, b); !errors.Is(err, ErrOverlap) {
		t.Fatalf("err = %v, want ErrOverlap", err)
	}
}

func TestSnapshotSides(t *testing.T) {
	e2, _ := ParseSquare("e2")
	e7, _ := ParseSquare("e7")
	snap, err := NewSnapshot(Mask(0).Add(e2), Mask(0).Add(e7))
	if err != nil {
		t.Fatal(err)
	}
	if !snap.Side(White).Has(e2) || !snap.Side(Black).Has(e7) {
		t.Fatalf("sides wrong: %+v", snap)
	}
	if snap.Occupied().Count() != 2 {
		t.Fatalf("Occupied() = %v", snap.Occupied())
	}
}

func TestColorOther(t *testing.T) {
	if White.Other() != Black || Black.Other() != White {
		t.Fatal("Other() broken")
	}
}
