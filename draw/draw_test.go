package draw

import (
	"image"
	"testing"

	"github.com/BeatGlow/fbhal/pixel"
)

func points(b Batch) map[image.Point]int {
	m := make(map[image.Point]int)
	for _, c := range b {
		m[image.Pt(c.X, c.Y)]++
	}
	return m
}

func TestLine(t *testing.T) {
	tests := []struct {
		Name string
		P, Q image.Point
		Len  int
	}{
		{"point", image.Pt(3, 3), image.Pt(3, 3), 1},
		{"horizontal", image.Pt(0, 0), image.Pt(9, 0), 10},
		{"horizontal reversed", image.Pt(9, 2), image.Pt(0, 2), 10},
		{"vertical", image.Pt(1, 0), image.Pt(1, 4), 5},
		{"diagonal", image.Pt(0, 0), image.Pt(4, 4), 5},
		{"diagonal up", image.Pt(0, 4), image.Pt(4, 0), 5},
		{"shallow", image.Pt(0, 0), image.Pt(10, 3), 11},
		{"steep", image.Pt(0, 0), image.Pt(3, 10), 11},
	}
	for _, test := range tests {
		t.Run(test.Name, func(it *testing.T) {
			var b Batch
			b.Line(test.P, test.Q, 0x21)
			if len(b) != test.Len {
				it.Errorf("expected %d pixels, got %d", test.Len, len(b))
			}
			m := points(b)
			if m[test.P] == 0 || m[test.Q] == 0 {
				it.Errorf("expected both end points to be drawn, got %v", b)
			}
			for _, c := range b {
				if c.Index != 0x21 {
					it.Fatalf("expected color 0x21, got %#02x", c.Index)
				}
			}
		})
	}
}

func TestRectangle(t *testing.T) {
	var b Batch
	b.Rectangle(image.Rect(2, 2, 6, 5), 1)
	m := points(b)
	if len(m) != 4*2+1*2 {
		t.Errorf("expected 10 outline pixels, got %d", len(m))
	}
	for p, n := range m {
		if n != 1 {
			t.Errorf("pixel %s drawn %d times", p, n)
		}
		if !p.In(image.Rect(2, 2, 6, 5)) {
			t.Errorf("pixel %s outside the rectangle", p)
		}
	}
	if m[image.Pt(3, 3)] != 0 {
		t.Error("expected the inside to be empty")
	}
}

func TestBox(t *testing.T) {
	var b Batch
	b.Box(image.Rect(0, 0, 3, 2), 5)
	if len(b) != 6 {
		t.Errorf("expected 6 pixels, got %d", len(b))
	}
}

func TestBlocks(t *testing.T) {
	var b Batch
	b.Blocks(image.Rect(0, 0, 8, 4), 2, 7)
	want := Batch{
		{X: 0, Y: 0, Index: 7}, {X: 2, Y: 0, Index: 7}, {X: 4, Y: 0, Index: 7}, {X: 6, Y: 0, Index: 7},
		{X: 0, Y: 2, Index: 7}, {X: 2, Y: 2, Index: 7}, {X: 4, Y: 2, Index: 7}, {X: 6, Y: 2, Index: 7},
	}
	if len(b) != len(want) {
		t.Fatalf("expected %d commands, got %d", len(want), len(b))
	}
	for i := range want {
		if b[i] != want[i] {
			t.Errorf("command %d: expected %+v, got %+v", i, want[i], b[i])
		}
	}

	b.Reset()
	if len(b) != 0 {
		t.Error("expected empty batch after reset")
	}
	b.Set(1, 2, 3)
	if b[0] != (pixel.Command{X: 1, Y: 2, Index: 3}) {
		t.Errorf("unexpected command %+v", b[0])
	}
}
