package core

import "testing"

func TestCanvasFitKeepsAspect(t *testing.T) {
	tests := []struct {
		name     string
		area     Rect
		expected Rect
	}{
		// 400x600 playfield: cols = rows * 2 * (2/3)
		{"height bound", NewRect(0, 0, 80, 24), NewRect(24, 0, 32, 24)},
		{"width bound", NewRect(0, 0, 20, 24), NewRect(0, 0, 20, 15)},
		{"offset area", NewRect(0, 1, 80, 30), NewRect(20, 1, 40, 30)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCanvas(NewScreen(100, 40), tc.area, 400, 600)
			if c.Area() != tc.expected {
				t.Errorf("Area() = %+v, expected %+v", c.Area(), tc.expected)
			}
		})
	}
}

func TestCanvasFillRect(t *testing.T) {
	s := NewScreen(10, 10)
	c := NewCanvas(s, NewRect(0, 0, 10, 10), 100, 200)
	// 100x200 units into 10x10 cells: x scale 0.1, y scale 0.05
	if c.Area() != NewRect(0, 0, 10, 10) {
		t.Fatalf("unexpected area %+v", c.Area())
	}

	c.FillRect(0, 0, 25, 40, Cell{Rune: '#', Fg: ColorForest})

	// x: [0, 2.5) -> cells 0..2, y: [0, 2) -> cells 0..1
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			if s.Get(x, y) != '#' {
				t.Errorf("expected '#' at (%d, %d), got %q", x, y, s.Get(x, y))
			}
		}
	}
	if s.Get(3, 0) != ' ' || s.Get(0, 2) != ' ' {
		t.Error("FillRect painted outside the rectangle")
	}

	// Rectangles outside the playfield are clipped
	c.FillRect(-50, -50, 10, 10, Cell{Rune: '!'})
	c.FillRect(90, 190, 100, 100, Cell{Rune: '@'})
	if s.Get(9, 9) != '@' {
		t.Errorf("expected clipped fill at bottom-right, got %q", s.Get(9, 9))
	}
	if s.Get(0, 0) != '#' {
		t.Error("negative rectangle should be clipped away")
	}
}

func TestCanvasFillCircle(t *testing.T) {
	s := NewScreen(20, 10)
	c := NewCanvas(s, NewRect(0, 0, 20, 10), 200, 200)

	c.FillCircle(100, 100, 40, '●', ColorGold)

	cx, cy := 10, 5
	if s.Get(cx, cy) != '●' {
		t.Errorf("circle center not painted, got %q", s.Get(cx, cy))
	}
	if s.GetCell(cx, cy).Fg != ColorGold {
		t.Error("circle should use the given color")
	}
	if s.Get(0, 0) != ' ' || s.Get(19, 9) != ' ' {
		t.Error("circle painted corners")
	}
}

func TestCanvasDrawSprite(t *testing.T) {
	s := NewScreen(4, 2)
	c := NewCanvas(s, NewRect(0, 0, 4, 2), 4, 4)
	sprite := ParseSprite("ab\n c")

	c.DrawSprite(0, 0, 4, 4, sprite, ColorGold)

	expected := []string{"aabb", "  cc"}
	for y, row := range expected {
		if got := s.Row(y); got != row {
			t.Errorf("row %d = %q, expected %q", y, got, row)
		}
	}

	// nil sprite draws nothing
	s.Clear()
	c.DrawSprite(0, 0, 4, 4, nil, ColorGold)
	if s.String() != "    \n    " {
		t.Errorf("nil sprite should not draw, got %q", s.String())
	}
}

func TestCanvasDrawTextAndShade(t *testing.T) {
	s := NewScreen(10, 4)
	c := NewCanvas(s, NewRect(0, 0, 10, 4), 100, 100)
	// 4 rows -> 8 cols, centered at x=1
	c.DrawText(50, 0, "hi", ColorWhite)

	if s.Get(4, 0) != 'h' || s.Get(5, 0) != 'i' {
		t.Errorf("text not centered, row 0 = %q", s.Row(0))
	}

	c.Shade()
	if s.GetCell(1, 3).Bg != ColorShade {
		t.Error("Shade should darken the playfield")
	}
	if s.GetCell(0, 3).Bg == ColorShade {
		t.Error("Shade should stay inside the playfield")
	}
	if s.GetCell(4, 0).Rune != 'h' {
		t.Error("Shade should keep runes")
	}
}
