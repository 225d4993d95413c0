package core

import "math"

// cellAspect is how much taller a terminal cell is than it is wide.
const cellAspect = 2.0

// Canvas maps a continuous playfield (in abstract units) onto a region of a
// Screen. The region is the largest one that keeps the playfield aspect ratio
// given cellAspect, centered horizontally and anchored at the top.
type Canvas struct {
	dst    *Screen
	area   Rect
	unitsW float64
	unitsH float64
}

// NewCanvas fits a unitsW x unitsH playfield into the given screen area.
func NewCanvas(dst *Screen, area Rect, unitsW, unitsH float64) *Canvas {
	c := &Canvas{dst: dst, unitsW: unitsW, unitsH: unitsH}
	c.area = fitArea(area, unitsW, unitsH)
	return c
}

func fitArea(area Rect, unitsW, unitsH float64) Rect {
	if area.W <= 0 || area.H <= 0 || unitsW <= 0 || unitsH <= 0 {
		return Rect{X: area.X, Y: area.Y}
	}
	aspect := unitsW / unitsH
	rows := area.H
	cols := int(math.Round(float64(rows) * cellAspect * aspect))
	if cols > area.W {
		cols = area.W
		rows = int(math.Round(float64(cols) / (cellAspect * aspect)))
	}
	cols = Clamp(cols, 1, area.W)
	rows = Clamp(rows, 1, area.H)
	return NewRect(area.X+(area.W-cols)/2, area.Y, cols, rows)
}

// Area returns the cell rectangle the playfield occupies.
func (c *Canvas) Area() Rect {
	return c.area
}

// Units returns the playfield size in units.
func (c *Canvas) Units() (w, h float64) {
	return c.unitsW, c.unitsH
}

func (c *Canvas) scaleX() float64 { return float64(c.area.W) / c.unitsW }
func (c *Canvas) scaleY() float64 { return float64(c.area.H) / c.unitsH }

// span converts a unit interval to a half-open cell interval clipped to n.
func span(from, length, scale float64, n int) (int, int) {
	if length <= 0 {
		return 0, 0
	}
	lo := int(math.Floor(from * scale))
	hi := int(math.Ceil((from + length) * scale))
	return Clamp(lo, 0, n), Clamp(hi, 0, n)
}

// FillRect paints every cell the unit rectangle touches.
func (c *Canvas) FillRect(x, y, w, h float64, cell Cell) {
	x0, x1 := span(x, w, c.scaleX(), c.area.W)
	y0, y1 := span(y, h, c.scaleY(), c.area.H)
	for cy := y0; cy < y1; cy++ {
		for cx := x0; cx < x1; cx++ {
			c.dst.SetCell(c.area.X+cx, c.area.Y+cy, cell)
		}
	}
}

// FillCircle paints the cells whose centers fall inside the circle.
func (c *Canvas) FillCircle(cx, cy, radius float64, r rune, fg Color) {
	sx, sy := c.scaleX(), c.scaleY()
	x0, x1 := span(cx-radius, 2*radius, sx, c.area.W)
	y0, y1 := span(cy-radius, 2*radius, sy, c.area.H)
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			ux := (float64(px)+0.5)/sx - cx
			uy := (float64(py)+0.5)/sy - cy
			if ux*ux+uy*uy <= radius*radius {
				c.paint(px, py, r, fg)
			}
		}
	}
}

// DrawSprite scales a sprite into the unit rectangle using nearest-neighbour
// sampling. Spaces in the sprite are transparent.
func (c *Canvas) DrawSprite(x, y, w, h float64, s *Sprite, fg Color) {
	if s == nil || s.Width() == 0 || s.Height() == 0 {
		return
	}
	sx, sy := c.scaleX(), c.scaleY()
	x0, x1 := span(x, w, sx, c.area.W)
	y0, y1 := span(y, h, sy, c.area.H)
	for py := y0; py < y1; py++ {
		v := ((float64(py)+0.5)/sy - y) / h
		for px := x0; px < x1; px++ {
			u := ((float64(px)+0.5)/sx - x) / w
			if r := s.Sample(u, v); r != ' ' {
				c.paint(px, py, r, fg)
			}
		}
	}
}

// DrawText centers text horizontally on unit x at unit y.
func (c *Canvas) DrawText(x, y float64, text string, fg Color) {
	n := len([]rune(text))
	px := int(math.Floor(x*c.scaleX())) - n/2
	py := Clamp(int(math.Floor(y*c.scaleY())), 0, max(c.area.H-1, 0))
	i := 0
	for _, r := range text {
		if px+i >= 0 && px+i < c.area.W {
			c.paint(px+i, py, r, fg)
		}
		i++
	}
}

// Shade darkens the whole playfield background, the terminal stand-in for a
// translucent overlay.
func (c *Canvas) Shade() {
	for py := 0; py < c.area.H; py++ {
		for px := 0; px < c.area.W; px++ {
			c.dst.SetBg(c.area.X+px, c.area.Y+py, ColorShade)
		}
	}
}

func (c *Canvas) paint(px, py int, r rune, fg Color) {
	sx, sy := c.area.X+px, c.area.Y+py
	cell := c.dst.GetCell(sx, sy)
	cell.Rune = r
	cell.Fg = fg
	c.dst.SetCell(sx, sy, cell)
}
