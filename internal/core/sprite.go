package core

import (
	"fmt"
	"math"
	"os"
	"strings"
)

// Sprite is a small piece of text art that can be scaled onto a Canvas.
type Sprite struct {
	rows  [][]rune
	width int
}

// ParseSprite builds a sprite from newline separated rows. Short rows are
// padded with transparent spaces.
func ParseSprite(art string) *Sprite {
	lines := strings.Split(strings.TrimRight(art, "\n"), "\n")
	s := &Sprite{rows: make([][]rune, 0, len(lines))}
	for _, l := range lines {
		row := []rune(strings.TrimRight(l, "\r"))
		s.width = max(s.width, len(row))
		s.rows = append(s.rows, row)
	}
	return s
}

// LoadSprite reads text art from a file.
func LoadSprite(path string) (*Sprite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("core: cannot read sprite %s: %w", path, err)
	}
	s := ParseSprite(string(data))
	if s.Width() == 0 {
		return nil, fmt.Errorf("core: sprite %s is empty", path)
	}
	return s, nil
}

// Width returns the widest row length.
func (s *Sprite) Width() int {
	return s.width
}

// Height returns the number of rows.
func (s *Sprite) Height() int {
	return len(s.rows)
}

// Sample returns the rune at normalized coordinates u, v in [0, 1).
func (s *Sprite) Sample(u, v float64) rune {
	if u < 0 || v < 0 || u >= 1 || v >= 1 {
		return ' '
	}
	y := int(math.Floor(v * float64(s.Height())))
	x := int(math.Floor(u * float64(s.width)))
	if x >= len(s.rows[y]) {
		return ' '
	}
	return s.rows[y][x]
}
