package flappy

import (
	"fmt"

	"github.com/vovakirdan/ozembnic-arcade/internal/core"
)

// Visual characters for rendering
const (
	PipeChar   = '█'
	GroundChar = '▀'
	BirdChar   = '●'
)

// Renderer draws a Session onto a Canvas. It never mutates the session.
type Renderer struct {
	// Sprite is the bird image. Nil draws a filled circle instead.
	Sprite *core.Sprite
}

// Draw paints one frame: sky, ground, pipes, bird and the overlay for the
// current state.
func (r Renderer) Draw(dst *core.Canvas, s *Session) {
	w, h := s.Size()

	dst.FillRect(0, 0, w, h, core.Cell{Rune: ' ', Bg: core.ColorSky})
	if g := s.Ground(); g > 0 {
		dst.FillRect(0, h-g, w, g, core.Cell{Rune: GroundChar, Fg: core.ColorForest, Bg: core.ColorSaddle})
	}

	pipe := core.Cell{Rune: PipeChar, Fg: core.ColorForest, Bg: core.ColorSky}
	for _, p := range s.Pipes() {
		dst.FillRect(p.X, 0, p.Width, p.TopHeight, pipe)
		dst.FillRect(p.X, p.BottomY, p.Width, p.BottomHeight, pipe)
	}

	b := s.Bird()
	if r.Sprite != nil {
		dst.DrawSprite(b.X, b.Y, b.Width, b.Height, r.Sprite, core.ColorGold)
	} else {
		dst.FillCircle(b.X+b.Width/2, b.Y+b.Height/2, b.Width/2, BirdChar, core.ColorGold)
	}

	switch s.State() {
	case Waiting:
		dst.Shade()
		dst.DrawText(w/2, h/2-20, "Click or Press SPACE", core.ColorBrightWhite)
		dst.DrawText(w/2, h/2+20, "to Start!", core.ColorBrightWhite)
	case Playing:
		dst.DrawText(w/2, 50, fmt.Sprintf("%d", s.Score()), core.ColorBrightWhite)
	case GameOver:
		dst.Shade()
		dst.DrawText(w/2, h/2-60, "Game Over!", core.ColorBrightWhite)
		dst.DrawText(w/2, h/2-20, fmt.Sprintf("Score: %d", s.Score()), core.ColorBrightWhite)
		dst.DrawText(w/2, h/2+20, fmt.Sprintf("Points Earned: %d", s.Earned()), core.ColorGold)
		dst.DrawText(w/2, h/2+60, "Press R to play again", core.ColorBrightWhite)
	}
}
