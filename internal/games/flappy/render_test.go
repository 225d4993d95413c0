package flappy

import (
	"strings"
	"testing"

	"github.com/vovakirdan/ozembnic-arcade/internal/config"
	"github.com/vovakirdan/ozembnic-arcade/internal/core"
)

// drawSession renders s into a 40x30 screen. A 400x600 playfield at two
// rows per column-unit fits in 40 columns and 30 rows exactly.
func drawSession(r Renderer, s *Session) *core.Screen {
	screen := core.NewScreen(40, 30)
	w, h := s.Size()
	canvas := core.NewCanvas(screen, core.NewRect(0, 0, 40, 30), w, h)
	r.Draw(canvas, s)
	return screen
}

func TestRenderWaitingOverlay(t *testing.T) {
	s := NewSession(config.Default(), WithSeed(1))
	out := drawSession(Renderer{}, s).String()

	for _, want := range []string{"Click or Press SPACE", "to Start!"} {
		if !strings.Contains(out, want) {
			t.Errorf("waiting frame missing %q", want)
		}
	}
}

func TestRenderGameOverOverlay(t *testing.T) {
	s := NewSession(config.Default(), WithSeed(1))
	s.Start()
	for s.Tick() {
	}
	out := drawSession(Renderer{}, s).String()

	for _, want := range []string{"Game Over!", "Score: 0", "Points Earned: 0", "Press R to play again"} {
		if !strings.Contains(out, want) {
			t.Errorf("game over frame missing %q", want)
		}
	}
}

func TestRenderPlayingFrame(t *testing.T) {
	s := NewSession(config.Default(), WithSeed(1))
	s.Start()
	for i := 0; i < 60; i++ {
		s.Tick()
	}
	screen := drawSession(Renderer{}, s)

	if !strings.ContainsRune(screen.String(), BirdChar) {
		t.Error("fallback circle not drawn")
	}
	if !strings.ContainsRune(screen.String(), PipeChar) {
		t.Error("pipe not drawn")
	}
	if strings.Contains(screen.String(), "to Start!") {
		t.Error("waiting overlay drawn while playing")
	}
	if c := screen.GetCell(0, 0); c.Bg != core.ColorSky {
		t.Errorf("sky bg = %v, want %v", c.Bg, core.ColorSky)
	}
	if c := screen.GetCell(0, 29); c.Rune != GroundChar || c.Bg != core.ColorSaddle {
		t.Errorf("ground cell = %+v, want ground strip", c)
	}
}

func TestRenderSprite(t *testing.T) {
	s := NewSession(config.Default(), WithSeed(1))
	s.Start()
	screen := drawSession(Renderer{Sprite: core.ParseSprite("@@\n@@\n")}, s)

	if !strings.ContainsRune(screen.String(), '@') {
		t.Error("sprite not drawn")
	}
	if strings.ContainsRune(screen.String(), BirdChar) {
		t.Error("fallback circle drawn despite sprite")
	}
}

func TestRenderIsReadOnly(t *testing.T) {
	s := NewSession(config.Default(), WithSeed(1))
	s.Start()
	s.Tick()
	before := s.Bird()
	pipes := len(s.Pipes())

	drawSession(Renderer{}, s)

	if s.Bird() != before || len(s.Pipes()) != pipes || s.Result().Frames != 1 {
		t.Error("Draw mutated the session")
	}
}
