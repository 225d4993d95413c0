package flappy

import (
	"math/rand"

	"github.com/vovakirdan/ozembnic-arcade/internal/config"
)

// Pipe is a pipe pair: a top segment from 0 to TopHeight and a bottom
// segment from BottomY to the playfield floor.
type Pipe struct {
	X            float64 // Left edge, decreasing over time
	Width        float64
	TopHeight    float64
	BottomY      float64 // TopHeight + gap
	BottomHeight float64 // Playfield height - BottomY
	Scored       bool    // Whether the bird has passed this pipe
}

// Right returns the trailing edge of the pipe.
func (p Pipe) Right() float64 {
	return p.X + p.Width
}

// PipeGenerator spawns pipes on a fixed cadence with a random gap position.
type PipeGenerator struct {
	cfg config.PipeConfig
	rng *rand.Rand
}

// NewPipeGenerator creates a generator drawing gap positions from rng.
func NewPipeGenerator(cfg config.PipeConfig, rng *rand.Rand) *PipeGenerator {
	return &PipeGenerator{cfg: cfg, rng: rng}
}

// TopRange returns the interval TopHeight is drawn from. On a playfield too
// short for the gap both ends are MinHeight.
func (g *PipeGenerator) TopRange(playfieldH float64) (lo, hi float64) {
	lo = g.cfg.MinHeight
	hi = playfieldH - g.cfg.Gap - g.cfg.MinHeight
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

// MaybeSpawn appends a pipe at the right edge when there are no pipes or the
// newest one has moved SpawnThreshold units into the playfield.
func (g *PipeGenerator) MaybeSpawn(pipes []Pipe, playfieldW, playfieldH float64) []Pipe {
	if len(pipes) > 0 && pipes[len(pipes)-1].X >= playfieldW-g.cfg.SpawnThreshold {
		return pipes
	}
	return append(pipes, g.spawn(playfieldW, playfieldH))
}

func (g *PipeGenerator) spawn(playfieldW, playfieldH float64) Pipe {
	lo, hi := g.TopRange(playfieldH)
	top := g.rng.Float64()*(hi-lo) + lo
	bottomY := top + g.cfg.Gap

	return Pipe{
		X:            playfieldW,
		Width:        g.cfg.Width,
		TopHeight:    top,
		BottomY:      bottomY,
		BottomHeight: playfieldH - bottomY,
	}
}

// Collides reports whether the bird overlaps the pipe horizontally while not
// fully inside the gap.
func Collides(b Bird, p Pipe) bool {
	return b.X < p.X+p.Width &&
		b.X+b.Width > p.X &&
		(b.Y < p.TopHeight || b.Y+b.Height > p.BottomY)
}
