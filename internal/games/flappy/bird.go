package flappy

import "github.com/vovakirdan/ozembnic-arcade/internal/config"

// Bird is the player entity. X never changes after construction; the world
// scrolls past it instead.
type Bird struct {
	X        float64
	Y        float64 // Top of the hitbox
	Velocity float64 // Positive is downward
	Width    float64
	Height   float64

	Gravity     float64 // Added to Velocity every frame
	JumpImpulse float64 // Velocity after a jump, negative
}

// NewBird creates a bird from configuration, vertically centered.
func NewBird(cfg config.BirdConfig, playfieldH float64) Bird {
	b := Bird{
		X:           cfg.X,
		Width:       cfg.Width,
		Height:      cfg.Height,
		Gravity:     cfg.Gravity,
		JumpImpulse: cfg.JumpImpulse,
	}
	b.Center(playfieldH)
	return b
}

// Integrate advances the bird one fixed frame.
func (b *Bird) Integrate() {
	b.Velocity += b.Gravity
	b.Y += b.Velocity
}

// Jump replaces the current velocity with the jump impulse.
func (b *Bird) Jump() {
	b.Velocity = b.JumpImpulse
}

// ClampCeiling stops the bird at the top edge.
func (b *Bird) ClampCeiling() {
	if b.Y < 0 {
		b.Y = 0
		b.Velocity = 0
	}
}

// HitsFloor reports whether the bird's bottom edge is below the playfield.
func (b Bird) HitsFloor(playfieldH float64) bool {
	return b.Y+b.Height > playfieldH
}

// Center puts the bird at half the playfield height, at rest.
func (b *Bird) Center(playfieldH float64) {
	b.Y = playfieldH / 2
	b.Velocity = 0
}
