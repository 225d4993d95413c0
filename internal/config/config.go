// Package config provides YAML-based configuration loading for the arcade:
// playfield geometry, bird and pipe tuning, input timing and the reward
// catalog.
package config

import (
	"errors"
	"fmt"
)

// Config is the root of arcade.yaml.
type Config struct {
	Playfield PlayfieldConfig `yaml:"playfield"`
	Bird      BirdConfig      `yaml:"bird"`
	Pipes     PipeConfig      `yaml:"pipes"`
	Input     InputConfig     `yaml:"input"`
	Rewards   []RewardConfig  `yaml:"rewards"`
}

// PlayfieldConfig defines the simulation surface and how it follows the viewport.
type PlayfieldConfig struct {
	Width            float64 `yaml:"width"`
	Height           float64 `yaml:"height"`
	Ground           float64 `yaml:"ground"`            // Height of the ground strip
	MaxWidth         float64 `yaml:"max_width"`         // Width cap on wide viewports
	MobileBreakpoint float64 `yaml:"mobile_breakpoint"` // Viewports at or below this are narrow
	Margin           float64 `yaml:"margin"`            // Horizontal margin on narrow viewports
	CellPx           float64 `yaml:"cell_px"`           // Viewport pixels per terminal column
}

// BirdConfig defines the player entity.
type BirdConfig struct {
	X           float64 `yaml:"x"`
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	Gravity     float64 `yaml:"gravity"`
	JumpImpulse float64 `yaml:"jump_impulse"`
	Sprite      string  `yaml:"sprite"` // Optional text-art file
}

// PipeConfig defines obstacle generation and movement.
type PipeConfig struct {
	Width          float64 `yaml:"width"`
	Gap            float64 `yaml:"gap"`
	MinHeight      float64 `yaml:"min_height"`
	Speed          float64 `yaml:"speed"`
	SpawnThreshold float64 `yaml:"spawn_threshold"`
}

// InputConfig defines input timing.
type InputConfig struct {
	DebounceMS int `yaml:"debounce_ms"` // Repeated events inside this window fire once
	ResizeMS   int `yaml:"resize_ms"`   // Quiet period before a resize is applied
}

// RewardConfig is one redeemable item.
type RewardConfig struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Cost int    `yaml:"cost"`
}

// Fit computes the playfield size for a viewport width in pixels, keeping a
// 2:3 aspect ratio. Narrow viewports shrink the width to leave a margin,
// wide ones are capped at MaxWidth. The height never drops below minHeight.
func (p PlayfieldConfig) Fit(viewport, minHeight float64) (width, height float64) {
	width = p.MaxWidth
	if viewport <= p.MobileBreakpoint {
		width = min(p.MaxWidth, viewport-p.Margin)
	}
	height = width * 3 / 2
	if height < minHeight {
		height = minHeight
		width = minHeight * 2 / 3
	}
	return width, height
}

// MinPlayfieldHeight is the shortest playfield that fits a full pipe gap
// with MinHeight of pipe above and below it.
func (c Config) MinPlayfieldHeight() float64 {
	return c.Pipes.Gap + 2*c.Pipes.MinHeight
}

// Fit sizes the playfield for a viewport width in pixels so that every pipe
// gap stays inside it.
func (c Config) Fit(viewport float64) (width, height float64) {
	return c.Playfield.Fit(viewport, max(c.MinPlayfieldHeight(), 1))
}

// Validate reports the first setting that would make the game unplayable.
func (c Config) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}

	positive("playfield.width", c.Playfield.Width)
	positive("playfield.height", c.Playfield.Height)
	positive("playfield.max_width", c.Playfield.MaxWidth)
	positive("playfield.cell_px", c.Playfield.CellPx)
	positive("bird.width", c.Bird.Width)
	positive("bird.height", c.Bird.Height)
	positive("pipes.width", c.Pipes.Width)
	positive("pipes.gap", c.Pipes.Gap)
	positive("pipes.speed", c.Pipes.Speed)
	positive("pipes.spawn_threshold", c.Pipes.SpawnThreshold)

	if c.Bird.JumpImpulse >= 0 {
		errs = append(errs, fmt.Errorf("bird.jump_impulse must be negative (upward), got %v", c.Bird.JumpImpulse))
	}
	if c.Pipes.MinHeight < 0 {
		errs = append(errs, fmt.Errorf("pipes.min_height must not be negative, got %v", c.Pipes.MinHeight))
	}
	if h := c.MinPlayfieldHeight(); c.Playfield.Height < h {
		errs = append(errs, fmt.Errorf("playfield.height %v is shorter than pipes.gap + 2*pipes.min_height (%v)", c.Playfield.Height, h))
	}
	if h := c.Playfield.MaxWidth * 3 / 2; h < c.MinPlayfieldHeight() {
		errs = append(errs, fmt.Errorf("playfield.max_width %v gives a height of %v, shorter than pipes.gap + 2*pipes.min_height (%v)",
			c.Playfield.MaxWidth, h, c.MinPlayfieldHeight()))
	}

	seen := make(map[string]bool, len(c.Rewards))
	for _, r := range c.Rewards {
		if r.ID == "" || r.Name == "" {
			errs = append(errs, fmt.Errorf("reward %q needs an id and a name", r.ID))
		}
		if r.Cost <= 0 {
			errs = append(errs, fmt.Errorf("reward %q cost must be positive, got %d", r.ID, r.Cost))
		}
		if seen[r.ID] {
			errs = append(errs, fmt.Errorf("reward %q is listed twice", r.ID))
		}
		seen[r.ID] = true
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
