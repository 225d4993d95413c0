package config

import _ "embed"

//go:embed defaults/arcade.yaml
var defaultArcadeYAML []byte

// Default returns the built-in configuration. It mirrors defaults/arcade.yaml
// and is used when the embedded file cannot be parsed.
func Default() Config {
	return Config{
		Playfield: PlayfieldConfig{
			Width:            400,
			Height:           600,
			Ground:           20,
			MaxWidth:         400,
			MobileBreakpoint: 768,
			Margin:           40,
			CellPx:           8,
		},
		Bird: BirdConfig{
			X:           50,
			Width:       60,
			Height:      60,
			Gravity:     0.1,
			JumpImpulse: -5,
		},
		Pipes: PipeConfig{
			Width:          50,
			Gap:            220,
			MinHeight:      60,
			Speed:          1.5,
			SpawnThreshold: 350,
		},
		Input: InputConfig{
			DebounceMS: 80,
			ResizeMS:   250,
		},
		Rewards: []RewardConfig{
			{ID: "sticker", Name: "Ozembnic Sticker Pack", Cost: 25},
			{ID: "mug", Name: "Ozembnic Mug", Cost: 100},
			{ID: "tshirt", Name: "Ozembnic T-Shirt", Cost: 250},
			{ID: "consult", Name: "Free Consultation", Cost: 1000},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultArcadeYAML
}
