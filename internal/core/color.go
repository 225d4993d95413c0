package core

// Color is a cell foreground or background color. The platform maps each
// value to a terminal color; ColorDefault keeps the terminal's own.
type Color uint8

// Colors used by the game scene and its overlays.
const (
	ColorDefault     Color = iota
	ColorWhite             // plain text
	ColorBrightWhite       // overlay and score text
	ColorSky               // #87CEEB background
	ColorForest            // #228B22 pipes and grass
	ColorSaddle            // #8B4513 ground
	ColorGold              // #FFD700 bird and points
	ColorShade             // dimmed overlay background
)
