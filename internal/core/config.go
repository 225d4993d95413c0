package core

// RuntimeConfig contains the terminal-facing settings passed to the platform.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frames per second (default 60)
	Seed     int64 // RNG seed for pipe gaps, 0 means time-based
}
