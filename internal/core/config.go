package core

import "time"

// RuntimeConfig contains per-run settings passed from the platform layer.
// Every run builds its own RuntimeConfig; nothing in it is shared across runs.
type RuntimeConfig struct {
	ScreenW  int   // Terminal width in characters (terminal playback only)
	ScreenH  int   // Terminal height in characters (terminal playback only)
	TickRate int   // Frames per second
	Seed     int64 // RNG seed for deterministic runs
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 25,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// ResolveSeed returns the configured seed, or a time-based one when it is 0.
func (c RuntimeConfig) ResolveSeed() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}

// FrameInterval returns the wall-clock duration of one frame.
func (c RuntimeConfig) FrameInterval() time.Duration {
	rate := c.TickRate
	if rate <= 0 {
		rate = 25
	}
	return time.Second / time.Duration(rate)
}
