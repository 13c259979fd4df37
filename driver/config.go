package driver

import (
	"log/slog"

	"tetrion/tetrion"
)

// Config parameterizes a Driver: the underlying Tetrion's Config plus
// the timed layer's tunables. The defaults match the official
// guideline's recommended feel.
type Config struct {
	tetrion.Config

	MsPerGravityDrop  int64
	MsPerSoftDropStep int64
	MsPerAutoshift    int64
	AutoshiftDelayMs  int64
	LockDelayMs       int64
}

// DefaultConfig returns the guideline-recommended timings layered over
// tetrion.DefaultConfig.
func DefaultConfig() Config {
	return Config{
		Config:            tetrion.DefaultConfig(),
		MsPerGravityDrop:  1000,
		MsPerSoftDropStep: 20,
		MsPerAutoshift:    25,
		AutoshiftDelayMs:  133,
		LockDelayMs:       500,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MsPerGravityDrop == 0 {
		c.MsPerGravityDrop = d.MsPerGravityDrop
	}
	if c.MsPerSoftDropStep == 0 {
		c.MsPerSoftDropStep = d.MsPerSoftDropStep
	}
	if c.MsPerAutoshift == 0 {
		c.MsPerAutoshift = d.MsPerAutoshift
	}
	if c.AutoshiftDelayMs == 0 {
		c.AutoshiftDelayMs = d.AutoshiftDelayMs
	}
	if c.LockDelayMs == 0 {
		c.LockDelayMs = d.LockDelayMs
	}
	if c.Config.Logger == nil {
		c.Config.Logger = slog.Default()
	}
	return c
}
