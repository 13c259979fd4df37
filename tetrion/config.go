package tetrion

import (
	"log/slog"

	"tetrion/playfield"
)

// Config parameterizes a new Tetrion. Zero-valued fields are filled in
// by DefaultConfig's values where a zero wouldn't make sense (Cols,
// Rows, PreviewSize); Seed's zero value is itself a valid seed, so
// callers that care about reproducibility should set it explicitly.
type Config struct {
	Cols                int
	Rows                int
	PreviewSize         int
	Seed                int64
	InitialGarbageRows  int
	GarbageHolePolicy   playfield.GarbageHolePolicy
	Logger              *slog.Logger
}

// DefaultConfig returns the guideline defaults: a 10x20 field, a
// five-piece preview queue, and random-per-row garbage holes.
func DefaultConfig() Config {
	return Config{
		Cols:              10,
		Rows:              20,
		PreviewSize:       5,
		GarbageHolePolicy: playfield.RandomPerRow{},
		Logger:            slog.Default(),
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Cols == 0 {
		c.Cols = d.Cols
	}
	if c.Rows == 0 {
		c.Rows = d.Rows
	}
	if c.PreviewSize == 0 {
		c.PreviewSize = d.PreviewSize
	}
	if c.GarbageHolePolicy == nil {
		c.GarbageHolePolicy = d.GarbageHolePolicy
	}
	if c.Logger == nil {
		c.Logger = d.Logger
	}
	return c
}
