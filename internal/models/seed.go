package models

import (
	"fmt"
	"math/rand"
)

// MaxSeed bounds user-facing seeds, matching the seed spinner's range.
const MaxSeed = 999999

// SeedMode selects how per-iteration seeds are derived from a base seed
// during batch generation.
type SeedMode string

const (
	SeedFixed     SeedMode = "fixed"
	SeedIncrement SeedMode = "increment"
	SeedDecrement SeedMode = "decrement"
	SeedRandomize SeedMode = "randomize"
)

// ParseSeedMode converts a user-supplied string into a SeedMode.
func ParseSeedMode(s string) (SeedMode, error) {
	switch SeedMode(s) {
	case SeedFixed, SeedIncrement, SeedDecrement, SeedRandomize:
		return SeedMode(s), nil
	case "":
		return SeedFixed, nil
	}
	return "", fmt.Errorf("unknown seed mode: %q", s)
}

// SeedForIteration computes the seed for iteration i of a batch. Decrement
// clamps at zero. Randomize derives its draw from a source seeded with
// base+i, so the whole batch is reproducible from the base seed alone.
func (m SeedMode) SeedForIteration(base int64, i int) int64 {
	switch m {
	case SeedIncrement:
		return base + int64(i)
	case SeedDecrement:
		s := base - int64(i)
		if s < 0 {
			return 0
		}
		return s
	case SeedRandomize:
		r := rand.New(rand.NewSource(base + int64(i)))
		return r.Int63n(MaxSeed + 1)
	default: // SeedFixed
		return base
	}
}

// RandomSeed draws a fresh seed for the "roll the dice" control.
func RandomSeed() int64 {
	return rand.Int63n(MaxSeed + 1)
}
