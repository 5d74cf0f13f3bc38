// Package randsrc provides the seeded random source shared by all generation
// stages. Every stage draws from a named child stream derived from the master
// seed, so two runs with the same seed produce identical draws even when the
// stage execution order changes.
package randsrc

import (
	"hash/fnv"
	"math/rand"
	"time"
)

// Source derives deterministic child streams from a single master seed.
type Source struct {
	seed int64
}

func New(seed int64) *Source {
	return &Source{seed: seed}
}

// Seed returns the master seed.
func (s *Source) Seed() int64 {
	return s.seed
}

// Stream returns the deterministic child stream for a named stage. Calling
// Stream twice with the same name returns independent *rand.Rand values that
// replay the same sequence.
func (s *Source) Stream(stage string) *rand.Rand {
	return rand.New(rand.NewSource(s.StageSeed(stage)))
}

// StageSeed returns the derived seed for a named stage.
func (s *Source) StageSeed(stage string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(stage))
	return s.seed ^ int64(h.Sum64())
}

// DateBetween draws a uniform calendar day in [start, end] at UTC midnight.
func DateBetween(r *rand.Rand, start, end time.Time) time.Time {
	start = truncateDay(start)
	end = truncateDay(end)
	if !end.After(start) {
		return start
	}
	days := int(end.Sub(start).Hours()/24) + 1
	return start.AddDate(0, 0, r.Intn(days))
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
