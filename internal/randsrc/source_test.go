package randsrc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamReplaysSameSequence(t *testing.T) {
	a := New(42).Stream("generate.customers")
	b := New(42).Stream("generate.customers")

	for i := 0; i < 10; i++ {
		require.Equal(t, a.Int63(), b.Int63())
	}
}

func TestStreamsAreIndependentPerStage(t *testing.T) {
	src := New(42)
	a := src.Stream("generate.customers")
	b := src.Stream("generate.content")

	same := true
	for i := 0; i < 10; i++ {
		if a.Int63() != b.Int63() {
			same = false
			break
		}
	}
	assert.False(t, same, "different stages must not share a sequence")
}

func TestStageSeedVariesWithMasterSeed(t *testing.T) {
	assert.NotEqual(t, New(42).StageSeed("x"), New(43).StageSeed("x"))
}

func TestDateBetween(t *testing.T) {
	r := New(7).Stream("dates")
	start := time.Date(2026, 1, 1, 13, 30, 0, 0, time.UTC)
	end := time.Date(2026, 2, 1, 4, 0, 0, 0, time.UTC)

	for i := 0; i < 100; i++ {
		d := DateBetween(r, start, end)
		assert.False(t, d.Before(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
		assert.False(t, d.After(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)))
		assert.Equal(t, 0, d.Hour())
	}
}

func TestDateBetweenDegenerateWindow(t *testing.T) {
	r := New(7).Stream("dates")
	day := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), DateBetween(r, day, day))
}

func TestPickFollowsWeights(t *testing.T) {
	r := New(1).Stream("weights")
	items := []Weighted[string]{
		{Value: "heavy", Weight: 3},
		{Value: "light", Weight: 1},
	}

	counts := map[string]int{}
	for i := 0; i < 10000; i++ {
		counts[Pick(r, items)]++
	}

	ratio := float64(counts["heavy"]) / float64(counts["light"])
	assert.InDelta(t, 3.0, ratio, 0.3)
}

func TestPickSkipsNonPositiveWeights(t *testing.T) {
	r := New(1).Stream("weights")
	items := []Weighted[string]{
		{Value: "dead", Weight: 0},
		{Value: "live", Weight: 1},
	}

	for i := 0; i < 100; i++ {
		assert.Equal(t, "live", Pick(r, items))
	}
}

func TestPickEmptyReturnsZeroValue(t *testing.T) {
	r := New(1).Stream("weights")
	assert.Equal(t, "", Pick[string](r, nil))
}
