package generator

import (
	"context"
	"testing"
	"time"

	"github.com/streamhaven/dataforge/internal/clock"
	"github.com/streamhaven/dataforge/internal/config"
	customerdomain "github.com/streamhaven/dataforge/internal/customer/domain"
	plandomain "github.com/streamhaven/dataforge/internal/plan/domain"
	"github.com/streamhaven/dataforge/internal/randsrc"
	"github.com/streamhaven/dataforge/internal/subscription/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var anchor = time.Date(2026, 3, 18, 15, 0, 0, 0, time.UTC)

func testConfig() config.Config {
	return config.Config{
		Seed: 42,
		Volumes: config.VolumeConfig{
			Subscriptions: 2000,
		},
		Generation: config.GenerationConfig{
			SubscriptionLookbackDays: 548,
			EndDateProbability:       0.4,
			AutoRenewProbability:     0.7,
		},
	}
}

func newGenerator(cfg config.Config) *Generator {
	return New(Params{
		Cfg: cfg,
		Log: zap.NewNop(),
		Src: randsrc.New(cfg.Seed),
		Clk: clock.NewFakeClock(anchor),
	})
}

func testCustomers(n int) []customerdomain.Customer {
	customers := make([]customerdomain.Customer, 0, n)
	for i := 1; i <= n; i++ {
		// Spread signups from 10 to 700 days before the anchor.
		daysBack := 10 + (i*690)/n
		customers = append(customers, customerdomain.Customer{
			ID:         int64(i),
			SignupDate: anchor.AddDate(0, 0, -daysBack).Truncate(24 * time.Hour),
		})
	}
	return customers
}

func TestGenerate(t *testing.T) {
	customers := testCustomers(50)
	subs, err := newGenerator(testConfig()).Generate(context.Background(), customers, plandomain.Catalog())
	require.NoError(t, err)
	require.Len(t, subs, 2000)

	signups := make(map[int64]time.Time, len(customers))
	for _, c := range customers {
		signups[c.ID] = c.SignupDate
	}
	windowStart := anchor.AddDate(0, 0, -548).Truncate(24 * time.Hour)

	for i, sub := range subs {
		assert.Equal(t, int64(i+1), sub.ID)

		signup, ok := signups[sub.CustomerID]
		require.True(t, ok, "unknown customer %d", sub.CustomerID)
		assert.True(t, sub.PlanID >= 1 && sub.PlanID <= 3, "unknown plan %d", sub.PlanID)

		assert.False(t, sub.StartDate.Before(signup), "start before signup")
		assert.False(t, sub.StartDate.Before(windowStart), "start before the window")
		assert.False(t, sub.StartDate.After(anchor), "start past the anchor")

		if sub.EndDate != nil {
			assert.False(t, sub.EndDate.Before(sub.StartDate.AddDate(0, 0, 30)), "term shorter than 30 days")
			assert.False(t, sub.EndDate.After(anchor), "open terms must carry a nil end")
		}
	}
}

func TestGeneratePlanMix(t *testing.T) {
	subs, err := newGenerator(testConfig()).Generate(context.Background(), testCustomers(50), plandomain.Catalog())
	require.NoError(t, err)

	counts := map[int64]int{}
	for _, sub := range subs {
		counts[sub.PlanID]++
	}
	total := float64(len(subs))
	for planID, weight := range domain.PlanWeights {
		assert.InDelta(t, weight, float64(counts[planID])/total, 0.05, "plan %d share", planID)
	}
}

func TestGenerateAutoRenewShare(t *testing.T) {
	subs, err := newGenerator(testConfig()).Generate(context.Background(), testCustomers(50), plandomain.Catalog())
	require.NoError(t, err)

	renewing := 0
	for _, sub := range subs {
		if sub.AutoRenew {
			renewing++
		}
	}
	assert.InDelta(t, 0.7, float64(renewing)/float64(len(subs)), 0.05)
}

func TestGenerateIsDeterministic(t *testing.T) {
	cfg := testConfig()
	customers := testCustomers(50)

	first, err := newGenerator(cfg).Generate(context.Background(), customers, plandomain.Catalog())
	require.NoError(t, err)
	second, err := newGenerator(cfg).Generate(context.Background(), customers, plandomain.Catalog())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerateRequiresUpstream(t *testing.T) {
	g := newGenerator(testConfig())

	_, err := g.Generate(context.Background(), nil, plandomain.Catalog())
	assert.ErrorIs(t, err, domain.ErrMissingCustomers)

	_, err = g.Generate(context.Background(), testCustomers(5), nil)
	assert.ErrorIs(t, err, domain.ErrMissingPlans)
}
