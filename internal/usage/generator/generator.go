package generator

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/streamhaven/dataforge/internal/clock"
	"github.com/streamhaven/dataforge/internal/config"
	contentdomain "github.com/streamhaven/dataforge/internal/content/domain"
	customerdomain "github.com/streamhaven/dataforge/internal/customer/domain"
	plandomain "github.com/streamhaven/dataforge/internal/plan/domain"
	"github.com/streamhaven/dataforge/internal/randsrc"
	subscriptiondomain "github.com/streamhaven/dataforge/internal/subscription/domain"
	"github.com/streamhaven/dataforge/internal/usage/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const stageName = "generate.usage_logs"

type Params struct {
	fx.In

	Cfg config.Config
	Log *zap.Logger
	Src *randsrc.Source
	Clk clock.Clock
}

// Generator produces usage logs under the behavioral rules: eligibility via a
// date-overlapping subscription, weekend and recency density boosts,
// plan-tier activity and completion skew, and the catalog's genre mix.
type Generator struct {
	cfg config.Config
	log *zap.Logger
	src *randsrc.Source
	clk clock.Clock
}

func New(p Params) *Generator {
	return &Generator{
		cfg: p.Cfg,
		log: p.Log.Named("usage.generator"),
		src: p.Src,
		clk: p.Clk,
	}
}

func (g *Generator) Generate(
	ctx context.Context,
	customers []customerdomain.Customer,
	content []contentdomain.Content,
	subs []subscriptiondomain.Subscription,
	plans []plandomain.Plan,
) ([]domain.UsageLog, error) {
	_ = ctx
	if len(content) == 0 {
		return nil, domain.ErrMissingContent
	}
	if len(subs) == 0 {
		return nil, domain.ErrMissingSubscriptions
	}

	r := g.src.Stream(stageName)
	now := g.clk.Now()
	lookback := g.cfg.Generation.UsageLookbackDays
	windowStart := now.AddDate(0, 0, -lookback)

	eligible := buildEligibility(customers, subs, windowStart, now)
	if len(eligible) == 0 {
		return nil, domain.ErrNoEligibleCustomers
	}

	planNames := make(map[int64]string, len(plans))
	for _, p := range plans {
		planNames[p.ID] = p.Name
	}

	customerPicks := make([]randsrc.Weighted[eligibleCustomer], 0, len(eligible))
	for _, e := range eligible {
		weight, ok := domain.ActivityWeights[planNames[e.planID]]
		if !ok {
			weight = 1.0
		}
		customerPicks = append(customerPicks, randsrc.Weighted[eligibleCustomer]{Value: e, Weight: weight})
	}

	byGenre := groupContentByGenre(content)
	genrePicks := make([]randsrc.Weighted[string], 0, len(contentdomain.Genres))
	for _, genre := range contentdomain.Genres {
		if len(byGenre[genre]) == 0 {
			continue
		}
		genrePicks = append(genrePicks, randsrc.Weighted[string]{Value: genre, Weight: contentdomain.GenreWeights[genre]})
	}

	dayPicks := g.dayQuotas(now, lookback)

	logs := make([]domain.UsageLog, 0, g.cfg.Volumes.UsageLogs)
	weekendCount := 0
	for id := int64(1); id <= int64(g.cfg.Volumes.UsageLogs); id++ {
		cust := randsrc.Pick(r, customerPicks)
		plan := planNames[cust.planID]

		genre := randsrc.Pick(r, genrePicks)
		items := byGenre[genre]
		item := items[r.Intn(len(items))]

		daysBack := randsrc.Pick(r, dayPicks)
		ts := timestampFor(r, now, daysBack)
		weekend := isWeekend(ts)
		if weekend {
			weekendCount++
		}

		watched, completion := g.session(r, plan, item.DurationMinutes, weekend)

		logs = append(logs, domain.UsageLog{
			ID:              id,
			CustomerID:      cust.customerID,
			ContentID:       item.ID,
			Timestamp:       ts,
			DurationWatched: watched,
			CompletionRate:  completion,
		})
	}

	g.log.Info("usage logs generated",
		zap.Int("count", len(logs)),
		zap.Int("eligible_customers", len(eligible)),
		zap.Int("weekend_sessions", weekendCount),
	)
	return logs, nil
}

// dayQuotas builds the relative density per day bucket: a base quota of 1,
// boosted on weekends and again inside the recency window. Quotas shape the
// draw distribution, they are not hard per-day caps.
func (g *Generator) dayQuotas(now time.Time, lookback int) []randsrc.Weighted[int] {
	quotas := make([]randsrc.Weighted[int], 0, lookback)
	for d := 0; d < lookback; d++ {
		weight := 1.0
		if isWeekend(now.AddDate(0, 0, -d)) {
			weight *= g.cfg.Generation.WeekendBoost
		}
		if d < g.cfg.Generation.RecencyBoostDays {
			weight *= g.cfg.Generation.RecencyBoost
		}
		quotas = append(quotas, randsrc.Weighted[int]{Value: d, Weight: weight})
	}
	return quotas
}

// session draws the watched minutes and completion rate for one row. The
// plan-tier bounds skew higher tiers toward full completion; weekends stretch
// the watched fraction by 10%, capped at the content duration.
func (g *Generator) session(r *rand.Rand, plan string, durationMinutes int, weekend bool) (int, float64) {
	bounds, ok := domain.CompletionBounds[plan]
	if !ok {
		bounds = domain.CompletionBounds["Basic"]
	}
	fraction := bounds[0] + r.Float64()*(bounds[1]-bounds[0])
	if weekend {
		fraction = math.Min(1.0, fraction*1.1)
	}

	watched := int(math.Round(float64(durationMinutes) * fraction))
	if watched < 1 {
		watched = 1
	}
	if watched > durationMinutes {
		watched = durationMinutes
	}

	ratio := float64(watched) / float64(durationMinutes)
	noise := ratio * (r.Float64()*0.2 - 0.1)
	completion := math.Max(0.05, math.Min(1.0, ratio+noise))
	return watched, math.Round(completion*100) / 100
}

func timestampFor(r *rand.Rand, now time.Time, daysBack int) time.Time {
	day := now.AddDate(0, 0, -daysBack)
	ts := time.Date(day.Year(), day.Month(), day.Day(), 6+r.Intn(18), r.Intn(60), r.Intn(60), 0, time.UTC)
	if ts.After(now) {
		ts = now
	}
	return ts
}

func isWeekend(t time.Time) bool {
	wd := t.UTC().Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func groupContentByGenre(content []contentdomain.Content) map[string][]contentdomain.Content {
	grouped := make(map[string][]contentdomain.Content, len(contentdomain.Genres))
	for _, item := range content {
		grouped[item.Genre] = append(grouped[item.Genre], item)
	}
	return grouped
}
