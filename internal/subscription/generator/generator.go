package generator

import (
	"context"
	"time"

	"github.com/streamhaven/dataforge/internal/clock"
	"github.com/streamhaven/dataforge/internal/config"
	customerdomain "github.com/streamhaven/dataforge/internal/customer/domain"
	plandomain "github.com/streamhaven/dataforge/internal/plan/domain"
	"github.com/streamhaven/dataforge/internal/randsrc"
	"github.com/streamhaven/dataforge/internal/subscription/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const stageName = "generate.subscriptions"

type Params struct {
	fx.In

	Cfg config.Config
	Log *zap.Logger
	Src *randsrc.Source
	Clk clock.Clock
}

// Generator produces subscriptions against already-materialized customers and
// plans. Customers repeat (plan changes); every foreign key resolves by
// construction.
type Generator struct {
	cfg config.Config
	log *zap.Logger
	src *randsrc.Source
	clk clock.Clock
}

func New(p Params) *Generator {
	return &Generator{
		cfg: p.Cfg,
		log: p.Log.Named("subscription.generator"),
		src: p.Src,
		clk: p.Clk,
	}
}

func (g *Generator) Generate(ctx context.Context, customers []customerdomain.Customer, plans []plandomain.Plan) ([]domain.Subscription, error) {
	_ = ctx
	if len(customers) == 0 {
		return nil, domain.ErrMissingCustomers
	}
	if len(plans) == 0 {
		return nil, domain.ErrMissingPlans
	}

	r := g.src.Stream(stageName)
	now := g.clk.Now()
	windowStart := now.AddDate(0, 0, -g.cfg.Generation.SubscriptionLookbackDays)

	planPicks := make([]randsrc.Weighted[int64], 0, len(plans))
	for _, p := range plans {
		planPicks = append(planPicks, randsrc.Weighted[int64]{Value: p.ID, Weight: domain.PlanWeights[p.ID]})
	}

	subs := make([]domain.Subscription, 0, g.cfg.Volumes.Subscriptions)
	active := 0
	for id := int64(1); id <= int64(g.cfg.Volumes.Subscriptions); id++ {
		cust := customers[r.Intn(len(customers))]

		earliest := cust.SignupDate
		if earliest.Before(windowStart) {
			earliest = windowStart
		}
		start := randsrc.DateBetween(r, earliest, now)

		var end *time.Time
		if r.Float64() < g.cfg.Generation.EndDateProbability {
			candidate := start.AddDate(0, 0, 30+r.Intn(336))
			// An end past the anchor means the subscription is still running.
			if !candidate.After(now) {
				end = &candidate
			}
		}
		if end == nil {
			active++
		}

		subs = append(subs, domain.Subscription{
			ID:         id,
			CustomerID: cust.ID,
			PlanID:     randsrc.Pick(r, planPicks),
			StartDate:  start,
			EndDate:    end,
			AutoRenew:  r.Float64() < g.cfg.Generation.AutoRenewProbability,
		})
	}

	g.log.Info("subscriptions generated",
		zap.Int("count", len(subs)),
		zap.Int("active", active),
	)
	return subs, nil
}
