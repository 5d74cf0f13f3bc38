// Package pipeline orchestrates the one-shot run: generate the five
// tables, gate them through validation, load the survivors, and export the
// aggregation reports.
package pipeline

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/streamhaven/dataforge/internal/analytics"
	"github.com/streamhaven/dataforge/internal/config"
	contentdomain "github.com/streamhaven/dataforge/internal/content/domain"
	contentgen "github.com/streamhaven/dataforge/internal/content/generator"
	customerdomain "github.com/streamhaven/dataforge/internal/customer/domain"
	customergen "github.com/streamhaven/dataforge/internal/customer/generator"
	"github.com/streamhaven/dataforge/internal/dataset"
	"github.com/streamhaven/dataforge/internal/metrics"
	plandomain "github.com/streamhaven/dataforge/internal/plan/domain"
	plangen "github.com/streamhaven/dataforge/internal/plan/generator"
	"github.com/streamhaven/dataforge/internal/store"
	subscriptiondomain "github.com/streamhaven/dataforge/internal/subscription/domain"
	subscriptiongen "github.com/streamhaven/dataforge/internal/subscription/generator"
	usagedomain "github.com/streamhaven/dataforge/internal/usage/domain"
	usagegen "github.com/streamhaven/dataforge/internal/usage/generator"
	"github.com/streamhaven/dataforge/internal/validation/engine"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Cfg           config.Config
	Log           *zap.Logger
	Node          *snowflake.Node
	Customers     *customergen.Generator
	Plans         *plangen.Generator
	Content       *contentgen.Generator
	Subscriptions *subscriptiongen.Generator
	Usage         *usagegen.Generator
	Engine        *engine.Engine
	Store         *store.Store
	Analytics     *analytics.Service
	Metrics       *metrics.Metrics
}

type Runner struct {
	cfg           config.Config
	log           *zap.Logger
	node          *snowflake.Node
	customers     *customergen.Generator
	plans         *plangen.Generator
	content       *contentgen.Generator
	subscriptions *subscriptiongen.Generator
	usage         *usagegen.Generator
	engine        *engine.Engine
	store         *store.Store
	analytics     *analytics.Service
	metrics       *metrics.Metrics
}

func New(p Params) *Runner {
	return &Runner{
		cfg:           p.Cfg,
		log:           p.Log.Named("pipeline"),
		node:          p.Node,
		customers:     p.Customers,
		plans:         p.Plans,
		content:       p.Content,
		subscriptions: p.Subscriptions,
		usage:         p.Usage,
		engine:        p.Engine,
		store:         p.Store,
		analytics:     p.Analytics,
		metrics:       p.Metrics,
	}
}

// Run executes one full pipeline pass. A fatal validation finding or a
// rejection rate over the tolerance aborts before anything touches the
// database.
func (r *Runner) Run(ctx context.Context) error {
	runID := r.node.Generate()
	log := r.log.With(zap.String("run_id", runID.String()), zap.Int64("seed", r.cfg.Seed))
	log.Info("pipeline started")

	bundle, err := r.generate(ctx, log)
	if err != nil {
		r.finish(log, "fail")
		return err
	}

	rep, err := r.engine.Validate(ctx, bundle)
	if rep != nil {
		for _, rej := range rep.Rejections {
			r.metrics.RowsRejected.WithLabelValues(rej.Table, string(rej.Rule)).Inc()
		}
	}
	if err != nil {
		r.finish(log, "fail")
		return err
	}

	counts, err := r.store.Load(ctx, bundle, rep)
	if err != nil {
		r.finish(log, "fail")
		return err
	}
	for table, count := range counts {
		r.metrics.RowsLoaded.WithLabelValues(table).Add(float64(count))
	}

	if err := r.analytics.Export(ctx); err != nil {
		r.finish(log, "fail")
		return err
	}

	r.finish(log, "pass")
	return nil
}

func (r *Runner) generate(ctx context.Context, log *zap.Logger) (*dataset.Bundle, error) {
	customers, err := r.customers.Generate(ctx)
	if err != nil {
		return nil, err
	}
	plans, err := r.plans.Generate(ctx)
	if err != nil {
		return nil, err
	}
	content, err := r.content.Generate(ctx)
	if err != nil {
		return nil, err
	}
	subs, err := r.subscriptions.Generate(ctx, customers, plans)
	if err != nil {
		return nil, err
	}
	logs, err := r.usage.Generate(ctx, customers, content, subs, plans)
	if err != nil {
		return nil, err
	}

	r.metrics.RowsGenerated.WithLabelValues("customers").Add(float64(len(customers)))
	r.metrics.RowsGenerated.WithLabelValues("plans").Add(float64(len(plans)))
	r.metrics.RowsGenerated.WithLabelValues("content").Add(float64(len(content)))
	r.metrics.RowsGenerated.WithLabelValues("subscriptions").Add(float64(len(subs)))
	r.metrics.RowsGenerated.WithLabelValues("usage_logs").Add(float64(len(logs)))
	log.Info("generation finished",
		zap.Int("customers", len(customers)),
		zap.Int("plans", len(plans)),
		zap.Int("content", len(content)),
		zap.Int("subscriptions", len(subs)),
		zap.Int("usage_logs", len(logs)),
	)

	return &dataset.Bundle{
		Customers:     customerdomain.Encode(customers),
		Plans:         plandomain.Encode(plans),
		Content:       contentdomain.Encode(content),
		Subscriptions: subscriptiondomain.Encode(subs),
		UsageLogs:     usagedomain.Encode(logs),
	}, nil
}

func (r *Runner) finish(log *zap.Logger, verdict string) {
	r.metrics.Runs.WithLabelValues(verdict).Inc()
	r.metrics.LogSummary()
	log.Info("pipeline finished", zap.String("verdict", verdict))
}
