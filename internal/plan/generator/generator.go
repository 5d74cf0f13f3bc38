package generator

import (
	"context"

	"github.com/streamhaven/dataforge/internal/plan/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log *zap.Logger
}

// Generator emits the static plan catalog. Not randomized.
type Generator struct {
	log *zap.Logger
}

func New(p Params) *Generator {
	return &Generator{log: p.Log.Named("plan.generator")}
}

func (g *Generator) Generate(ctx context.Context) ([]domain.Plan, error) {
	_ = ctx
	plans := domain.Catalog()
	g.log.Info("plans generated", zap.Int("count", len(plans)))
	return plans, nil
}
