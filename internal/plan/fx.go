package plan

import (
	"github.com/streamhaven/dataforge/internal/plan/generator"
	"go.uber.org/fx"
)

var Module = fx.Module("plan.generator",
	fx.Provide(generator.New),
)
