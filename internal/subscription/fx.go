package subscription

import (
	"github.com/streamhaven/dataforge/internal/subscription/generator"
	"go.uber.org/fx"
)

var Module = fx.Module("subscription.generator",
	fx.Provide(generator.New),
)
