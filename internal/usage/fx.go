package usage

import (
	"github.com/streamhaven/dataforge/internal/usage/generator"
	"go.uber.org/fx"
)

var Module = fx.Module("usage.generator",
	fx.Provide(generator.New),
)
