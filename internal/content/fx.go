package content

import (
	"github.com/streamhaven/dataforge/internal/content/generator"
	"go.uber.org/fx"
)

var Module = fx.Module("content.generator",
	fx.Provide(generator.New),
)
