package randsrc

import (
	"github.com/streamhaven/dataforge/internal/config"
	"go.uber.org/fx"
)

var Module = fx.Module("randsrc",
	fx.Provide(func(cfg config.Config) *Source {
		return New(cfg.Seed)
	}),
)
