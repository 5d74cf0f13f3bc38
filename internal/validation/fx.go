package validation

import (
	"github.com/streamhaven/dataforge/internal/validation/engine"
	"go.uber.org/fx"
)

var Module = fx.Module("validation.engine",
	fx.Provide(engine.New),
)
