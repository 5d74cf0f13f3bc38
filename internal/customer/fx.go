package customer

import (
	"github.com/streamhaven/dataforge/internal/customer/generator"
	"go.uber.org/fx"
)

var Module = fx.Module("customer.generator",
	fx.Provide(generator.New),
)
