package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/streamhaven/dataforge/internal/analytics"
	"github.com/streamhaven/dataforge/internal/clock"
	"github.com/streamhaven/dataforge/internal/config"
	"github.com/streamhaven/dataforge/internal/content"
	"github.com/streamhaven/dataforge/internal/customer"
	"github.com/streamhaven/dataforge/internal/logger"
	"github.com/streamhaven/dataforge/internal/metrics"
	"github.com/streamhaven/dataforge/internal/migration"
	"github.com/streamhaven/dataforge/internal/pipeline"
	"github.com/streamhaven/dataforge/internal/plan"
	"github.com/streamhaven/dataforge/internal/randsrc"
	"github.com/streamhaven/dataforge/internal/store"
	"github.com/streamhaven/dataforge/internal/subscription"
	"github.com/streamhaven/dataforge/internal/usage"
	"github.com/streamhaven/dataforge/internal/validation"
	"github.com/streamhaven/dataforge/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core Infrastructure
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		clock.Module,
		randsrc.Module,
		db.Module,
		migration.Module,
		metrics.Module,

		// Generators
		customer.Module,
		plan.Module,
		content.Module,
		subscription.Module,
		usage.Module,

		// Gate, load, reporting
		validation.Module,
		store.Module,
		analytics.Module,

		// One-shot orchestration
		pipeline.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
