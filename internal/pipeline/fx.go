package pipeline

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("pipeline",
	fx.Provide(New),
	fx.Invoke(Register),
)

// Register starts the run once the graph is up and shuts the process down
// with the run's exit code when it finishes.
func Register(lc fx.Lifecycle, runner *Runner, shutdowner fx.Shutdowner, log *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				code := 0
				if err := runner.Run(context.Background()); err != nil {
					log.Error("pipeline failed", zap.Error(err))
					code = 1
				}
				if err := shutdowner.Shutdown(fx.ExitCode(code)); err != nil {
					log.Error("shutdown", zap.Error(err))
				}
			}()
			return nil
		},
	})
}
