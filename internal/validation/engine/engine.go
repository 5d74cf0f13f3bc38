// Package engine runs the three-phase validation gate over a generated
// bundle: schema first, then referential integrity, then logical rules.
// Schema findings are fatal and stop the run; later phases reject rows.
package engine

import (
	"context"

	"github.com/streamhaven/dataforge/internal/clock"
	"github.com/streamhaven/dataforge/internal/config"
	"github.com/streamhaven/dataforge/internal/dataset"
	"github.com/streamhaven/dataforge/internal/validation/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Cfg config.Config
	Log *zap.Logger
	Clk clock.Clock
}

// Engine validates a bundle against the fixed schemas, the reference graph,
// and the behavioral guardrails.
type Engine struct {
	cfg config.Config
	log *zap.Logger
	clk clock.Clock
}

func New(p Params) *Engine {
	return &Engine{
		cfg: p.Cfg,
		log: p.Log.Named("validation.engine"),
		clk: p.Clk,
	}
}

// parsedRow is a row that survived the schema phase, with typed values.
type parsedRow struct {
	id     int64
	values map[string]any
}

// parsedTable holds the typed rows of one table for the later phases.
type parsedTable struct {
	schema dataset.Schema
	rows   []parsedRow
}

// Validate runs all three phases and returns the report. The error is
// non-nil when the verdict is fail: a schema fatal halts after phase one,
// a rejection rate above the tolerance fails after phase three.
func (e *Engine) Validate(ctx context.Context, b *dataset.Bundle) (*domain.Report, error) {
	_ = ctx
	rep := domain.NewReport()

	parsed := e.checkSchema(b, rep)
	if rep.HasFatal() {
		for _, f := range rep.Fatals {
			e.log.Error("fatal schema finding",
				zap.String("table", f.Table),
				zap.String("rule", string(f.Rule)),
				zap.String("detail", f.Detail),
			)
		}
		return rep, domain.ErrSchemaViolation
	}

	e.checkReferential(parsed, rep)
	e.checkLogical(parsed, rep)

	for _, rej := range rep.Rejections {
		e.log.Warn("row rejected",
			zap.String("table", rej.Table),
			zap.Int64("row_id", rej.RowID),
			zap.String("rule", string(rej.Rule)),
			zap.String("field", rej.Field),
			zap.String("expected", rej.Expected),
			zap.String("actual", rej.Actual),
		)
	}

	err := e.applyTolerance(rep)
	e.logSummary(rep)
	return rep, err
}

// applyTolerance turns rejection counts into the verdict. Any table whose
// rejection rate exceeds the configured ceiling fails the run, as does any
// rejection at all under the strict policy.
func (e *Engine) applyTolerance(rep *domain.Report) error {
	failed := false
	for _, t := range rep.Tables() {
		rate := t.RejectionRate()
		if rate > e.cfg.Validation.MaxRejectRate {
			e.log.Error("rejection rate above tolerance",
				zap.String("table", t.Table),
				zap.Float64("rate", rate),
				zap.Float64("max", e.cfg.Validation.MaxRejectRate),
			)
			failed = true
		}
	}
	if e.cfg.Validation.FailOnReject && len(rep.Rejections) > 0 {
		e.log.Error("rejections present under strict policy",
			zap.Int("rejections", len(rep.Rejections)),
		)
		failed = true
	}
	if failed {
		rep.Verdict = domain.VerdictFail
		return domain.ErrToleranceExceeded
	}
	return nil
}

func (e *Engine) logSummary(rep *domain.Report) {
	for _, t := range rep.Tables() {
		e.log.Info("table validated",
			zap.String("table", t.Table),
			zap.Int("rows", t.Rows),
			zap.Int("rejected", t.RejectedCount()),
		)
	}
	e.log.Info("validation finished",
		zap.String("verdict", string(rep.Verdict)),
		zap.Int("rejections", len(rep.Rejections)),
	)
}
