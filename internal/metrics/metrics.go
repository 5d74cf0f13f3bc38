// Package metrics counts pipeline outcomes on a private prometheus
// registry. The one-shot process has no scrape endpoint; the counters are
// gathered and logged when the run finishes.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log *zap.Logger
}

type Metrics struct {
	registry *prometheus.Registry
	log      *zap.Logger

	RowsGenerated *prometheus.CounterVec
	RowsRejected  *prometheus.CounterVec
	RowsLoaded    *prometheus.CounterVec
	Runs          *prometheus.CounterVec
}

func New(p Params) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		log:      p.Log.Named("metrics"),
		RowsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dataforge_rows_generated_total",
			Help: "Rows produced by the generators, per table.",
		}, []string{"table"}),
		RowsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dataforge_rows_rejected_total",
			Help: "Rows rejected by the validation gate, per table and rule.",
		}, []string{"table", "rule"}),
		RowsLoaded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dataforge_rows_loaded_total",
			Help: "Rows loaded into the warehouse, per table.",
		}, []string{"table"}),
		Runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dataforge_runs_total",
			Help: "Pipeline runs, per verdict.",
		}, []string{"verdict"}),
	}
	m.registry.MustRegister(m.RowsGenerated, m.RowsRejected, m.RowsLoaded, m.Runs)
	return m
}

// Snapshot returns the gathered metric families.
func (m *Metrics) Snapshot() ([]*dto.MetricFamily, error) {
	return m.registry.Gather()
}

// LogSummary gathers the registry and logs every non-zero counter.
func (m *Metrics) LogSummary() {
	families, err := m.registry.Gather()
	if err != nil {
		m.log.Warn("gather metrics", zap.Error(err))
		return
	}
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			value := metric.GetCounter().GetValue()
			if value == 0 {
				continue
			}
			fields := make([]zap.Field, 0, len(metric.GetLabel())+1)
			fields = append(fields, zap.Float64("value", value))
			for _, label := range metric.GetLabel() {
				fields = append(fields, zap.String(label.GetName(), label.GetValue()))
			}
			m.log.Info(family.GetName(), fields...)
		}
	}
}
