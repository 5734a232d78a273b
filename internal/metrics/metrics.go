// Package metrics exposes the outcome of each catalog build to Prometheus.
package metrics

import (
	"context"

	"github.com/pixil98/go-bestiary/internal/defdb"
	"github.com/pixil98/go-bestiary/internal/defs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks definition counts, link errors and the loader lifecycle.
type Metrics struct {
	Definitions   *prometheus.GaugeVec
	LinkErrors    *prometheus.GaugeVec
	FetchFailures prometheus.Gauge
	Duplicates    prometheus.Gauge
	LoaderState   prometheus.Gauge
	LinkDuration  prometheus.Histogram
}

// New registers every instrument with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Definitions: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "bestiary_definitions",
			Help: "Number of linked definitions by category",
		}, []string{"category"}),
		LinkErrors: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "bestiary_link_errors",
			Help: "Number of unresolved references by category of the referring record",
		}, []string{"category"}),
		FetchFailures: f.NewGauge(prometheus.GaugeOpts{
			Name: "bestiary_fetch_failures",
			Help: "Number of data files that could not be loaded",
		}),
		Duplicates: f.NewGauge(prometheus.GaugeOpts{
			Name: "bestiary_duplicate_definitions",
			Help: "Number of definitions shadowed by a later definition of the same name",
		}),
		LoaderState: f.NewGauge(prometheus.GaugeOpts{
			Name: "bestiary_loader_state",
			Help: "Loader lifecycle state (0 fetching, 1 linking, 2 ready)",
		}),
		LinkDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "bestiary_link_duration_seconds",
			Help:    "Duration of the link stage of a catalog build",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 5},
		}),
	}
}

// ObserveReport records the result of a build. It has the signature of a
// loader ready hook.
func (m *Metrics) ObserveReport(_ context.Context, _ *defs.Catalog, r *defs.Report) {
	for _, category := range defs.Categories {
		m.Definitions.WithLabelValues(category.String()).Set(float64(r.Counts[category]))
		m.LinkErrors.WithLabelValues(category.String()).Set(float64(r.LinkErrorsFor(category)))
	}
	m.FetchFailures.Set(float64(len(r.FetchFailures)))
	m.Duplicates.Set(float64(len(r.Duplicates)))
	m.LinkDuration.Observe(r.Duration.Seconds())
}

// StateSource reports the current loader state.
type StateSource interface {
	State() defdb.State
}

// StateTracker copies the loader state into a gauge each tick.
type StateTracker struct {
	m      *Metrics
	source StateSource
}

func NewStateTracker(m *Metrics, source StateSource) *StateTracker {
	return &StateTracker{m: m, source: source}
}

func (t *StateTracker) Tick(context.Context) error {
	t.m.LoaderState.Set(float64(t.source.State()))
	return nil
}
