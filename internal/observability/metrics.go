package observability

import (
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Metrics holds the Prometheus counters, histograms, and gauges for one
// rendering run. The process is single-shot, so instead of a /metrics
// endpoint the registry can be dumped to a textfile after the run (see
// [DumpTextfile]) for collection by a node-exporter textfile collector.
type Metrics struct {
	GridsLoaded   prometheus.Counter
	CellsRendered prometheus.Counter
	CellsMissing  prometheus.Counter

	// Overlay drawing metrics (regional mode).
	OverlayFeatures *prometheus.CounterVec // labels: layer={border,road,coastline,city}
	RoadsExcluded   prometheus.Counter

	RenderDuration prometheus.Histogram
	RegionalMode   prometheus.Gauge
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		GridsLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "plot_tropomi",
			Name:      "grids_loaded_total",
			Help:      "Total observation grids loaded from product files.",
		}),
		CellsRendered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "plot_tropomi",
			Name:      "cells_rendered_total",
			Help:      "Total colored grid cells drawn to the mesh.",
		}),
		CellsMissing: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "plot_tropomi",
			Name:      "cells_missing_total",
			Help:      "Total grid cells left transparent (below-threshold or fill values).",
		}),
		OverlayFeatures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "plot_tropomi",
			Name:      "overlay_features_total",
			Help:      "Overlay features drawn, by layer.",
		}, []string{"layer"}),
		RoadsExcluded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "plot_tropomi",
			Name:      "roads_excluded_total",
			Help:      "Road records dropped by the road-type exclusion predicate.",
		}),
		RenderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "plot_tropomi",
			Name:      "render_duration_seconds",
			Help:      "Duration of a complete resolve-load-render-save run.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		RegionalMode: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "plot_tropomi",
			Name:      "regional_mode",
			Help:      "1 when the regional renderer was selected, 0 for global.",
		}),
	}

	prometheus.MustRegister(
		m.GridsLoaded,
		m.CellsRendered,
		m.CellsMissing,
		m.OverlayFeatures,
		m.RoadsExcluded,
		m.RenderDuration,
		m.RegionalMode,
	)

	return m
}

// NewMetricsForTesting creates Metrics with unregistered collectors to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		GridsLoaded:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "plot_tropomi", Name: "grids_loaded_total"}),
		CellsRendered:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "plot_tropomi", Name: "cells_rendered_total"}),
		CellsMissing:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "plot_tropomi", Name: "cells_missing_total"}),
		OverlayFeatures: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "plot_tropomi", Name: "overlay_features_total"}, []string{"layer"}),
		RoadsExcluded:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "plot_tropomi", Name: "roads_excluded_total"}),
		RenderDuration:  prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "plot_tropomi", Name: "render_duration_seconds"}),
		RegionalMode:    prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "plot_tropomi", Name: "regional_mode"}),
	}
}

// DumpTextfile writes the default registry in text exposition format.
// Called after a successful run when --metrics-file is set.
func DumpTextfile(path string) error {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create metrics file: %w", err)
	}

	enc := expfmt.NewEncoder(f, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			f.Close()
			return fmt.Errorf("encode metrics: %w", err)
		}
	}
	return f.Close()
}
