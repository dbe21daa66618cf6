// Package metrics exposes Prometheus instruments for path queries.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	astar "github.com/pdrpinto/gridastar"
)

// Metrics groups the collectors registered for one server instance.
type Metrics struct {
	searchTotal    *prometheus.CounterVec
	searchDuration prometheus.Histogram
	expandedNodes  prometheus.Histogram
	pathLength     prometheus.Histogram
	cellWrites     *prometheus.CounterVec
	grids          prometheus.Gauge
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		searchTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gridpath_search_total",
			Help: "Total path searches by outcome",
		}, []string{"outcome"}),
		searchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "gridpath_search_duration_seconds",
			Help:    "Path search duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10), // 10µs to ~2.6s
		}),
		expandedNodes: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "gridpath_search_expanded_nodes",
			Help:    "Nodes expanded per path search",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),
		pathLength: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "gridpath_path_length_cells",
			Help:    "Cells per found path",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		}),
		cellWrites: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gridpath_cell_writes_total",
			Help: "Cell writes by resulting state or error kind",
		}, []string{"result"}),
		grids: factory.NewGauge(prometheus.GaugeOpts{
			Name: "gridpath_grids",
			Help: "Grids currently held by the server",
		}),
	}
}

// ObserveSearch records one finished search.
func (m *Metrics) ObserveSearch(res astar.Result, elapsed time.Duration) {
	m.searchTotal.WithLabelValues(res.Outcome.String()).Inc()
	m.searchDuration.Observe(elapsed.Seconds())
	m.expandedNodes.Observe(float64(res.ExpandedNodes))
	if res.Found {
		m.pathLength.Observe(float64(len(res.Path)))
	}
}

// ObserveCellWrite records a cell write; result is the new state name or an
// error kind.
func (m *Metrics) ObserveCellWrite(result string) {
	m.cellWrites.WithLabelValues(result).Inc()
}

// SetGrids sets the number of live grids.
func (m *Metrics) SetGrids(n int) {
	m.grids.Set(float64(n))
}
