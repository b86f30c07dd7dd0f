package metrics

import (
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/napolitain/solver-geode/internal/solver/geode"
)

const (
	// Namespace for all metrics
	namespace = "geode"
	// Subsystem for search metrics
	subsystem = "solver"
)

// SolverMetricsCollector records every blueprint evaluation.
// It implements geode.Recorder and is safe for concurrent use.
type SolverMetricsCollector struct {
	registry *prometheus.Registry

	evaluationsTotal   *prometheus.CounterVec
	nodesTotal         *prometheus.CounterVec
	prunesTotal        *prometheus.CounterVec
	evaluationDuration *prometheus.HistogramVec
	bestTally          *prometheus.GaugeVec
}

var _ geode.Recorder = (*SolverMetricsCollector)(nil)

// NewSolverMetricsCollector creates a collector bound to its own registry
func NewSolverMetricsCollector() *SolverMetricsCollector {
	return &SolverMetricsCollector{
		registry: prometheus.NewRegistry(),

		evaluationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "evaluations_total",
				Help:      "Total number of blueprint evaluations by horizon",
			},
			[]string{"horizon"},
		),

		nodesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "nodes_total",
				Help:      "Total number of search nodes visited by horizon",
			},
			[]string{"horizon"},
		),

		prunesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "prunes_total",
				Help:      "Total number of pruned branches by horizon and reason",
			},
			[]string{"horizon", "reason"},
		),

		evaluationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "evaluation_duration_seconds",
				Help:      "Blueprint evaluation duration distribution",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 30.0},
			},
			[]string{"horizon"},
		),

		bestTally: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "best_tally",
				Help:      "Best terminal tally found per blueprint and horizon",
			},
			[]string{"blueprint", "horizon"},
		),
	}
}

// Register registers all solver metrics with the collector's registry
func (c *SolverMetricsCollector) Register() error {
	metrics := []prometheus.Collector{
		c.evaluationsTotal,
		c.nodesTotal,
		c.prunesTotal,
		c.evaluationDuration,
		c.bestTally,
	}

	for _, metric := range metrics {
		if err := c.registry.Register(metric); err != nil {
			return fmt.Errorf("failed to register solver metrics: %w", err)
		}
	}

	return nil
}

// Registry returns the registry the metrics are registered with
func (c *SolverMetricsCollector) Registry() *prometheus.Registry {
	return c.registry
}

// RecordEvaluation records the outcome of one blueprint evaluation
func (c *SolverMetricsCollector) RecordEvaluation(r *geode.Result) {
	horizon := strconv.Itoa(r.Horizon)

	c.evaluationsTotal.WithLabelValues(horizon).Inc()
	c.nodesTotal.WithLabelValues(horizon).Add(float64(r.Stats.Nodes))

	c.prunesTotal.WithLabelValues(horizon, "bound").Add(float64(r.Stats.BoundPrunes))
	c.prunesTotal.WithLabelValues(horizon, "dominance").Add(float64(r.Stats.DominancePrunes))
	c.prunesTotal.WithLabelValues(horizon, "spend_cap").Add(float64(r.Stats.SpendCapPrunes))

	c.evaluationDuration.WithLabelValues(horizon).Observe(r.Elapsed.Seconds())
	c.bestTally.WithLabelValues(strconv.Itoa(r.BlueprintID), horizon).Set(float64(r.Best))
}

// WriteTextfile writes every registered metric to path in the Prometheus text
// format, for node_exporter's textfile collector
func (c *SolverMetricsCollector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
