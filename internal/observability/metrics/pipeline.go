// Package metrics provides custom Prometheus metrics for the analysis
// pipeline and the deterrent subsystem.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// PipelineMetrics contains all Prometheus metrics related to the detection
// analysis pipeline.
type PipelineMetrics struct {
	DetectionsProcessed  *prometheus.CounterVec
	AlertsGenerated      *prometheus.CounterVec
	DetectionsSuppressed prometheus.Counter
	RiskScore            prometheus.Histogram
	ProcessingDuration   prometheus.Histogram
	registry             *prometheus.Registry
}

// NewPipelineMetrics creates a new instance of PipelineMetrics and registers
// it with the given registry.
func NewPipelineMetrics(registry *prometheus.Registry) (*PipelineMetrics, error) {
	m := &PipelineMetrics{registry: registry}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, fmt.Errorf("failed to register pipeline metrics: %w", err)
	}
	return m, nil
}

func (m *PipelineMetrics) initMetrics() {
	m.DetectionsProcessed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pipeline_detections_processed_total",
		Help: "Total number of detections processed by the analysis pipeline",
	}, []string{"species"})

	m.AlertsGenerated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pipeline_alerts_generated_total",
		Help: "Total number of alerts generated, by alert level",
	}, []string{"level"})

	m.DetectionsSuppressed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pipeline_detections_suppressed_total",
		Help: "Total number of detections discarded while a deterrent was playing",
	})

	m.RiskScore = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "pipeline_risk_score",
		Help:    "Distribution of computed risk scores",
		Buckets: prometheus.LinearBuckets(0, 0.1, 11),
	})

	m.ProcessingDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "pipeline_processing_duration_seconds",
		Help:    "Time spent processing one detection end to end",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 12),
	})
}

// RecordDetection increments the processed counter for a species.
func (m *PipelineMetrics) RecordDetection(species string) {
	m.DetectionsProcessed.WithLabelValues(species).Inc()
}

// RecordAlert increments the alert counter for a level and observes the score.
func (m *PipelineMetrics) RecordAlert(level string, riskScore float64) {
	m.AlertsGenerated.WithLabelValues(level).Inc()
	m.RiskScore.Observe(riskScore)
}

// RecordSuppressed increments the suppressed detection counter.
func (m *PipelineMetrics) RecordSuppressed() {
	m.DetectionsSuppressed.Inc()
}

// ObserveProcessingDuration records one pipeline pass duration in seconds.
func (m *PipelineMetrics) ObserveProcessingDuration(seconds float64) {
	m.ProcessingDuration.Observe(seconds)
}

// Collect implements the prometheus.Collector interface.
func (m *PipelineMetrics) Collect(ch chan<- prometheus.Metric) {
	m.DetectionsProcessed.Collect(ch)
	m.AlertsGenerated.Collect(ch)
	ch <- m.DetectionsSuppressed
	ch <- m.RiskScore
	ch <- m.ProcessingDuration
}

// Describe implements the prometheus.Collector interface.
func (m *PipelineMetrics) Describe(ch chan<- *prometheus.Desc) {
	m.DetectionsProcessed.Describe(ch)
	m.AlertsGenerated.Describe(ch)
	ch <- m.DetectionsSuppressed.Desc()
	ch <- m.RiskScore.Desc()
	ch <- m.ProcessingDuration.Desc()
}
