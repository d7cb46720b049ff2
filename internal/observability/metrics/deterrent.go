package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// DeterrentMetrics contains all Prometheus metrics related to deterrent
// sound playback and strategic response execution.
type DeterrentMetrics struct {
	PlaybacksStarted *prometheus.CounterVec
	PlaybackActive   prometheus.Gauge
	StopTimeouts     prometheus.Counter
	ActionsExecuted  *prometheus.CounterVec
	registry         *prometheus.Registry
}

// NewDeterrentMetrics creates a new instance of DeterrentMetrics and
// registers it with the given registry.
func NewDeterrentMetrics(registry *prometheus.Registry) (*DeterrentMetrics, error) {
	m := &DeterrentMetrics{registry: registry}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, fmt.Errorf("failed to register deterrent metrics: %w", err)
	}
	return m, nil
}

func (m *DeterrentMetrics) initMetrics() {
	m.PlaybacksStarted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "deterrent_playbacks_started_total",
		Help: "Total number of deterrent playbacks started, by sound ID",
	}, []string{"sound"})

	m.PlaybackActive = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "deterrent_playback_active",
		Help: "Whether a deterrent sound is currently playing (1 or 0)",
	})

	m.StopTimeouts = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "deterrent_stop_timeouts_total",
		Help: "Total number of playback stops that exceeded the stop timeout",
	})

	m.ActionsExecuted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "strategy_actions_executed_total",
		Help: "Total number of response actions executed, by action type and trigger",
	}, []string{"action", "trigger"})
}

// RecordPlayback increments the playback counter for a sound.
func (m *DeterrentMetrics) RecordPlayback(soundID string) {
	m.PlaybacksStarted.WithLabelValues(soundID).Inc()
}

// SetPlaybackActive updates the active playback gauge.
func (m *DeterrentMetrics) SetPlaybackActive(active bool) {
	if active {
		m.PlaybackActive.Set(1)
	} else {
		m.PlaybackActive.Set(0)
	}
}

// RecordStopTimeout increments the stop timeout counter.
func (m *DeterrentMetrics) RecordStopTimeout() {
	m.StopTimeouts.Inc()
}

// RecordAction increments the executed action counter. Trigger is either
// "automated" or "manual".
func (m *DeterrentMetrics) RecordAction(actionType, trigger string) {
	m.ActionsExecuted.WithLabelValues(actionType, trigger).Inc()
}

// Collect implements the prometheus.Collector interface.
func (m *DeterrentMetrics) Collect(ch chan<- prometheus.Metric) {
	m.PlaybacksStarted.Collect(ch)
	ch <- m.PlaybackActive
	ch <- m.StopTimeouts
	m.ActionsExecuted.Collect(ch)
}

// Describe implements the prometheus.Collector interface.
func (m *DeterrentMetrics) Describe(ch chan<- *prometheus.Desc) {
	m.PlaybacksStarted.Describe(ch)
	ch <- m.PlaybackActive.Desc()
	ch <- m.StopTimeouts.Desc()
	m.ActionsExecuted.Describe(ch)
}
