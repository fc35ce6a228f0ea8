package observability

import (
	"context"
	"sync"

	"github.com/aretw0/reel/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects playback counters and durations.
type Metrics struct {
	started  *prometheus.CounterVec
	finished *prometheus.CounterVec
	steps    *prometheus.CounterVec
	cues     *prometheus.CounterVec
	active   prometheus.Gauge
	duration *prometheus.HistogramVec

	mu     sync.Mutex
	starts map[string]domain.EventBase
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		started: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reel_playbacks_started_total",
			Help: "Total number of playbacks started",
		}, []string{"sequence"}),
		finished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reel_playbacks_finished_total",
			Help: "Total number of playbacks that reached a terminal status",
		}, []string{"sequence", "status"}),
		steps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reel_steps_total",
			Help: "Total number of steps executed",
		}, []string{"kind"}),
		cues: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reel_cues_total",
			Help: "Total number of cue annotations reached",
		}, []string{"kind"}),
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "reel_active_playbacks",
			Help: "Number of playbacks currently running",
		}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "reel_playback_duration_seconds",
			Help:    "Wall-clock duration of playbacks",
			Buckets: []float64{0.1, 1, 5, 15, 30, 60, 120, 300},
		}, []string{"sequence", "status"}),
		starts: make(map[string]domain.EventBase),
	}

	for _, c := range []prometheus.Collector{m.started, m.finished, m.steps, m.cues, m.active, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns the lifecycle hooks feeding the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnPlaybackStart: func(_ context.Context, e *domain.PlaybackEvent) {
			m.mu.Lock()
			m.starts[e.PlaybackID] = e.EventBase
			m.mu.Unlock()

			m.started.WithLabelValues(e.Sequence).Inc()
			m.active.Inc()
		},
		OnPlaybackEnd: func(_ context.Context, e *domain.PlaybackEvent) {
			m.mu.Lock()
			start, ok := m.starts[e.PlaybackID]
			delete(m.starts, e.PlaybackID)
			m.mu.Unlock()

			status := string(e.Status)
			m.finished.WithLabelValues(e.Sequence, status).Inc()
			if ok {
				m.active.Dec()
				m.duration.WithLabelValues(e.Sequence, status).Observe(e.Timestamp.Sub(start.Timestamp).Seconds())
			}
		},
		OnStepLeave: func(_ context.Context, e *domain.StepEvent) {
			m.steps.WithLabelValues(string(e.Step.Kind)).Inc()
		},
		OnCue: func(_ context.Context, e *domain.StepEvent) {
			m.cues.WithLabelValues(string(e.Step.Cue.Kind)).Inc()
		},
	}
}

// Started returns the started counter for a sequence.
func (m *Metrics) Started(sequence string) prometheus.Counter {
	return m.started.WithLabelValues(sequence)
}

// Finished returns the terminal-status counter for a sequence.
func (m *Metrics) Finished(sequence string, status domain.PlaybackStatus) prometheus.Counter {
	return m.finished.WithLabelValues(sequence, string(status))
}

// Active returns the running playbacks gauge.
func (m *Metrics) Active() prometheus.Gauge {
	return m.active
}
