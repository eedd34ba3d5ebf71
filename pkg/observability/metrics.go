package observability

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dkuanyshbaev/ioracle-core/pkg/domain"
)

const namespace = "ioracle"

// Metrics records lifecycle events on a private Prometheus registry.
type Metrics struct {
	registry *prometheus.Registry

	phaseTransitions *prometheus.CounterVec
	readings         prometheus.Counter
	lines            *prometheus.CounterVec
	effects          *prometheus.CounterVec
	throttleValue    prometheus.Gauge
	throttleAlerts   prometheus.Counter
	readingDuration  prometheus.Histogram
}

// NewMetrics creates and registers the collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		phaseTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "phase_transitions_total",
			Help:      "Phase transitions by entered phase.",
		}, []string{"phase"}),
		readings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "readings_total",
			Help:      "Completed readings.",
		}),
		lines: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lines_total",
			Help:      "Classified lines by polarity and pass.",
		}, []string{"line", "pass"}),
		effects: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "effects_total",
			Help:      "Effects sent to the actuator by kind and outcome.",
		}, []string{"kind", "outcome"}),
		throttleValue: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "throttle_value",
			Help:      "Current value of the pump usage counter.",
		}),
		throttleAlerts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "throttle_alerts_total",
			Help:      "Pump usage alerts raised.",
		}),
		readingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "reading_duration_seconds",
			Help:      "Time from trigger to published result.",
			Buckets:   []float64{10, 20, 30, 40, 50, 60, 90, 120},
		}),
	}
	m.registry.MustRegister(
		m.phaseTransitions,
		m.readings,
		m.lines,
		m.effects,
		m.throttleValue,
		m.throttleAlerts,
		m.readingDuration,
		collectors.NewGoCollector(),
	)
	return m
}

// Registry returns the private registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Hooks returns the lifecycle hooks that feed the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnPhaseEnter: func(_ context.Context, e *domain.PhaseEvent) {
			m.phaseTransitions.WithLabelValues(e.To.String()).Inc()
		},
		OnLine: func(_ context.Context, e *domain.LineEvent) {
			pass := "primary"
			if e.Related {
				pass = "related"
			}
			m.lines.WithLabelValues(e.Line.String(), pass).Inc()
		},
		OnEffect: func(_ context.Context, e *domain.EffectEvent) {
			outcome := "ok"
			if e.IsError {
				outcome = "error"
			}
			m.effects.WithLabelValues(string(e.Effect.Kind), outcome).Inc()
		},
		OnThrottle: func(_ context.Context, e *domain.ThrottleEvent) {
			m.throttleValue.Set(float64(e.Value))
			if e.Alert {
				m.throttleAlerts.Inc()
			}
		},
		OnResult: func(_ context.Context, e *domain.ResultEvent) {
			m.readings.Inc()
			m.readingDuration.Observe(e.Duration.Seconds())
		},
	}
}
