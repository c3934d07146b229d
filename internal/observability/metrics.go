package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups all Prometheus instruments used by the service.
type Metrics struct {
	ActiveSessions prometheus.Gauge
	SessionEvents  *prometheus.CounterVec
	TurnOutcomes   *prometheus.CounterVec
	WSMessages     *prometheus.CounterVec
	ProviderErrors *prometheus.CounterVec
	TurnLatency    prometheus.Histogram

	turnStages *turnStageWindow
}

func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		ActiveSessions: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Number of interview sessions in progress.",
		}),
		SessionEvents: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "session_events_total",
			Help:      "Session lifecycle events by type.",
		}, []string{"event"}),
		TurnOutcomes: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "turn_outcomes_total",
			Help:      "Turn decisions by outcome.",
		}, []string{"outcome"}),
		WSMessages: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ws_messages_total",
			Help:      "WebSocket messages by direction and type.",
		}, []string{"direction", "type"}),
		ProviderErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_errors_total",
			Help:      "Collaborator errors by provider and code.",
		}, []string{"provider", "code"}),
		TurnLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "turn_latency_ms",
			Help:      "End-to-end latency of one interview turn in milliseconds.",
			Buckets:   []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000, 30000},
		}),
		turnStages: newTurnStageWindow(0),
	}
}

// ObserveTurnStage records one stage duration in the rolling window. The
// turn_total stage also feeds the latency histogram.
func (m *Metrics) ObserveTurnStage(stage string, d time.Duration) {
	m.turnStages.Observe(stage, d.Seconds()*1000)
	if stage == StageTurnTotal {
		m.TurnLatency.Observe(d.Seconds() * 1000)
	}
}

// ObserveTurnIndicator bumps a named counter shown alongside the stage
// stats, e.g. fallback occurrences.
func (m *Metrics) ObserveTurnIndicator(name string) {
	m.turnStages.ObserveIndicator(name)
}

func (m *Metrics) SnapshotTurnStages() TurnStageSnapshot {
	return m.turnStages.Snapshot()
}

func (m *Metrics) ResetTurnStages() {
	m.turnStages.Reset()
}

func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
