package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// presenceStates are the label values carried by the current-state gauge.
var presenceStates = []string{"no_status", "at_station", "on_train"}

type Metrics struct {
	Ticks        *prometheus.CounterVec
	FetchSeconds *prometheus.HistogramVec
	Transitions  *prometheus.CounterVec
	CurrentState *prometheus.GaugeVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Ticks: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "presence_ticks_total",
			Help: "Total number of polling ticks by outcome.",
		}, []string{"result"}),
		FetchSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "presence_feed_fetch_duration_seconds",
			Help:    "Duration of feed fetches per tick.",
			Buckets: prometheus.DefBuckets,
		}, []string{"feed"}),
		Transitions: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "presence_state_transitions_total",
			Help: "Total number of presence state transitions.",
		}, []string{"from", "to"}),
		CurrentState: promauto.With(reg).NewGaugeVec(prometheus.GaugeOpts{
			Name: "presence_current_state",
			Help: "Set to 1 for the currently active presence state.",
		}, []string{"state"}),
	}
}

// SetCurrentState marks the active presence variant on the state gauge and
// clears the others.
func (m *Metrics) SetCurrentState(name string) {
	for _, state := range presenceStates {
		value := 0.0
		if state == name {
			value = 1.0
		}
		m.CurrentState.WithLabelValues(state).Set(value)
	}
}
