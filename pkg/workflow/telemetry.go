package workflow

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultEventLimit is the number of request events kept in memory.
const DefaultEventLimit = 200

// Event records one workflow request.
type Event struct {
	Operation     string    `json:"operation"`
	Path          string    `json:"path"`
	StartedAt     time.Time `json:"startedAt"`
	EndedAt       time.Time `json:"endedAt"`
	OK            bool      `json:"ok"`
	Status        int       `json:"status"`
	CorrelationID string    `json:"correlationId,omitempty"`
}

// Duration is the wall time of the request.
func (e Event) Duration() time.Duration {
	return e.EndedAt.Sub(e.StartedAt)
}

// Telemetry keeps the most recent request events and mirrors them into
// Prometheus collectors.
type Telemetry struct {
	mu     sync.Mutex
	events []Event
	limit  int

	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewTelemetry builds a recorder. When reg is non-nil the collectors are
// registered with it.
func NewTelemetry(reg prometheus.Registerer) (*Telemetry, error) {
	t := &Telemetry{
		limit: DefaultEventLimit,
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "cardrender",
				Subsystem: "workflow",
				Name:      "requests_total",
				Help:      "Workflow requests by operation and outcome.",
			},
			[]string{"operation", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "cardrender",
				Subsystem: "workflow",
				Name:      "request_duration_seconds",
				Help:      "Workflow request latency.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
	if reg != nil {
		for _, collector := range []prometheus.Collector{t.requests, t.duration} {
			if err := reg.Register(collector); err != nil {
				return nil, err
			}
		}
	}
	return t, nil
}

// Record appends ev, dropping the oldest events beyond the limit.
func (t *Telemetry) Record(ev Event) {
	outcome := "ok"
	if !ev.OK {
		outcome = "error"
	}
	t.requests.WithLabelValues(ev.Operation, outcome).Inc()
	t.duration.WithLabelValues(ev.Operation).Observe(ev.Duration().Seconds())

	t.mu.Lock()
	defer t.mu.Unlock()
	t.events = append(t.events, ev)
	if overflow := len(t.events) - t.limit; overflow > 0 {
		t.events = append([]Event(nil), t.events[overflow:]...)
	}
}

// Events returns a copy of the retained events, oldest first.
func (t *Telemetry) Events() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Event, len(t.events))
	copy(out, t.events)
	return out
}

// Clear drops every retained event. Prometheus counters are cumulative and
// are not reset.
func (t *Telemetry) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.events = nil
}
