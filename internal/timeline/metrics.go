package timeline

import (
	"context"

	"github.com/atomicstack/darktriad/internal/logging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const instrumentationName = "github.com/atomicstack/darktriad/internal/timeline"

type metrics struct {
	dispatched metric.Int64Counter
	resets     metric.Int64Counter
}

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// newMetrics registers counters on the global meter provider, which is a
// no-op until the process installs a real one.
func newMetrics() *metrics {
	m := meter()
	out := &metrics{}
	var err error
	out.dispatched, err = m.Int64Counter(
		"timeline.cues.dispatched",
		metric.WithDescription("Cues fired by the dispatcher"),
	)
	if err != nil {
		logging.Error(err)
		out.dispatched = noop.Int64Counter{}
	}
	out.resets, err = m.Int64Counter(
		"timeline.sessions.reset",
		metric.WithDescription("Dispatch sessions restarted"),
	)
	if err != nil {
		logging.Error(err)
		out.resets = noop.Int64Counter{}
	}
	return out
}

func (m *metrics) dispatch(backgroundID, action string) {
	m.dispatched.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("background", backgroundID),
		attribute.String("action", action),
	))
}

func (m *metrics) reset(backgroundID, reason string) {
	m.resets.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("background", backgroundID),
		attribute.String("reason", reason),
	))
}
