package rewardwatch

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/gabapcia/orchwatch/internal/rewardwatch"

// instruments groups the tracer and counters recorded by the watcher. They
// resolve against the global providers, which are no-ops unless telemetry
// was initialized.
type instruments struct {
	tracer trace.Tracer

	ticks         metric.Int64Counter
	faults        metric.Int64Counter
	notifications metric.Int64Counter
	rounds        metric.Int64Counter
}

func newInstruments() instruments {
	meter := otel.Meter(instrumentationName)

	return instruments{
		tracer:        otel.Tracer(instrumentationName),
		ticks:         counter(meter, "orchwatch.ticks", "Completed watcher ticks."),
		faults:        counter(meter, "orchwatch.faults", "Ticks aborted by a failure, by kind."),
		notifications: counter(meter, "orchwatch.notifications", "Messages delivered to subscribers."),
		rounds:        counter(meter, "orchwatch.rounds", "Round boundaries processed."),
	}
}

func counter(meter metric.Meter, name, description string) metric.Int64Counter {
	c, err := meter.Int64Counter(name, metric.WithDescription(description))
	if err != nil {
		return noop.Int64Counter{}
	}
	return c
}

func (i instruments) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return i.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (i instruments) tickDone(ctx context.Context) {
	i.ticks.Add(ctx, 1)
}

func (i instruments) faultRaised(ctx context.Context, kind Kind) {
	i.faults.Add(ctx, 1, metric.WithAttributes(attribute.String("fault.kind", string(kind))))
}

func (i instruments) notificationSent(ctx context.Context) {
	i.notifications.Add(ctx, 1)
}

func (i instruments) roundProcessed(ctx context.Context) {
	i.rounds.Add(ctx, 1)
}
