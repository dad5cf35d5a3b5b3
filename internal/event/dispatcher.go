package event

import (
	"context"
	"log/slog"
)

// Consumer handles published events. Implementations must be idempotent:
// delivery is at-least-once, and the same event may be observed again after
// a retry. A consumer failure never affects the published fact or any other
// consumer.
type Consumer interface {
	Name() string
	Consume(ctx context.Context, e Event) error
}

// Dispatcher fans events out to every registered consumer, synchronously, on
// the caller's goroutine. No ordering is guaranteed between consumers; each
// one must be correct on its own.
type Dispatcher struct {
	logger    *slog.Logger
	consumers []Consumer
}

func NewDispatcher(logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{logger: logger}
}

func (d *Dispatcher) Register(consumers ...Consumer) {
	d.consumers = append(d.consumers, consumers...)
}

// Publish delivers e to all consumers. Consumer errors are logged and
// swallowed: the source fact is already persisted and remains the truth
// regardless of downstream interpretation failures. Redelivery (via retry of
// the triggering operation) is absorbed by each consumer's receipt gate.
func (d *Dispatcher) Publish(ctx context.Context, e Event) {
	for _, c := range d.consumers {
		if err := c.Consume(ctx, e); err != nil {
			d.logger.ErrorContext(ctx, "event_consumer_failed",
				"consumer", c.Name(),
				"event_id", e.EventID(),
				"owner_id", e.Owner(),
				"error", err.Error(),
			)
		}
	}
}
