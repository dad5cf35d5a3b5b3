package event

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type recordingConsumer struct {
	name string
	err  error
	seen []Event
}

func (c *recordingConsumer) Name() string { return c.name }

func (c *recordingConsumer) Consume(_ context.Context, e Event) error {
	c.seen = append(c.seen, e)
	return c.err
}

func TestPublish_FansOutToAllConsumers(t *testing.T) {
	d := NewDispatcher(nil)
	first := &recordingConsumer{name: "first"}
	second := &recordingConsumer{name: "second"}
	d.Register(first, second)

	evt := DayClosed{
		Base: Base{ID: "evt-1", OwnerID: "owner-1", OccurredAt: time.Now()},
		Date: time.Now(),
	}
	d.Publish(context.Background(), evt)

	assert.Len(t, first.seen, 1)
	assert.Len(t, second.seen, 1)
}

func TestPublish_ConsumerFailureDoesNotStopOthers(t *testing.T) {
	d := NewDispatcher(nil)
	failing := &recordingConsumer{name: "failing", err: errors.New("downstream broken")}
	healthy := &recordingConsumer{name: "healthy"}
	d.Register(failing, healthy)

	evt := TaskCreated{
		Base:   Base{ID: "evt-1", OwnerID: "owner-1", OccurredAt: time.Now()},
		TaskID: "task-a",
	}
	d.Publish(context.Background(), evt)

	assert.Len(t, failing.seen, 1)
	assert.Len(t, healthy.seen, 1, "failure in one consumer is isolated")
}

func TestBase_Accessors(t *testing.T) {
	at := time.Date(2025, 6, 16, 12, 0, 0, 0, time.UTC)
	b := Base{ID: "evt-1", OwnerID: "owner-1", OccurredAt: at}
	assert.Equal(t, "evt-1", b.EventID())
	assert.Equal(t, "owner-1", b.Owner())
	assert.Equal(t, at, b.At())
}
