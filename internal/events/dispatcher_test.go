package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInMemoryDispatcher_Publish(t *testing.T) {
	t.Parallel()

	d := NewInMemoryDispatcher()
	var calls []string
	first := errors.New("first failed")

	d.Subscribe(EventUserDeleted, func(_ context.Context, e Event) error {
		calls = append(calls, "a:"+e.UserID)
		return first
	})
	d.Subscribe(EventUserDeleted, func(_ context.Context, e Event) error {
		calls = append(calls, "b:"+e.UserID)
		return nil
	})
	d.Subscribe(EventPostCreated, func(context.Context, Event) error {
		calls = append(calls, "post")
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventUserDeleted, UserID: "u1"})
	assert.ErrorIs(t, err, first)
	assert.Equal(t, []string{"a:u1", "b:u1"}, calls)

	assert.NoError(t, d.Publish(context.Background(), Event{Type: "unknown"}))
}
