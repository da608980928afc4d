package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_PublishSubscribe(t *testing.T) {
	bus := NewBus(nil)
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := bus.Subscribe(ctx)
	require.NoError(t, err)

	sent := Event{
		Type:      TypeTicketsSold,
		SessionID: "s1",
		Flight:    "F1",
		Lines:     []string{"sold F1 1 0 1"},
		Timestamp: 42,
	}
	require.NoError(t, bus.Publish(sent))

	select {
	case got := <-ch:
		assert.Equal(t, sent, got)
		assert.Equal(t, "s1/F1", got.Key())
	case <-time.After(5 * time.Second):
		t.Fatal("event not delivered")
	}
}

func TestBus_CloseEndsSubscription(t *testing.T) {
	bus := NewBus(nil)

	ch, err := bus.Subscribe(context.Background())
	require.NoError(t, err)
	require.NoError(t, bus.Close())

	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("subscription not closed")
	}
}
