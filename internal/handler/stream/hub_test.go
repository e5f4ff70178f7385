//go:build unit

package stream_test

import (
	"testing"
	"time"

	"roombook/internal/handler/stream"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubBroadcastsToEverySubscriber(t *testing.T) {
	hub := stream.NewHub()
	a := hub.Subscribe()
	b := hub.Subscribe()
	defer hub.Unsubscribe(a)
	defer hub.Unsubscribe(b)

	hub.BookingsChanged()

	for _, ch := range []chan stream.Event{a, b} {
		select {
		case ev := <-ch:
			assert.Equal(t, stream.EventBookingsChanged, ev.Name)
		case <-time.After(time.Second):
			t.Fatal("expected event was not delivered")
		}
	}
}

func TestHubDropsEventsForSlowClient(t *testing.T) {
	hub := stream.NewHub()
	ch := hub.Subscribe()
	defer hub.Unsubscribe(ch)

	// Fill the buffer and keep going; the broadcaster must not block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			hub.BookingsChanged()
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broadcast blocked on a slow client")
	}
}

func TestHubUnsubscribeClosesChannel(t *testing.T) {
	hub := stream.NewHub()
	ch := hub.Subscribe()
	require.Equal(t, 1, hub.ClientCount())

	hub.Unsubscribe(ch)
	assert.Equal(t, 0, hub.ClientCount())

	_, open := <-ch
	assert.False(t, open)

	// Unsubscribing twice must be harmless.
	hub.Unsubscribe(ch)
}
