package notification

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcastDeliversToAllSubscribers(t *testing.T) {
	t.Parallel()

	b := NewBroadcaster(16)
	b.Start()
	defer b.Stop()

	var first, second atomic.Int32
	b.Subscribe("first", func(n *Notification) error {
		first.Add(1)
		return nil
	})
	b.Subscribe("second", func(n *Notification) error {
		second.Add(1)
		return nil
	})

	require.True(t, b.Publish(New(TypeAlert, PriorityHigh, "test", "payload")))

	assert.Eventually(t, func() bool {
		return first.Load() == 1 && second.Load() == 1
	}, time.Second, 5*time.Millisecond)
}

func TestSubscriberFailureIsIsolated(t *testing.T) {
	t.Parallel()

	b := NewBroadcaster(16)
	b.Start()
	defer b.Stop()

	var delivered atomic.Int32
	b.Subscribe("panicking", func(n *Notification) error {
		panic("listener exploded")
	})
	b.Subscribe("failing", func(n *Notification) error {
		return assert.AnError
	})
	b.Subscribe("healthy", func(n *Notification) error {
		delivered.Add(1)
		return nil
	})

	for range 3 {
		require.True(t, b.Publish(New(TypeAlert, PriorityHigh, "test", "payload")))
	}

	assert.Eventually(t, func() bool { return delivered.Load() == 3 },
		time.Second, 5*time.Millisecond)
}

func TestPublishDropsWhenBufferFull(t *testing.T) {
	t.Parallel()

	// Worker not started: the channel fills and further publishes drop.
	b := NewBroadcaster(2)

	assert.True(t, b.Publish(New(TypeSystem, PriorityLow, "a", "")))
	assert.True(t, b.Publish(New(TypeSystem, PriorityLow, "b", "")))
	assert.False(t, b.Publish(New(TypeSystem, PriorityLow, "c", "")))
	assert.Equal(t, uint64(1), b.Dropped())
}

func TestStopDrainsQueued(t *testing.T) {
	t.Parallel()

	b := NewBroadcaster(16)
	var delivered atomic.Int32
	b.Subscribe("counter", func(n *Notification) error {
		delivered.Add(1)
		return nil
	})

	for range 5 {
		require.True(t, b.Publish(New(TypeAlert, PriorityMedium, "queued", "")))
	}

	b.Start()
	b.Stop()

	assert.Equal(t, int32(5), delivered.Load(), "queued notifications must be drained on stop")
}

func TestUnsubscribe(t *testing.T) {
	t.Parallel()

	b := NewBroadcaster(16)
	b.Start()
	defer b.Stop()

	var mu sync.Mutex
	count := 0
	b.Subscribe("temp", func(n *Notification) error {
		mu.Lock()
		count++
		mu.Unlock()
		return nil
	})

	require.True(t, b.Publish(New(TypeAlert, PriorityLow, "one", "")))
	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return count == 1
	}, time.Second, 5*time.Millisecond)

	b.Unsubscribe("temp")
	require.True(t, b.Publish(New(TypeAlert, PriorityLow, "two", "")))
	time.Sleep(50 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, count)
}

func TestNotificationMetadataChaining(t *testing.T) {
	t.Parallel()

	n := New(TypeAlert, PriorityCritical, "title", "msg").
		With("species", "Corvus splendens").
		With("risk_score", 0.85)

	assert.Equal(t, "Corvus splendens", n.Metadata["species"])
	assert.Equal(t, 0.85, n.Metadata["risk_score"])
	assert.NotZero(t, n.ID)
	assert.False(t, n.Timestamp.IsZero())
}
