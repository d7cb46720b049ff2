package notification

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/strikewarn/strikewarn-go/internal/logging"
)

// Subscriber receives notifications. A returned error is logged, never
// propagated to the publisher or to other subscribers.
type Subscriber func(n *Notification) error

// Broadcaster fans notifications out to subscribers from one long-lived
// worker goroutine. Publish never blocks the caller: when the buffer is full
// the notification is dropped and counted.
type Broadcaster struct {
	mu          sync.RWMutex
	subscribers map[string]Subscriber

	ch      chan *Notification
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	started atomic.Bool

	dropped atomic.Uint64
	logger  *slog.Logger
}

// NewBroadcaster creates a broadcaster with the given buffer size.
func NewBroadcaster(bufferSize int) *Broadcaster {
	if bufferSize <= 0 {
		bufferSize = 64
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Broadcaster{
		subscribers: make(map[string]Subscriber),
		ch:          make(chan *Notification, bufferSize),
		ctx:         ctx,
		cancel:      cancel,
		logger:      logging.ForService("notification"),
	}
}

// Start launches the fan-out worker. Idempotent.
func (b *Broadcaster) Start() {
	if !b.started.CompareAndSwap(false, true) {
		return
	}
	b.wg.Add(1)
	go b.run()
}

// Stop shuts the worker down and waits for it to drain.
func (b *Broadcaster) Stop() {
	if !b.started.Load() {
		return
	}
	b.cancel()
	b.wg.Wait()
}

// Subscribe registers a named subscriber. Re-registering a name replaces the
// previous subscriber.
func (b *Broadcaster) Subscribe(name string, fn Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[name] = fn
}

// Unsubscribe removes a subscriber by name.
func (b *Broadcaster) Unsubscribe(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.subscribers, name)
}

// Publish enqueues a notification without blocking. Returns false if the
// buffer was full and the notification was dropped.
func (b *Broadcaster) Publish(n *Notification) bool {
	select {
	case b.ch <- n:
		return true
	default:
		b.dropped.Add(1)
		b.logger.Warn("notification dropped, buffer full",
			"type", n.Type,
			"dropped_total", b.dropped.Load())
		return false
	}
}

// Dropped returns the number of notifications dropped due to a full buffer.
func (b *Broadcaster) Dropped() uint64 {
	return b.dropped.Load()
}

// run is the single fan-out worker.
func (b *Broadcaster) run() {
	defer b.wg.Done()
	for {
		select {
		case n := <-b.ch:
			b.deliver(n)
		case <-b.ctx.Done():
			// Drain what is already queued before exiting.
			for {
				select {
				case n := <-b.ch:
					b.deliver(n)
				default:
					return
				}
			}
		}
	}
}

// deliver fans one notification out, isolating each subscriber: a panic or
// error in one listener never reaches the next.
func (b *Broadcaster) deliver(n *Notification) {
	b.mu.RLock()
	subs := make(map[string]Subscriber, len(b.subscribers))
	for name, fn := range b.subscribers {
		subs[name] = fn
	}
	b.mu.RUnlock()

	for name, fn := range subs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					b.logger.Error("subscriber panicked", "subscriber", name, "panic", r)
				}
			}()
			if err := fn(n); err != nil {
				b.logger.Error("subscriber delivery failed", "subscriber", name, "error", err)
			}
		}()
	}
}
