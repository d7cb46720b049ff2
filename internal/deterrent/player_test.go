package deterrent

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDevice counts play invocations and blocks until cancelled, simulating
// continuous playback.
type fakeDevice struct {
	plays atomic.Int32
}

func (d *fakeDevice) PlayOnce(ctx context.Context, asset Asset, volume float64) error {
	d.plays.Add(1)
	select {
	case <-time.After(10 * time.Millisecond):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func testLibrary() *MemoryLibrary {
	return NewMemoryLibrary(
		Asset{ID: "hawk_screech", Duration: 10 * time.Millisecond},
		Asset{ID: "eagle_cry", Duration: 10 * time.Millisecond},
		Asset{ID: "owl_hoot", Duration: 10 * time.Millisecond},
	)
}

func newTestPlayer(t *testing.T) (*Player, *fakeDevice) {
	t.Helper()
	device := &fakeDevice{}
	p := NewPlayer(testLibrary(), device, time.Second)
	t.Cleanup(p.Stop)
	return p, device
}

func TestPlayUnknownSoundFails(t *testing.T) {
	t.Parallel()

	p, _ := newTestPlayer(t)

	assert.False(t, p.Play("lion_roar", 0.8))
	assert.False(t, p.Status().Active)
	assert.Zero(t, p.ActiveTasks())
}

func TestPlayStartsLoopedPlayback(t *testing.T) {
	t.Parallel()

	p, device := newTestPlayer(t)

	require.True(t, p.Play("hawk_screech", 0.8))

	status := p.Status()
	assert.True(t, status.Active)
	assert.Equal(t, "hawk_screech", status.Sound)
	assert.Equal(t, 1, p.ActiveTasks())

	// The loop must repeat the asset while not stopped.
	assert.Eventually(t, func() bool { return device.plays.Load() >= 2 },
		time.Second, 5*time.Millisecond)
}

func TestStopIsIdempotent(t *testing.T) {
	t.Parallel()

	p, _ := newTestPlayer(t)

	// Stopping with nothing playing is a no-op.
	p.Stop()
	assert.False(t, p.Status().Active)

	require.True(t, p.Play("hawk_screech", 0.8))
	p.Stop()
	first := p.Status()
	p.Stop()
	second := p.Status()

	assert.Equal(t, first, second, "double stop must leave identical state")
	assert.False(t, second.Active)
	assert.Zero(t, p.ActiveTasks())
}

func TestPlayPreemptsPrevious(t *testing.T) {
	t.Parallel()

	p, _ := newTestPlayer(t)

	require.True(t, p.Play("hawk_screech", 0.8))
	require.True(t, p.Play("eagle_cry", 0.8))
	require.True(t, p.Play("owl_hoot", 0.8))

	status := p.Status()
	assert.Equal(t, "owl_hoot", status.Sound, "last started sound must be the active one")
	assert.Equal(t, 1, p.ActiveTasks(), "at most one playback goroutine may be alive")
}

func TestAtMostOneTaskUnderConcurrentStarts(t *testing.T) {
	t.Parallel()

	p, _ := newTestPlayer(t)
	sounds := []string{"hawk_screech", "eagle_cry", "owl_hoot"}

	var wg sync.WaitGroup
	for i := range 12 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			p.Play(sounds[n%len(sounds)], 0.8)
			assert.LessOrEqual(t, p.ActiveTasks(), 1)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, p.ActiveTasks())
	p.Stop()
	assert.Zero(t, p.ActiveTasks())
}

func TestRestartSameSound(t *testing.T) {
	t.Parallel()

	p, _ := newTestPlayer(t)

	require.True(t, p.Play("hawk_screech", 0.8))
	firstSince := p.Status().Since
	time.Sleep(5 * time.Millisecond)
	require.True(t, p.Play("hawk_screech", 0.8))

	status := p.Status()
	assert.True(t, status.Active)
	assert.Equal(t, "hawk_screech", status.Sound)
	assert.True(t, status.Since.After(firstSince), "restart must reset the start time")
	assert.Equal(t, 1, p.ActiveTasks())
}

func TestStatusObserverNotifications(t *testing.T) {
	t.Parallel()

	p, _ := newTestPlayer(t)

	var mu sync.Mutex
	var events []bool
	p.SetStatusObserver(func(active bool) {
		mu.Lock()
		events = append(events, active)
		mu.Unlock()
	})

	require.True(t, p.Play("hawk_screech", 0.8))
	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(events) >= 1 && events[0]
	}, time.Second, 5*time.Millisecond)

	p.Stop()
	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, events)
	assert.False(t, events[len(events)-1], "stop must notify the observer that no sound is active")
}
