package deterrent

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/strikewarn/strikewarn-go/internal/logging"
)

// Device is the playback hardware boundary. PlayOnce plays the asset a single
// time and returns when done or when ctx is cancelled.
type Device interface {
	PlayOnce(ctx context.Context, asset Asset, volume float64) error
}

// NullDevice discards playback, pacing each PlayOnce by the asset duration.
// Used when no audio hardware is wired up and in tests.
type NullDevice struct{}

// PlayOnce waits for the asset duration or context cancellation.
func (NullDevice) PlayOnce(ctx context.Context, asset Asset, volume float64) error {
	select {
	case <-time.After(asset.Duration):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Status is a snapshot of the player state.
type Status struct {
	Active bool      `json:"active"`
	Sound  string    `json:"sound,omitempty"`
	Since  time.Time `json:"since,omitempty"`
}

// playback is the bookkeeping for one running playback goroutine.
type playback struct {
	sound  string
	since  time.Time
	cancel context.CancelFunc
	done   chan struct{}
}

// Player runs at most one continuous looped playback at a time. Starting a
// new sound always preempts the running one; the single-active invariant is
// enforced by construction, not detected after the fact.
type Player struct {
	mu          sync.Mutex
	library     Library
	device      Device
	current     *playback
	stopTimeout time.Duration
	statusFn    func(active bool)
	taskCount   atomic.Int32 // live playback goroutines, test instrumentation
	logger      *slog.Logger
}

// NewPlayer creates a player over the given library and device. stopTimeout
// bounds how long Stop waits for the playback goroutine to acknowledge.
func NewPlayer(library Library, device Device, stopTimeout time.Duration) *Player {
	if device == nil {
		device = NullDevice{}
	}
	if stopTimeout <= 0 {
		stopTimeout = 2 * time.Second
	}
	return &Player{
		library:     library,
		device:      device,
		stopTimeout: stopTimeout,
		logger:      logging.ForService("deterrent"),
	}
}

// SetStatusObserver registers a callback notified when playback starts and
// stops. The upstream analyzer uses it to suppress audio analysis while a
// deterrent plays, so the system does not react to its own sounds.
func (p *Player) SetStatusObserver(fn func(active bool)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.statusFn = fn
}

// Play starts continuous looped playback of the named sound until explicitly
// stopped, preempting any playback in progress. Returns false if the sound is
// not in the library.
func (p *Player) Play(soundID string, volume float64) bool {
	asset, ok := p.library.Get(soundID)
	if !ok {
		p.logger.Warn("predator sound not found in library",
			"sound", soundID,
			"available", p.library.ListIDs())
		return false
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// Preempt the running playback before starting the new one. Holding the
	// lock across stop and start guarantees no two playback goroutines are
	// ever alive at once.
	p.stopLocked()

	ctx, cancel := context.WithCancel(context.Background())
	pb := &playback{
		sound:  soundID,
		since:  time.Now(),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	p.current = pb

	statusFn := p.statusFn
	p.taskCount.Add(1)
	go p.playbackLoop(ctx, pb, asset, volume, statusFn)

	p.logger.Info("started continuous playback", "sound", soundID, "volume", volume)
	return true
}

// playbackLoop repeats the asset until cancelled.
func (p *Player) playbackLoop(ctx context.Context, pb *playback, asset Asset, volume float64, statusFn func(bool)) {
	defer func() {
		// The inactive notification must precede the done signal: a
		// preempting Play waits on done before notifying active, and the
		// observer must never see the stale inactive after the new active.
		if statusFn != nil {
			statusFn(false)
		}
		p.taskCount.Add(-1)
		close(pb.done)
	}()

	if statusFn != nil {
		statusFn(true)
	}

	for {
		if err := p.device.PlayOnce(ctx, asset, volume); err != nil {
			if ctx.Err() != nil {
				return
			}
			p.logger.Error("playback error", "sound", asset.ID, "error", err)
			// Back off briefly so a failing device cannot spin the loop.
			select {
			case <-time.After(time.Second):
			case <-ctx.Done():
				return
			}
		}
		select {
		case <-ctx.Done():
			return
		default:
		}
	}
}

// Stop terminates any in-progress playback. Idempotent: stopping when nothing
// plays is a no-op. Waits up to the stop timeout for the playback goroutine
// to acknowledge; on timeout the player proceeds and clears its bookkeeping
// anyway so state cannot desync indefinitely.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

// stopLocked requires p.mu held.
func (p *Player) stopLocked() {
	if p.current == nil {
		return
	}

	pb := p.current
	pb.cancel()

	select {
	case <-pb.done:
	case <-time.After(p.stopTimeout):
		p.logger.Warn("playback goroutine did not acknowledge stop in time",
			"sound", pb.sound,
			"timeout", p.stopTimeout)
	}

	p.current = nil
}

// Status returns a snapshot of the current playback state.
func (p *Player) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current == nil {
		return Status{}
	}
	return Status{
		Active: true,
		Sound:  p.current.sound,
		Since:  p.current.since,
	}
}

// ActiveTasks reports the number of live playback goroutines. Exposed for
// invariant checks in tests; must never exceed one.
func (p *Player) ActiveTasks() int {
	return int(p.taskCount.Load())
}
