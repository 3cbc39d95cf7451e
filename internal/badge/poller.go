// Package badge polls the page for its unread count and forwards it to the
// OS badge. Any failure resets the badge to zero.
package badge

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultInterval is the polling period.
const DefaultInterval = time.Second

// UnreadCountSource reads the unread count from the loaded page.
type UnreadCountSource interface {
	TryReadCount(ctx context.Context) (int, error)
}

// Poller ticks on a fixed period. Ticks are not serialised: a slow
// extraction does not delay the next tick, and whichever extraction
// completes last sets the badge.
type Poller struct {
	Source   UnreadCountSource
	Sink     Sink
	Interval time.Duration
	// Live reports whether the window the source reads from still exists.
	// It is checked before each extraction and again before the result is
	// applied.
	Live func() bool
	// OnRead, when set, receives every count that was actually read. The
	// zero a failed read forces on the sink is never passed to it.
	OnRead func(n int)
	Log    zerolog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// Start runs the poller in the background until Stop or ctx is done.
// Starting an already running poller is a no-op.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return
	}
	ctx, p.cancel = context.WithCancel(ctx)
	p.done = make(chan struct{})
	go func(done chan struct{}) {
		defer close(done)
		p.Run(ctx)
	}(p.done)
}

// Stop halts ticking and waits for the tick loop to exit. In-flight
// extractions are not cancelled; their results are dropped by the
// liveness check.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Run ticks until ctx is done. Each tick's extraction runs in its own
// goroutine.
func (p *Poller) Run(ctx context.Context) {
	interval := p.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			go p.Tick(context.WithoutCancel(ctx))
		}
	}
}

// Tick performs one poll: skip when no window is live, otherwise read the
// count and forward it, or forward 0 on any failure. It reports the value
// applied and whether anything was applied.
func (p *Poller) Tick(ctx context.Context) (int, bool) {
	if !p.live() {
		return 0, false
	}
	n, err := p.Source.TryReadCount(ctx)
	if !p.live() {
		return 0, false
	}
	if err != nil {
		p.Log.Debug().Err(err).Msg("unread count unavailable")
		n = 0
	}
	if serr := p.Sink.SetBadgeCount(n); serr != nil {
		p.Log.Debug().Err(serr).Int("count", n).Msg("set badge")
	}
	if err == nil && p.OnRead != nil {
		p.OnRead(n)
	}
	return n, true
}

func (p *Poller) live() bool {
	return p.Live == nil || p.Live()
}
