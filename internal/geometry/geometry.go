// Package geometry restores and persists the main window's position and size.
package geometry

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Mavwarf/mailshell/internal/prefs"
)

// Size is a width/height pair.
type Size struct {
	Width  int
	Height int
}

// State is the persisted window geometry. Positioned is false on first run,
// when the OS should choose the placement.
type State struct {
	X          int  `json:"x"`
	Y          int  `json:"y"`
	Width      int  `json:"width"`
	Height     int  `json:"height"`
	Positioned bool `json:"-"`
}

// Window reports the live bounds of a window. ok is false while the window
// is minimised or not yet mapped.
type Window interface {
	Bounds() (s State, ok bool)
}

// ComputeInitial returns the last persisted bounds, or defaults with no
// position when nothing usable was stored. Stored sizes below min are
// rejected as corrupt.
func ComputeInitial(store prefs.Store, defaults, min Size) State {
	fallback := State{Width: defaults.Width, Height: defaults.Height}

	raw, ok, err := store.Get(prefs.KeyWindowState)
	if err != nil || !ok {
		return fallback
	}
	var s State
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return fallback
	}
	if s.Width < min.Width || s.Height < min.Height {
		return fallback
	}
	s.Positioned = true
	return s
}

// Tracker mirrors a window's bounds into the preference store. Every change
// is written immediately.
type Tracker struct {
	store prefs.Store
	min   Size
	log   zerolog.Logger

	mu     sync.Mutex
	win    Window
	last   State
	cancel context.CancelFunc
}

func NewTracker(store prefs.Store, min Size, log zerolog.Logger) *Tracker {
	return &Tracker{store: store, min: min, log: log.With().Str("component", "geometry").Logger()}
}

// Attach starts tracking win. When interval is positive the window is
// sampled on that period and each change is persisted; the toolkit has no
// move/resize callbacks, so sampling stands in for them.
func (t *Tracker) Attach(ctx context.Context, win Window, interval time.Duration) {
	t.Detach()

	t.mu.Lock()
	t.win = win
	if s, ok := win.Bounds(); ok {
		t.last = s
	}
	var sctx context.Context
	if interval > 0 {
		sctx, t.cancel = context.WithCancel(ctx)
	}
	t.mu.Unlock()

	if sctx != nil {
		go t.observe(sctx, interval)
	}
}

// Detach stops sampling. Already persisted state is kept.
func (t *Tracker) Detach() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	t.win = nil
}

func (t *Tracker) observe(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.sample()
		}
	}
}

func (t *Tracker) sample() {
	t.mu.Lock()
	win := t.win
	last := t.last
	t.mu.Unlock()
	if win == nil {
		return
	}
	s, ok := win.Bounds()
	if !ok || sameBounds(s, last) {
		return
	}
	if err := t.Update(s); err != nil {
		t.log.Warn().Err(err).Msg("persist window state")
	}
}

// Update records a move/resize and persists it. Sizes below the minimum
// (minimised or collapsed windows) are ignored.
func (t *Tracker) Update(s State) error {
	if s.Width < t.min.Width || s.Height < t.min.Height {
		return nil
	}
	t.mu.Lock()
	t.last = s
	t.mu.Unlock()

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("geometry: marshal: %w", err)
	}
	if err := t.store.Set(prefs.KeyWindowState, string(data)); err != nil {
		return fmt.Errorf("geometry: %w", err)
	}
	t.log.Debug().Int("x", s.X).Int("y", s.Y).Int("width", s.Width).Int("height", s.Height).Msg("window state saved")
	return nil
}

// Save persists the attached window's current bounds, if it has any.
func (t *Tracker) Save() error {
	t.mu.Lock()
	win := t.win
	t.mu.Unlock()
	if win == nil {
		return nil
	}
	s, ok := win.Bounds()
	if !ok {
		return nil
	}
	return t.Update(s)
}

func sameBounds(a, b State) bool {
	return a.X == b.X && a.Y == b.Y && a.Width == b.Width && a.Height == b.Height
}
