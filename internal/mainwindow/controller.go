// Package mainwindow owns the lifecycle of the single application window.
package mainwindow

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Mavwarf/mailshell/internal/badge"
	"github.com/Mavwarf/mailshell/internal/geometry"
)

// Host is the windowing toolkit as seen by the controller.
type Host interface {
	geometry.Window
	Show()
	Hide()
	Navigate(url string)
	OpenExternal(url string)
	// SetBounds applies size, and position when s.Positioned is set.
	SetBounds(s geometry.State)
	Quit()
}

// Endpoint picks the URL the window loads.
type Endpoint interface {
	Select() string
	ComposeURL(mailto string) (string, error)
}

// Handle identifies one live window.
type Handle struct {
	ID      uint64
	Created time.Time
}

// Controller holds at most one live window. Every exported method takes
// the same lock, so toolkit callbacks and the poller goroutine see a
// consistent cell.
type Controller struct {
	Host     Host
	Endpoint Endpoint
	Tracker  *geometry.Tracker
	Poller   *badge.Poller
	// Initial returns the bounds for a newly created window.
	Initial func() geometry.State
	// Menu installs the application menu. It must be idempotent.
	Menu func()
	// GeometryInterval is the bounds sampling period; zero disables sampling.
	GeometryInterval time.Duration
	// KeepAlive hides the window on close instead of quitting (macOS).
	// A window the toolkit hides by itself keeps its handle live, so
	// Activate shows it again rather than creating a new one.
	KeepAlive bool
	Log       zerolog.Logger

	mu     sync.Mutex
	handle *Handle
	seq    uint64
}

// Create returns the live window, creating it when there is none.
func (c *Controller) Create(ctx context.Context) *Handle {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.create(ctx)
}

func (c *Controller) create(ctx context.Context) *Handle {
	if c.handle != nil {
		return c.handle
	}

	if c.Menu != nil {
		c.Menu()
	}
	if c.Initial != nil {
		c.Host.SetBounds(c.Initial())
	}
	c.Host.Show()

	target := c.Endpoint.Select()
	c.Host.Navigate(target)

	c.seq++
	c.handle = &Handle{ID: c.seq, Created: time.Now()}

	if c.Tracker != nil {
		c.Tracker.Attach(ctx, c.Host, c.GeometryInterval)
	}
	if c.Poller != nil {
		c.Poller.Start(ctx)
	}
	c.Log.Info().Uint64("window", c.handle.ID).Str("url", target).Msg("window created")
	return c.handle
}

// Close persists the window geometry, stops background work and clears
// the cell. With KeepAlive the window is hidden; otherwise the app quits.
func (c *Controller) Close() {
	if !c.Shutdown() {
		return
	}
	if c.KeepAlive {
		c.Host.Hide()
		return
	}
	c.Host.Quit()
}

// Shutdown is Close without hiding or quitting, for use when the toolkit
// is already tearing the window down. It reports whether a window was live.
func (c *Controller) Shutdown() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.handle == nil {
		return false
	}

	if c.Tracker != nil {
		if err := c.Tracker.Save(); err != nil {
			c.Log.Warn().Err(err).Msg("save window state")
		}
		c.Tracker.Detach()
	}
	if c.Poller != nil {
		c.Poller.Stop()
	}
	c.Log.Info().Uint64("window", c.handle.ID).Msg("window closed")
	c.handle = nil
	return true
}

// Activate re-creates the window when none is live and brings an existing
// one to the front.
func (c *Controller) Activate(ctx context.Context) *Handle {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.handle != nil {
		c.Host.Show()
		return c.handle
	}
	return c.create(ctx)
}

// Reload navigates the live window to the currently selected URL.
func (c *Controller) Reload() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.handle == nil {
		return
	}
	target := c.Endpoint.Select()
	c.Log.Info().Str("url", target).Msg("reload")
	c.Host.Navigate(target)
}

// Compose shows the window on the compose page for a mailto: link.
func (c *Controller) Compose(ctx context.Context, mailto string) error {
	target, err := c.Endpoint.ComposeURL(mailto)
	if err != nil {
		return fmt.Errorf("mainwindow: %w", err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.handle == nil {
		c.create(ctx)
	} else {
		c.Host.Show()
	}
	c.Host.Navigate(target)
	return nil
}

// OpenWindow handles a page's request for a new window. The request is
// never honoured in-app; http, https and mailto targets go to the system
// handler exactly once. It reports whether the URL was dispatched.
func (c *Controller) OpenWindow(raw string) bool {
	if !External(raw) {
		c.Log.Warn().Str("url", raw).Msg("blocked window open")
		return false
	}
	c.Log.Debug().Str("url", raw).Msg("open external")
	c.Host.OpenExternal(raw)
	return true
}

// Live reports whether a window exists.
func (c *Controller) Live() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.handle != nil
}

// Handle returns the live window, if any.
func (c *Controller) Handle() (*Handle, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.handle, c.handle != nil
}

// External reports whether raw may be handed to the system browser or
// mail client.
func External(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return u.Host != ""
	case "mailto":
		return u.Opaque != "" || u.Path != ""
	}
	return false
}
