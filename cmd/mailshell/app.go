package main

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/wailsapp/wails/v2/pkg/options"
	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"github.com/Mavwarf/mailshell/internal/alert"
	"github.com/Mavwarf/mailshell/internal/appmenu"
	"github.com/Mavwarf/mailshell/internal/badge"
	"github.com/Mavwarf/mailshell/internal/bridge"
	"github.com/Mavwarf/mailshell/internal/dock"
	"github.com/Mavwarf/mailshell/internal/endpoint"
	"github.com/Mavwarf/mailshell/internal/geometry"
	"github.com/Mavwarf/mailshell/internal/mainwindow"
	"github.com/Mavwarf/mailshell/internal/silent"
)

const (
	windowTitle  = "Fastmail"
	muteDuration = time.Hour
)

// App adapts the Wails runtime to the window controller and routes page
// events. Its methods implement mainwindow.Host and bridge.Evaluator.
type App struct {
	ctx   context.Context
	ready chan struct{} // closed when Wails startup completes
	log   zerolog.Logger

	selector   endpoint.Selector
	ctrl       *mainwindow.Controller
	menu       *appmenu.Builder
	dispatcher *bridge.Dispatcher
	alerter    *alert.Alerter
	mute       silent.Mute
	sinks      badge.Fanout
	dock       *dock.Badge
	tray       *trayState

	// mailto is opened once the window exists.
	mailto string

	mu         sync.Mutex
	loaded     bool
	pendingURL string

	quitting atomic.Bool
}

func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
	wailsRuntime.EventsOn(ctx, bridge.EventName, a.dispatcher.Handle)

	a.ctrl.Create(ctx)
	if a.mailto != "" {
		if err := a.ctrl.Compose(ctx, a.mailto); err != nil {
			a.log.Warn().Err(err).Msg("open mailto")
		}
	}
	close(a.ready)
}

// domReady fires for the bootstrap page. The first call releases the
// navigation queued by Create.
func (a *App) domReady(ctx context.Context) {
	a.mu.Lock()
	first := !a.loaded
	a.loaded = true
	target := a.pendingURL
	a.pendingURL = ""
	a.mu.Unlock()

	if first && target != "" {
		wailsRuntime.WindowExecJS(ctx, bridge.NavigateScript(target))
		return
	}
	wailsRuntime.WindowExecJS(ctx, bridge.InterceptScript())
}

// beforeClose runs when the toolkit is about to close the window. Window
// state is saved and background work stopped before the process exits.
func (a *App) beforeClose(ctx context.Context) bool {
	if !a.quitting.Swap(true) {
		a.ctrl.Shutdown()
	}
	return false
}

func (a *App) shutdown(ctx context.Context) {
	a.alerter.Wait()
	if a.dock != nil {
		a.dock.SetBadgeCount(0)
		a.dock.Close()
	}
	if a.tray != nil {
		a.tray.quit()
	}
}

func (a *App) secondInstance(data options.SecondInstanceData) {
	<-a.ready
	a.log.Info().Strs("args", data.Args).Msg("second instance")
	if link := mailtoIn(data.Args); link != "" {
		if err := a.ctrl.Compose(a.ctx, link); err != nil {
			a.log.Warn().Err(err).Msg("open mailto")
		}
		return
	}
	a.ctrl.Activate(a.ctx)
}

// started reports whether startup has completed. a.ctx may only be read
// from other goroutines once it has.
func (a *App) started() bool {
	select {
	case <-a.ready:
		return true
	default:
		return false
	}
}

// ShowWindow is used by the tray.
func (a *App) ShowWindow() {
	<-a.ready
	a.ctrl.Activate(a.ctx)
}

// RequestQuit closes the window through the controller, which persists
// its state and then calls Quit.
func (a *App) RequestQuit() {
	<-a.ready
	a.ctrl.Close()
}

// ToggleMute silences alerts for an hour, or lifts an active mute. It
// reports whether alerts are muted afterwards.
func (a *App) ToggleMute() bool {
	if a.mute.Active() {
		if err := a.mute.Disable(); err != nil {
			a.log.Warn().Err(err).Msg("unmute alerts")
			return true
		}
		a.log.Info().Msg("alerts unmuted")
		return false
	}
	if err := a.mute.Enable(muteDuration); err != nil {
		a.log.Warn().Err(err).Msg("mute alerts")
		return false
	}
	until, _ := a.mute.Until()
	a.log.Info().Time("until", until).Msg("alerts muted")
	return true
}

// onCount receives every badge change, including the zero a failed read
// forces. Alerts are fed separately from successful reads only.
func (a *App) onCount(prev, next int) {
	a.log.Debug().Int("prev", prev).Int("unread", next).Msg("unread changed")
	if err := a.sinks.SetBadgeCount(next); err != nil {
		a.log.Debug().Err(err).Msg("badge sinks")
	}
}

func (a *App) setTitle(n int) error {
	if a.ctx == nil {
		return nil
	}
	title := windowTitle
	if n > 0 {
		title = fmt.Sprintf("%s (%d)", windowTitle, n)
	}
	wailsRuntime.WindowSetTitle(a.ctx, title)
	return nil
}

// refreshMenu may run on the tray goroutine before startup has finished;
// the menu Wails installs at startup already carries the new state then.
func (a *App) refreshMenu() {
	if a.started() {
		wailsRuntime.MenuUpdateApplicationMenu(a.ctx)
	}
	if a.tray != nil {
		a.tray.setBeta(a.selector.BetaEnabled())
	}
}

// --- mainwindow.Host ---

func (a *App) Bounds() (geometry.State, bool) {
	if wailsRuntime.WindowIsMinimised(a.ctx) {
		return geometry.State{}, false
	}
	x, y := wailsRuntime.WindowGetPosition(a.ctx)
	w, h := wailsRuntime.WindowGetSize(a.ctx)
	return geometry.State{X: x, Y: y, Width: w, Height: h, Positioned: true}, true
}

func (a *App) SetBounds(s geometry.State) {
	wailsRuntime.WindowSetSize(a.ctx, s.Width, s.Height)
	if s.Positioned {
		wailsRuntime.WindowSetPosition(a.ctx, s.X, s.Y)
		return
	}
	wailsRuntime.WindowCenter(a.ctx)
}

func (a *App) Show() {
	wailsRuntime.WindowUnminimise(a.ctx)
	wailsRuntime.WindowShow(a.ctx)
}

func (a *App) Hide() {
	wailsRuntime.WindowHide(a.ctx)
}

// Navigate loads url in the window. Until the bootstrap page is ready the
// latest request is queued.
func (a *App) Navigate(url string) {
	a.mu.Lock()
	if !a.loaded {
		a.pendingURL = url
		a.mu.Unlock()
		return
	}
	a.mu.Unlock()
	wailsRuntime.WindowExecJS(a.ctx, bridge.NavigateScript(url))
}

func (a *App) OpenExternal(url string) {
	wailsRuntime.BrowserOpenURL(a.ctx, url)
}

func (a *App) Quit() {
	a.quitting.Store(true)
	wailsRuntime.Quit(a.ctx)
}

// --- bridge.Evaluator ---

// ExecJS runs js after making sure the link interceptor is installed in
// the current document; the remote page reloads without notice.
func (a *App) ExecJS(js string) {
	wailsRuntime.WindowExecJS(a.ctx, bridge.InterceptScript()+js)
}
