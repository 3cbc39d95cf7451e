// mailshell wraps the Fastmail web app in a native window with an unread
// badge, a beta toggle and new-mail alerts.
//
// Usage: mailshell [--config PATH] [--beta|--stable] [--ephemeral] [mailto:...]
package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/logger"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"

	"github.com/Mavwarf/mailshell/internal/alert"
	"github.com/Mavwarf/mailshell/internal/appmenu"
	"github.com/Mavwarf/mailshell/internal/badge"
	"github.com/Mavwarf/mailshell/internal/bridge"
	"github.com/Mavwarf/mailshell/internal/config"
	"github.com/Mavwarf/mailshell/internal/desktop"
	"github.com/Mavwarf/mailshell/internal/dock"
	"github.com/Mavwarf/mailshell/internal/endpoint"
	"github.com/Mavwarf/mailshell/internal/geometry"
	"github.com/Mavwarf/mailshell/internal/logging"
	"github.com/Mavwarf/mailshell/internal/mainwindow"
	"github.com/Mavwarf/mailshell/internal/paths"
	"github.com/Mavwarf/mailshell/internal/prefs"
	"github.com/Mavwarf/mailshell/internal/silent"
)

var version = "dev"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "mailshell: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	f, err := parseArgs(args)
	if err != nil {
		return err
	}
	if f.version {
		fmt.Println("mailshell", version)
		return nil
	}
	if f.register || f.unregister {
		return mailtoRegistration(f.register)
	}

	cfg, err := config.Load(f.configPath)
	if err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}
	if err := os.MkdirAll(paths.DataDir(), paths.DirPerm); err != nil {
		return fmt.Errorf("data dir: %w", err)
	}

	logOpts := logging.Options{Debug: cfg.Options.Debug}
	if cfg.Options.Log {
		logOpts.File = paths.In("", paths.LogFileName)
	}
	log, logCloser, err := logging.New(logOpts)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	storage := cfg.Options.Storage
	if f.ephemeral {
		storage = "memory"
	}
	store, err := prefs.Open(storage, "")
	if err != nil {
		return err
	}
	defer store.Close()
	log.Debug().Str("storage", storage).Str("path", store.Path()).Msg("preferences opened")
	if keys, err := prefs.Keys(store); err == nil {
		log.Debug().Strs("keys", keys).Msg("stored preferences")
	}

	if f.beta != nil {
		if err := prefs.SetBool(store, prefs.KeyBetaEnabled, *f.beta); err != nil {
			log.Warn().Err(err).Msg("set beta preference")
		}
	}

	app := newApp(cfg, store, f.mailto, log)
	initial := geometry.ComputeInitial(store,
		geometry.Size{Width: cfg.Window.Width, Height: cfg.Window.Height},
		geometry.Size{Width: cfg.Window.MinWidth, Height: cfg.Window.MinHeight})

	wailsLevel := logger.INFO
	if cfg.Options.Debug {
		wailsLevel = logger.DEBUG
	}

	return wails.Run(&options.App{
		Title:       windowTitle,
		Width:       initial.Width,
		Height:      initial.Height,
		MinWidth:    cfg.Window.MinWidth,
		MinHeight:   cfg.Window.MinHeight,
		StartHidden: true,
		// The red close button hides the window on macOS; quitting still
		// goes through OnBeforeClose.
		HideWindowOnClose: runtime.GOOS == "darwin",
		AssetServer: &assetserver.Options{
			Handler: bootstrapPage(),
		},
		// The page bridge posts from the Fastmail origins, not the
		// bootstrap page's.
		BindingsAllowedOrigins: strings.Join(app.selector.Origins(), ","),
		Menu:          app.menu.Build(),
		OnStartup:     app.startup,
		OnDomReady:    app.domReady,
		OnBeforeClose: app.beforeClose,
		OnShutdown:    app.shutdown,
		SingleInstanceLock: &options.SingleInstanceLock{
			UniqueId:               "com.mavwarf.mailshell",
			OnSecondInstanceLaunch: app.secondInstance,
		},
		Logger:   logging.WailsLogger{Log: log},
		LogLevel: wailsLevel,
	})
}

// newApp wires every component around the Wails host.
func newApp(cfg config.Config, store prefs.Store, mailto string, log zerolog.Logger) *App {
	app := &App{
		ready:  make(chan struct{}),
		log:    log,
		mailto: mailto,
		selector: endpoint.Selector{
			Store:   store,
			Stable:  cfg.Options.StableURL,
			Beta:    cfg.Options.BetaURL,
			Compose: cfg.Options.ComposeURL,
		},
		alerter: alert.New(cfg, "", log),
		mute:    silent.Mute{Store: store},
	}
	app.alerter.Muted = app.mute.Active

	collector := bridge.NewCollector()
	source := &bridge.Source{
		Eval:         app,
		Collector:    collector,
		MailboxClass: cfg.Badge.MailboxClass,
		BadgeClass:   cfg.Badge.BadgeClass,
		Timeout:      time.Duration(cfg.Badge.EvalTimeoutMillis) * time.Millisecond,
	}

	minSize := geometry.Size{Width: cfg.Window.MinWidth, Height: cfg.Window.MinHeight}
	app.ctrl = &mainwindow.Controller{
		Host:     app,
		Endpoint: app.selector,
		Tracker:  geometry.NewTracker(store, minSize, log),
		Initial: func() geometry.State {
			return geometry.ComputeInitial(store,
				geometry.Size{Width: cfg.Window.Width, Height: cfg.Window.Height}, minSize)
		},
		GeometryInterval: time.Duration(cfg.Options.GeometryMillis) * time.Millisecond,
		// On macOS the close button only hides the window, so the handle
		// stays live while hidden and Activate shows it again.
		KeepAlive:        runtime.GOOS == "darwin",
		Log:              log.With().Str("component", "window").Logger(),
	}
	app.ctrl.Poller = &badge.Poller{
		Source:   source,
		Sink:     &badge.Observer{OnChange: app.onCount},
		OnRead:   app.alerter.Observe,
		Interval: time.Duration(cfg.Badge.PollMillis) * time.Millisecond,
		Live:     app.ctrl.Live,
		Log:      log.With().Str("component", "badge").Logger(),
	}

	app.menu = &appmenu.Builder{
		Store:   store,
		Reload:  app.ctrl.Reload,
		Refresh: app.refreshMenu,
		Mac:     runtime.GOOS == "darwin",
		Log:     log,
	}
	app.ctrl.Menu = func() { app.menu.Build() }

	app.dispatcher = &bridge.Dispatcher{
		Collector: collector,
		OnOpen:    func(u string) { app.ctrl.OpenWindow(u) },
		Log:       log,
	}

	if cfg.Badge.Dock {
		if d, err := dock.New(desktop.AppID); err != nil {
			log.Debug().Err(err).Msg("dock badge unavailable")
		} else {
			app.dock = d
			app.sinks = append(app.sinks, d)
		}
	}
	if cfg.Badge.Title {
		app.sinks = append(app.sinks, badge.SinkFunc(app.setTitle))
	}
	if runtime.GOOS != "darwin" {
		app.tray = &trayState{}
		app.sinks = append(app.sinks, app.tray)
		go runTray(app, app.tray)
	}
	return app
}

// bootstrapPage serves the blank page the window shows until the first
// navigation to Fastmail.
func bootstrapPage() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		io.WriteString(w, `<!DOCTYPE html><html><body style="background:#ffffff"></body></html>`)
	})
}

func mailtoRegistration(register bool) error {
	if !register {
		if err := desktop.UnregisterMailto(); err != nil {
			return err
		}
		fmt.Println("mailto: handler removed")
		return nil
	}
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locate executable: %w", err)
	}
	if err := desktop.RegisterMailto(exe); err != nil {
		return err
	}
	fmt.Println("mailto: handler registered for", exe)
	if runtime.GOOS == "windows" {
		fmt.Println("Pick mailshell under Settings > Apps > Default apps to make it the default.")
	}
	return nil
}
