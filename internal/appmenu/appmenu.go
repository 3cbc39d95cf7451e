// Package appmenu builds the native application menu, including the
// "Enable beta version" checkbox.
package appmenu

import (
	"sync"

	"github.com/rs/zerolog"
	"github.com/wailsapp/wails/v2/pkg/menu"
	"github.com/wailsapp/wails/v2/pkg/menu/keys"

	"github.com/Mavwarf/mailshell/internal/prefs"
)

// Anchor names for items other components look up.
const (
	AnchorBetaToggle = "beta-toggle"
	AnchorReload     = "reload"
)

// BetaLabel is the checkbox label.
const BetaLabel = "Enable beta version"

// Builder owns the menu template. The template is built once; later Build
// calls return the same menu, so the checkbox cannot be inserted twice.
type Builder struct {
	Store prefs.Store
	// Reload navigates the live window to the currently selected URL.
	Reload func()
	// Refresh re-renders the native menu after an item changed state.
	Refresh func()
	// Mac adds the platform app and window role menus.
	Mac bool
	Log zerolog.Logger

	once    sync.Once
	menu    *menu.Menu
	anchors map[string]*menu.MenuItem
	mu      sync.Mutex
}

// Build returns the application menu, creating it on first use. The beta
// checkbox reflects the preference at the time of the first call.
func (b *Builder) Build() *menu.Menu {
	b.once.Do(func() {
		b.anchors = make(map[string]*menu.MenuItem)
		root := menu.NewMenu()
		if b.Mac {
			root.Append(menu.AppMenu())
		}

		mail := root.AddSubmenu("Mail")
		b.anchors[AnchorReload] = mail.AddText("Reload", keys.CmdOrCtrl("r"), func(*menu.CallbackData) {
			b.reload()
		})
		mail.AddSeparator()
		b.anchors[AnchorBetaToggle] = mail.AddCheckbox(BetaLabel, prefs.Bool(b.Store, prefs.KeyBetaEnabled), nil, func(cd *menu.CallbackData) {
			b.ToggleBeta()
		})

		root.Append(menu.EditMenu())
		if b.Mac {
			root.Append(menu.WindowMenu())
		}
		b.menu = root
	})
	return b.menu
}

// Anchor returns the named item, or nil before Build or for unknown names.
func (b *Builder) Anchor(name string) *menu.MenuItem {
	b.Build()
	return b.anchors[name]
}

// ToggleBeta flips beta.enabled, updates the checkbox and reloads the
// window once. A failed write leaves everything as it was.
func (b *Builder) ToggleBeta() {
	b.mu.Lock()
	enabled := !prefs.Bool(b.Store, prefs.KeyBetaEnabled)
	if err := prefs.SetBool(b.Store, prefs.KeyBetaEnabled, enabled); err != nil {
		b.mu.Unlock()
		b.Log.Warn().Err(err).Msg("toggle beta")
		b.Sync()
		return
	}
	b.mu.Unlock()

	b.Log.Info().Bool("beta", enabled).Msg("beta preference changed")
	b.Sync()
	b.reload()
}

// Sync sets the checkbox from the stored preference and refreshes the menu.
func (b *Builder) Sync() {
	item := b.Anchor(AnchorBetaToggle)
	if item == nil {
		return
	}
	b.mu.Lock()
	item.Checked = prefs.Bool(b.Store, prefs.KeyBetaEnabled)
	b.mu.Unlock()
	if b.Refresh != nil {
		b.Refresh()
	}
}

func (b *Builder) reload() {
	if b.Reload != nil {
		b.Reload()
	}
}
