package main

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"runtime"

	"github.com/energye/systray"

	"github.com/Mavwarf/mailshell/internal/icon"
)

// trayState holds the tray items that change after startup.
type trayState struct {
	beta *systray.MenuItem
}

// runTray starts the system tray icon. Must be called in a goroutine;
// systray.Run blocks until Quit is called.
func runTray(app *App, t *trayState) {
	// The hidden window systray creates and its message loop must share
	// one OS thread.
	runtime.LockOSThread()
	systray.Run(func() { onTrayReady(app, t) }, func() {})
}

// pngToICO wraps raw PNG bytes in a minimal ICO container. Windows
// LoadImage(IMAGE_ICON) requires ICO; since Vista an ICO may embed PNG.
func pngToICO(png []byte) []byte {
	buf := new(bytes.Buffer)
	// ICONDIR
	binary.Write(buf, binary.LittleEndian, uint16(0)) // reserved
	binary.Write(buf, binary.LittleEndian, uint16(1)) // type: icon
	binary.Write(buf, binary.LittleEndian, uint16(1)) // one image

	// ICONDIRENTRY
	buf.WriteByte(0) // width (0 = 256)
	buf.WriteByte(0) // height (0 = 256)
	buf.WriteByte(0) // palette size
	buf.WriteByte(0) // reserved
	binary.Write(buf, binary.LittleEndian, uint16(1))        // planes
	binary.Write(buf, binary.LittleEndian, uint16(32))       // bits per pixel
	binary.Write(buf, binary.LittleEndian, uint32(len(png))) // image size
	binary.Write(buf, binary.LittleEndian, uint32(6+16))     // image offset

	buf.Write(png)
	return buf.Bytes()
}

func trayIcon() []byte {
	png, err := icon.PNG(256)
	if err != nil {
		return nil
	}
	if runtime.GOOS == "windows" {
		return pngToICO(png)
	}
	return png
}

func onTrayReady(app *App, t *trayState) {
	systray.SetIcon(trayIcon())
	systray.SetTitle(windowTitle)
	systray.SetTooltip(trayTooltip(0))
	systray.SetOnClick(func(menu systray.IMenu) { go app.ShowWindow() })
	systray.SetOnDClick(func(menu systray.IMenu) { go app.ShowWindow() })
	systray.SetOnRClick(func(menu systray.IMenu) { menu.ShowMenu() })

	mOpen := systray.AddMenuItem("Open Fastmail", "Show the mail window")
	mOpen.Click(func() { go app.ShowWindow() })

	mReload := systray.AddMenuItem("Reload", "Reload the mail page")
	mReload.Click(func() { app.ctrl.Reload() })

	t.beta = systray.AddMenuItemCheckbox("Enable beta version", "Load beta.fastmail.com", app.selector.BetaEnabled())
	t.beta.Click(func() { app.menu.ToggleBeta() })

	mMute := systray.AddMenuItemCheckbox("Mute alerts for 1 hour", "Silence new-mail sounds and notifications", app.mute.Active())
	mMute.Click(func() {
		if app.ToggleMute() {
			mMute.Check()
		} else {
			mMute.Uncheck()
		}
	})

	systray.AddSeparator()

	mQuit := systray.AddMenuItem("Quit", "Exit mailshell")
	mQuit.Click(func() { go app.RequestQuit() })
}

func trayTooltip(n int) string {
	switch n {
	case 0:
		return windowTitle
	case 1:
		return windowTitle + ": 1 unread message"
	}
	return fmt.Sprintf("%s: %d unread messages", windowTitle, n)
}

// SetBadgeCount mirrors the unread count in the tray tooltip.
func (t *trayState) SetBadgeCount(n int) error {
	systray.SetTooltip(trayTooltip(n))
	return nil
}

func (t *trayState) setBeta(on bool) {
	if t.beta == nil {
		return
	}
	if on {
		t.beta.Check()
	} else {
		t.beta.Uncheck()
	}
}

func (t *trayState) quit() {
	systray.Quit()
}
