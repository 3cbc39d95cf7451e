package idle

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/godbus/dbus/v5"
)

// IdleSeconds returns the number of seconds since the last keyboard or
// mouse input on Linux. GNOME's Mutter IdleMonitor is asked first (it
// works under Wayland); xprintidle is the X11 fallback.
func IdleSeconds() (float64, error) {
	if ms, err := mutterIdle(); err == nil {
		return float64(ms) / 1000.0, nil
	}

	out, err := exec.Command("xprintidle").Output()
	if err != nil {
		return 0, fmt.Errorf("xprintidle: %w (is xprintidle installed?)", err)
	}
	return parseMillis(string(out))
}

func mutterIdle() (uint64, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return 0, err
	}
	obj := conn.Object("org.gnome.Mutter.IdleMonitor", "/org/gnome/Mutter/IdleMonitor/Core")
	var ms uint64
	if err := obj.Call("org.gnome.Mutter.IdleMonitor.GetIdletime", 0).Store(&ms); err != nil {
		return 0, fmt.Errorf("mutter idle monitor: %w", err)
	}
	return ms, nil
}

func parseMillis(s string) (float64, error) {
	ms, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing xprintidle output: %w", err)
	}
	return float64(ms) / 1000.0, nil
}
