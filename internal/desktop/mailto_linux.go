//go:build linux

package desktop

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/Mavwarf/mailshell/internal/paths"
)

// DesktopFile is the desktop entry name; the dock badge refers to it too.
const DesktopFile = AppID + ".desktop"

func applicationsDir() string {
	if d := os.Getenv("XDG_DATA_HOME"); d != "" {
		return filepath.Join(d, "applications")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "applications")
	}
	return filepath.Join(home, ".local", "share", "applications")
}

func desktopEntry(exePath string) string {
	// Exec arguments are quoted as the freedesktop Exec key requires.
	exe := `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`, "`", "\\`", "$", `\$`).Replace(exePath) + `"`
	return strings.Join([]string{
		"[Desktop Entry]",
		"Type=Application",
		"Name=Fastmail",
		"Comment=Fastmail desktop client",
		"Exec=" + exe + " %u",
		"Icon=" + paths.In("", paths.IconFileName),
		"Terminal=false",
		"Categories=Network;Email;",
		"MimeType=x-scheme-handler/mailto;",
		"StartupWMClass=" + AppID,
		"",
	}, "\n")
}

// RegisterMailto writes a desktop entry for exePath and makes it the
// default mailto: handler through xdg-mime.
func RegisterMailto(exePath string) error {
	p := filepath.Join(applicationsDir(), DesktopFile)
	if err := paths.AtomicWrite(p, []byte(desktopEntry(exePath))); err != nil {
		return fmt.Errorf("desktop: write %s: %w", p, err)
	}
	if out, err := exec.Command("xdg-mime", "default", DesktopFile, "x-scheme-handler/mailto").CombinedOutput(); err != nil {
		return fmt.Errorf("desktop: xdg-mime: %w\n%s", err, out)
	}
	return nil
}

// UnregisterMailto removes the desktop entry. The desktop environment
// falls back to its next handler.
func UnregisterMailto() error {
	err := os.Remove(filepath.Join(applicationsDir(), DesktopFile))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("desktop: %w", err)
	}
	return nil
}

// IsMailtoRegistered reports whether the desktop entry exists.
func IsMailtoRegistered() bool {
	_, err := os.Stat(filepath.Join(applicationsDir(), DesktopFile))
	return err == nil
}
