//go:build darwin

package toast

import (
	"fmt"
	"os/exec"
)

func script(title, message string) string {
	return fmt.Sprintf(`display notification "%s" with title "%s"`,
		escapeAppleScript(message), escapeAppleScript(title))
}

// Show displays a macOS notification using osascript.
func Show(title, message string) error {
	out, err := exec.Command("osascript", "-e", script(title, message)).CombinedOutput()
	if err != nil {
		return fmt.Errorf("toast: %w\n%s", err, out)
	}
	return nil
}
