//go:build linux

package toast

import (
	"fmt"
	"os/exec"
)

func args(title, message, iconPath string) []string {
	a := []string{"--app-name=" + AppName, "--category=email.arrived"}
	if iconPath != "" {
		a = append(a, "--icon="+iconPath)
	}
	return append(a, title, message)
}

// Show displays a Linux desktop notification using notify-send.
func Show(title, message string) error {
	iconPath, _ := EnsureIcon()
	out, err := exec.Command("notify-send", args(title, message, iconPath)...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("toast: %w\n%s", err, out)
	}
	return nil
}
