package toast

import (
	"os"
	"path/filepath"

	"github.com/Mavwarf/mailshell/internal/icon"
	"github.com/Mavwarf/mailshell/internal/paths"
)

// EnsureIcon writes the 64×64 app icon to the data directory if it is not
// there yet and returns its path.
func EnsureIcon() (string, error) {
	return ensureIcon(paths.DataDir())
}

func ensureIcon(dir string) (string, error) {
	p := filepath.Join(dir, paths.IconFileName)
	if _, err := os.Stat(p); err == nil {
		return p, nil
	}
	data, err := icon.PNG(64)
	if err != nil {
		return "", err
	}
	if err := paths.AtomicWrite(p, data); err != nil {
		return "", err
	}
	return p, nil
}
