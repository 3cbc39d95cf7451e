// Package silent mutes new-mail alerts until a point in time.
package silent

import (
	"errors"
	"fmt"
	"time"

	"github.com/Mavwarf/mailshell/internal/prefs"
)

// Key holds the RFC 3339 end of the mute.
const Key = "alerts.silent_until"

// Mute reads and writes the mute deadline in the preference store. A
// missing, unreadable or past deadline means alerts are on.
type Mute struct {
	Store prefs.Store
	now   func() time.Time
}

// Until returns the end of the mute and whether it is still active.
func (m Mute) Until() (time.Time, bool) {
	v, ok, err := m.Store.Get(Key)
	if err != nil || !ok || v == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil || !m.clock().Before(t) {
		return time.Time{}, false
	}
	return t, true
}

// Active reports whether alerts are muted right now.
func (m Mute) Active() bool {
	_, ok := m.Until()
	return ok
}

// Enable mutes alerts for d from now.
func (m Mute) Enable(d time.Duration) error {
	if d <= 0 {
		return errors.New("silent: duration must be positive")
	}
	until := m.clock().Add(d).Format(time.RFC3339)
	if err := m.Store.Set(Key, until); err != nil {
		return fmt.Errorf("silent: %w", err)
	}
	return nil
}

// Disable turns alerts back on.
func (m Mute) Disable() error {
	if err := m.Store.Set(Key, ""); err != nil {
		return fmt.Errorf("silent: %w", err)
	}
	return nil
}

func (m Mute) clock() time.Time {
	if m.now == nil {
		return time.Now()
	}
	return m.now()
}
