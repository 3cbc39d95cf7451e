// Package endpoint chooses which Fastmail URL the main window loads.
package endpoint

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/Mavwarf/mailshell/internal/prefs"
)

// Selector maps the beta.enabled preference to one of two fixed URLs.
type Selector struct {
	Store  prefs.Store
	Stable string
	Beta   string
	// Compose is a format string with one %s for the escaped mailto address.
	Compose string
}

// Select returns Beta when beta.enabled is exactly "true" and Stable
// otherwise, including when the key is absent or unreadable.
func (s Selector) Select() string {
	if s.BetaEnabled() {
		return s.Beta
	}
	return s.Stable
}

// BetaEnabled reports the current preference.
func (s Selector) BetaEnabled() bool {
	return s.Store != nil && prefs.Bool(s.Store, prefs.KeyBetaEnabled)
}

// ComposeURL returns the compose page for a mailto: link. The whole link,
// including any ?subject= query, is passed through escaped. With beta
// enabled, a compose page on the stable host is moved to the beta host.
func (s Selector) ComposeURL(mailto string) (string, error) {
	if !strings.HasPrefix(strings.ToLower(mailto), "mailto:") {
		return "", fmt.Errorf("endpoint: not a mailto link: %q", mailto)
	}
	target := fmt.Sprintf(s.Compose, url.QueryEscape(mailto))
	if !s.BetaEnabled() {
		return target, nil
	}
	u, err := url.Parse(target)
	if err != nil {
		return target, nil
	}
	stable, err1 := url.Parse(s.Stable)
	beta, err2 := url.Parse(s.Beta)
	if err1 != nil || err2 != nil || !strings.EqualFold(u.Host, stable.Host) {
		return target, nil
	}
	u.Scheme, u.Host = beta.Scheme, beta.Host
	return u.String(), nil
}

// Origins returns the distinct scheme://host origins of the stable, beta
// and compose URLs, in that order. The page bridge only accepts messages
// from these origins.
func (s Selector) Origins() []string {
	var out []string
	seen := make(map[string]bool)
	for _, raw := range []string{s.Stable, s.Beta, strings.ReplaceAll(s.Compose, "%s", "")} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			continue
		}
		origin := strings.ToLower(u.Scheme + "://" + u.Host)
		if !seen[origin] {
			seen[origin] = true
			out = append(out, origin)
		}
	}
	return out
}
