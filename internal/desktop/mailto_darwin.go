//go:build darwin

package desktop

import "errors"

// errBundle explains where macOS keeps URL scheme handlers.
var errBundle = errors.New("desktop: on macOS the mailto: handler comes from the app bundle's Info.plist; choose mailshell in Mail > Settings > Default email reader")

func RegisterMailto(exePath string) error { return errBundle }

func UnregisterMailto() error { return errBundle }

func IsMailtoRegistered() bool { return false }
