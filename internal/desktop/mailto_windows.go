//go:build windows

package desktop

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows/registry"
)

const (
	progIDKey       = `Software\Classes\` + AppID + `.mailto`
	clientKey       = `Software\Clients\Mail\` + AppID
	capabilitiesKey = clientKey + `\Capabilities`
	registeredApps  = `Software\RegisteredApplications`
)

// RegisterMailto makes mailshell available as a mailto: handler for the
// current user. Windows requires the user to pick it in Default Apps.
func RegisterMailto(exePath string) error {
	if err := setValues(progIDKey, map[string]string{
		"":             "URL:MailTo Protocol",
		"URL Protocol": "",
	}); err != nil {
		return err
	}
	if err := setValues(progIDKey+`\shell\open\command`, map[string]string{
		"": fmt.Sprintf(`"%s" "%%1"`, exePath),
	}); err != nil {
		return err
	}
	if err := setValues(capabilitiesKey, map[string]string{
		"ApplicationName":        AppID,
		"ApplicationDescription": "Fastmail desktop client",
	}); err != nil {
		return err
	}
	if err := setValues(capabilitiesKey+`\URLAssociations`, map[string]string{
		"mailto": AppID + ".mailto",
	}); err != nil {
		return err
	}
	return setValues(registeredApps, map[string]string{
		AppID: capabilitiesKey,
	})
}

func setValues(path string, values map[string]string) error {
	k, _, err := registry.CreateKey(registry.CURRENT_USER, path, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("desktop: create %s: %w", path, err)
	}
	defer k.Close()
	for name, v := range values {
		if err := k.SetStringValue(name, v); err != nil {
			return fmt.Errorf("desktop: set %s\\%s: %w", path, name, err)
		}
	}
	return nil
}

// UnregisterMailto removes everything RegisterMailto wrote.
func UnregisterMailto() error {
	var errs []error
	for _, p := range []string{
		progIDKey + `\shell\open\command`,
		progIDKey + `\shell\open`,
		progIDKey + `\shell`,
		progIDKey,
		capabilitiesKey + `\URLAssociations`,
		capabilitiesKey,
		clientKey,
	} {
		if err := registry.DeleteKey(registry.CURRENT_USER, p); err != nil && !errors.Is(err, registry.ErrNotExist) {
			errs = append(errs, fmt.Errorf("desktop: delete %s: %w", p, err))
		}
	}
	if k, err := registry.OpenKey(registry.CURRENT_USER, registeredApps, registry.SET_VALUE); err == nil {
		if err := k.DeleteValue(AppID); err != nil && !errors.Is(err, registry.ErrNotExist) {
			errs = append(errs, fmt.Errorf("desktop: delete registered app: %w", err))
		}
		k.Close()
	}
	return errors.Join(errs...)
}

// IsMailtoRegistered reports whether the handler command is present.
func IsMailtoRegistered() bool {
	k, err := registry.OpenKey(registry.CURRENT_USER, progIDKey+`\shell\open\command`, registry.QUERY_VALUE)
	if err != nil {
		return false
	}
	k.Close()
	return true
}
