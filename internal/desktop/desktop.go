// Package desktop registers mailshell as the system's mailto: handler.
package desktop

import "strings"

// AppID names the handler in registries and desktop entries.
const AppID = "mailshell"

// MailtoArg reports whether arg is a mailto: link passed on the command
// line by the OS.
func MailtoArg(arg string) bool {
	return strings.HasPrefix(strings.ToLower(arg), "mailto:")
}
