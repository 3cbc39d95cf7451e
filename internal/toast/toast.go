// Package toast shows desktop notifications through each platform's
// native notifier.
package toast

import "strings"

// AppName is shown as the notification source where the platform has one.
const AppName = "mailshell"

// escapePowerShell doubles single quotes for PowerShell single-quoted strings.
func escapePowerShell(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// escapeAppleScript escapes backslashes and double quotes for AppleScript
// string literals.
func escapeAppleScript(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// escapeXML makes s safe inside XML text and attribute values.
func escapeXML(s string) string {
	return xmlEscaper.Replace(s)
}
