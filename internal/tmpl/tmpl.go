// Package tmpl expands placeholders in alert titles and messages.
package tmpl

import (
	"strconv"
	"strings"
)

// Vars holds the values available to templates.
type Vars struct {
	Unread int // {unread}
	New    int // {new}: how many arrived since the last count
}

// Expand replaces {unread}, {new} and {s} in s. {s} expands to "s" when
// New is not 1, for "{new} new message{s}".
func Expand(s string, v Vars) string {
	plural := "s"
	if v.New == 1 {
		plural = ""
	}
	return strings.NewReplacer(
		"{unread}", strconv.Itoa(v.Unread),
		"{new}", strconv.Itoa(v.New),
		"{s}", plural,
	).Replace(s)
}
