// Package dock shows the unread count on the platform's launcher icon.
package dock

import (
	"errors"
	"strconv"
)

// ErrUnsupported is returned where the platform has no launcher badge.
var ErrUnsupported = errors.New("dock: badge not supported on this platform")

// Label is the text shown for n unread messages. Zero clears the badge.
func Label(n int) string {
	if n <= 0 {
		return ""
	}
	return strconv.Itoa(n)
}
