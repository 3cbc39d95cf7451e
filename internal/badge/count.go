package badge

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrNotNumeric is returned by ParseCount for text that is not a
// non-negative base-10 integer.
var ErrNotNumeric = errors.New("badge: not a number")

// ParseCount parses the text of the unread indicator. Surrounding
// whitespace is ignored; empty, negative and non-numeric text fail.
func ParseCount(text string) (int, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrNotNumeric)
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q", ErrNotNumeric, s)
	}
	return n, nil
}
