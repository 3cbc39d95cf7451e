package alert

import (
	"strconv"
	"strings"
	"time"

	"github.com/Mavwarf/mailshell/internal/config"
)

// FilterSteps returns the steps whose "when" condition holds. "" always
// runs, "afk" and "present" test idle state, "hours:X-Y" tests the local
// hour. Unknown conditions never match.
func FilterSteps(steps []config.Step, afk bool, now time.Time) []config.Step {
	out := make([]config.Step, 0, len(steps))
	for _, s := range steps {
		if matchWhen(s.When, afk, now) {
			out = append(out, s)
		}
	}
	return out
}

func matchWhen(when string, afk bool, now time.Time) bool {
	switch when {
	case "":
		return true
	case "afk":
		return afk
	case "present":
		return !afk
	}
	if rng, ok := strings.CutPrefix(when, "hours:"); ok {
		return matchHours(rng, now)
	}
	return false
}

// matchHours reports whether now falls in "X-Y" (24h, end exclusive).
// "22-7" wraps midnight; "8-8" is empty.
func matchHours(rng string, now time.Time) bool {
	start, end, ok := parseHours(rng)
	if !ok || start == end {
		return false
	}
	h := now.Hour()
	if start < end {
		return h >= start && h < end
	}
	return h >= start || h < end
}

func parseHours(rng string) (start, end int, ok bool) {
	a, b, found := strings.Cut(rng, "-")
	if !found {
		return 0, 0, false
	}
	start, err1 := strconv.Atoi(a)
	end, err2 := strconv.Atoi(b)
	if err1 != nil || err2 != nil || start < 0 || start > 23 || end < 0 || end > 23 {
		return 0, 0, false
	}
	return start, end, true
}
