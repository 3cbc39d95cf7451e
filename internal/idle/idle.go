// Package idle reports how long the user has been away from the keyboard.
package idle

import "time"

// Detector decides whether the user is away. A failed idle query counts
// as present.
type Detector struct {
	Threshold time.Duration
	// Seconds overrides the platform query; tests set it.
	Seconds func() (float64, error)
}

// AFK reports whether input has been idle for at least Threshold.
func (d Detector) AFK() bool {
	if d.Threshold <= 0 {
		return false
	}
	query := d.Seconds
	if query == nil {
		query = IdleSeconds
	}
	secs, err := query()
	if err != nil {
		return false
	}
	return time.Duration(secs*float64(time.Second)) >= d.Threshold
}
