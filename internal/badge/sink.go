package badge

import (
	"errors"
	"sync"
)

// Sink receives badge counts.
type Sink interface {
	SetBadgeCount(n int) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(n int) error

func (f SinkFunc) SetBadgeCount(n int) error { return f(n) }

// Fanout forwards every count to all sinks and joins their errors.
type Fanout []Sink

func (f Fanout) SetBadgeCount(n int) error {
	var errs []error
	for _, s := range f {
		if err := s.SetBadgeCount(n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Observer calls OnChange only when the count differs from the previous
// one. The first count seen is reported with prev = 0.
type Observer struct {
	OnChange func(prev, next int)

	mu   sync.Mutex
	last int
}

func (o *Observer) SetBadgeCount(n int) error {
	o.mu.Lock()
	prev := o.last
	o.last = n
	o.mu.Unlock()
	if prev != n && o.OnChange != nil {
		o.OnChange(prev, n)
	}
	return nil
}

// Last returns the most recent count.
func (o *Observer) Last() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.last
}
