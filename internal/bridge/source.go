// Package bridge talks to the remote page loaded in the main window: it
// evaluates the unread-count extraction and relays link-open requests.
package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/Mavwarf/mailshell/internal/badge"
)

// ErrTimeout is returned when the page does not answer in time, e.g.
// while it is navigating.
var ErrTimeout = errors.New("bridge: timeout waiting for page")

// DefaultTimeout bounds a single extraction.
const DefaultTimeout = 5 * time.Second

// Evaluator runs JS in the page without waiting for a result.
type Evaluator interface {
	ExecJS(js string)
}

// Source implements badge.UnreadCountSource over an Evaluator. Results come
// back asynchronously through Dispatcher and the shared Collector.
type Source struct {
	Eval         Evaluator
	Collector    *Collector
	MailboxClass string
	BadgeClass   string
	Timeout      time.Duration

	seq atomic.Uint64
}

var _ badge.UnreadCountSource = (*Source)(nil)

// TryReadCount evaluates the extraction script and parses its text.
func (s *Source) TryReadCount(ctx context.Context) (int, error) {
	text, err := s.ReadText(ctx)
	if err != nil {
		return 0, err
	}
	return badge.ParseCount(text)
}

// ReadText returns the raw text of the unread indicator.
func (s *Source) ReadText(ctx context.Context) (string, error) {
	id := fmt.Sprintf("unread-%d-%d", time.Now().UnixNano(), s.seq.Add(1))
	ch := s.Collector.Register(id)
	defer s.Collector.Cleanup(id)

	s.Eval.ExecJS(ExtractScript(id, s.MailboxClass, s.BadgeClass))

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case r := <-ch:
		if r.Error != "" {
			return "", fmt.Errorf("bridge: js error: %s", r.Error)
		}
		var text string
		if err := json.Unmarshal(r.Data, &text); err != nil {
			return "", fmt.Errorf("bridge: unexpected result %s: %w", r.Data, err)
		}
		return text, nil
	case <-timer.C:
		return "", ErrTimeout
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
