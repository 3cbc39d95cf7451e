package bridge

import (
	"encoding/json"
	"sync"
)

// Result is the reply to one evaluation request.
type Result struct {
	RequestID string          `json:"requestId"`
	Data      json.RawMessage `json:"data,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// Collector hands evaluation results to the goroutine waiting for them.
type Collector struct {
	mu      sync.Mutex
	pending map[string]chan Result
}

func NewCollector() *Collector {
	return &Collector{pending: make(map[string]chan Result)}
}

// Register returns the channel on which the result for id will arrive.
func (c *Collector) Register(id string) <-chan Result {
	ch := make(chan Result, 1)
	c.mu.Lock()
	c.pending[id] = ch
	c.mu.Unlock()
	return ch
}

// Deliver routes r to its waiter. Results for unknown or already cleaned
// up requests are dropped.
func (c *Collector) Deliver(r Result) bool {
	c.mu.Lock()
	ch, ok := c.pending[r.RequestID]
	delete(c.pending, r.RequestID)
	c.mu.Unlock()
	if !ok {
		return false
	}
	ch <- r
	return true
}

// Cleanup forgets a request whose waiter gave up.
func (c *Collector) Cleanup(id string) {
	c.mu.Lock()
	delete(c.pending, id)
	c.mu.Unlock()
}

// Pending returns the number of outstanding requests.
func (c *Collector) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}
