// Package cooldown rate-limits alerts across restarts.
package cooldown

import (
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/Mavwarf/mailshell/internal/paths"
)

// Gate remembers when each key last fired in a small JSON file, so a
// restart does not replay an alert that just went off. A missing or
// corrupt file lets everything through.
type Gate struct {
	Path   string
	Window time.Duration

	mu  sync.Mutex
	now func() time.Time
}

func New(path string, window time.Duration) *Gate {
	return &Gate{Path: path, Window: window, now: time.Now}
}

// Active reports whether key fired less than Window ago.
func (g *Gate) Active(key string) bool {
	if g.Window <= 0 {
		return false
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	last, ok := g.load()[key]
	if !ok {
		return false
	}
	t, err := time.Parse(time.RFC3339, last)
	if err != nil {
		return false
	}
	return g.clock().Sub(t) < g.Window
}

// Record stamps key with the current time and drops entries older than a
// day.
func (g *Gate) Record(key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.clock()
	state := g.load()
	for k, v := range state {
		if t, err := time.Parse(time.RFC3339, v); err != nil || now.Sub(t) > 24*time.Hour {
			delete(state, k)
		}
	}
	state[key] = now.Format(time.RFC3339)

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return paths.AtomicWrite(g.Path, data)
}

func (g *Gate) load() map[string]string {
	state := make(map[string]string)
	data, err := os.ReadFile(g.Path)
	if err != nil {
		return state
	}
	if json.Unmarshal(data, &state) != nil {
		return make(map[string]string)
	}
	return state
}

func (g *Gate) clock() time.Time {
	if g.now == nil {
		return time.Now()
	}
	return g.now()
}
