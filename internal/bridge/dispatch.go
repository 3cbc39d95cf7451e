package bridge

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
)

// Message is one frame posted by a page script.
type Message struct {
	Kind      string          `json:"kind"`
	RequestID string          `json:"requestId,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
	Error     string          `json:"error,omitempty"`
	URL       string          `json:"url,omitempty"`
}

// Decode converts the optional data of a Wails event into a Message. The
// runtime hands over the JSON-decoded value, so it is re-encoded first.
func Decode(data ...interface{}) (Message, error) {
	var m Message
	if len(data) == 0 {
		return m, fmt.Errorf("bridge: empty event")
	}
	raw, err := json.Marshal(data[0])
	if err != nil {
		return m, fmt.Errorf("bridge: encode event: %w", err)
	}
	if err := json.Unmarshal(raw, &m); err != nil {
		return m, fmt.Errorf("bridge: decode event: %w", err)
	}
	return m, nil
}

// Dispatcher routes page messages: results to the Collector, open requests
// to OnOpen.
type Dispatcher struct {
	Collector *Collector
	OnOpen    func(url string)
	Log       zerolog.Logger
}

// Handle is registered with runtime.EventsOn for EventName.
func (d *Dispatcher) Handle(data ...interface{}) {
	m, err := Decode(data...)
	if err != nil {
		d.Log.Debug().Err(err).Msg("dropping page message")
		return
	}
	switch m.Kind {
	case KindResult:
		d.Collector.Deliver(Result{RequestID: m.RequestID, Data: m.Data, Error: m.Error})
	case KindOpen:
		if d.OnOpen != nil && m.URL != "" {
			d.OnOpen(m.URL)
		}
	default:
		d.Log.Debug().Str("kind", m.Kind).Msg("unknown page message")
	}
}
