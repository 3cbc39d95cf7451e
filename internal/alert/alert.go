// Package alert plays sounds, raises toasts and publishes MQTT messages
// when new mail arrives.
package alert

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Mavwarf/mailshell/internal/audio"
	"github.com/Mavwarf/mailshell/internal/config"
	"github.com/Mavwarf/mailshell/internal/cooldown"
	"github.com/Mavwarf/mailshell/internal/idle"
	"github.com/Mavwarf/mailshell/internal/mqtt"
	"github.com/Mavwarf/mailshell/internal/paths"
	"github.com/Mavwarf/mailshell/internal/tmpl"
	"github.com/Mavwarf/mailshell/internal/toast"
)

const (
	DefaultSound   = "mail"
	DefaultTitle   = "Fastmail"
	DefaultMessage = "{new} new message{s} ({unread} unread)"

	gateKey = "unread"
)

// Payload is the JSON body of an mqtt step without a message template.
type Payload struct {
	Unread int       `json:"unread"`
	New    int       `json:"new"`
	Time   time.Time `json:"time"`
}

// Alerter reacts to unread counts read from the page. The first count
// after start is taken as the baseline and never alerts.
type Alerter struct {
	Steps         []config.Step
	DefaultVolume int
	MQTT          mqtt.Options
	Gate          *cooldown.Gate
	AFK           func() bool
	Muted         func() bool // suppresses alerts while true
	Log           zerolog.Logger

	play    func(name string, volume float64) error
	show    func(title, message string) error
	publish func(ctx context.Context, o mqtt.Options, payload []byte) error
	now     func() time.Time

	mu     sync.Mutex
	primed bool
	last   int
	wg     sync.WaitGroup
}

// New builds an Alerter from configuration. dir holds the cooldown state
// ("" for the data directory).
func New(cfg config.Config, dir string, log zerolog.Logger) *Alerter {
	a := &Alerter{
		Steps:         cfg.Alert.Steps,
		DefaultVolume: cfg.Options.DefaultVolume,
		MQTT: mqtt.Options{
			Broker:   cfg.MQTT.Broker,
			ClientID: cfg.MQTT.ClientID,
			Topic:    cfg.MQTT.Topic,
			QoS:      cfg.MQTT.QoS,
			Retain:   cfg.MQTT.Retain,
			Username: cfg.MQTT.Username,
			Password: cfg.MQTT.Password,
		},
		AFK: idle.Detector{Threshold: time.Duration(cfg.Options.AFKThresholdSeconds) * time.Second}.AFK,
		Log: log.With().Str("component", "alert").Logger(),
	}
	if cfg.Alert.CooldownSeconds > 0 {
		a.Gate = cooldown.New(paths.In(dir, paths.AlertFileName), time.Duration(cfg.Alert.CooldownSeconds)*time.Second)
	}
	return a
}

// Observe takes every unread count read from the page, including repeats
// and zero. The first count is the baseline; later counts alert in the
// background when they exceed the previous one. Failed reads must not be
// passed in, or a page reload would look like new mail.
func (a *Alerter) Observe(n int) {
	a.mu.Lock()
	prev, primed := a.last, a.primed
	a.last, a.primed = n, true
	a.mu.Unlock()

	if !primed || n <= prev || len(a.Steps) == 0 {
		return
	}
	if a.Muted != nil && a.Muted() {
		a.Log.Debug().Int("unread", n).Msg("alerts muted")
		return
	}
	if a.Gate != nil {
		if a.Gate.Active(gateKey) {
			a.Log.Debug().Int("unread", n).Msg("alert on cooldown")
			return
		}
		if err := a.Gate.Record(gateKey); err != nil {
			a.Log.Warn().Err(err).Msg("record cooldown")
		}
	}

	vars := tmpl.Vars{Unread: n, New: n - prev}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if err := a.Execute(context.Background(), vars); err != nil {
			a.Log.Warn().Err(err).Msg("alert")
		}
	}()
}

// Wait blocks until background alerts finish.
func (a *Alerter) Wait() {
	a.wg.Wait()
}

// sequential reports whether a step uses the audio device and must not
// overlap with other audio steps.
func sequential(typ string) bool {
	return typ == "sound"
}

// Execute runs the steps that pass their filters. Non-audio steps start
// together; sound steps play one after another. The first error is
// returned after every step has finished.
func (a *Alerter) Execute(ctx context.Context, vars tmpl.Vars) error {
	afk := a.AFK != nil && a.AFK()
	steps := FilterSteps(a.Steps, afk, a.clock())

	var wg sync.WaitGroup
	var mu sync.Mutex
	var errs []error

	for i, step := range steps {
		if sequential(step.Type) {
			continue
		}
		wg.Add(1)
		go func(idx int, s config.Step) {
			defer wg.Done()
			if err := a.execStep(ctx, s, vars); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("step %d (%s): %w", idx+1, s.Type, err))
				mu.Unlock()
			}
		}(i, step)
	}

	var seqErr error
	for i, step := range steps {
		if !sequential(step.Type) {
			continue
		}
		if err := a.execStep(ctx, step, vars); err != nil && seqErr == nil {
			seqErr = fmt.Errorf("step %d (%s): %w", i+1, step.Type, err)
		}
	}
	wg.Wait()

	if seqErr != nil {
		return seqErr
	}
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

func (a *Alerter) execStep(ctx context.Context, step config.Step, vars tmpl.Vars) error {
	switch step.Type {
	case "sound":
		vol := a.DefaultVolume
		if step.Volume != nil {
			vol = *step.Volume
		}
		name := step.Sound
		if name == "" {
			name = DefaultSound
		}
		return a.playFn()(name, float64(vol)/100.0)
	case "toast":
		title := step.Title
		if title == "" {
			title = DefaultTitle
		}
		msg := step.Message
		if msg == "" {
			msg = DefaultMessage
		}
		return a.showFn()(tmpl.Expand(title, vars), tmpl.Expand(msg, vars))
	case "mqtt":
		var payload []byte
		if step.Message != "" {
			payload = []byte(tmpl.Expand(step.Message, vars))
		} else {
			var err error
			payload, err = json.Marshal(Payload{Unread: vars.Unread, New: vars.New, Time: a.clock().UTC()})
			if err != nil {
				return err
			}
		}
		ctx, cancel := context.WithTimeout(ctx, mqtt.DefaultTimeout)
		defer cancel()
		return a.publishFn()(ctx, a.MQTT, payload)
	default:
		return fmt.Errorf("unknown step type: %q", step.Type)
	}
}

func (a *Alerter) playFn() func(string, float64) error {
	if a.play != nil {
		return a.play
	}
	return audio.Play
}

func (a *Alerter) showFn() func(string, string) error {
	if a.show != nil {
		return a.show
	}
	return toast.Show
}

func (a *Alerter) publishFn() func(context.Context, mqtt.Options, []byte) error {
	if a.publish != nil {
		return a.publish
	}
	return mqtt.Publish
}

func (a *Alerter) clock() time.Time {
	if a.now != nil {
		return a.now()
	}
	return time.Now()
}
