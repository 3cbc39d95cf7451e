package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/Mavwarf/mailshell/internal/paths"
)

const (
	// DefaultStableURL is loaded unless the beta preference is set.
	DefaultStableURL = "https://www.fastmail.com/mail"
	// DefaultBetaURL is loaded when beta.enabled is true.
	DefaultBetaURL = "https://beta.fastmail.com/"
	// DefaultComposeURL receives the mailto: address as its only verb.
	DefaultComposeURL = "https://www.fastmail.com/action/compose/?mailto=%s"

	DefaultWidth     = 800
	DefaultHeight    = 600
	DefaultMinWidth  = 400
	DefaultMinHeight = 300

	// DefaultPollMillis is the badge polling period.
	DefaultPollMillis = 1000
	// DefaultEvalTimeoutMillis bounds a single DOM extraction.
	DefaultEvalTimeoutMillis = 5000
	// DefaultGeometryMillis is how often window bounds are sampled.
	DefaultGeometryMillis = 500

	DefaultMailboxClass = "v-MailboxSource--inbox"
	DefaultBadgeClass   = "v-MailboxSource-badge"

	DefaultStorage = "sqlite"

	// DefaultAFKThreshold is the default idle-time threshold in seconds.
	DefaultAFKThreshold = 300

	// DefaultVolume is the default playback volume (0-100).
	DefaultVolume = 100
)

// Window holds the initial window geometry used on first run.
type Window struct {
	Width     int `json:"width,omitempty"`
	Height    int `json:"height,omitempty"`
	MinWidth  int `json:"min_width,omitempty"`
	MinHeight int `json:"min_height,omitempty"`
}

// Badge configures unread-count scraping.
type Badge struct {
	PollMillis        int    `json:"poll_ms,omitempty"`
	EvalTimeoutMillis int    `json:"eval_timeout_ms,omitempty"`
	MailboxClass      string `json:"mailbox_class,omitempty"`
	BadgeClass        string `json:"badge_class,omitempty"`
	Dock              bool   `json:"dock"`
	Title             bool   `json:"title"`
}

// MQTT holds broker settings for the "mqtt" alert step.
type MQTT struct {
	Broker   string `json:"broker,omitempty"`
	ClientID string `json:"client_id,omitempty"`
	Topic    string `json:"topic,omitempty"`
	QoS      byte   `json:"qos,omitempty"`
	Retain   bool   `json:"retain,omitempty"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
}

// Alert describes what happens when the unread count goes up.
type Alert struct {
	CooldownSeconds int    `json:"cooldown_seconds,omitempty"`
	Steps           []Step `json:"steps,omitempty"`
}

// Step is a single unit of work within an alert.
type Step struct {
	Type    string `json:"type"`              // "sound" | "toast" | "mqtt"
	Sound   string `json:"sound,omitempty"`   // type=sound
	Title   string `json:"title,omitempty"`   // type=toast
	Message string `json:"message,omitempty"` // type=toast, type=mqtt
	Volume  *int   `json:"volume,omitempty"`  // per-step override, nil = use default
	When    string `json:"when,omitempty"`    // "afk" | "present" | "hours:X-Y" | "" (always)
}

// Options holds global settings parsed from the "config" key.
type Options struct {
	StableURL           string `json:"stable_url,omitempty"`
	BetaURL             string `json:"beta_url,omitempty"`
	ComposeURL          string `json:"compose_url,omitempty"`
	Storage             string `json:"storage,omitempty"` // "sqlite" | "file" | "memory"
	Log                 bool   `json:"log,omitempty"`
	Debug               bool   `json:"debug,omitempty"`
	GeometryMillis      int    `json:"geometry_ms,omitempty"`
	AFKThresholdSeconds int    `json:"afk_threshold_seconds,omitempty"`
	DefaultVolume       int    `json:"default_volume,omitempty"`
}

// Config holds the top-level configuration.
type Config struct {
	Options Options `json:"config"`
	Window  Window  `json:"window"`
	Badge   Badge   `json:"badge"`
	MQTT    MQTT    `json:"mqtt"`
	Alert   Alert   `json:"alert"`
}

// Default returns a Config with every default applied, as used when no
// config file exists.
func Default() Config {
	var c Config
	c.setDefaults()
	return c
}

func (c *Config) setDefaults() {
	c.Options.StableURL = DefaultStableURL
	c.Options.BetaURL = DefaultBetaURL
	c.Options.ComposeURL = DefaultComposeURL
	c.Options.Storage = DefaultStorage
	c.Options.GeometryMillis = DefaultGeometryMillis
	c.Options.AFKThresholdSeconds = DefaultAFKThreshold
	c.Options.DefaultVolume = DefaultVolume
	c.Window = Window{
		Width:     DefaultWidth,
		Height:    DefaultHeight,
		MinWidth:  DefaultMinWidth,
		MinHeight: DefaultMinHeight,
	}
	c.Badge = Badge{
		PollMillis:        DefaultPollMillis,
		EvalTimeoutMillis: DefaultEvalTimeoutMillis,
		MailboxClass:      DefaultMailboxClass,
		BadgeClass:        DefaultBadgeClass,
		Dock:              true,
		Title:             true,
	}
	c.MQTT.ClientID = "mailshell"
	c.MQTT.Topic = "mailshell/unread"
}

// UnmarshalJSON sets defaults then decodes the JSON structure.
// Go's json.Unmarshal merges into existing struct fields, so only
// values present in JSON override the defaults.
func (c *Config) UnmarshalJSON(data []byte) error {
	c.setDefaults()
	type Alias Config
	return json.Unmarshal(data, (*Alias)(c))
}

// validSteps lists the recognised alert step types.
var validSteps = map[string]bool{"sound": true, "toast": true, "mqtt": true}

var hoursRe = regexp.MustCompile(`^hours:([01]?[0-9]|2[0-3])-([01]?[0-9]|2[0-3])$`)

func validWhen(w string) bool {
	switch w {
	case "", "afk", "present":
		return true
	}
	return hoursRe.MatchString(w)
}

// oneStringVerb reports whether format has a single %s and no other
// formatting verbs. A literal percent sign is written %%.
func oneStringVerb(format string) bool {
	rest := strings.ReplaceAll(format, "%%", "")
	return strings.Count(rest, "%") == 1 && strings.Count(rest, "%s") == 1
}

// Validate reports the first configuration problem found.
func Validate(c Config) error {
	for name, raw := range map[string]string{
		"stable_url": c.Options.StableURL,
		"beta_url":   c.Options.BetaURL,
	} {
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
			return fmt.Errorf("config: %s %q is not an http(s) URL", name, raw)
		}
	}
	if !oneStringVerb(c.Options.ComposeURL) {
		return fmt.Errorf("config: compose_url must contain exactly one %%s and no other verbs")
	}
	switch c.Options.Storage {
	case "sqlite", "file", "memory":
	default:
		return fmt.Errorf("config: unknown storage %q (want sqlite, file or memory)", c.Options.Storage)
	}
	if c.Window.Width < c.Window.MinWidth || c.Window.Height < c.Window.MinHeight {
		return fmt.Errorf("config: window %dx%d is smaller than minimum %dx%d",
			c.Window.Width, c.Window.Height, c.Window.MinWidth, c.Window.MinHeight)
	}
	if c.Badge.PollMillis < 100 {
		return fmt.Errorf("config: badge poll_ms must be at least 100, got %d", c.Badge.PollMillis)
	}
	if c.Badge.MailboxClass == "" || c.Badge.BadgeClass == "" {
		return fmt.Errorf("config: badge mailbox_class and badge_class must be set")
	}
	if c.Options.DefaultVolume < 0 || c.Options.DefaultVolume > 100 {
		return fmt.Errorf("config: default_volume must be between 0 and 100")
	}
	for i, st := range c.Alert.Steps {
		if !validSteps[st.Type] {
			return fmt.Errorf("config: alert step %d: unknown type %q", i+1, st.Type)
		}
		if st.Type == "mqtt" && c.MQTT.Broker == "" {
			return fmt.Errorf("config: alert step %d: mqtt step requires mqtt.broker", i+1)
		}
		if !validWhen(st.When) {
			return fmt.Errorf("config: alert step %d: unknown when condition %q", i+1, st.When)
		}
		if st.Volume != nil && (*st.Volume < 0 || *st.Volume > 100) {
			return fmt.Errorf("config: alert step %d: volume must be between 0 and 100", i+1)
		}
	}
	return nil
}

// FindPath returns the config file Load would read, or an error when none
// exists.
func FindPath(explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", fmt.Errorf("config: %w", err)
		}
		return explicitPath, nil
	}

	// Next to binary
	exe, err := os.Executable()
	if err == nil {
		p := filepath.Join(filepath.Dir(exe), paths.ConfigFileName)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	// User config directory
	home, err := os.UserHomeDir()
	if err == nil {
		var p string
		if runtime.GOOS == "windows" {
			p = filepath.Join(home, "AppData", "Roaming", paths.AppDirName, paths.ConfigFileName)
		} else {
			p = filepath.Join(home, ".config", paths.AppDirName, paths.ConfigFileName)
		}
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("no %s found", paths.ConfigFileName)
}

// Load reads and parses a config file. It tries, in order:
//  1. explicitPath (if non-empty; a missing file is an error)
//  2. mailshell-config.json next to the running binary
//  3. ~/.config/mailshell/mailshell-config.json
//
// With no explicit path and no file found, Load returns Default().
func Load(explicitPath string) (Config, error) {
	p, err := FindPath(explicitPath)
	if err != nil {
		if explicitPath != "" {
			return Config{}, err
		}
		return Default(), nil
	}
	return readConfig(p)
}

func readConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
