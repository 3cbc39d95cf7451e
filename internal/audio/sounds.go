package audio

import (
	"math"
	"sort"
	"time"
)

// Tone is a single sine burst. Frequency 0 is a rest.
type Tone struct {
	Frequency float64
	Duration  time.Duration
	Level     float64 // 0.0 to 1.0
}

// Chime is a named sequence of tones.
type Chime struct {
	Description string
	Tones       []Tone
}

const SampleRate = 44100

// fadeSamples ramps each tone in and out to avoid clicks.
const fadeSamples = SampleRate * 5 / 1000

// Chimes are the built-in new-mail sounds.
var Chimes = map[string]Chime{
	"mail": {
		Description: "Two rising notes",
		Tones: []Tone{
			{Frequency: 783.99, Duration: 110 * time.Millisecond, Level: 0.5},  // G5
			{Frequency: 1046.5, Duration: 220 * time.Millisecond, Level: 0.55}, // C6
		},
	},
	"doorbell": {
		Description: "Gentle falling two-note chime",
		Tones: []Tone{
			{Frequency: 659.25, Duration: 200 * time.Millisecond, Level: 0.5}, // E5
			{Frequency: 523.25, Duration: 300 * time.Millisecond, Level: 0.4}, // C5
		},
	},
	"ping": {
		Description: "Single short high ping",
		Tones: []Tone{
			{Frequency: 1318.5, Duration: 90 * time.Millisecond, Level: 0.45}, // E6
		},
	},
	"triple": {
		Description: "Three quick notes for a burst of mail",
		Tones: []Tone{
			{Frequency: 880, Duration: 70 * time.Millisecond, Level: 0.5},
			{Frequency: 0, Duration: 30 * time.Millisecond},
			{Frequency: 880, Duration: 70 * time.Millisecond, Level: 0.5},
			{Frequency: 0, Duration: 30 * time.Millisecond},
			{Frequency: 1174.66, Duration: 140 * time.Millisecond, Level: 0.55}, // D6
		},
	},
}

// Names lists the built-in chimes in order.
func Names() []string {
	names := make([]string, 0, len(Chimes))
	for n := range Chimes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Render synthesises c as 44.1 kHz stereo 16-bit little-endian PCM scaled
// by volume (0.0 to 1.0).
func Render(c Chime, volume float64) []byte {
	volume = math.Max(0, math.Min(1, volume))

	total := 0
	for _, tone := range c.Tones {
		total += samples(tone.Duration)
	}
	buf := make([]byte, 0, total*4)

	for _, tone := range c.Tones {
		n := samples(tone.Duration)
		for i := 0; i < n; i++ {
			var v float64
			if tone.Frequency > 0 {
				t := float64(i) / SampleRate
				v = math.Sin(2*math.Pi*tone.Frequency*t) * tone.Level * volume * envelope(i, n)
			}
			s := int16(v * math.MaxInt16)
			lo, hi := byte(s), byte(s>>8)
			buf = append(buf, lo, hi, lo, hi)
		}
	}
	return buf
}

func samples(d time.Duration) int {
	return int(SampleRate * d.Seconds())
}

func envelope(i, n int) float64 {
	switch {
	case i < fadeSamples:
		return float64(i) / fadeSamples
	case i > n-fadeSamples:
		return float64(n-i) / fadeSamples
	}
	return 1
}
