// Package audio plays the built-in new-mail chimes.
package audio

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

var (
	otoCtx     *oto.Context
	otoOnce    sync.Once
	otoInitErr error

	// playMu keeps chimes from overlapping when alerts arrive together.
	playMu sync.Mutex
)

func device() (*oto.Context, error) {
	otoOnce.Do(func() {
		var ready chan struct{}
		otoCtx, ready, otoInitErr = oto.NewContext(&oto.NewContextOptions{
			SampleRate:   SampleRate,
			ChannelCount: 2,
			Format:       oto.FormatSignedInt16LE,
		})
		if otoInitErr == nil {
			<-ready
		}
	})
	return otoCtx, otoInitErr
}

// Play renders the named chime and blocks until it finishes. volume runs
// from 0.0 (silent) to 1.0.
func Play(name string, volume float64) error {
	c, ok := Chimes[name]
	if !ok {
		return fmt.Errorf("audio: unknown sound %q (have %s)", name, strings.Join(Names(), ", "))
	}
	if volume <= 0 {
		return nil
	}

	ctx, err := device()
	if err != nil {
		return fmt.Errorf("audio: init: %w", err)
	}

	playMu.Lock()
	defer playMu.Unlock()
	p := ctx.NewPlayer(bytes.NewReader(Render(c, volume)))
	p.Play()
	for p.IsPlaying() {
		time.Sleep(5 * time.Millisecond)
	}
	return p.Close()
}
