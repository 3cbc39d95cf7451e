package audio

import (
	"math"
	"sort"
	"strings"
	"testing"
	"time"
)

func sampleAt(pcm []byte, frame int) int16 {
	return int16(pcm[frame*4]) | int16(pcm[frame*4+1])<<8
}

func TestNamesSorted(t *testing.T) {
	names := Names()
	if len(names) != len(Chimes) {
		t.Fatalf("Names() has %d entries, want %d", len(names), len(Chimes))
	}
	if !sort.StringsAreSorted(names) {
		t.Errorf("Names() not sorted: %v", names)
	}
	if _, ok := Chimes["mail"]; !ok {
		t.Error("default chime \"mail\" missing")
	}
}

func TestRenderLength(t *testing.T) {
	c := Chime{Tones: []Tone{
		{Frequency: 440, Duration: 100 * time.Millisecond, Level: 0.5},
		{Frequency: 0, Duration: 50 * time.Millisecond},
	}}
	pcm := Render(c, 1)
	want := (4410 + 2205) * 4
	if len(pcm) != want {
		t.Errorf("len(pcm) = %d, want %d", len(pcm), want)
	}
}

func TestRenderRestIsSilent(t *testing.T) {
	pcm := Render(Chime{Tones: []Tone{{Duration: 20 * time.Millisecond}}}, 1)
	for f := 0; f < len(pcm)/4; f++ {
		if s := sampleAt(pcm, f); s != 0 {
			t.Fatalf("frame %d = %d, want silence", f, s)
		}
	}
}

func TestRenderStereoChannelsMatch(t *testing.T) {
	pcm := Render(Chimes["ping"], 1)
	for i := 0; i+3 < len(pcm); i += 4 {
		if pcm[i] != pcm[i+2] || pcm[i+1] != pcm[i+3] {
			t.Fatalf("left and right differ at byte %d", i)
		}
	}
}

func TestRenderVolumeScales(t *testing.T) {
	c := Chime{Tones: []Tone{{Frequency: 441, Duration: 50 * time.Millisecond, Level: 1}}}
	full := Render(c, 1)
	half := Render(c, 0.5)

	peak := func(pcm []byte) float64 {
		m := 0.0
		for f := 0; f < len(pcm)/4; f++ {
			m = math.Max(m, math.Abs(float64(sampleAt(pcm, f))))
		}
		return m
	}
	ratio := peak(half) / peak(full)
	if ratio < 0.49 || ratio > 0.51 {
		t.Errorf("half/full peak ratio = %.3f, want ~0.5", ratio)
	}

	if p := peak(Render(c, 0)); p != 0 {
		t.Errorf("zero volume peak = %v", p)
	}
	if p := peak(Render(c, 3)); p > math.MaxInt16 {
		t.Errorf("volume above 1 should clamp, peak = %v", p)
	}
}

func TestPlayUnknown(t *testing.T) {
	err := Play("klaxon", 1)
	if err == nil || !strings.Contains(err.Error(), "mail") {
		t.Errorf("Play(unknown) = %v, want error listing the built-ins", err)
	}
}

func TestPlaySilentSkipsDevice(t *testing.T) {
	if err := Play("mail", 0); err != nil {
		t.Errorf("Play at volume 0 = %v, want nil", err)
	}
}
