package geometry

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Mavwarf/mailshell/internal/prefs"
)

var (
	defaults = Size{Width: 800, Height: 600}
	minSize  = Size{Width: 400, Height: 300}
)

type fakeWindow struct {
	mu sync.Mutex
	s  State
	ok bool
}

func (w *fakeWindow) Bounds() (State, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.s, w.ok
}

func (w *fakeWindow) set(s State) {
	w.mu.Lock()
	w.s = s
	w.mu.Unlock()
}

func stored(t *testing.T, st prefs.Store) State {
	t.Helper()
	raw, ok, err := st.Get(prefs.KeyWindowState)
	if err != nil || !ok {
		t.Fatalf("window.state not stored (ok=%v, err=%v)", ok, err)
	}
	var s State
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestComputeInitialFirstRun(t *testing.T) {
	got := ComputeInitial(prefs.NewMemStore(), defaults, minSize)
	if got.Width != 800 || got.Height != 600 {
		t.Errorf("size = %dx%d, want 800x600", got.Width, got.Height)
	}
	if got.Positioned {
		t.Error("first run should leave placement to the OS")
	}
}

func TestComputeInitialRestoresPersisted(t *testing.T) {
	st := prefs.NewMemStore()
	st.Set(prefs.KeyWindowState, `{"x":10,"y":20,"width":1024,"height":768}`)

	got := ComputeInitial(st, defaults, minSize)
	want := State{X: 10, Y: 20, Width: 1024, Height: 768, Positioned: true}
	if got != want {
		t.Errorf("ComputeInitial = %+v, want %+v", got, want)
	}
}

func TestComputeInitialRejectsBadState(t *testing.T) {
	tests := []string{
		`not json`,
		`{"x":0,"y":0,"width":10,"height":10}`,
		`{}`,
	}
	for _, raw := range tests {
		st := prefs.NewMemStore()
		st.Set(prefs.KeyWindowState, raw)
		got := ComputeInitial(st, defaults, minSize)
		if got.Positioned || got.Width != 800 || got.Height != 600 {
			t.Errorf("ComputeInitial(%s) = %+v, want defaults", raw, got)
		}
	}
}

func TestUpdatePersistsExactBounds(t *testing.T) {
	st := prefs.NewMemStore()
	tr := NewTracker(st, minSize, zerolog.Nop())

	moved := State{X: -50, Y: 75, Width: 900, Height: 700}
	if err := tr.Update(moved); err != nil {
		t.Fatal(err)
	}
	if got := stored(t, st); got != moved {
		t.Errorf("persisted = %+v, want %+v", got, moved)
	}

	// Next start restores exactly what was persisted.
	restored := ComputeInitial(st, defaults, minSize)
	moved.Positioned = true
	if restored != moved {
		t.Errorf("restored = %+v, want %+v", restored, moved)
	}
}

func TestUpdateIgnoresCollapsedWindow(t *testing.T) {
	st := prefs.NewMemStore()
	tr := NewTracker(st, minSize, zerolog.Nop())
	if err := tr.Update(State{Width: 0, Height: 0}); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := st.Get(prefs.KeyWindowState); ok {
		t.Error("collapsed bounds should not be persisted")
	}
}

func TestUpdateReportsStoreFailure(t *testing.T) {
	st := prefs.NewMemStore()
	st.FailSet = errors.New("read-only")
	tr := NewTracker(st, minSize, zerolog.Nop())
	if err := tr.Update(State{Width: 800, Height: 600}); err == nil {
		t.Error("expected error from failing store")
	}
}

func TestAttachSamplesChanges(t *testing.T) {
	st := prefs.NewMemStore()
	tr := NewTracker(st, minSize, zerolog.Nop())
	win := &fakeWindow{s: State{X: 1, Y: 1, Width: 800, Height: 600}, ok: true}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	tr.Attach(ctx, win, 5*time.Millisecond)
	defer tr.Detach()

	resized := State{X: 30, Y: 40, Width: 1200, Height: 900}
	win.set(resized)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if raw, ok, _ := st.Get(prefs.KeyWindowState); ok {
			var s State
			json.Unmarshal([]byte(raw), &s)
			if s == resized {
				return
			}
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("resize was not persisted")
}

func TestSaveUsesCurrentBounds(t *testing.T) {
	st := prefs.NewMemStore()
	tr := NewTracker(st, minSize, zerolog.Nop())
	win := &fakeWindow{s: State{X: 5, Y: 6, Width: 640, Height: 480}, ok: true}
	tr.Attach(context.Background(), win, 0)

	if err := tr.Save(); err != nil {
		t.Fatal(err)
	}
	if got := stored(t, st); got != (State{X: 5, Y: 6, Width: 640, Height: 480}) {
		t.Errorf("persisted = %+v", got)
	}

	tr.Detach()
	win.set(State{X: 0, Y: 0, Width: 1000, Height: 1000})
	if err := tr.Save(); err != nil {
		t.Fatal(err)
	}
	if got := stored(t, st); got.Width != 640 {
		t.Errorf("Save after Detach should be a no-op, got %+v", got)
	}
}
