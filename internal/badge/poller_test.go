package badge

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// textSource returns ParseCount(text) or err, like the page bridge does.
type textSource struct {
	text  string
	err   error
	calls atomic.Int32
}

func (s *textSource) TryReadCount(ctx context.Context) (int, error) {
	s.calls.Add(1)
	if s.err != nil {
		return 0, s.err
	}
	return ParseCount(s.text)
}

type recordSink struct {
	mu     sync.Mutex
	counts []int
}

func (r *recordSink) SetBadgeCount(n int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts = append(r.counts, n)
	return nil
}

func (r *recordSink) all() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.counts...)
}

func newPoller(src UnreadCountSource, sink Sink, live func() bool) *Poller {
	return &Poller{Source: src, Sink: sink, Live: live, Interval: time.Millisecond, Log: zerolog.Nop()}
}

func TestTickForwardsCount(t *testing.T) {
	sink := &recordSink{}
	p := newPoller(&textSource{text: "7"}, sink, nil)

	n, applied := p.Tick(context.Background())
	if !applied || n != 7 {
		t.Fatalf("Tick = %d, %v; want 7, true", n, applied)
	}
	if got := sink.all(); len(got) != 1 || got[0] != 7 {
		t.Errorf("sink = %v, want [7]", got)
	}
}

func TestTickFailuresResetToZero(t *testing.T) {
	tests := []struct {
		name string
		src  *textSource
	}{
		{"missing element", &textSource{err: errors.New("Cannot read properties of null")}},
		{"empty text", &textSource{text: ""}},
		{"non-numeric", &textSource{text: "lots"}},
		{"navigation torn down", &textSource{err: context.Canceled}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &recordSink{}
			p := newPoller(tt.src, sink, nil)
			n, applied := p.Tick(context.Background())
			if !applied || n != 0 {
				t.Fatalf("Tick = %d, %v; want 0, true", n, applied)
			}
			if got := sink.all(); len(got) != 1 || got[0] != 0 {
				t.Errorf("sink = %v, want [0]", got)
			}
		})
	}
}

func TestTickOnReadSkipsFailures(t *testing.T) {
	src := &textSource{text: "4"}
	var reads []int
	p := newPoller(src, &recordSink{}, nil)
	p.OnRead = func(n int) { reads = append(reads, n) }

	p.Tick(context.Background())
	src.err = ErrNotNumeric
	p.Tick(context.Background())
	src.err = nil
	src.text = "0"
	p.Tick(context.Background())

	if len(reads) != 2 || reads[0] != 4 || reads[1] != 0 {
		t.Errorf("reads = %v, want [4 0]", reads)
	}
}

func TestTickSkipsWithoutWindow(t *testing.T) {
	src := &textSource{text: "3"}
	sink := &recordSink{}
	p := newPoller(src, sink, func() bool { return false })

	if _, applied := p.Tick(context.Background()); applied {
		t.Error("tick should be skipped without a live window")
	}
	if src.calls.Load() != 0 {
		t.Error("source should not be read without a live window")
	}
	if len(sink.all()) != 0 {
		t.Error("sink should not be touched without a live window")
	}
}

// closingSource closes the window while the extraction is in flight.
type closingSource struct{ live *atomic.Bool }

func (s closingSource) TryReadCount(ctx context.Context) (int, error) {
	s.live.Store(false)
	return 5, nil
}

func TestTickDropsResultAfterWindowClosed(t *testing.T) {
	var live atomic.Bool
	live.Store(true)
	sink := &recordSink{}
	p := newPoller(closingSource{&live}, sink, live.Load)

	if _, applied := p.Tick(context.Background()); applied {
		t.Error("result arriving after close should be dropped")
	}
	if len(sink.all()) != 0 {
		t.Errorf("sink = %v, want untouched", sink.all())
	}
}

// gatedSource blocks each call until released, returning the given value.
type gatedSource struct {
	gates chan chan int
}

func (s *gatedSource) TryReadCount(ctx context.Context) (int, error) {
	g := make(chan int)
	s.gates <- g
	return <-g, nil
}

func TestOverlappingTicksLastCompletionWins(t *testing.T) {
	src := &gatedSource{gates: make(chan chan int)}
	sink := &recordSink{}
	p := newPoller(src, sink, nil)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.Tick(context.Background())
		}()
	}
	first := <-src.gates
	second := <-src.gates

	// The later-started extraction finishes first; the earlier one last.
	second <- 4
	for len(sink.all()) < 1 {
		time.Sleep(time.Millisecond)
	}
	first <- 9
	wg.Wait()

	got := sink.all()
	if len(got) != 2 || got[1] != 9 {
		t.Errorf("sink = %v, want last value 9", got)
	}
}

func TestStartStop(t *testing.T) {
	src := &textSource{text: "2"}
	sink := &recordSink{}
	p := newPoller(src, sink, nil)

	p.Start(context.Background())
	p.Start(context.Background()) // second Start is a no-op

	deadline := time.Now().Add(2 * time.Second)
	for src.calls.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	p.Stop()
	if src.calls.Load() < 3 {
		t.Fatalf("expected at least 3 ticks, got %d", src.calls.Load())
	}

	// Let any in-flight tick land, then make sure ticking has stopped.
	time.Sleep(20 * time.Millisecond)
	before := src.calls.Load()
	time.Sleep(20 * time.Millisecond)
	if after := src.calls.Load(); after != before {
		t.Errorf("poller kept ticking after Stop: %d -> %d", before, after)
	}
	p.Stop() // idempotent
}

func TestFanoutJoinsErrors(t *testing.T) {
	a, b := &recordSink{}, &recordSink{}
	boom := errors.New("boom")
	f := Fanout{a, SinkFunc(func(int) error { return boom }), b}

	err := f.SetBadgeCount(3)
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
	if len(a.all()) != 1 || len(b.all()) != 1 {
		t.Error("every sink should receive the count even when one fails")
	}
}

func TestObserverReportsChangesOnly(t *testing.T) {
	var changes [][2]int
	o := &Observer{OnChange: func(prev, next int) { changes = append(changes, [2]int{prev, next}) }}

	for _, n := range []int{0, 3, 3, 5, 0, 0} {
		o.SetBadgeCount(n)
	}
	want := [][2]int{{0, 3}, {3, 5}, {5, 0}}
	if len(changes) != len(want) {
		t.Fatalf("changes = %v, want %v", changes, want)
	}
	for i := range want {
		if changes[i] != want[i] {
			t.Errorf("change %d = %v, want %v", i, changes[i], want[i])
		}
	}
	if o.Last() != 0 {
		t.Errorf("Last() = %d, want 0", o.Last())
	}
}
