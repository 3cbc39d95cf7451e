package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wailsapp/wails/v2/pkg/logger"
)

var _ logger.Logger = WailsLogger{}

func TestBuildLevels(t *testing.T) {
	var buf bytes.Buffer
	log := build(&buf, false)
	log.Debug().Msg("hidden")
	log.Info().Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line written at info level: %s", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("info line missing: %s", out)
	}

	buf.Reset()
	debugLog := build(&buf, true)
	debugLog.Debug().Msg("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("debug line missing with debug on: %s", buf.String())
	}
}

func TestNewWritesFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "mailshell.log")
	log, closer, err := New(Options{File: p})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Info().Int("unread", 3).Msg("badge")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	var line map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(data), &line); err != nil {
		t.Fatalf("log file is not JSON lines: %v\n%s", err, data)
	}
	if line["message"] != "badge" || line["unread"] != float64(3) {
		t.Errorf("line = %v", line)
	}
}

func TestNewBadFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "missing", "dir", "x.log")
	_, closer, err := New(Options{File: p})
	if err == nil {
		t.Fatal("expected error for unwritable log path")
	}
	if closer == nil {
		t.Fatal("closer should never be nil")
	}
}

func TestWailsLogger(t *testing.T) {
	var buf bytes.Buffer
	w := WailsLogger{Log: build(&buf, true)}
	w.Info("started")
	w.Warning("careful")
	w.Fatal("boom")

	out := buf.String()
	for _, want := range []string{`"level":"info"`, `"level":"warn"`, `"level":"fatal"`, `"src":"wails"`, "boom"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s:\n%s", want, out)
		}
	}
}
