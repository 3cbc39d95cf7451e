// Package logging builds the process logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/Mavwarf/mailshell/internal/paths"
)

// Options selects the log sinks.
type Options struct {
	Debug bool
	// File, when non-empty, receives JSON lines in addition to stderr.
	File string
}

// New returns a logger writing to stderr (human-readable when stderr is a
// terminal) and optionally to a JSON log file. The returned closer releases
// the file and is never nil.
func New(opts Options) (zerolog.Logger, io.Closer, error) {
	var stderr io.Writer = os.Stderr
	if term.IsTerminal(int(os.Stderr.Fd())) {
		stderr = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}

	w := stderr
	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, paths.FilePerm)
		if err != nil {
			return zerolog.Nop(), closer, fmt.Errorf("logging: open %s: %w", opts.File, err)
		}
		w = zerolog.MultiLevelWriter(stderr, f)
		closer = f
	}

	return build(w, opts.Debug), closer, nil
}

func build(w io.Writer, debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
