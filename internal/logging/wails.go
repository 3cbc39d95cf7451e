package logging

import "github.com/rs/zerolog"

// WailsLogger routes framework log output into a zerolog.Logger. It
// satisfies github.com/wailsapp/wails/v2/pkg/logger.Logger.
type WailsLogger struct {
	Log zerolog.Logger
}

func (w WailsLogger) Print(message string)   { w.Log.Log().Str("src", "wails").Msg(message) }
func (w WailsLogger) Trace(message string)   { w.Log.Trace().Str("src", "wails").Msg(message) }
func (w WailsLogger) Debug(message string)   { w.Log.Debug().Str("src", "wails").Msg(message) }
func (w WailsLogger) Info(message string)    { w.Log.Info().Str("src", "wails").Msg(message) }
func (w WailsLogger) Warning(message string) { w.Log.Warn().Str("src", "wails").Msg(message) }
func (w WailsLogger) Error(message string)   { w.Log.Error().Str("src", "wails").Msg(message) }

// Fatal logs at fatal level without exiting; Wails decides what happens next.
func (w WailsLogger) Fatal(message string) {
	w.Log.WithLevel(zerolog.FatalLevel).Str("src", "wails").Msg(message)
}
