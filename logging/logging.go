// Package logging provides the leveled, structured logger shared by the
// engine adapters. Levels are plain ints so callers can configure verbosity
// without importing slog; the handler renders them back through the level
// names below.
package logging

import (
	"io"
	"log/slog"
)

const (
	// TraceLevel indicates a log message's level of criticality
	TraceLevel = iota
	// DebugLevel indicates a log message's level of criticality
	DebugLevel
	// InfoLevel indicates a log message's level of criticality
	InfoLevel
	// WarnLevel indicates a log message's level of criticality
	WarnLevel
	// ErrorLevel indicates a log message's level of criticality
	ErrorLevel
	// FatalLevel indicates a log message's level of criticality
	FatalLevel
)

// LogLevelToString translates a log level enum to a string representation
func LogLevelToString(level int) string {
	switch level {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	case FatalLevel:
		return "FATAL"
	default:
		return "TRACE"
	}
}

// logLevelToSlog translates a log level enum to its slog equivalent. Trace
// and Fatal have no slog counterpart and clamp to the nearest level.
func logLevelToSlog(level int) slog.Level {
	switch level {
	case TraceLevel, DebugLevel:
		return slog.LevelDebug
	case InfoLevel:
		return slog.LevelInfo
	case WarnLevel:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// slogToLogLevel translates a record's slog level back to the level enum,
// for rendering
func slogToLogLevel(level slog.Level) int {
	switch {
	case level < slog.LevelInfo:
		return DebugLevel
	case level < slog.LevelWarn:
		return InfoLevel
	case level < slog.LevelError:
		return WarnLevel
	default:
		return ErrorLevel
	}
}

// CreateLogger returns a structured text Logger writing to w at the given
// level. Records carry the package's own level names rather than slog's.
func CreateLogger(w io.Writer, level int) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: logLevelToSlog(level),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				a.Value = slog.StringValue(LogLevelToString(slogToLogLevel(a.Value.Any().(slog.Level))))
			}
			return a
		},
	}))
}
