package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

const (
	// DebugLevel indicates a log message's level of criticality
	DebugLevel = iota
	// InfoLevel indicates a log message's level of criticality
	InfoLevel
	// WarnLevel indicates a log message's level of criticality
	WarnLevel
	// ErrorLevel indicates a log message's level of criticality
	ErrorLevel
)

// LogLevelToString translates a log level enum to a string representation
func LogLevelToString(lvl int) string {
	switch lvl {
	case DebugLevel:
		return "debug"
	case WarnLevel:
		return "warn"
	case ErrorLevel:
		return "error"
	default:
		return "info"
	}
}

// ParseLevel translates a string representation of a log level to its enum
func ParseLevel(s string) (int, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DebugLevel, nil
	case "", "info":
		return InfoLevel, nil
	case "warn", "warning":
		return WarnLevel, nil
	case "error":
		return ErrorLevel, nil
	default:
		return InfoLevel, fmt.Errorf("%q is an unknown log level", s)
	}
}

func filterFor(lvl int) level.Option {
	switch lvl {
	case DebugLevel:
		return level.AllowDebug()
	case WarnLevel:
		return level.AllowWarn()
	case ErrorLevel:
		return level.AllowError()
	default:
		return level.AllowInfo()
	}
}

// New creates a logfmt Logger writing to w, dropping messages below lvl
func New(w io.Writer, lvl string) (log.Logger, error) {
	parsed, err := ParseLevel(lvl)
	if err != nil {
		return nil, err
	}
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = level.NewFilter(logger, filterFor(parsed))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)
	return logger, nil
}

// OrNop returns logger, or a Logger which discards everything if logger is nil
func OrNop(logger log.Logger) log.Logger {
	if logger == nil {
		return log.NewNopLogger()
	}
	return logger
}
