// Package logging builds the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// ParseLevel maps debug, info, warn and error to slog levels. Unknown values are info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New returns a JSON logger writing to stdout and, when file is set, to a
// rotating log file as well. The returned closer releases the file.
func New(level, file string) (*slog.Logger, io.Closer) {
	var out io.Writer = os.Stdout
	var closer io.Closer = nopCloser{}
	if file != "" {
		rotating := &lumberjack.Logger{
			Filename: file,
			MaxSize:  100,
			MaxAge:   30,
			Compress: true,
		}
		out = io.MultiWriter(os.Stdout, rotating)
		closer = rotating
	}
	return NewWithWriter(out, level), closer
}

// NewWithWriter returns a JSON logger writing to w.
func NewWithWriter(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)}))
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
