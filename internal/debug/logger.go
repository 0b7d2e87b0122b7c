package debug

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	logger  = slog.New(slog.NewTextHandler(io.Discard, nil))
	enabled bool
)

// Open routes debug output to a rotating JSON log file at path.
// The returned function closes the file.
func Open(path string) (func(), error) {
	if path == "" {
		return func() {}, fmt.Errorf("empty debug log path")
	}

	lj := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // MB
		MaxBackups: 3,
		LocalTime:  true,
	}
	SetOutput(lj)

	return func() {
		SetOutput(io.Discard)
		lj.Close()
	}, nil
}

// SetOutput sets the debug output destination
func SetOutput(w io.Writer) {
	enabled = w != io.Discard
	logger = slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     slog.LevelDebug,
		AddSource: true,
	}))
}

// Logger returns the structured debug logger
func Logger() *slog.Logger {
	return logger
}

// Log writes a formatted debug message
func Log(format string, args ...interface{}) {
	logger.Debug(fmt.Sprintf(format, args...))
}

// Warn records a non-fatal problem with structured attributes
func Warn(msg string, args ...any) {
	logger.Log(context.Background(), slog.LevelWarn, msg, args...)
}

// Enabled returns true if debug logging is enabled
func Enabled() bool {
	return enabled
}
