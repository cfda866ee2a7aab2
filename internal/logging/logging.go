package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const defaultLogFile = "darktriad.log"

var (
	traceMu      sync.Mutex
	traceEnabled bool
	logPath      = defaultLogFile
	logLevel     = zerolog.InfoLevel
	logOutput    io.Writer
)

func init() {
	zerolog.TimeFieldFormat = time.RFC3339Nano
}

// withLogger opens the log destination for a single entry. Entries are rare
// enough that holding the file open between writes is not worth the shutdown
// bookkeeping.
func withLogger(fn func(zerolog.Logger)) {
	traceMu.Lock()
	path := logPath
	level := logLevel
	out := logOutput
	traceMu.Unlock()

	if out != nil {
		fn(zerolog.New(out).Level(level).With().Timestamp().Logger())
		return
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging failed: %v\n", err)
		return
	}
	defer f.Close()
	fn(zerolog.New(f).Level(level).With().Timestamp().Logger())
}

// Error writes errors to the shared log file.
func Error(err error) {
	if err == nil {
		return
	}
	withLogger(func(l zerolog.Logger) {
		l.Error().Err(err).Send()
	})
}

// Warn records a recoverable problem, such as an asset that fell back to its
// built-in default.
func Warn(msg string, fields map[string]interface{}) {
	withLogger(func(l zerolog.Logger) {
		l.Warn().Fields(fields).Msg(msg)
	})
}

// Info records a lifecycle message.
func Info(msg string, fields map[string]interface{}) {
	withLogger(func(l zerolog.Logger) {
		l.Info().Fields(fields).Msg(msg)
	})
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	traceMu.Lock()
	traceEnabled = enabled
	traceMu.Unlock()
}

// TraceEnabled reports whether trace entries are being written.
func TraceEnabled() bool {
	traceMu.Lock()
	defer traceMu.Unlock()
	return traceEnabled
}

// Trace appends a structured JSON entry to the shared log when tracing is
// enabled. Trace entries bypass the configured level.
func Trace(event string, payload interface{}) {
	if !TraceEnabled() {
		return
	}
	withLogger(func(l zerolog.Logger) {
		e := l.Log().Str("event", event)
		if payload != nil {
			e = e.Interface("payload", payload)
		}
		e.Send()
	})
}

// SetLevel parses a zerolog level name (debug, info, warn, error).
func SetLevel(name string) error {
	if strings.TrimSpace(name) == "" {
		return nil
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}
	traceMu.Lock()
	logLevel = lvl
	traceMu.Unlock()
	return nil
}

// SetOutput redirects entries to w instead of the log file. Passing nil
// restores file output.
func SetOutput(w io.Writer) {
	traceMu.Lock()
	logOutput = w
	traceMu.Unlock()
}

// Configure sets the log destination. Empty values fall back to the default
// path. Directories are created automatically when missing.
func Configure(path string) {
	traceMu.Lock()
	defer traceMu.Unlock()
	if strings.TrimSpace(path) == "" {
		logPath = defaultLogFile
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		logPath = defaultLogFile
		return
	}
	logPath = path
}
