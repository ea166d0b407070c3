// Package logging provides vidgrab's leveled console and file logging.
package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"vidgrab/internal/domain/consts"

	"github.com/rs/zerolog"
)

// Level is the debug level set by the user (0-5).
var Level = 0

var (
	mu      sync.Mutex
	logger  = zerolog.New(consoleWriter(os.Stderr)).With().Timestamp().Logger()
	logFile *os.File
	stdout  io.Writer = os.Stdout
)

func consoleWriter(out io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly}
}

// SetupLogging opens (or creates) the log file and attaches it next to console output.
func SetupLogging(path string) error {
	mu.Lock()
	defer mu.Unlock()

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, consts.PermsLogFile)
	if err != nil {
		return fmt.Errorf("failed to open log file %q: %w", path, err)
	}
	if logFile != nil {
		logFile.Close()
	}
	logFile = f

	multi := zerolog.MultiLevelWriter(consoleWriter(os.Stderr), f)
	logger = zerolog.New(multi).With().Timestamp().Logger()

	fmt.Fprintf(f, "\n=========== %s ===========\n", time.Now().Format(time.RFC1123Z))
	return nil
}

// SetOutput replaces the console writer. The log file, if any, is kept.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logger = zerolog.New(zerolog.MultiLevelWriter(consoleWriter(w), logFile)).With().Timestamp().Logger()
		return
	}
	logger = zerolog.New(consoleWriter(w)).With().Timestamp().Logger()
}

// Close closes the log file.
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

// I logs an informational message.
func I(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	logger.Info().Msgf(format, args...)
}

// S logs a success message.
func S(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	logger.Info().Str("result", "success").Msgf(format, args...)
}

// W logs a warning.
func W(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	logger.Warn().Msgf(format, args...)
}

// E logs an error with the caller attached.
func E(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	logger.Error().Caller(1).Msgf(format, args...)
}

// D logs a debug message if l is within the user's debug level.
func D(l int, format string, args ...any) {
	if l > Level {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	logger.Debug().Int("lvl", l).Caller(1).Msgf(format, args...)
}

// P prints a plain line to standard output. It is used for command results, not logs.
func P(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintf(stdout, format+"\n", args...)
}
