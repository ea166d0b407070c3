package downloads

import (
	"context"
	"errors"
	"strings"

	"vidgrab/internal/engine"
	"vidgrab/internal/progress"
)

// ErrCancelled marks a download stopped by the user.
var ErrCancelled = progress.ErrCancelled

const (
	msgCancelled    = "Cancelled"
	engineErrPrefix = "ERROR: "
)

// EngineDownloadError is a failure reported by the engine.
type EngineDownloadError struct {
	Msg string
	Err error
}

func (e *EngineDownloadError) Error() string { return "Download Failed: " + e.Msg }
func (e *EngineDownloadError) Unwrap() error { return e.Err }

// SystemError is any other failure during a download.
type SystemError struct {
	Err error
}

func (e *SystemError) Error() string { return "System Error: " + e.Err.Error() }
func (e *SystemError) Unwrap() error { return e.Err }

// ConfigurationError is an invalid request rejected before it reaches the builder.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "Invalid " + e.Field + ": " + e.Reason
}

// Classify maps a download error onto the error taxonomy.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	var (
		engErr  *EngineDownloadError
		sysErr  *SystemError
		confErr *ConfigurationError
		dlErr   *engine.DownloadError
	)
	switch {
	case errors.Is(err, ErrCancelled), errors.Is(err, context.Canceled):
		return ErrCancelled
	case errors.As(err, &engErr), errors.As(err, &sysErr), errors.As(err, &confErr):
		return err
	case errors.As(err, &dlErr):
		return &EngineDownloadError{Msg: Sanitize(dlErr.Msg), Err: err}
	}
	return &SystemError{Err: err}
}

// Message returns the user-facing text for a classified or raw error.
func Message(err error) string {
	err = Classify(err)
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrCancelled) {
		return msgCancelled
	}
	return err.Error()
}

// IsCancelled reports whether err is a user cancellation.
func IsCancelled(err error) bool {
	return errors.Is(Classify(err), ErrCancelled)
}

// Sanitize strips the engine's generic error prefix noise.
func Sanitize(msg string) string {
	return strings.TrimSpace(strings.ReplaceAll(msg, engineErrPrefix, ""))
}
