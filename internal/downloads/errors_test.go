package downloads

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"vidgrab/internal/engine"
)

// TestMessage checks the user-facing strings of each error class.
func TestMessage(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"cancelled", ErrCancelled, "Cancelled"},
		{"context cancelled", fmt.Errorf("wait: %w", context.Canceled), "Cancelled"},
		{"engine", &engine.DownloadError{Msg: "ERROR: [youtube] abc: Video unavailable"}, "Download Failed: [youtube] abc: Video unavailable"},
		{"system", errors.New("disk full"), "System Error: disk full"},
		{"configuration", &ConfigurationError{Field: "trim range", Reason: "end must be after start"}, "Invalid trim range: end must be after start"},
	}
	for _, tt := range tests {
		if got := Message(tt.err); got != tt.want {
			t.Errorf("%s: want %q, got %q", tt.name, tt.want, got)
		}
	}
}

// TestClassifyIdempotent checks classified errors are returned unchanged.
func TestClassifyIdempotent(t *testing.T) {
	t.Parallel()
	once := Classify(&engine.DownloadError{Msg: "ERROR: nope"})
	twice := Classify(once)
	if once != twice {
		t.Fatalf("expected same error, got %v and %v", once, twice)
	}
	var ee *EngineDownloadError
	if !errors.As(twice, &ee) || ee.Msg != "nope" {
		t.Fatalf("unexpected classification %#v", twice)
	}
	if !IsCancelled(context.Canceled) || IsCancelled(errors.New("x")) {
		t.Error("IsCancelled mismatch")
	}
}
