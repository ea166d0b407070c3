package prompt

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

// TestConfirmAnswers checks accepted and rejected answers.
func TestConfirmAnswers(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"y\n":     true,
		"YES\n":   true,
		" yes \n": true,
		"n\n":     false,
		"\n":      false,
		"maybe\n": false,
		"y":       true,
		"":        false,
	}
	for in, want := range tests {
		var out bytes.Buffer
		got, err := Confirm(context.Background(), strings.NewReader(in), &out, "Continue?")
		if err != nil {
			t.Fatalf("Confirm(%q) error: %v", in, err)
		}
		if got != want {
			t.Errorf("Confirm(%q) = %v, want %v", in, got, want)
		}
		if !strings.Contains(out.String(), "Continue? [y/N]") {
			t.Errorf("question not printed: %q", out.String())
		}
	}
}

// TestConfirmCancelled checks a cancelled context returns without input.
func TestConfirmCancelled(t *testing.T) {
	t.Parallel()

	r, w := io.Pipe()
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Confirm(ctx, r, io.Discard, "Continue?")
	if !errors.Is(err, ErrCancelled) {
		t.Errorf("err = %v, want ErrCancelled", err)
	}
}
