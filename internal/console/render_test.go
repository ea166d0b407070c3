package console

import (
	"bytes"
	"strings"
	"testing"

	"vidgrab/internal/dispatch"
	"vidgrab/internal/models"
)

func ptr[T any](v T) *T { return &v }

// TestRendererNonTTYThrottlesBySteps checks plain output prints once per 10% step.
func TestRendererNonTTYThrottlesBySteps(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r := NewRenderer(&buf)
	if r.TTY {
		t.Fatalf("buffer detected as terminal")
	}

	total := ptr(int64(1000))
	for _, done := range []int64{10, 20, 50, 150, 160, 990} {
		r.Handle(dispatch.Event{Kind: dispatch.KindProgress, Row: dispatch.SingleRow, Progress: models.ProgressEvent{
			Phase:           models.PhaseDownloading,
			DownloadedBytes: done,
			TotalBytes:      total,
			ContentType:     models.ContentVideo,
			ETASeconds:      ptr(int64(65)),
		}})
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "Downloading Video...") || !strings.Contains(lines[0], "ETA: 00:01:05") {
		t.Errorf("unexpected first line %q", lines[0])
	}
}

// TestRendererRowsUseTitles checks playlist rows are prefixed with index and title.
func TestRendererRowsUseTitles(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r := NewRenderer(&buf)
	r.SetTitles([]models.PlaylistEntry{{Title: "First"}, {Title: "Second"}})

	r.Handle(dispatch.Event{Kind: dispatch.KindRow, Row: 1, Status: models.EntryDone, Text: "✔ Done"})
	r.Handle(dispatch.Event{Kind: dispatch.KindRow, Row: 4, Status: models.EntryFailed, Text: "Failed"})

	out := buf.String()
	if !strings.Contains(out, "[2] Second: ✔ Done") {
		t.Errorf("missing titled row in %q", out)
	}
	if !strings.Contains(out, "[5] Failed") {
		t.Errorf("missing untitled row in %q", out)
	}
}

// TestRendererTTYRedrawsInPlace checks terminal output clears the line before printing.
func TestRendererTTYRedrawsInPlace(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r := &Renderer{Out: &buf, TTY: true, Width: 200}

	r.Handle(dispatch.Event{Kind: dispatch.KindProgress, Row: dispatch.SingleRow, Progress: models.ProgressEvent{Phase: models.PhaseMerging}})
	r.Handle(dispatch.Event{Kind: dispatch.KindComplete, Row: dispatch.SingleRow, Text: "✔ Download Complete!"})
	r.Finish()

	out := buf.String()
	if !strings.HasPrefix(out, clearLine+"Merging Video & Audio...") {
		t.Errorf("progress not drawn in place: %q", out)
	}
	if strings.Count(out, clearLine) != 2 {
		t.Errorf("expected the live line to be cleared before the final message: %q", out)
	}
	if !strings.Contains(out, "✔ Download Complete!") {
		t.Errorf("missing completion text: %q", out)
	}
}

// TestTruncate checks rune-safe truncation.
func TestTruncate(t *testing.T) {
	t.Parallel()

	if got := truncate("héllo wörld", 8); got != "héllo..." {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate = %q", got)
	}
}
