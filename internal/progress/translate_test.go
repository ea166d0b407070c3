package progress

import (
	"errors"
	"testing"

	"vidgrab/internal/engine"
	"vidgrab/internal/models"
)

func i64(n int64) *int64     { return &n }
func f64(f float64) *float64 { return &f }
func never() bool            { return false }

// TestDownloadingEvent checks byte counts and content type.
func TestDownloadingEvent(t *testing.T) {
	t.Parallel()
	ev, ok, err := Translate(engine.RawEvent{
		Kind:            engine.RawDownload,
		Status:          "downloading",
		DownloadedBytes: i64(50),
		TotalBytes:      i64(200),
		Speed:           f64(10),
		ETA:             i64(15),
		VCodec:          "avc1",
		ACodec:          "none",
	}, never)
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if ev.Phase != models.PhaseDownloading || ev.ContentType != models.ContentVideo {
		t.Errorf("unexpected event %+v", ev)
	}
	f, known := ev.Fraction()
	if !known || f != 0.25 {
		t.Errorf("fraction: %v known=%v", f, known)
	}
	if *ev.SpeedBytes != 10 || *ev.ETASeconds != 15 {
		t.Errorf("speed/eta: %v %v", *ev.SpeedBytes, *ev.ETASeconds)
	}
}

// TestTotalFallbacks checks estimate fallback and the indeterminate case.
func TestTotalFallbacks(t *testing.T) {
	t.Parallel()

	ev, _, _ := Translate(engine.RawEvent{
		Kind:               engine.RawDownload,
		Status:             "downloading",
		DownloadedBytes:    i64(10),
		TotalBytesEstimate: f64(40),
	}, never)
	if ev.TotalBytes == nil || *ev.TotalBytes != 40 {
		t.Fatalf("expected estimate as total, got %v", ev.TotalBytes)
	}

	ev, _, _ = Translate(engine.RawEvent{
		Kind:       engine.RawDownload,
		Status:     "downloading",
		TotalBytes: i64(0),
	}, never)
	if ev.DownloadedBytes != 0 {
		t.Errorf("missing downloaded bytes should be 0, got %d", ev.DownloadedBytes)
	}
	if _, known := ev.Fraction(); known {
		t.Error("fraction must be indeterminate without a total")
	}
}

// TestContentTypeOf checks the inference table.
func TestContentTypeOf(t *testing.T) {
	t.Parallel()
	tests := []struct {
		v, a string
		want models.ContentType
	}{
		{"avc1", "none", models.ContentVideo},
		{"avc1", "", models.ContentVideo},
		{"none", "mp4a.40.2", models.ContentAudio},
		{"", "opus", models.ContentAudio},
		{"avc1", "mp4a", models.ContentUnknown},
		{"none", "none", models.ContentUnknown},
		{"", "", models.ContentUnknown},
	}
	for _, tt := range tests {
		if got := ContentTypeOf(tt.v, tt.a); got != tt.want {
			t.Errorf("ContentTypeOf(%q, %q) = %q, want %q", tt.v, tt.a, got, tt.want)
		}
	}
}

// TestMergingEvent checks only merge processors produce a merging phase.
func TestMergingEvent(t *testing.T) {
	t.Parallel()
	for _, name := range []string{"Merger", "FFmpegMerger"} {
		ev, ok, err := Translate(engine.RawEvent{Kind: engine.RawPostprocess, Status: "started", Postprocessor: name}, never)
		if err != nil || !ok || ev.Phase != models.PhaseMerging {
			t.Errorf("%s: ev=%+v ok=%v err=%v", name, ev, ok, err)
		}
		if ev.TotalBytes != nil || ev.DownloadedBytes != 0 {
			t.Errorf("%s: merging event must carry no byte counts", name)
		}
	}

	if _, ok, _ := Translate(engine.RawEvent{Kind: engine.RawPostprocess, Status: "started", Postprocessor: "FFmpegExtractAudio"}, never); ok {
		t.Error("non-merge processors must not emit")
	}
	if _, ok, _ := Translate(engine.RawEvent{Kind: engine.RawPostprocess, Status: "finished", Postprocessor: "Merger"}, never); ok {
		t.Error("finished merge must not emit")
	}
}

// TestCancellationShortCircuits checks the predicate wins over any payload.
func TestCancellationShortCircuits(t *testing.T) {
	t.Parallel()
	for _, raw := range []engine.RawEvent{
		{Kind: engine.RawDownload, Status: "downloading", DownloadedBytes: i64(1), TotalBytes: i64(2)},
		{Kind: engine.RawPostprocess, Status: "started", Postprocessor: "Merger"},
		{Kind: engine.RawDownload, Status: "finished"},
	} {
		_, ok, err := Translate(raw, func() bool { return true })
		if !errors.Is(err, ErrCancelled) || ok {
			t.Errorf("raw %+v: expected cancellation, got ok=%v err=%v", raw, ok, err)
		}
	}
}

// TestIgnoredStatuses checks statuses that produce nothing.
func TestIgnoredStatuses(t *testing.T) {
	t.Parallel()
	if _, ok, err := Translate(engine.RawEvent{Kind: engine.RawDownload, Status: "finished"}, nil); ok || err != nil {
		t.Errorf("finished should be ignored, ok=%v err=%v", ok, err)
	}
	ev, ok, _ := Translate(engine.RawEvent{Kind: engine.RawDownload, Status: "error"}, never)
	if !ok || ev.Phase != models.PhaseError {
		t.Errorf("error status should emit error phase, got %+v", ev)
	}
}
