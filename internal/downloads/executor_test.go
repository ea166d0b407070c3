package downloads

import (
	"context"
	"errors"
	"testing"

	"vidgrab/internal/command/builder"
	"vidgrab/internal/dispatch"
	"vidgrab/internal/engine"
	"vidgrab/internal/models"
)

type recordSink struct {
	events []dispatch.Event
}

func (r *recordSink) Send(ev dispatch.Event) { r.events = append(r.events, ev) }

func downloadingRaw(n, total int64) engine.RawEvent {
	return engine.RawEvent{Kind: engine.RawDownload, Status: "downloading", DownloadedBytes: i64(n), TotalBytes: i64(total), VCodec: "avc1", ACodec: "none"}
}

// TestExecuteComplete checks progress then completion on success.
func TestExecuteComplete(t *testing.T) {
	t.Parallel()
	eng := &fakeEngine{events: []engine.RawEvent{
		downloadingRaw(10, 100),
		downloadingRaw(100, 100),
		{Kind: engine.RawPostprocess, Status: "started", Postprocessor: "Merger"},
	}}
	sink := &recordSink{}
	out := <-NewExecutor(eng).Execute(context.Background(), "https://example.com/v", builder.EngineConfig{}, sink)

	if out.Err != nil || out.Message != CompleteMsg {
		t.Fatalf("unexpected outcome %+v", out)
	}
	if out.TotalBytes == nil || *out.TotalBytes != 100 {
		t.Errorf("total bytes not tracked: %v", out.TotalBytes)
	}

	kinds := []dispatch.Kind{dispatch.KindProgress, dispatch.KindProgress, dispatch.KindProgress, dispatch.KindProgress, dispatch.KindComplete}
	if len(sink.events) != len(kinds) {
		t.Fatalf("expected %d events, got %d: %+v", len(kinds), len(sink.events), sink.events)
	}
	for i, k := range kinds {
		if sink.events[i].Kind != k {
			t.Errorf("event %d: want kind %d, got %d", i, k, sink.events[i].Kind)
		}
	}
	if sink.events[2].Progress.Phase != models.PhaseMerging || sink.events[3].Progress.Phase != models.PhaseDone {
		t.Errorf("expected merging then done phases, got %+v", sink.events[2:4])
	}
}

// TestExecuteEngineFailure checks engine failures are sanitized.
func TestExecuteEngineFailure(t *testing.T) {
	t.Parallel()
	eng := &fakeEngine{err: &engine.DownloadError{Msg: "ERROR: Unsupported URL", ExitCode: 1}}
	sink := &recordSink{}
	out := <-NewExecutor(eng).Execute(context.Background(), "https://example.com/x", builder.EngineConfig{}, sink)

	if out.Message != "Download Failed: Unsupported URL" {
		t.Fatalf("unexpected message %q", out.Message)
	}
	last := sink.events[len(sink.events)-1]
	if last.Kind != dispatch.KindError || last.Text != out.Message {
		t.Errorf("last event should carry the error, got %+v", last)
	}
}

// TestExecuteSystemFailure checks other errors become system errors.
func TestExecuteSystemFailure(t *testing.T) {
	t.Parallel()
	eng := &fakeEngine{err: errors.New("exec: \"yt-dlp\": executable file not found in $PATH")}
	out := <-NewExecutor(eng).Execute(context.Background(), "u", builder.EngineConfig{}, &recordSink{})

	var se *SystemError
	if !errors.As(out.Err, &se) {
		t.Fatalf("expected system error, got %v", out.Err)
	}
	if out.Message != "System Error: exec: \"yt-dlp\": executable file not found in $PATH" {
		t.Errorf("unexpected message %q", out.Message)
	}
}

// TestRunCancelled checks cancellation is observed at the next raw event.
func TestRunCancelled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var delivered int
	eng := &fakeEngine{
		events: []engine.RawEvent{downloadingRaw(1, 10), downloadingRaw(2, 10), downloadingRaw(3, 10)},
		beforeEvent: func(i int) {
			if i == 1 {
				cancel()
			}
		},
	}
	err := NewExecutor(eng).Run(ctx, "u", builder.EngineConfig{}, func(models.ProgressEvent) { delivered++ })

	if !errors.Is(err, ErrCancelled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
	if delivered != 1 {
		t.Errorf("expected 1 progress event before cancellation, got %d", delivered)
	}
	if Message(err) != "Cancelled" {
		t.Errorf("unexpected message %q", Message(err))
	}
}
