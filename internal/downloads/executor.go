// Package downloads runs single downloads on background workers and tracks their status.
package downloads

import (
	"context"

	"vidgrab/internal/command/builder"
	"vidgrab/internal/dispatch"
	"vidgrab/internal/engine"
	"vidgrab/internal/logging"
	"vidgrab/internal/models"
	"vidgrab/internal/progress"
)

// CompleteMsg is the completion status of a single download.
const CompleteMsg = "✔ Download Complete!"

// Executor runs one engine download at a time.
type Executor struct {
	Engine engine.Engine
}

// NewExecutor returns an executor for the given engine.
func NewExecutor(e engine.Engine) *Executor {
	return &Executor{Engine: e}
}

// Outcome is the terminal result of one download.
type Outcome struct {
	Err        error
	Message    string
	TotalBytes *int64
}

// Run downloads url synchronously and returns a classified error.
//
// Cancelling ctx stops the download at the next engine event.
func (x *Executor) Run(ctx context.Context, url string, cfg builder.EngineConfig, onProgress func(models.ProgressEvent)) error {
	isCancelled := func() bool { return ctx.Err() != nil }

	hook := func(raw engine.RawEvent) error {
		ev, ok, err := progress.Translate(raw, isCancelled)
		if err != nil {
			return err
		}
		if ok && onProgress != nil {
			onProgress(ev)
		}
		return nil
	}

	logging.D(1, "Starting download of %q", url)
	err := Classify(x.Engine.Download(ctx, url, cfg, hook))
	if err != nil {
		logging.D(1, "Download of %q ended: %v", url, err)
	}
	return err
}

// Execute runs the download on a new goroutine.
//
// Progress, completion and error events go to sink in order; the outcome is sent on the
// returned channel after the last event.
func (x *Executor) Execute(ctx context.Context, url string, cfg builder.EngineConfig, sink dispatch.Sink) <-chan Outcome {
	done := make(chan Outcome, 1)

	go func() {
		defer close(done)

		var total *int64
		err := x.Run(ctx, url, cfg, func(ev models.ProgressEvent) {
			if ev.TotalBytes != nil {
				total = ev.TotalBytes
			}
			sink.Send(dispatch.Event{Kind: dispatch.KindProgress, Row: dispatch.SingleRow, Progress: ev})
		})

		out := Outcome{Err: err, TotalBytes: total}
		if err != nil {
			out.Message = Message(err)
			sink.Send(dispatch.Event{Kind: dispatch.KindProgress, Row: dispatch.SingleRow, Progress: models.ProgressEvent{Phase: models.PhaseError}})
			sink.Send(dispatch.Event{Kind: dispatch.KindError, Row: dispatch.SingleRow, Text: out.Message})
		} else {
			out.Message = CompleteMsg
			sink.Send(dispatch.Event{Kind: dispatch.KindProgress, Row: dispatch.SingleRow, Progress: models.ProgressEvent{Phase: models.PhaseDone, TotalBytes: total}})
			sink.Send(dispatch.Event{Kind: dispatch.KindComplete, Row: dispatch.SingleRow, Text: out.Message})
		}
		done <- out
	}()
	return done
}
