// Package queue drains the persisted download queue.
package queue

import (
	"context"
	"fmt"
	"time"

	"vidgrab/internal/dispatch"
	"vidgrab/internal/domain/consts"
	"vidgrab/internal/logging"
	"vidgrab/internal/models"
)

// Queue messages.
const (
	MsgEmpty   = "Queue is empty!"
	MsgDrained = "All items processed successfully!"
)

// Store is the queue side of the persistent store.
type Store interface {
	PopQueue() (models.QueueItem, bool, error)
	LoadSettings() models.Settings
}

// Job is a dequeued item rebuilt into a request.
type Job struct {
	Item     models.QueueItem
	Request  models.DownloadRequest
	Playlist models.PlaylistInfo
}

// Runner runs dequeued jobs to completion.
type Runner interface {
	RunVideo(ctx context.Context, job Job) error
	RunPlaylist(ctx context.Context, job Job) error
}

// Driver pops queue items and hands them to a runner.
//
// A single driver is the only writer that pops the queue.
type Driver struct {
	Store  Store
	Runner Runner
	Sink   dispatch.Sink
	Delay  time.Duration

	chaining bool
}

// NewDriver returns a driver with the default delay between chained items.
func NewDriver(s Store, r Runner, sink dispatch.Sink) *Driver {
	return &Driver{Store: s, Runner: r, Sink: sink, Delay: consts.QueueChainDelay}
}

// ProcessNext pops the head of the queue and runs it. It reports whether an item was found.
func (d *Driver) ProcessNext(ctx context.Context) (bool, error) {
	item, ok, err := d.Store.PopQueue()
	if err != nil {
		return false, fmt.Errorf("failed to pop queue: %w", err)
	}
	if !ok {
		if d.chaining {
			d.chaining = false
			d.send(dispatch.Notice(dispatch.LevelSuccess, MsgDrained))
		} else {
			d.send(dispatch.Notice(dispatch.LevelInfo, MsgEmpty))
		}
		return false, nil
	}
	d.chaining = true

	job := BuildJob(item, d.Store.LoadSettings())
	logging.I("Processing queued %s %q (%s)", item.Kind, item.URL, job.Request.FormatKey)

	if item.Kind == models.KindPlaylist {
		err = d.Runner.RunPlaylist(ctx, job)
	} else {
		err = d.Runner.RunVideo(ctx, job)
	}
	return true, err
}

// Drain processes items until the queue is empty or ctx is cancelled.
//
// Failed items are logged and the chain continues after the usual delay.
func (d *Driver) Drain(ctx context.Context) error {
	for {
		found, err := d.ProcessNext(ctx)
		if err != nil {
			if ctx.Err() != nil {
				d.chaining = false
				return ctx.Err()
			}
			logging.E("Queued item failed: %v", err)
		}
		if !found {
			return nil
		}
		if ctx.Err() != nil {
			d.chaining = false
			return ctx.Err()
		}
		if !d.wait(ctx) {
			d.chaining = false
			return ctx.Err()
		}
	}
}

func (d *Driver) wait(ctx context.Context) bool {
	if d.Delay <= 0 {
		return true
	}
	t := time.NewTimer(d.Delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func (d *Driver) send(ev dispatch.Event) {
	if d.Sink != nil {
		d.Sink.Send(ev)
	}
}

// BuildJob rebuilds a request from a stored item.
//
// Playlist entries were not persisted, so a playlist gets Count placeholders that only
// carry the stored thumbnail.
func BuildJob(item models.QueueItem, settings models.Settings) Job {
	job := Job{
		Item: item,
		Request: models.DownloadRequest{
			URL:            item.URL,
			DestinationDir: settings.DownloadPath,
			FormatKey:      item.FormatKey,
			Settings:       settings,
		},
	}
	if item.Kind != models.KindPlaylist {
		return job
	}

	count := max(item.Count, 1)
	entries := make([]models.PlaylistEntry, count)
	for i := range entries {
		entries[i] = models.PlaylistEntry{ThumbnailURL: item.ThumbnailURL}
	}
	job.Playlist = models.PlaylistInfo{
		URL:      item.URL,
		Title:    item.Title,
		Uploader: item.Uploader,
		Entries:  entries,
	}
	return job
}
