// Package app joins the download core with the store, history and notifications.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"vidgrab/internal/command/builder"
	"vidgrab/internal/dispatch"
	"vidgrab/internal/domain/consts"
	"vidgrab/internal/downloads"
	"vidgrab/internal/engine"
	"vidgrab/internal/logging"
	"vidgrab/internal/models"
	"vidgrab/internal/parsing"
	"vidgrab/internal/playlist"
	"vidgrab/internal/progress"
	"vidgrab/internal/queue"
	"vidgrab/internal/thumbs"
	"vidgrab/internal/validation"
)

// Store is the part of the persistent store the controller writes.
type Store interface {
	LoadSettings() models.Settings
	AddHistory(models.HistoryEntry) error
	AddToQueue(models.QueueItem) error
}

// Controller runs user requests against the download core.
type Controller struct {
	Engine   engine.Engine
	Store    Store
	Executor *downloads.Executor
	Playlist *playlist.Orchestrator
	Thumbs   *thumbs.Fetcher
	Notifier Notifier
	Sink     dispatch.Sink

	// OnEntries is called with the resolved entries before a playlist run starts.
	OnEntries func([]models.PlaylistEntry)
	Now       func() time.Time
}

// New wires a controller around one engine. ledger and fetcher may be nil.
func New(eng engine.Engine, st Store, ledger playlist.Ledger, fetcher *thumbs.Fetcher, sink dispatch.Sink) *Controller {
	if sink == nil {
		sink = dispatch.Discard{}
	}
	exec := downloads.NewExecutor(eng)
	return &Controller{
		Engine:   eng,
		Store:    st,
		Executor: exec,
		Playlist: playlist.New(exec, eng, st, ledger, sink),
		Thumbs:   fetcher,
		Notifier: DesktopNotifier{},
		Sink:     sink,
		Now:      time.Now,
	}
}

// Analyze validates url and fetches its metadata.
func (c *Controller) Analyze(ctx context.Context, url string) (*engine.Info, error) {
	if err := validation.ValidateURL(url); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, consts.MetadataTimeout)
	defer cancel()

	c.Sink.Send(dispatch.Status("Analyzing URL..."))
	info, err := c.Engine.FetchMetadata(ctx, url)
	if err != nil {
		return nil, downloads.Classify(err)
	}
	return info, nil
}

// DownloadVideo downloads a single video and records it in history on success.
//
// info is optional. When present it supplies history fields and pre-download notices.
func (c *Controller) DownloadVideo(ctx context.Context, req models.DownloadRequest, info *engine.Info) (downloads.Outcome, error) {
	if err := c.checkVideo(req); err != nil {
		c.Sink.Send(dispatch.Event{Kind: dispatch.KindError, Row: dispatch.SingleRow, Text: err.Error()})
		return downloads.Outcome{Err: err, Message: err.Error()}, err
	}

	if info != nil {
		c.notice(dispatch.LevelWarning, validation.FormatNotice(req.FormatKey, info.MaxHeight()))
		c.notice(dispatch.LevelWarning, validation.LiveNotice(info))
	}

	if err := os.MkdirAll(req.DestinationDir, consts.PermsGenericDir); err != nil {
		err = &downloads.SystemError{Err: fmt.Errorf("failed to create %q: %w", req.DestinationDir, err)}
		c.Sink.Send(dispatch.Event{Kind: dispatch.KindError, Row: dispatch.SingleRow, Text: err.Error()})
		return downloads.Outcome{Err: err, Message: err.Error()}, err
	}
	c.notice(dispatch.LevelWarning, validation.DiskSpaceNotice(req.DestinationDir, 0))

	cfg := builder.Build(req)
	out := <-c.Executor.Execute(ctx, req.URL, cfg, c.Sink)

	if out.Err == nil {
		entry := c.videoHistory(req, info, out.TotalBytes)
		if err := c.Store.AddHistory(entry); err != nil {
			logging.E("Failed to save history for %q: %v", req.URL, err)
			c.notice(dispatch.LevelError, "Could not save history: "+err.Error())
		}
		logging.S("Downloaded %q", entry.Title)
	}

	if !downloads.IsCancelled(out.Err) {
		c.notify(ctx, req.Settings, out.Message)
	}
	return out, out.Err
}

// DownloadPlaylist downloads every entry of p into its own folder under the download path.
func (c *Controller) DownloadPlaylist(ctx context.Context, p models.PlaylistInfo, formatKey string, settings models.Settings) (playlist.Result, error) {
	if err := validation.ValidateURL(p.URL); err != nil {
		c.Sink.Send(dispatch.Event{Kind: dispatch.KindError, Row: dispatch.SingleRow, Text: err.Error()})
		return playlist.Result{}, err
	}

	resolved, err := c.Playlist.Resolve(ctx, p)
	if err != nil {
		c.Sink.Send(dispatch.Event{Kind: dispatch.KindError, Row: dispatch.SingleRow, Text: downloads.Message(err)})
		return playlist.Result{}, err
	}

	dest := filepath.Join(settings.DownloadPath, parsing.SafeDirName(resolved.Title))
	if err := os.MkdirAll(dest, consts.PermsGenericDir); err != nil {
		err = &downloads.SystemError{Err: fmt.Errorf("failed to create playlist folder %q: %w", dest, err)}
		c.Sink.Send(dispatch.Event{Kind: dispatch.KindError, Row: dispatch.SingleRow, Text: err.Error()})
		return playlist.Result{}, err
	}
	c.notice(dispatch.LevelWarning, validation.DiskSpaceNotice(dest, len(resolved.Entries)))

	if c.OnEntries != nil {
		c.OnEntries(resolved.Entries)
	}

	var wg sync.WaitGroup
	if c.Thumbs != nil {
		jobs := make([]thumbs.Job, 0, len(resolved.Entries))
		for i, e := range resolved.Entries {
			jobs = append(jobs, thumbs.Job{Row: i, Title: e.Title, URL: e.ThumbnailURL})
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Thumbs.Fetch(ctx, jobs)
		}()
	}

	logging.I("Downloading playlist %q (%d entries) into %q", resolved.Title, len(resolved.Entries), dest)
	res, err := c.Playlist.Run(ctx, playlist.Request{
		Playlist:  resolved,
		DestDir:   dest,
		FormatKey: formatKey,
		Settings:  settings,
	})
	wg.Wait()
	if err != nil {
		return res, err
	}

	if !res.Cancelled {
		c.notify(ctx, settings, res.Status)
	}
	if res.Cancelled {
		return res, downloads.ErrCancelled
	}
	return res, nil
}

// Enqueue analyzes url and appends it to the persisted queue.
//
// Metadata failures still queue the URL as an unresolved item.
func (c *Controller) Enqueue(ctx context.Context, url, formatKey string) (models.QueueItem, error) {
	if err := validation.ValidateURL(url); err != nil {
		return models.QueueItem{}, err
	}

	info, err := c.Analyze(ctx, url)
	if err != nil && errors.Is(err, downloads.ErrCancelled) {
		return models.QueueItem{}, err
	}
	if err != nil {
		logging.W("Could not analyze %q, queueing it unresolved: %v", url, err)
	}

	item := QueueItemFromInfo(url, formatKey, info)
	if err := c.Store.AddToQueue(item); err != nil {
		return item, fmt.Errorf("failed to save queue: %w", err)
	}
	return item, nil
}

// RunVideo implements queue.Runner.
func (c *Controller) RunVideo(ctx context.Context, job queue.Job) error {
	var info *engine.Info
	if job.Item.Kind == models.KindVideo {
		info = &engine.Info{
			Title:     job.Item.Title,
			Uploader:  job.Item.Uploader,
			Thumbnail: job.Item.ThumbnailURL,
			Duration:  job.Item.Duration,
		}
	}
	_, err := c.DownloadVideo(ctx, job.Request, info)
	return err
}

// RunPlaylist implements queue.Runner.
func (c *Controller) RunPlaylist(ctx context.Context, job queue.Job) error {
	_, err := c.DownloadPlaylist(ctx, job.Playlist, job.Request.FormatKey, job.Request.Settings)
	return err
}

// QueueItemFromInfo builds a queue item from fetched metadata. A nil info gives an unresolved item.
func QueueItemFromInfo(url, formatKey string, info *engine.Info) models.QueueItem {
	item := models.QueueItem{URL: url, FormatKey: formatKey}
	switch {
	case info == nil:
		item.Kind = models.KindUnresolved
		item.Title = consts.PendingTitle
	case info.IsPlaylist():
		item.Kind = models.KindPlaylist
		item.Title = info.Title
		item.Uploader = info.Uploader
		item.Count = len(info.Entries)
		if len(info.Entries) > 0 {
			item.ThumbnailURL = info.Entries[0].ThumbnailURL()
		}
		if item.ThumbnailURL == "" {
			item.ThumbnailURL = info.Thumbnail
		}
	default:
		item.Kind = models.KindVideo
		item.Title = info.Title
		item.Uploader = info.Uploader
		item.ThumbnailURL = info.Thumbnail
		item.Duration = info.Duration
	}
	return item
}

// ******************************** Private ********************************

func (c *Controller) checkVideo(req models.DownloadRequest) error {
	if err := validation.ValidateURL(req.URL); err != nil {
		return err
	}
	if req.Trim != nil {
		if _, err := validation.ValidateTrim(req.Trim.StartSec, req.Trim.EndSec, false); err != nil {
			return err
		}
	}
	return nil
}

func (c *Controller) videoHistory(req models.DownloadRequest, info *engine.Info, total *int64) models.HistoryEntry {
	entry := models.HistoryEntry{
		Title:           req.URL,
		URL:             req.URL,
		Uploader:        consts.UnknownUploader,
		Date:            c.now().Format(consts.DateLayout),
		Kind:            models.KindVideo,
		SizeLabel:       progress.SizeLabel(total),
		ResolutionLabel: req.FormatKey,
	}
	if info != nil {
		if info.Title != "" {
			entry.Title = info.Title
		}
		if info.Uploader != "" {
			entry.Uploader = info.Uploader
		}
		entry.ThumbnailURL = info.Thumbnail
		entry.DurationSeconds = info.Duration
	}
	return entry
}

func (c *Controller) notice(level dispatch.Level, text string) {
	if text == "" {
		return
	}
	c.Sink.Send(dispatch.Notice(level, text))
}

func (c *Controller) notify(ctx context.Context, settings models.Settings, body string) {
	if !settings.Notifications || c.Notifier == nil || body == "" {
		return
	}
	c.Notifier.Notify(ctx, body)
}

func (c *Controller) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}
