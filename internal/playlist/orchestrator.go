// Package playlist drives sequential downloads across the entries of a playlist.
package playlist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vidgrab/internal/command/builder"
	"vidgrab/internal/dispatch"
	"vidgrab/internal/domain/consts"
	"vidgrab/internal/downloads"
	"vidgrab/internal/engine"
	"vidgrab/internal/logging"
	"vidgrab/internal/models"
	"vidgrab/internal/progress"

	"github.com/google/uuid"
)

// Row texts.
const (
	textActive    = "Downloading..."
	textDone      = "✔ Done"
	textFailed    = "Failed"
	textCancelled = "Cancelled"
)

// Runner runs one download synchronously.
type Runner interface {
	Run(ctx context.Context, url string, cfg builder.EngineConfig, onProgress func(models.ProgressEvent)) error
}

// MetadataFetcher resolves playlist entries.
type MetadataFetcher interface {
	FetchMetadata(ctx context.Context, url string) (*engine.Info, error)
}

// HistoryWriter records finished runs.
type HistoryWriter interface {
	AddHistory(models.HistoryEntry) error
}

// Ledger receives per-entry status updates.
type Ledger interface {
	Update(models.StatusUpdate)
}

// Request is one playlist run.
type Request struct {
	Playlist  models.PlaylistInfo
	DestDir   string
	FormatKey string
	Settings  models.Settings
}

// Result summarizes a finished run.
type Result struct {
	RunID     string
	Status    string
	Total     int
	Succeeded int
	Failed    int
	Cancelled bool
	Rows      []models.RunRow
	History   *models.HistoryEntry
}

// Orchestrator runs playlist entries one after another.
type Orchestrator struct {
	Runner  Runner
	Meta    MetadataFetcher
	History HistoryWriter
	Ledger  Ledger
	Sink    dispatch.Sink
	Pause   time.Duration
	Now     func() time.Time
}

// New returns an orchestrator with the default pause between entries.
func New(r Runner, meta MetadataFetcher, history HistoryWriter, ledger Ledger, sink dispatch.Sink) *Orchestrator {
	return &Orchestrator{
		Runner:  r,
		Meta:    meta,
		History: history,
		Ledger:  ledger,
		Sink:    sink,
		Pause:   consts.EntryPause,
		Now:     time.Now,
	}
}

// run holds the state of one orchestrator run.
type run struct {
	o     *Orchestrator
	id    string
	state models.PlaylistRunState
}

// Run downloads every entry of the playlist in order.
//
// A failing entry is counted and the run continues. Cancelling ctx fails the active entry
// and stops the run before the next one starts. One history entry is written per run.
func (o *Orchestrator) Run(ctx context.Context, req Request) (Result, error) {
	info, err := o.Resolve(ctx, req.Playlist)
	if err != nil {
		o.send(dispatch.Event{Kind: dispatch.KindError, Row: dispatch.SingleRow, Text: downloads.Message(err)})
		return Result{}, err
	}

	r := &run{o: o, id: uuid.NewString()}
	r.state.Rows = make([]models.RunRow, len(info.Entries))
	for i, e := range info.Entries {
		r.state.Rows[i] = models.RunRow{Entry: e, Status: models.EntryPending}
		r.emitRow(i)
		r.ledger(i, models.LedgerPending, "")
	}

	r.state.Phase = models.RunRunning
	total := len(info.Entries)
	cancelled := false

	for i := range r.state.Rows {
		if ctx.Err() != nil {
			cancelled = true
			break
		}
		if i > 0 && !o.pause(ctx) {
			cancelled = true
			break
		}
		r.runEntry(ctx, i, total, req)
	}
	if !cancelled && ctx.Err() != nil && r.state.Rows[total-1].Status == models.EntryFailed {
		cancelled = true
	}
	r.state.Phase = models.RunCompleted

	res := Result{
		RunID:     r.id,
		Total:     total,
		Failed:    r.state.FailedCount,
		Cancelled: cancelled,
		Rows:      append([]models.RunRow(nil), r.state.Rows...),
	}
	for _, row := range r.state.Rows {
		if row.Status == models.EntryDone {
			res.Succeeded++
		}
	}
	res.Status = finalStatus(res)

	level := dispatch.LevelSuccess
	switch {
	case cancelled:
		level = dispatch.LevelWarning
		logging.W("%s", res.Status)
	case res.Failed > 0:
		level = dispatch.LevelWarning
		logging.W("%s", res.Status)
	default:
		logging.S("%s", res.Status)
	}

	if res.Succeeded > 0 {
		entry := o.historyEntry(info, total)
		res.History = &entry
		if o.History != nil {
			if err := o.History.AddHistory(entry); err != nil {
				logging.E("Failed to save playlist history: %v", err)
				o.send(dispatch.Notice(dispatch.LevelError, "Could not save history: "+err.Error()))
			}
		}
	}

	o.send(dispatch.Event{Kind: dispatch.KindComplete, Row: dispatch.SingleRow, Level: level, Text: res.Status})
	return res, nil
}

// runEntry downloads entry i with a freshly built configuration.
func (r *run) runEntry(ctx context.Context, i, total int, req Request) {
	row := &r.state.Rows[i]
	row.Status = models.EntryActive
	row.Text = textActive
	r.emitRow(i)
	r.ledger(i, models.LedgerActive, "")
	r.o.send(dispatch.Status(fmt.Sprintf("Downloading %d/%d: %s...", i+1, total, truncate(row.Entry.Title, 40))))

	if row.Entry.URL == "" {
		r.fail(i, &downloads.SystemError{Err: errors.New("entry has no URL")})
		return
	}

	cfg := builder.BuildConfig(req.DestDir, req.FormatKey, nil, req.Settings)
	err := r.o.Runner.Run(ctx, row.Entry.URL, cfg, func(ev models.ProgressEvent) {
		switch ev.Phase {
		case models.PhaseMerging:
			row.Progress = 1
		case models.PhaseDownloading:
			if f, ok := ev.Fraction(); ok {
				row.Progress = f
			}
		}
		row.Text = progress.Describe(ev)
		r.o.send(dispatch.Event{
			Kind:     dispatch.KindProgress,
			Row:      i,
			Progress: ev,
			Status:   models.EntryActive,
			Fraction: row.Progress,
			Text:     row.Text,
		})
		r.ledgerProgress(i, row.Progress)
	})
	if err != nil {
		r.fail(i, err)
		return
	}

	row.Status = models.EntryDone
	row.Progress = 1
	row.Text = textDone
	r.emitRow(i)
	r.ledger(i, models.LedgerDone, "")
}

func (r *run) fail(i int, err error) {
	row := &r.state.Rows[i]
	r.state.FailedCount++
	row.Status = models.EntryFailed

	status := models.LedgerFailed
	row.Text = textFailed
	if downloads.IsCancelled(err) {
		status = models.LedgerCancelled
		row.Text = textCancelled
	}
	logging.E("Failed to download %q: %v", row.Entry.Title, err)
	r.emitRow(i)
	r.ledger(i, status, downloads.Message(err))
}

func (r *run) emitRow(i int) {
	row := r.state.Rows[i]
	r.o.send(dispatch.Event{
		Kind:     dispatch.KindRow,
		Row:      i,
		Status:   row.Status,
		Fraction: row.Progress,
		Text:     row.Text,
	})
}

func (r *run) ledger(i int, status models.LedgerStatus, msg string) {
	if r.o.Ledger == nil {
		return
	}
	row := r.state.Rows[i]
	r.o.Ledger.Update(models.StatusUpdate{
		RunID:      r.id,
		EntryIndex: i,
		URL:        row.Entry.URL,
		Title:      row.Entry.Title,
		Status:     status,
		Percent:    row.Progress * 100,
		Error:      msg,
	})
}

func (r *run) ledgerProgress(i int, f float64) {
	if r.o.Ledger == nil {
		return
	}
	row := r.state.Rows[i]
	r.o.Ledger.Update(models.StatusUpdate{
		RunID:      r.id,
		EntryIndex: i,
		URL:        row.Entry.URL,
		Title:      row.Entry.Title,
		Status:     models.LedgerActive,
		Percent:    f * 100,
	})
}

// Resolve fetches entry metadata once when any entry lacks a URL. Fully known playlists are returned as is.
func (o *Orchestrator) Resolve(ctx context.Context, p models.PlaylistInfo) (models.PlaylistInfo, error) {
	needs := len(p.Entries) == 0
	for _, e := range p.Entries {
		if e.URL == "" {
			needs = true
			break
		}
	}
	if !needs {
		return p, nil
	}
	if o.Meta == nil {
		return p, &downloads.SystemError{Err: fmt.Errorf("playlist %q has unresolved entries", p.URL)}
	}

	o.send(dispatch.Status("Resolving playlist entries..."))
	info, err := o.Meta.FetchMetadata(ctx, p.URL)
	if err != nil {
		return p, fmt.Errorf("failed to resolve playlist %q: %w", p.URL, downloads.Classify(err))
	}
	resolved := info.Playlist(p.URL)
	if len(resolved.Entries) == 0 {
		return p, &downloads.SystemError{Err: fmt.Errorf("playlist %q has no entries", p.URL)}
	}
	if p.Title != "" {
		resolved.Title = p.Title
	}
	if p.Uploader != "" {
		resolved.Uploader = p.Uploader
	}
	if len(p.Entries) != len(resolved.Entries) {
		logging.I("Playlist %q now has %d entries (queued with %d)", p.URL, len(resolved.Entries), len(p.Entries))
	}
	return resolved, nil
}

// pause waits between entries. It returns false if ctx is cancelled first.
func (o *Orchestrator) pause(ctx context.Context) bool {
	if o.Pause <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(o.Pause)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func (o *Orchestrator) historyEntry(info models.PlaylistInfo, total int) models.HistoryEntry {
	title := info.Title
	if title == "" {
		title = fmt.Sprintf("Playlist (%d items)", total)
	}
	uploader := info.Uploader
	if uploader == "" {
		uploader = consts.UnknownUploader
	}
	thumb := ""
	if len(info.Entries) > 0 {
		thumb = info.Entries[0].ThumbnailURL
	}
	now := time.Now
	if o.Now != nil {
		now = o.Now
	}
	return models.HistoryEntry{
		Title:        title,
		URL:          info.URL,
		ThumbnailURL: thumb,
		Uploader:     uploader,
		Date:         now().Format(consts.DateLayout),
		Kind:         models.KindPlaylist,
		EntryCount:   total,
	}
}

func (o *Orchestrator) send(ev dispatch.Event) {
	if o.Sink != nil {
		o.Sink.Send(ev)
	}
}

// finalStatus composes the summary line of a run.
func finalStatus(r Result) string {
	switch {
	case r.Cancelled:
		return fmt.Sprintf("Playlist Cancelled (%d/%d succeeded, %d failed)", r.Succeeded, r.Total, r.Failed)
	case r.Failed == 0:
		return "✔ Playlist Download Complete!"
	}
	return fmt.Sprintf("✔ Playlist Complete (%d/%d succeeded, %d failed)", r.Total-r.Failed, r.Total, r.Failed)
}

func truncate(s string, n int) string {
	rs := []rune(s)
	if len(rs) <= n {
		return s
	}
	return string(rs[:n])
}
