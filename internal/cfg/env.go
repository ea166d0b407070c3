package cfg

import (
	"context"
	"os"

	"vidgrab/internal/app"
	"vidgrab/internal/console"
	"vidgrab/internal/database"
	"vidgrab/internal/dispatch"
	"vidgrab/internal/domain/consts"
	"vidgrab/internal/domain/keys"
	"vidgrab/internal/domain/paths"
	"vidgrab/internal/downloads"
	"vidgrab/internal/engine"
	"vidgrab/internal/logging"
	"vidgrab/internal/playlist"
	"vidgrab/internal/repo"
	"vidgrab/internal/store"
	"vidgrab/internal/thumbs"
	"vidgrab/internal/utils/prompt"

	"github.com/spf13/viper"
)

// env holds the program-wide dependencies of one command.
type env struct {
	store   *store.Store
	db      *database.Database
	ledger  *repo.DownloadStore
	tracker *downloads.Tracker
}

// openStore opens only the JSON documents.
func openStore() *env {
	return &env{store: store.New(paths.SettingsPath, paths.QueuePath, paths.HistoryPath)}
}

// openLedger opens the documents plus the status database and starts the tracker.
//
// A database failure is logged and downloads continue without a ledger.
func openLedger(ctx context.Context) *env {
	e := openStore()

	db, err := database.InitDB(paths.DBFilePath)
	if err != nil {
		logging.E("Status ledger unavailable: %v", err)
		return e
	}
	e.db = db
	e.ledger = repo.GetDownloadStore(db.DB)

	if n, err := e.ledger.MarkInterrupted(ctx); err != nil {
		logging.W("Could not clean up interrupted downloads: %v", err)
	} else if n > 0 {
		logging.I("Marked %d interrupted downloads as cancelled", n)
	}

	e.tracker = downloads.NewTracker(e.ledger)
	e.tracker.Start()
	return e
}

// close stops the tracker (flushing pending updates) and closes the database.
func (e *env) close() {
	e.tracker.Stop()
	if e.db != nil {
		if err := e.db.Close(); err != nil {
			logging.E("Failed to close database: %v", err)
		}
	}
}

// controller builds an app controller that reports to sink and renderer.
func (e *env) controller(sink dispatch.Sink, r *console.Renderer) *app.Controller {
	eng := engine.NewYTDLP(viper.GetString(keys.YTDLPPath))

	var fetcher *thumbs.Fetcher
	if viper.GetBool(keys.ThumbsFetch) {
		fetcher = thumbs.NewFetcher(paths.ThumbCacheDir, consts.ThumbParallelism, sink)
	}

	var ledger playlist.Ledger
	if e.tracker != nil {
		ledger = e.tracker
	}
	c := app.New(eng, e.store, ledger, fetcher, sink)
	if r != nil {
		c.OnEntries = r.SetTitles
	}
	return c
}

// runWithUI runs work on a background goroutine and renders its events on this one
// until work returns.
func runWithUI(ctx context.Context, work func(ctx context.Context, sink dispatch.Sink, r *console.Renderer) error) error {
	d := dispatch.New(64)
	r := console.NewRenderer(os.Stdout)

	errChan := make(chan error, 1)
	go func() {
		defer d.Close()
		errChan <- work(ctx, d, r)
	}()

	dispatch.Pump(d.Events(), r, consts.DisplayThrottle)
	r.Finish()
	return <-errChan
}

// confirm asks question unless --yes was given.
func confirm(ctx context.Context, question string) (bool, error) {
	if viper.GetBool(keys.AssumeYes) {
		return true, nil
	}
	return prompt.Confirm(ctx, os.Stdin, os.Stdout, question)
}
