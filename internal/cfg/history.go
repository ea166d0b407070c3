package cfg

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"vidgrab/internal/command/builder"
	"vidgrab/internal/console"
	"vidgrab/internal/dispatch"
	"vidgrab/internal/domain/consts"
	"vidgrab/internal/domain/keys"
	"vidgrab/internal/logging"
	"vidgrab/internal/models"
	"vidgrab/internal/times"

	"github.com/spf13/cobra"
)

// initHistoryCmds is the entrypoint for initializing history commands.
func initHistoryCmds() *cobra.Command {
	histCmd := &cobra.Command{
		Use:   "history",
		Short: "History commands",
		Long:  "List, clear and re-download completed downloads.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return errors.New("please specify a subcommand. Use --help to see available subcommands")
		},
	}

	histCmd.AddCommand(
		listHistoryCmd(),
		clearHistoryCmd(),
		redownloadCmd(),
	)
	return histCmd
}

// listHistoryCmd prints history, newest first.
func listHistoryCmd() *cobra.Command {
	var since string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List completed downloads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := openStore().store.LoadHistory()
			if since != "" {
				t, err := times.ParseSince(since)
				if err != nil {
					return fmt.Errorf("invalid --%s date %q: %w", keys.Since, since, err)
				}
				entries = filterSince(entries, t)
			}
			if len(entries) == 0 {
				logging.P("No downloads in history")
				return nil
			}
			for i, h := range entries {
				logging.P("%3d. %s", i+1, describeHistory(h))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&since, keys.Since, "", "Only show downloads on or after this date (most formats accepted)")
	return cmd
}

// clearHistoryCmd empties history after confirmation.
func clearHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear download history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := confirm(cmd.Context(), "Clear all download history?")
			if err != nil || !ok {
				return err
			}
			if err := openStore().store.ClearHistory(); err != nil {
				return err
			}
			logging.S("History cleared")
			return nil
		},
	}
}

// redownloadCmd downloads a history entry again.
func redownloadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "redownload <index>",
		Short: "Download a history entry again by its position in 'history list'",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid index %q: %w", args[0], err)
			}

			e := openLedger(cmd.Context())
			defer e.close()

			entries := e.store.LoadHistory()
			if n < 1 || n > len(entries) {
				return fmt.Errorf("history index %d out of range (history has %d entries)", n, len(entries))
			}
			h := entries[n-1]
			settings := e.store.LoadSettings()

			o := downloadOpts{format: redownloadFormat(h, settings)}
			if h.Kind == models.KindVideo {
				o.noPlaylist = true
			}
			return runWithUI(cmd.Context(), func(ctx context.Context, sink dispatch.Sink, r *console.Renderer) error {
				return runDownload(ctx, e.controller(sink, r), settings, h.URL, o)
			})
		},
	}
}

// redownloadFormat reuses the recorded resolution when it is a known format key.
func redownloadFormat(h models.HistoryEntry, settings models.Settings) string {
	if builder.KnownKey(h.ResolutionLabel) {
		return h.ResolutionLabel
	}
	return settings.DefaultFormat
}

// filterSince keeps entries dated on or after t. Entries with unreadable dates are kept.
func filterSince(entries []models.HistoryEntry, t time.Time) []models.HistoryEntry {
	out := make([]models.HistoryEntry, 0, len(entries))
	for _, h := range entries {
		d, err := time.ParseInLocation(consts.DateLayout, h.Date, time.Local)
		if err != nil || !d.Before(t) {
			out = append(out, h)
		}
	}
	return out
}

// describeHistory renders one history entry for listings.
func describeHistory(h models.HistoryEntry) string {
	if h.Kind == models.KindPlaylist {
		return fmt.Sprintf("%s [playlist] %s (%d items) by %s - %s", h.Date, h.Title, h.EntryCount, orUnknown(h.Uploader), h.URL)
	}
	return fmt.Sprintf("%s [video] %s (%s, %s) by %s - %s", h.Date, h.Title, h.ResolutionLabel, h.SizeLabel, orUnknown(h.Uploader), h.URL)
}
