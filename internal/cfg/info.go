package cfg

import (
	"strconv"

	"vidgrab/internal/dispatch"
	"vidgrab/internal/engine"
	"vidgrab/internal/logging"
	"vidgrab/internal/times"
	"vidgrab/internal/validation"

	"github.com/spf13/cobra"
)

// infoCmd prints the metadata of a URL without downloading.
func infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <url>",
		Short: "Show video or playlist details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := openStore()
			c := e.controller(dispatch.Discard{}, nil)

			info, err := c.Analyze(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printInfo(info)
			return nil
		},
	}
}

// printInfo prints the details of a video or the entry list of a playlist.
func printInfo(info *engine.Info) {
	if info.IsPlaylist() {
		logging.P("Playlist:  %s", info.Title)
		logging.P("Uploader:  %s", orUnknown(info.Uploader))
		logging.P("Entries:   %d", len(info.Entries))
		if n := validation.DiskSpaceNotice(".", len(info.Entries)); n != "" {
			logging.P("%s", n)
		}
		for i, e := range info.Entries {
			dur := int64(e.Duration)
			logging.P("  %3d. %s [%s]", i+1, e.Title, times.FormatETA(&dur))
		}
		return
	}

	dur := int64(info.Duration)
	logging.P("Title:     %s", info.Title)
	logging.P("Uploader:  %s", orUnknown(info.Uploader))
	logging.P("Duration:  %s", times.FormatETA(&dur))
	maxH := "unknown"
	if h := info.MaxHeight(); h > 0 {
		maxH = strconv.Itoa(h) + "p"
	}
	logging.P("Max:       %s", maxH)
	if n := validation.LiveNotice(info); n != "" {
		logging.P("%s", n)
	}
}
