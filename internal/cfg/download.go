package cfg

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"vidgrab/internal/app"
	"vidgrab/internal/console"
	"vidgrab/internal/dispatch"
	"vidgrab/internal/domain/consts"
	"vidgrab/internal/domain/keys"
	"vidgrab/internal/downloads"
	"vidgrab/internal/engine"
	"vidgrab/internal/logging"
	"vidgrab/internal/models"
	"vidgrab/internal/times"
	"vidgrab/internal/validation"

	"github.com/spf13/cobra"
)

// downloadOpts are the flags of the download command.
type downloadOpts struct {
	format     string
	dest       string
	trimStart  string
	trimEnd    string
	playlist   bool
	noPlaylist bool
}

// downloadCmd downloads a single video or a whole playlist.
func downloadCmd() *cobra.Command {
	var o downloadOpts

	cmd := &cobra.Command{
		Use:   "download <url>",
		Short: "Download a video or playlist",
		Long:  "Analyze a URL and download it. Playlists are downloaded entry by entry into their own folder.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if o.playlist && o.noPlaylist {
				return errors.New("--playlist and --no-playlist are mutually exclusive")
			}
			e := openLedger(cmd.Context())
			defer e.close()

			return runWithUI(cmd.Context(), func(ctx context.Context, sink dispatch.Sink, r *console.Renderer) error {
				return runDownload(ctx, e.controller(sink, r), e.store.LoadSettings(), args[0], o)
			})
		},
	}

	f := cmd.Flags()
	f.StringVarP(&o.format, keys.Format, "f", "", "Format key (4k, 1440p, 1080p, 720p, 480p, mp3, mp3_320, wav, m4a, gif). Defaults to the default_format setting")
	f.StringVarP(&o.dest, keys.Dest, "o", "", "Download directory. Defaults to the download_path setting")
	f.StringVar(&o.trimStart, keys.TrimStart, "", "Trim start (h:m:s, m:s or seconds). Single videos only")
	f.StringVar(&o.trimEnd, keys.TrimEnd, "", "Trim end (h:m:s, m:s or seconds). Single videos only")
	f.BoolVar(&o.playlist, keys.Playlist, false, "Fail unless the URL is a playlist")
	f.BoolVar(&o.noPlaylist, keys.NoPlaylist, false, "Download only the video even if the URL names a playlist")
	return cmd
}

// runDownload analyzes url and dispatches it as a single video or a playlist.
func runDownload(ctx context.Context, c *app.Controller, settings models.Settings, url string, o downloadOpts) error {
	url = strings.TrimSpace(url)
	if o.dest != "" {
		settings.DownloadPath = o.dest
	}
	format := o.format
	if format == "" {
		format = settings.DefaultFormat
	}

	info, err := c.Analyze(ctx, url)
	if err != nil {
		var confErr *downloads.ConfigurationError
		if errors.As(err, &confErr) || downloads.IsCancelled(err) || o.playlist {
			return err
		}
		c.Sink.Send(dispatch.Notice(dispatch.LevelWarning, "Could not analyze URL, trying a direct download: "+downloads.Message(err)))
	}

	isPlaylist := info != nil && info.IsPlaylist() && !o.noPlaylist
	if o.playlist && !isPlaylist {
		return &downloads.ConfigurationError{Field: "URL", Reason: "not a playlist"}
	}

	trim, err := validation.ParseTrim(o.trimStart, o.trimEnd, isPlaylist)
	if err != nil {
		c.Sink.Send(dispatch.Event{Kind: dispatch.KindError, Row: dispatch.SingleRow, Text: err.Error()})
		return err
	}

	if isPlaylist {
		logging.I("Playlist %q with %d entries", info.Title, len(info.Entries))
		_, err := c.DownloadPlaylist(ctx, info.Playlist(url), format, settings)
		return err
	}

	if info != nil {
		describeInfo(c, info)
	}
	_, err = c.DownloadVideo(ctx, models.DownloadRequest{
		URL:            url,
		DestinationDir: settings.DownloadPath,
		FormatKey:      format,
		Trim:           trim,
		Settings:       settings,
	}, info)
	return err
}

// describeInfo reports the analyzed video before it downloads.
func describeInfo(c *app.Controller, info *engine.Info) {
	dur := int64(info.Duration)
	c.Sink.Send(dispatch.Status(fmt.Sprintf("%s by %s (%s)", info.Title, orUnknown(info.Uploader), times.FormatETA(&dur))))
}

func orUnknown(s string) string {
	if s == "" {
		return consts.UnknownUploader
	}
	return s
}
