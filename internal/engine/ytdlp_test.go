//go:build unix

package engine

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"vidgrab/internal/command/builder"
)

const dlLine = `[vgrab:dl] downloading|1024|2048|NA|NA|NA|NA|NA`

// fakeBin writes an executable shell script standing in for yt-dlp.
//
// Tests using it run serially: a concurrent fork can hold the script open for writing and fail exec with ETXTBSY.
func fakeBin(t *testing.T, body string) *YTDLP {
	t.Helper()
	path := filepath.Join(t.TempDir(), "yt-dlp")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatalf("write fake yt-dlp: %v", err)
	}
	return NewYTDLP(path)
}

// TestDownloadMergesOutputStreams checks progress lines are read from stdout and stderr alike.
func TestDownloadMergesOutputStreams(t *testing.T) {
	y := fakeBin(t, `printf '%s\n' '`+dlLine+`'
printf '%s\n' '[vgrab:pp] started|Merger' >&2
printf '%s\n' 'plain chatter'`)

	var dl, pp int
	err := y.Download(context.Background(), "https://example.com/v", builder.EngineConfig{}, func(ev RawEvent) error {
		switch ev.Kind {
		case RawDownload:
			dl++
		case RawPostprocess:
			pp++
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if dl != 1 || pp != 1 {
		t.Errorf("got %d download and %d postprocess events, want 1 and 1", dl, pp)
	}
}

// TestDownloadKeepsLastErrorLine checks a failed run reports the engine's last ERROR line.
func TestDownloadKeepsLastErrorLine(t *testing.T) {
	y := fakeBin(t, `printf '%s\n' '`+dlLine+`'
printf '%s\n' 'ERROR: first problem' >&2
printf '%s\n' 'ERROR: [youtube] abc: Private video' >&2
exit 1`)

	err := y.Download(context.Background(), "https://example.com/v", builder.EngineConfig{}, func(RawEvent) error { return nil })
	var dlErr *DownloadError
	if !errors.As(err, &dlErr) {
		t.Fatalf("err = %v (%T), want *DownloadError", err, err)
	}
	if dlErr.Msg != "ERROR: [youtube] abc: Private video" {
		t.Errorf("Msg = %q", dlErr.Msg)
	}
	if dlErr.ExitCode != 1 {
		t.Errorf("ExitCode = %d, want 1", dlErr.ExitCode)
	}
}

// TestDownloadHookErrorKillsProcess checks a hook error stops the whole process group and is returned.
func TestDownloadHookErrorKillsProcess(t *testing.T) {
	y := fakeBin(t, `printf '%s\n' '`+dlLine+`'
sleep 30
printf '%s\n' '`+dlLine+`'`)

	stop := errors.New("stop requested")
	calls := 0
	start := time.Now()
	err := y.Download(context.Background(), "https://example.com/v", builder.EngineConfig{}, func(RawEvent) error {
		calls++
		return stop
	})
	if !errors.Is(err, stop) {
		t.Fatalf("err = %v, want hook error", err)
	}
	if calls != 1 {
		t.Errorf("hook called %d times, want 1", calls)
	}
	if elapsed := time.Since(start); elapsed >= waitDelay {
		t.Errorf("download took %v, process was not killed", elapsed)
	}
}

// TestDownloadCancelReturnsContextError checks cancellation wins over the engine's exit status.
func TestDownloadCancelReturnsContextError(t *testing.T) {
	y := fakeBin(t, `printf '%s\n' '`+dlLine+`'
sleep 30`)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	start := time.Now()
	err := y.Download(ctx, "https://example.com/v", builder.EngineConfig{}, func(RawEvent) error {
		cancel()
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if elapsed := time.Since(start); elapsed >= waitDelay {
		t.Errorf("download took %v, process was not killed", elapsed)
	}
}
