package engine

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"

	"vidgrab/internal/command/builder"
	"vidgrab/internal/domain/command"
	"vidgrab/internal/domain/consts"
	"vidgrab/internal/logging"
)

const (
	defaultBin   = "yt-dlp"
	errPrefix    = "ERROR:"
	maxLineBytes = 1024 * 1024
	waitDelay    = 5 * time.Second
)

// YTDLP drives the yt-dlp command line program.
type YTDLP struct {
	Bin string
}

// NewYTDLP returns a yt-dlp engine. An empty bin uses yt-dlp from PATH.
func NewYTDLP(bin string) *YTDLP {
	if bin == "" {
		bin = defaultBin
	}
	return &YTDLP{Bin: bin}
}

// FetchMetadata dumps the URL's metadata without downloading. Playlists are listed flat.
func (y *YTDLP) FetchMetadata(ctx context.Context, url string) (*Info, error) {
	ctx, cancel := context.WithTimeout(ctx, consts.MetadataTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, y.Bin,
		command.DumpSingleJSON,
		command.FlatPlaylist,
		command.NoWarnings,
		"--", url,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	logging.D(2, "Fetching metadata: %v", cmd.Args)
	out, err := cmd.Output()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, &DownloadError{Msg: lastErrorLine(stderr.String(), err), ExitCode: exitErr.ExitCode()}
		}
		return nil, fmt.Errorf("failed to run %s: %w", y.Bin, err)
	}

	var info Info
	if err := json.Unmarshal(out, &info); err != nil {
		return nil, fmt.Errorf("failed to decode metadata for %q: %w", url, err)
	}
	return &info, nil
}

// Download runs one download, passing progress lines to hook as raw events.
func (y *YTDLP) Download(ctx context.Context, url string, cfg builder.EngineConfig, hook Hook) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	args := cfg.Args()
	args = append(args,
		command.Newline,
		command.Progress,
		command.ProgressTemplate, command.DownloadTemplate,
		command.ProgressTemplate, command.PostprocessTemplate,
		"--", url,
	)

	cmd := exec.CommandContext(runCtx, y.Bin, args...)
	setProcessGroup(cmd)
	cmd.WaitDelay = waitDelay

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe error: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("stderr pipe error: %w", err)
	}

	logging.D(1, "Executing command: %v", cmd.Args)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start command: %w", err)
	}

	// Merge stdout and stderr into lineChan
	lineChan := make(chan string, 100)
	var wg sync.WaitGroup
	wg.Add(2)
	go scanLines(stdout, lineChan, &wg)
	go scanLines(stderr, lineChan, &wg)
	go func() {
		wg.Wait()
		close(lineChan)
	}()

	var (
		hookErr error
		lastErr string
	)
	for line := range lineChan {
		if strings.HasPrefix(line, errPrefix) {
			lastErr = line
			logging.D(1, "yt-dlp: %s", line)
			continue
		}
		if hookErr != nil {
			continue
		}
		ev, ok := ParseLine(line)
		if !ok {
			logging.D(3, "yt-dlp: %s", line)
			continue
		}
		if err := hook(ev); err != nil {
			hookErr = err
			cancel()
		}
	}

	waitErr := cmd.Wait()
	switch {
	case hookErr != nil:
		return hookErr
	case ctx.Err() != nil:
		return ctx.Err()
	case waitErr == nil:
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) {
		if lastErr == "" {
			lastErr = waitErr.Error()
		}
		return &DownloadError{Msg: lastErr, ExitCode: exitErr.ExitCode()}
	}
	return fmt.Errorf("command wait error: %w", waitErr)
}

// scanLines sends every line of r to out.
func scanLines(r io.Reader, out chan<- string, wg *sync.WaitGroup) {
	defer wg.Done()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		out <- scanner.Text()
	}
	if err := scanner.Err(); err != nil {
		logging.D(2, "Output scanner stopped: %v", err)
	}
}

// lastErrorLine returns the last ERROR line of output, or the process error text.
func lastErrorLine(output string, err error) string {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if l := strings.TrimSpace(lines[i]); strings.HasPrefix(l, errPrefix) {
			return l
		}
	}
	return err.Error()
}
