// Package console renders dispatched download events on the terminal.
package console

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"vidgrab/internal/dispatch"
	"vidgrab/internal/domain/consts"
	"vidgrab/internal/models"
	"vidgrab/internal/progress"
	"vidgrab/internal/times"

	"golang.org/x/term"
)

const (
	defaultWidth = 100
	clearLine    = "\r\033[K"
)

// Renderer prints events. On a terminal, progress redraws a single line in place.
// Otherwise progress is printed only when the phase changes or every 10%.
type Renderer struct {
	Out   io.Writer
	TTY   bool
	Width int

	mu       sync.Mutex
	titles   map[int]string
	live     bool
	lastStep map[int]int
	lastPh   map[int]models.Phase
}

// NewRenderer returns a renderer for out, detecting terminal support when out is a file.
func NewRenderer(out io.Writer) *Renderer {
	r := &Renderer{Out: out, Width: defaultWidth}
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		r.TTY = true
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			r.Width = w
		}
	}
	return r
}

// SetTitles names playlist rows for row and progress lines.
func (r *Renderer) SetTitles(entries []models.PlaylistEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.titles = make(map[int]string, len(entries))
	for i, e := range entries {
		r.titles[i] = e.Title
	}
}

// Handle implements dispatch.Handler.
func (r *Renderer) Handle(ev dispatch.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch ev.Kind {
	case dispatch.KindProgress:
		r.progress(ev)
	case dispatch.KindRow:
		r.line(rowColor(ev.Status) + r.prefix(ev.Row) + ev.Text + consts.ColorReset)
	case dispatch.KindStatus:
		r.line(ev.Text)
	case dispatch.KindNotice:
		r.line(levelColor(ev.Level) + ev.Text + consts.ColorReset)
	case dispatch.KindComplete:
		c := consts.ColorGreen
		if ev.Level != "" {
			c = levelColor(ev.Level)
		}
		r.line(c + ev.Text + consts.ColorReset)
	case dispatch.KindError:
		r.line(consts.ColorRed + ev.Text + consts.ColorReset)
	case dispatch.KindThumb:
		// Thumbnails have no terminal rendering.
	}
}

// Finish ends any in-place line.
func (r *Renderer) Finish() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.live {
		fmt.Fprintln(r.Out)
		r.live = false
	}
}

func (r *Renderer) progress(ev dispatch.Event) {
	p := ev.Progress
	text := progress.Describe(p)
	if p.Phase == models.PhaseDownloading && p.ETASeconds != nil {
		text += " • ETA: " + times.FormatETA(p.ETASeconds)
	}
	text = r.prefix(ev.Row) + text

	if r.TTY {
		fmt.Fprint(r.Out, clearLine+truncate(text, r.Width-1))
		r.live = true
		return
	}

	if r.lastStep == nil {
		r.lastStep = make(map[int]int)
		r.lastPh = make(map[int]models.Phase)
	}
	step := -1
	if f, ok := p.Fraction(); ok {
		step = int(f * 10)
	}
	if r.lastPh[ev.Row] == p.Phase && r.lastStep[ev.Row] == step {
		return
	}
	r.lastPh[ev.Row] = p.Phase
	r.lastStep[ev.Row] = step
	fmt.Fprintln(r.Out, text)
}

// line prints a full line, ending any in-place progress first.
func (r *Renderer) line(text string) {
	if r.live {
		fmt.Fprint(r.Out, clearLine)
		r.live = false
	}
	fmt.Fprintln(r.Out, text)
}

func (r *Renderer) prefix(row int) string {
	if row == dispatch.SingleRow {
		return ""
	}
	if title := r.titles[row]; title != "" {
		return fmt.Sprintf("[%d] %s: ", row+1, truncate(title, 40))
	}
	return fmt.Sprintf("[%d] ", row+1)
}

func rowColor(s models.EntryStatus) string {
	switch s {
	case models.EntryDone:
		return consts.ColorGreen
	case models.EntryFailed:
		return consts.ColorRed
	case models.EntryActive:
		return consts.ColorCyan
	default:
		return consts.ColorReset
	}
}

func levelColor(l dispatch.Level) string {
	switch l {
	case dispatch.LevelSuccess:
		return consts.ColorGreen
	case dispatch.LevelWarning:
		return consts.ColorYellow
	case dispatch.LevelError:
		return consts.ColorRed
	default:
		return consts.ColorCyan
	}
}

// truncate shortens s to n runes, marking the cut with "...".
func truncate(s string, n int) string {
	if n <= 3 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return strings.TrimSpace(string(runes[:n-3])) + "..."
}
