// Package thumbs prefetches thumbnail images into a local cache.
package thumbs

import (
	"context"
	"fmt"
	"hash/crc32"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"vidgrab/internal/dispatch"
	"vidgrab/internal/domain/consts"
	"vidgrab/internal/logging"

	"github.com/gocolly/colly"
	"github.com/gosimple/slug"
)

const (
	ctxKeyURL      = "thumb_url"
	requestTimeout = 30 * time.Second
	defaultExt     = ".jpg"
)

// Job is one thumbnail to fetch for a row.
type Job struct {
	Row   int
	Title string
	URL   string
}

// Fetcher downloads thumbnails in parallel and reports each cached file to the sink.
type Fetcher struct {
	Dir         string
	Parallelism int
	Sink        dispatch.Sink
}

// NewFetcher returns a fetcher caching into dir.
func NewFetcher(dir string, parallelism int, sink dispatch.Sink) *Fetcher {
	if sink == nil {
		sink = dispatch.Discard{}
	}
	return &Fetcher{Dir: dir, Parallelism: parallelism, Sink: sink}
}

// CachePath returns the cache file used for a thumbnail URL.
func (f *Fetcher) CachePath(title, thumbURL string) string {
	name := slug.Make(title)
	if name == "" {
		name = "thumb"
	}
	if len(name) > 60 {
		name = name[:60]
	}
	return filepath.Join(f.Dir, fmt.Sprintf("%s-%08x%s", name, crc32.ChecksumIEEE([]byte(thumbURL)), extOf(thumbURL)))
}

// Fetch downloads every job's thumbnail and returns the cached path per row.
//
// Rows sharing a URL share one request. Files already in the cache are not
// fetched again. Failed fetches are logged and skipped.
func (f *Fetcher) Fetch(ctx context.Context, jobs []Job) map[int]string {
	var (
		mu     sync.Mutex
		result = make(map[int]string, len(jobs))
		rows   = make(map[string][]int)
		order  []string
		paths  = make(map[string]string)
	)

	for _, j := range jobs {
		if j.URL == "" {
			continue
		}
		if _, seen := rows[j.URL]; !seen {
			order = append(order, j.URL)
			paths[j.URL] = f.CachePath(j.Title, j.URL)
		}
		rows[j.URL] = append(rows[j.URL], j.Row)
	}

	deliver := func(thumbURL string) {
		p := paths[thumbURL]
		mu.Lock()
		for _, row := range rows[thumbURL] {
			result[row] = p
		}
		mu.Unlock()
		for _, row := range rows[thumbURL] {
			f.Sink.Send(dispatch.Event{Kind: dispatch.KindThumb, Row: row, Path: p})
		}
	}

	var pending []string
	for _, u := range order {
		if _, err := os.Stat(paths[u]); err == nil {
			deliver(u)
			continue
		}
		pending = append(pending, u)
	}
	if len(pending) == 0 {
		return result
	}

	if err := os.MkdirAll(f.Dir, consts.PermsGenericDir); err != nil {
		logging.E("Could not create thumbnail cache %q: %v", f.Dir, err)
		return result
	}

	c, err := f.collector()
	if err != nil {
		logging.E("Could not set up thumbnail collector: %v", err)
		return result
	}

	c.OnResponse(func(r *colly.Response) {
		thumbURL := r.Ctx.Get(ctxKeyURL)
		if err := r.Save(paths[thumbURL]); err != nil {
			logging.W("Failed to save thumbnail %q: %v", thumbURL, err)
			return
		}
		logging.D(3, "Cached thumbnail %q as %q", thumbURL, paths[thumbURL])
		deliver(thumbURL)
	})

	c.OnError(func(r *colly.Response, err error) {
		logging.D(1, "Thumbnail fetch failed for %q: %v", r.Ctx.Get(ctxKeyURL), err)
	})

	for _, u := range pending {
		if ctx.Err() != nil {
			break
		}
		cctx := colly.NewContext()
		cctx.Put(ctxKeyURL, u)
		if err := c.Request("GET", u, nil, cctx, nil); err != nil {
			logging.D(1, "Could not queue thumbnail %q: %v", u, err)
		}
	}
	c.Wait()

	return result
}

// collector builds an async collector limited to the configured parallelism.
func (f *Fetcher) collector() (*colly.Collector, error) {
	c := colly.NewCollector(
		colly.Async(true),
		colly.AllowURLRevisit(),
	)
	c.SetRequestTimeout(requestTimeout)

	n := f.Parallelism
	if n < 1 {
		n = 1
	}
	if err := c.Limit(&colly.LimitRule{DomainGlob: "*", Parallelism: n}); err != nil {
		return nil, err
	}
	return c, nil
}

// extOf returns the image extension in a thumbnail URL, or ".jpg".
func extOf(thumbURL string) string {
	u, err := url.Parse(thumbURL)
	if err != nil {
		return defaultExt
	}
	switch ext := strings.ToLower(path.Ext(u.Path)); ext {
	case ".jpg", ".jpeg", ".png", ".webp", ".gif":
		return ext
	default:
		return defaultExt
	}
}
