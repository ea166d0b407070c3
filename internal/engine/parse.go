package engine

import (
	"strconv"
	"strings"

	"vidgrab/internal/domain/command"
)

const (
	downloadFields    = 8
	postprocessFields = 2
)

// ParseLine parses a tagged progress line. ok is false for any other output.
func ParseLine(line string) (ev RawEvent, ok bool) {
	line = strings.TrimSpace(line)

	switch {
	case strings.HasPrefix(line, command.DownloadTag):
		f := strings.Split(strings.TrimPrefix(line, command.DownloadTag), "|")
		if len(f) != downloadFields {
			return RawEvent{}, false
		}
		return RawEvent{
			Kind:               RawDownload,
			Status:             f[0],
			DownloadedBytes:    optInt(f[1]),
			TotalBytes:         optInt(f[2]),
			TotalBytesEstimate: optFloat(f[3]),
			Speed:              optFloat(f[4]),
			ETA:                optInt(f[5]),
			VCodec:             optString(f[6]),
			ACodec:             optString(f[7]),
		}, true

	case strings.HasPrefix(line, command.PostprocessTag):
		f := strings.Split(strings.TrimPrefix(line, command.PostprocessTag), "|")
		if len(f) != postprocessFields {
			return RawEvent{}, false
		}
		return RawEvent{
			Kind:          RawPostprocess,
			Status:        f[0],
			Postprocessor: optString(f[1]),
		}, true
	}
	return RawEvent{}, false
}

func missing(s string) bool {
	return s == "" || s == "NA" || s == "None"
}

func optString(s string) string {
	if missing(s) {
		return ""
	}
	return s
}

func optInt(s string) *int64 {
	if missing(s) {
		return nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return &n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		n := int64(f)
		return &n
	}
	return nil
}

func optFloat(s string) *float64 {
	if missing(s) {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}
