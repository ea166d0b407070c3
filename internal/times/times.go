// Package times parses and formats user-facing times.
package times

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ParseTimeToSeconds parses "h:m:s", "m:s" or "s" into seconds.
func ParseTimeToSeconds(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0, false
	}

	total := 0
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, false
		}
		total = total*60 + n
	}
	return total, true
}

// FormatETA renders seconds as HH:MM:SS, or "Unknown" when nil.
func FormatETA(sec *int64) string {
	if sec == nil || *sec < 0 {
		return "Unknown"
	}
	s := *sec
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, (s%3600)/60, s%60)
}

// ParseSince parses a user-supplied date in any common layout, in local time.
func ParseSince(s string) (time.Time, error) {
	t, err := dateparse.ParseLocal(strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("could not parse date %q: %w", s, err)
	}
	return t, nil
}
