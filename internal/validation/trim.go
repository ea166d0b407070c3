package validation

import (
	"strings"

	"vidgrab/internal/downloads"
	"vidgrab/internal/models"
	"vidgrab/internal/times"
)

// ValidateTrim checks a trim range. Trims are only allowed on single videos.
func ValidateTrim(start, end int, playlist bool) (*models.TrimRange, error) {
	if playlist {
		return nil, &downloads.ConfigurationError{Field: "trim range", Reason: "trimming is only available for single videos"}
	}
	tr := models.TrimRange{StartSec: start, EndSec: end}
	if start < 0 {
		return nil, &downloads.ConfigurationError{Field: "trim range", Reason: "start must not be negative"}
	}
	if !tr.Valid() {
		return nil, &downloads.ConfigurationError{Field: "trim range", Reason: "end must be after start"}
	}
	return &tr, nil
}

// ParseTrim parses user trim times. Two empty values mean no trim.
func ParseTrim(start, end string, playlist bool) (*models.TrimRange, error) {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	if start == "" && end == "" {
		return nil, nil
	}
	s, okS := times.ParseTimeToSeconds(start)
	e, okE := times.ParseTimeToSeconds(end)
	if !okS || !okE {
		return nil, &downloads.ConfigurationError{Field: "trim range", Reason: "invalid trim times"}
	}
	return ValidateTrim(s, e, playlist)
}
