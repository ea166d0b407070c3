// Package validation checks user requests before they reach the download core.
package validation

import (
	"net/url"
	"strings"

	"vidgrab/internal/downloads"
)

const suspiciousChars = ";|`$"

// ValidateURL accepts only http(s) URLs without shell metacharacters.
func ValidateURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return &downloads.ConfigurationError{Field: "URL", Reason: "please enter a URL first"}
	}
	u, err := url.Parse(raw)
	if err != nil || (!strings.EqualFold(u.Scheme, "http") && !strings.EqualFold(u.Scheme, "https")) {
		return &downloads.ConfigurationError{Field: "URL", Reason: "only HTTP/HTTPS allowed"}
	}
	if u.Host == "" {
		return &downloads.ConfigurationError{Field: "URL", Reason: "missing host"}
	}
	if strings.ContainsAny(raw, suspiciousChars) {
		return &downloads.ConfigurationError{Field: "URL", Reason: "suspicious characters detected"}
	}
	return nil
}
