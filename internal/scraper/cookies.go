// Package scraper reads browser cookies for sites that need a signed-in session.
package scraper

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"

	"vidgrab/internal/domain/consts"
	"vidgrab/internal/logging"

	"github.com/browserutils/kooky"
	// Use all browsers for Kooky:
	_ "github.com/browserutils/kooky/browser/all"
	"golang.org/x/net/publicsuffix"
)

// CookieReader returns the valid browser cookies stored for a domain.
type CookieReader func(ctx context.Context, domain string) ([]*http.Cookie, error)

// BrowserCookies reads cookies from every browser kooky knows about.
// kooky reads the stores synchronously, so ctx is only checked before the read.
func BrowserCookies(ctx context.Context, domain string) ([]*http.Cookie, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	kookyCookies := kooky.ReadCookies(kooky.Valid, kooky.Domain(domain))
	logging.D(2, "Read %d browser cookies for %s", len(kookyCookies), domain)
	return convertToHTTPCookies(kookyCookies), nil
}

// BaseDomain returns the registrable domain of a URL (e.g. "youtube.com" for "https://www.youtube.com/watch").
func BaseDomain(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	if u.Hostname() == "" {
		return "", fmt.Errorf("url %q has no host", rawURL)
	}
	return publicsuffix.EffectiveTLDPlusOne(u.Hostname())
}

// ImportCookies reads the browser cookies for the site of rawURL and writes them to path
// in Netscape format. It returns the number of cookies written. Nothing is written when
// no cookies are found.
func ImportCookies(ctx context.Context, read CookieReader, rawURL, path string) (int, error) {
	domain, err := BaseDomain(rawURL)
	if err != nil {
		return 0, fmt.Errorf("error extracting base domain in cookie import: %w", err)
	}

	cookies, err := read(ctx, domain)
	if err != nil {
		return 0, err
	}
	if len(cookies) == 0 {
		logging.I("No cookies found for %s", domain)
		return 0, nil
	}

	logging.I("Found %d cookies for %s", len(cookies), domain)
	if err := SaveCookiesFile(cookies, domain, path); err != nil {
		return 0, err
	}
	return len(cookies), nil
}

// SaveCookiesFile writes cookies to path in the Netscape format yt-dlp reads with --cookies.
func SaveCookiesFile(cookies []*http.Cookie, fallbackDomain, path string) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, consts.PermsCookieFile)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	w := bufio.NewWriter(f)
	if _, err := w.WriteString("# Netscape HTTP Cookie File\n# This is a generated file! Do not edit.\n\n"); err != nil {
		return err
	}

	logging.D(1, "Saving %d cookies to file %s...", len(cookies), path)
	for _, c := range cookies {
		if _, err := w.WriteString(netscapeLine(c, fallbackDomain)); err != nil {
			return err
		}
	}
	return w.Flush()
}

// netscapeLine renders one cookie as a tab-separated Netscape cookie line.
func netscapeLine(c *http.Cookie, fallbackDomain string) string {
	domain := c.Domain
	if domain == "" {
		domain = fallbackDomain
	}

	includeSub := "FALSE"
	if strings.HasPrefix(domain, ".") {
		includeSub = "TRUE"
	}

	path := c.Path
	if path == "" {
		path = "/"
	}

	secure := "FALSE"
	if c.Secure {
		secure = "TRUE"
	}

	var expires int64
	if !c.Expires.IsZero() {
		expires = c.Expires.Unix()
	}

	return fmt.Sprintf("%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
		domain, includeSub, path, secure, expires, c.Name, c.Value)
}

// convertToHTTPCookies converts kooky cookies to http.Cookie format.
func convertToHTTPCookies(kookyCookies []*kooky.Cookie) []*http.Cookie {
	httpCookies := make([]*http.Cookie, 0, len(kookyCookies))
	for _, c := range kookyCookies {
		if c == nil {
			continue
		}
		httpCookies = append(httpCookies, &http.Cookie{
			Name:    c.Name,
			Value:   c.Value,
			Path:    c.Path,
			Domain:  c.Domain,
			Expires: c.Expires,
			Secure:  c.Secure,
		})
	}
	return httpCookies
}
