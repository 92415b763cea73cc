package lightnovel

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
)

var ErrNotSeriesURL = errors.New("not a novel series or chapter URL")

var reSeriesPath = regexp.MustCompile(`^/novel/([A-Za-z0-9][A-Za-z0-9_-]*)(?:/(?:chapter-\d+)?)?/?$`)

// ParseSeriesURL extracts the series slug from a series or chapter URL such
// as https://host/novel/shadow-slave-1365/chapter-12.
func ParseSeriesURL(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotSeriesURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrNotSeriesURL, raw)
	}

	m := reSeriesPath.FindStringSubmatch(u.Path)
	if m == nil {
		return "", fmt.Errorf("%w: %q", ErrNotSeriesURL, raw)
	}

	return m[1], nil
}

// CheckReachable issues a HEAD request (falling back to GET when HEAD is
// refused) and reports whether the target answered with a 2xx status.
func (s *Scraper) CheckReachable(ctx context.Context, target string) error {
	code, err := s.probe(ctx, http.MethodHead, target)
	if err == nil && (code == http.StatusMethodNotAllowed || code == http.StatusNotImplemented) {
		code, err = s.probe(ctx, http.MethodGet, target)
	}
	if err != nil {
		return err
	}

	if code < 200 || code >= 300 {
		return &StatusError{Code: code, URL: target}
	}

	return nil
}

func (s *Scraper) probe(ctx context.Context, method, target string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return 0, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, err
	}
	_ = resp.Body.Close()

	return resp.StatusCode, nil
}
