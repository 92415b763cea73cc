package lightnovel

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/brogergvhs/noveld/internal/providers"
)

const DefaultBaseURL = "https://www.lightnovelworld.co"

const (
	titleSelector     = "h1 .chapter-title"
	containerSelector = "#chapter-container"
)

var (
	ErrMissingTitle = errors.New("chapter title not found")
	ErrMissingBody  = errors.New("chapter container not found")
)

// StatusError reports a non-2xx response from the site.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d for %s", e.Code, e.URL)
}

type Logger interface {
	Debugf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}

type Scraper struct {
	client  *http.Client
	baseURL string
	log     Logger
}

func NewScraper(c *http.Client, baseURL string, log Logger) *Scraper {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if log == nil {
		log = nopLogger{}
	}

	return &Scraper{
		client:  c,
		baseURL: strings.TrimRight(baseURL, "/"),
		log:     log,
	}
}

// ChapterURL builds the chapter address. It depends only on id.
func (s *Scraper) ChapterURL(id providers.ChapterID) string {
	return fmt.Sprintf("%s/novel/%s/chapter-%d", s.baseURL, url.PathEscape(id.Slug), id.Number)
}

func (s *Scraper) fetchDOM(ctx context.Context, target string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			s.log.Debugf("failed to close response body for %s: %v", target, cerr)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Code: resp.StatusCode, URL: target}
	}

	return goquery.NewDocumentFromReader(resp.Body)
}

func (s *Scraper) FetchChapter(ctx context.Context, id providers.ChapterID) (providers.ChapterContent, error) {
	doc, err := s.fetchDOM(ctx, s.ChapterURL(id))
	if err != nil {
		return providers.ChapterContent{}, err
	}

	return Extract(doc)
}

// Extract pulls the chapter heading and body out of a chapter page. Both
// must be present and non-empty.
func Extract(doc *goquery.Document) (providers.ChapterContent, error) {
	title := strings.TrimSpace(doc.Find(titleSelector).First().Text())
	if title == "" {
		return providers.ChapterContent{}, ErrMissingTitle
	}

	container := doc.Find(containerSelector).First()
	if container.Length() == 0 {
		return providers.ChapterContent{}, ErrMissingBody
	}

	body, err := container.Html()
	if err != nil {
		return providers.ChapterContent{}, fmt.Errorf("render chapter body: %w", err)
	}

	body = strings.TrimSpace(body)
	if body == "" {
		return providers.ChapterContent{}, ErrMissingBody
	}

	return providers.ChapterContent{Title: title, Body: body}, nil
}
