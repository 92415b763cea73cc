package chapters

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/brogergvhs/noveld/internal/providers"
)

// DefaultMaxAttempts is the per-chapter attempt budget.
const DefaultMaxAttempts = 5

var ErrEmptyChapter = errors.New("chapter has no title or body")

type Logger interface {
	Infof(format string, args ...any)
	Errorf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}

// Outcome is the result of fetching one chapter: either Content is set and
// Err is nil, or Err holds the last failure and Content is zero.
type Outcome struct {
	Number   int
	Content  providers.ChapterContent
	Err      error
	Attempts int
}

func (o Outcome) OK() bool { return o.Err == nil }

type FetcherOptions struct {
	Logger Logger
	// Backoff is multiplied by the attempt number between retries. Zero
	// retries immediately.
	Backoff time.Duration
}

// Fetcher retrieves single chapters from a Source with a bounded,
// strictly sequential retry loop.
type Fetcher struct {
	src     providers.Source
	log     Logger
	backoff time.Duration
	sleep   func(time.Duration)
}

func NewFetcher(src providers.Source, opts FetcherOptions) *Fetcher {
	log := opts.Logger
	if log == nil {
		log = nopLogger{}
	}

	return &Fetcher{
		src:     src,
		log:     log,
		backoff: opts.Backoff,
		sleep:   time.Sleep,
	}
}

func (f *Fetcher) Fetch(ctx context.Context, id providers.ChapterID, maxAttempts int) Outcome {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	out := Outcome{Number: id.Number}
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		out.Attempts = attempt
		f.log.Infof("Starting to scrape Chapter %d...", id.Number)

		content, err := f.src.FetchChapter(ctx, id)
		if err == nil {
			err = checkContent(content)
		}
		if err == nil {
			f.log.Infof("Successfully scraped Chapter %d", id.Number)
			out.Content = content
			out.Err = nil
			return out
		}

		out.Err = err
		remaining := maxAttempts - attempt
		if remaining == 0 {
			break
		}

		f.log.Infof("Error scraping Chapter %d: %v. Retrying... Remaining attempts: %d", id.Number, err, remaining)
		if f.backoff > 0 {
			f.sleep(f.backoff * time.Duration(attempt))
		}
	}

	f.log.Errorf("Error scraping Chapter %d after %d attempts: %v", id.Number, out.Attempts, out.Err)
	return out
}

func checkContent(c providers.ChapterContent) error {
	if strings.TrimSpace(c.Title) == "" || strings.TrimSpace(c.Body) == "" {
		return ErrEmptyChapter
	}

	return nil
}
