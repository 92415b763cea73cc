package chapters

import (
	"context"
	"errors"
	"fmt"

	"github.com/brogergvhs/noveld/internal/providers"
)

var ErrInvalidRange = errors.New("invalid chapter range")

// Progress receives one Advance call per visited chapter.
type Progress interface {
	SetTotal(total int)
	Advance(ok bool)
	MarkDone()
}

// RangeResult holds one outcome per visited chapter, in ascending chapter
// order. Chapters and Failed are projections of Outcomes.
type RangeResult struct {
	Start    int
	End      int
	Outcomes []Outcome
	// Cancelled is set when the run context was cancelled before every
	// chapter in [Start, End] was visited.
	Cancelled bool
}

func (r RangeResult) Chapters() []providers.ChapterContent {
	out := make([]providers.ChapterContent, 0, len(r.Outcomes))
	for _, o := range r.Outcomes {
		if o.OK() {
			out = append(out, o.Content)
		}
	}

	return out
}

func (r RangeResult) Failed() []int {
	out := []int{}
	for _, o := range r.Outcomes {
		if !o.OK() {
			out = append(out, o.Number)
		}
	}

	return out
}

// Collector drives a Fetcher over a chapter interval, one chapter at a time.
type Collector struct {
	fetcher     *Fetcher
	maxAttempts int
}

func NewCollector(f *Fetcher, maxAttempts int) *Collector {
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxAttempts
	}

	return &Collector{fetcher: f, maxAttempts: maxAttempts}
}

// Collect visits start..end inclusive in ascending order. A failed chapter
// never stops the walk. Cancellation of ctx is honored between chapters;
// the request in flight is detached from ctx and allowed to finish.
func (c *Collector) Collect(ctx context.Context, slug string, start, end int, p Progress) (RangeResult, error) {
	if start < 1 || end < start {
		if p != nil {
			p.MarkDone()
		}
		return RangeResult{}, fmt.Errorf("%w: %d-%d", ErrInvalidRange, start, end)
	}

	res := RangeResult{
		Start:    start,
		End:      end,
		Outcomes: make([]Outcome, 0, end-start+1),
	}

	if p != nil {
		p.SetTotal(end - start + 1)
		defer p.MarkDone()
	}

	fetchCtx := context.WithoutCancel(ctx)
	for n := start; n <= end; n++ {
		if ctx.Err() != nil {
			res.Cancelled = true
			break
		}

		o := c.fetcher.Fetch(fetchCtx, providers.ChapterID{Slug: slug, Number: n}, c.maxAttempts)
		res.Outcomes = append(res.Outcomes, o)

		if p != nil {
			p.Advance(o.OK())
		}
	}

	return res, nil
}
