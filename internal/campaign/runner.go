// Package campaign runs a sequence of volume plans for one series and
// records a status for every plan.
package campaign

import (
	"context"
	"fmt"

	"github.com/brogergvhs/noveld/internal/chapters"
	"github.com/brogergvhs/noveld/internal/volume"
)

var errCancelled = fmt.Errorf("run interrupted: %w", context.Canceled)

type RangeCollector interface {
	Collect(ctx context.Context, slug string, start, end int, p chapters.Progress) (chapters.RangeResult, error)
}

type VolumeAssembler interface {
	Assemble(req volume.Request) (volume.Result, error)
}

type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Warnf(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}

// Campaign is one end-to-end run over a single series.
type Campaign struct {
	Slug   string
	Series string
	Author string
	Plans  []volume.Plan
}

type Options struct {
	// OutputRoot is the directory the per-series folder is created in.
	OutputRoot string
	Logger     Logger
	// Progress, when set, returns a tracker for each volume.
	Progress func(label string) chapters.Progress
}

type Runner struct {
	collector RangeCollector
	assembler VolumeAssembler
	root      string
	log       Logger
	progress  func(label string) chapters.Progress
}

func NewRunner(c RangeCollector, a VolumeAssembler, opts Options) *Runner {
	log := opts.Logger
	if log == nil {
		log = nopLogger{}
	}

	root := opts.OutputRoot
	if root == "" {
		root = "."
	}

	return &Runner{
		collector: c,
		assembler: a,
		root:      root,
		log:       log,
		progress:  opts.Progress,
	}
}

// Run processes the plans strictly in order. Volumes are never retried;
// every plan yields exactly one status.
func (r *Runner) Run(ctx context.Context, c Campaign) Summary {
	sum := Summary{Statuses: make([]VolumeStatus, 0, len(c.Plans))}

	for _, plan := range c.Plans {
		sum.Statuses = append(sum.Statuses, r.runVolume(ctx, c, plan))
	}

	return sum
}

func (r *Runner) runVolume(ctx context.Context, c Campaign, plan volume.Plan) VolumeStatus {
	st := VolumeStatus{
		Volume: plan.Number,
		Title:  plan.Title,
		State:  StatePending,
		Failed: []int{},
	}

	if ctx.Err() != nil {
		st.Outcome = PartiallyFailed
		st.Err = errCancelled
		r.transition(&st, StateRecorded)
		r.log.Warnf("Volume %d skipped: run cancelled", plan.Number)
		return st
	}

	r.transition(&st, StateCollecting)
	r.log.Infof("Scraping chapters %d to %d for Volume %d...", plan.Start, plan.End, plan.Number)

	var prog chapters.Progress
	if r.progress != nil {
		prog = r.progress(fmt.Sprintf("Vol.%d", plan.Number))
	}

	res, err := r.collector.Collect(ctx, c.Slug, plan.Start, plan.End, prog)
	if err != nil {
		st.Err = err
		st.Outcome = PartiallyFailed
		r.transition(&st, StateSkipAssembly)
		r.transition(&st, StateRecorded)
		r.log.Errorf("Volume %d not collected: %v", plan.Number, err)
		return st
	}

	found := res.Chapters()
	st.Failed = res.Failed()
	st.Chapters = len(found)

	switch {
	case res.Cancelled:
		r.transition(&st, StateSkipAssembly)
		r.log.Warnf("Volume %d cancelled after %d of %d chapters; no EPUB written", plan.Number, len(res.Outcomes), plan.Len())
	case len(found) == 0:
		r.transition(&st, StateSkipAssembly)
	default:
		r.transition(&st, StateAssembling)
		r.log.Infof("Found %d chapters for Volume %d. Creating EPUB...", len(found), plan.Number)

		out, err := r.assembler.Assemble(volume.Request{
			Chapters: found,
			Dir:      volume.SeriesDir(r.root, c.Series),
			FileName: volume.FileName(c.Series, plan.Number),
			Volume:   plan.Number,
			Title:    plan.Title,
			Series:   c.Series,
			Author:   c.Author,
			Cover:    plan.Cover,
		})
		if err != nil {
			st.Err = err
			r.log.Errorf("Error generating EPUB for Volume %d: %v", plan.Number, err)
		} else {
			st.Output = out.Path
			st.Bytes = out.Bytes
		}
	}

	switch {
	case res.Cancelled:
		st.Outcome = PartiallyFailed
		st.Err = errCancelled
	case len(st.Failed) == 0 && st.Err == nil:
		st.Outcome = AllSucceeded
		r.log.Infof("All chapters of Volume %d successfully scraped.", plan.Number)
	default:
		st.Outcome = PartiallyFailed
		if len(st.Failed) > 0 {
			r.log.Warnf("Unable to scrape the following chapters of Volume %d: %s", plan.Number, joinInts(st.Failed))
		}
	}

	r.transition(&st, StateRecorded)
	return st
}

func (r *Runner) transition(st *VolumeStatus, to State) {
	if err := st.advance(to); err != nil {
		r.log.Errorf("%v", err)
	}
}
