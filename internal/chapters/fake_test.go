package chapters

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/brogergvhs/noveld/internal/providers"
)

var errFlaky = errors.New("connection reset")

// fakeSource fails chapter n for the first failures[n] attempts (-1 means
// always) and then serves "Ch<n>".
type fakeSource struct {
	mu       sync.Mutex
	failures map[int]int
	calls    map[int]int
	order    []int
	cancel   func()
	cancelAt int
}

func newFakeSource(failures map[int]int) *fakeSource {
	return &fakeSource{failures: failures, calls: map[int]int{}}
}

func (s *fakeSource) FetchChapter(_ context.Context, id providers.ChapterID) (providers.ChapterContent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls[id.Number]++
	s.order = append(s.order, id.Number)

	if s.cancel != nil && id.Number == s.cancelAt {
		s.cancel()
	}

	if f, ok := s.failures[id.Number]; ok && (f < 0 || s.calls[id.Number] <= f) {
		return providers.ChapterContent{}, errFlaky
	}

	return providers.ChapterContent{
		Title: fmt.Sprintf("Ch%d", id.Number),
		Body:  fmt.Sprintf("<p>body %d</p>", id.Number),
	}, nil
}

type recordingLogger struct {
	infos  []string
	errors []string
}

func (l *recordingLogger) Infof(format string, args ...any) {
	l.infos = append(l.infos, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Errorf(format string, args ...any) {
	l.errors = append(l.errors, fmt.Sprintf(format, args...))
}

type countingProgress struct {
	total, ok, failed int
	done              bool
}

func (p *countingProgress) SetTotal(total int) { p.total = total }

func (p *countingProgress) Advance(ok bool) {
	if ok {
		p.ok++
	} else {
		p.failed++
	}
}

func (p *countingProgress) MarkDone() { p.done = true }
