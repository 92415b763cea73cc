package providers

import (
	"context"
	"fmt"
)

// ChapterID addresses one chapter of a series on the content site.
type ChapterID struct {
	Slug   string
	Number int
}

func (id ChapterID) String() string {
	return fmt.Sprintf("%s/chapter-%d", id.Slug, id.Number)
}

// ChapterContent is the extracted heading and body markup of a chapter.
type ChapterContent struct {
	Title string
	Body  string
}

// Source performs a single fetch attempt for one chapter. Retrying is the
// caller's job.
type Source interface {
	FetchChapter(ctx context.Context, id ChapterID) (ChapterContent, error)
}
