package volume

import (
	"errors"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	epub "github.com/go-shiori/go-epub"

	"github.com/brogergvhs/noveld/internal/providers"
	"github.com/brogergvhs/noveld/internal/util"
)

// ErrNoChapters is returned when there is nothing to package. No file or
// directory is touched in that case.
var ErrNoChapters = errors.New("no chapters to package")

// PackagingError wraps any failure while building or writing the EPUB.
type PackagingError struct {
	Path string
	Err  error
}

func (e *PackagingError) Error() string {
	return fmt.Sprintf("package %s: %v", e.Path, e.Err)
}

func (e *PackagingError) Unwrap() error { return e.Err }

type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Infof(string, ...any) {}
func (nopLogger) Warnf(string, ...any) {}

// Request describes one volume to package.
type Request struct {
	Chapters []providers.ChapterContent
	Dir      string
	FileName string
	Volume   int
	Title    string
	Series   string
	Author   string
	Cover    string
}

type Result struct {
	Path     string
	Sections int
	Cover    bool
	Bytes    int64
}

type Assembler struct {
	log Logger
}

func NewAssembler(log Logger) *Assembler {
	if log == nil {
		log = nopLogger{}
	}

	return &Assembler{log: log}
}

// DisplayTitle composes the book title shown by readers.
func DisplayTitle(series string, volume int, title string) string {
	return fmt.Sprintf("%s Volume %d: %s", series, volume, title)
}

// FileName is the EPUB name for a volume of a series.
func FileName(series string, volume int) string {
	base := util.Sanitize(series)
	if base == "" {
		base = "novel"
	}

	return fmt.Sprintf("%s_volume_%d.epub", base, volume)
}

// SeriesDir is the output folder for a series below root.
func SeriesDir(root, series string) string {
	return filepath.Join(root, util.SeriesDirName(series))
}

// Assemble writes one EPUB whose sections follow req.Chapters in order.
func (a *Assembler) Assemble(req Request) (Result, error) {
	if len(req.Chapters) == 0 {
		return Result{}, ErrNoChapters
	}

	out := filepath.Join(req.Dir, req.FileName)
	res := Result{Path: out}

	book, err := epub.NewEpub(DisplayTitle(req.Series, req.Volume, req.Title))
	if err != nil {
		return res, &PackagingError{Path: out, Err: err}
	}
	book.SetAuthor(req.Author)

	for i, ch := range req.Chapters {
		name := fmt.Sprintf("chapter_%04d.xhtml", i+1)
		if _, err := book.AddSection(sectionBody(ch), ch.Title, name, ""); err != nil {
			return res, &PackagingError{Path: out, Err: fmt.Errorf("section %q: %w", ch.Title, err)}
		}
		res.Sections++
	}

	res.Cover = a.addCover(book, req.Cover)

	created, err := ensureDir(req.Dir)
	if err != nil {
		return res, &PackagingError{Path: out, Err: err}
	}

	if err := book.Write(out); err != nil {
		if created {
			util.RemoveIfEmpty(req.Dir)
		}
		return res, &PackagingError{Path: out, Err: err}
	}

	if info, err := os.Stat(out); err == nil {
		res.Bytes = info.Size()
	}

	a.log.Infof("EPUB saved to: %s", out)
	return res, nil
}

// addCover embeds a local cover image. A missing or unreadable cover is
// logged and skipped.
func (a *Assembler) addCover(book *epub.Epub, cover string) bool {
	cover = strings.TrimSpace(cover)
	if cover == "" {
		return false
	}

	info, err := os.Stat(cover)
	if err != nil || info.IsDir() {
		a.log.Warnf("Cover %s not found, continuing without cover", cover)
		return false
	}

	abs, err := filepath.Abs(cover)
	if err != nil {
		abs = cover
	}

	img, err := book.AddImage(abs, "cover"+strings.ToLower(filepath.Ext(cover)))
	if err != nil {
		a.log.Warnf("Cover %s could not be added: %v", cover, err)
		return false
	}

	book.SetCover(img, "")
	return true
}

func sectionBody(ch providers.ChapterContent) string {
	return "<h1>" + html.EscapeString(ch.Title) + "</h1>\n" + ch.Body
}

func ensureDir(dir string) (bool, error) {
	if _, err := os.Stat(dir); err == nil {
		return false, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return false, fmt.Errorf("create output folder: %w", err)
	}

	return true, nil
}
