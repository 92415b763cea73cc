package volume

import (
	"archive/zip"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/brogergvhs/noveld/internal/providers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readZip(t *testing.T, path string) map[string]string {
	t.Helper()

	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer func() { _ = zr.Close() }()

	files := map[string]string{}
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		b, err := io.ReadAll(rc)
		require.NoError(t, err)
		_ = rc.Close()
		files[f.Name] = string(b)
	}

	return files
}

func findSuffix(files map[string]string, suffix string) (string, bool) {
	for name, body := range files {
		if strings.HasSuffix(name, suffix) {
			return body, true
		}
	}
	return "", false
}

func writePNG(t *testing.T, path string) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})

	f, err := os.Create(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	require.NoError(t, png.Encode(f, img))
}

func TestAssemble_WritesOrderedSections(t *testing.T) {
	root := t.TempDir()
	dir := SeriesDir(root, "Demo Series")

	res, err := NewAssembler(nil).Assemble(Request{
		Chapters: []providers.ChapterContent{
			{Title: "Ch1", Body: "<p>one</p>"},
			{Title: "Ch3", Body: "<p>three</p>"},
		},
		Dir:      dir,
		FileName: FileName("Demo Series", 1),
		Volume:   1,
		Title:    "Beginnings",
		Series:   "Demo Series",
		Author:   "Jane Doe",
	})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "Demo_Series_EPUB", "demo_series_volume_1.epub"), res.Path)
	assert.Equal(t, 2, res.Sections)
	assert.False(t, res.Cover)
	assert.Positive(t, res.Bytes)

	files := readZip(t, res.Path)

	first, ok := findSuffix(files, "chapter_0001.xhtml")
	require.True(t, ok)
	assert.Contains(t, first, "<h1>Ch1</h1>")
	assert.Contains(t, first, "<p>one</p>")

	second, ok := findSuffix(files, "chapter_0002.xhtml")
	require.True(t, ok)
	assert.Contains(t, second, "Ch3")

	_, ok = findSuffix(files, "chapter_0003.xhtml")
	assert.False(t, ok)

	opf, ok := findSuffix(files, ".opf")
	require.True(t, ok)
	assert.Contains(t, opf, "Demo Series Volume 1: Beginnings")
	assert.Contains(t, opf, "Jane Doe")
}

func TestAssemble_EmbedsCover(t *testing.T) {
	root := t.TempDir()
	cover := filepath.Join(root, "cover.png")
	writePNG(t, cover)

	res, err := NewAssembler(nil).Assemble(Request{
		Chapters: []providers.ChapterContent{{Title: "Ch1", Body: "<p>one</p>"}},
		Dir:      filepath.Join(root, "out", "nested"),
		FileName: "v.epub",
		Volume:   2,
		Title:    "T",
		Series:   "S",
		Author:   "A",
		Cover:    cover,
	})
	require.NoError(t, err)
	assert.True(t, res.Cover)

	files := readZip(t, res.Path)
	_, ok := findSuffix(files, "cover.png")
	assert.True(t, ok)
}

func TestAssemble_MissingCoverIsSkipped(t *testing.T) {
	root := t.TempDir()

	res, err := NewAssembler(nil).Assemble(Request{
		Chapters: []providers.ChapterContent{{Title: "Ch1", Body: "<p>one</p>"}},
		Dir:      root,
		FileName: "v.epub",
		Volume:   1,
		Title:    "T",
		Series:   "S",
		Author:   "A",
		Cover:    filepath.Join(root, "nope.jpg"),
	})
	require.NoError(t, err)
	assert.False(t, res.Cover)
	assert.FileExists(t, res.Path)
}

func TestAssemble_NoChaptersTouchesNothing(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "S_EPUB")

	_, err := NewAssembler(nil).Assemble(Request{Dir: dir, FileName: "v.epub", Volume: 1, Series: "S"})

	assert.ErrorIs(t, err, ErrNoChapters)
	var perr *PackagingError
	assert.False(t, errors.As(err, &perr))
	assert.NoDirExists(t, dir)
}

func TestAssemble_WriteFailureIsPackagingError(t *testing.T) {
	root := t.TempDir()
	blocker := filepath.Join(root, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	_, err := NewAssembler(nil).Assemble(Request{
		Chapters: []providers.ChapterContent{{Title: "Ch1", Body: "<p>one</p>"}},
		Dir:      filepath.Join(blocker, "sub"),
		FileName: "v.epub",
		Volume:   1,
		Series:   "S",
	})

	var perr *PackagingError
	require.True(t, errors.As(err, &perr))
	assert.NotErrorIs(t, err, ErrNoChapters)
}

func TestNaming(t *testing.T) {
	assert.Equal(t, "Shadow Slave Volume 3: Nightmare", DisplayTitle("Shadow Slave", 3, "Nightmare"))
	assert.Equal(t, "shadow_slave_volume_3.epub", FileName("Shadow Slave", 3))
	assert.Equal(t, "novel_volume_1.epub", FileName("!!!", 1))
}
