package campaign

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/brogergvhs/noveld/internal/chapters"
	"github.com/brogergvhs/noveld/internal/providers/lightnovel"
	"github.com/brogergvhs/noveld/internal/volume"
)

// File is the YAML form of a campaign:
//
//	series: Shadow Slave
//	author: Guiltythree
//	url: https://www.lightnovelworld.co/novel/shadow-slave-1365
//	volumes:
//	  - volume: 1
//	    title: Child of Shadows
//	    chapters: 1-95
//	    cover: img/vol1.jpg
type File struct {
	Series  string       `yaml:"series"`
	Author  string       `yaml:"author"`
	URL     string       `yaml:"url,omitempty"`
	Slug    string       `yaml:"slug,omitempty"`
	Volumes []FileVolume `yaml:"volumes"`

	dir string
}

type FileVolume struct {
	Volume   int    `yaml:"volume"`
	Title    string `yaml:"title"`
	Chapters string `yaml:"chapters"`
	Cover    string `yaml:"cover,omitempty"`
}

func LoadFile(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse plan %s: %w", path, err)
	}
	f.dir = filepath.Dir(path)

	return &f, nil
}

func (f *File) Save(path string) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Campaign resolves the slug, parses chapter ranges and validates every
// plan. Relative cover paths are taken relative to the plan file.
func (f *File) Campaign() (Campaign, error) {
	c := Campaign{
		Series: strings.TrimSpace(f.Series),
		Author: strings.TrimSpace(f.Author),
		Slug:   strings.TrimSpace(f.Slug),
	}

	if c.Series == "" {
		return c, errors.New("plan: series is required")
	}
	if c.Author == "" {
		return c, errors.New("plan: author is required")
	}

	if c.Slug == "" {
		if f.URL == "" {
			return c, errors.New("plan: url or slug is required")
		}
		slug, err := lightnovel.ParseSeriesURL(f.URL)
		if err != nil {
			return c, fmt.Errorf("plan: %w", err)
		}
		c.Slug = slug
	}

	if len(f.Volumes) == 0 {
		return c, errors.New("plan: no volumes")
	}

	seen := map[int]bool{}
	for _, v := range f.Volumes {
		start, end, err := chapters.ParseRange(v.Chapters)
		if err != nil {
			return c, fmt.Errorf("plan: volume %d: %w", v.Volume, err)
		}

		p := volume.Plan{
			Number: v.Volume,
			Title:  strings.TrimSpace(v.Title),
			Start:  start,
			End:    end,
			Cover:  f.resolve(v.Cover),
		}
		if err := p.Validate(); err != nil {
			return c, fmt.Errorf("plan: %w", err)
		}
		if seen[p.Number] {
			return c, fmt.Errorf("plan: volume %d listed twice", p.Number)
		}
		seen[p.Number] = true

		c.Plans = append(c.Plans, p)
	}

	return c, nil
}

func (f *File) resolve(p string) string {
	p = strings.TrimSpace(p)
	if p == "" || filepath.IsAbs(p) || f.dir == "" {
		return p
	}
	return filepath.Join(f.dir, p)
}

// NewFile is the inverse of File.Campaign.
func NewFile(c Campaign, url string) *File {
	f := &File{
		Series: c.Series,
		Author: c.Author,
		URL:    url,
	}
	if url == "" {
		f.Slug = c.Slug
	}

	for _, p := range c.Plans {
		f.Volumes = append(f.Volumes, FileVolume{
			Volume:   p.Number,
			Title:    p.Title,
			Chapters: chapters.FormatRange(p.Start, p.End),
			Cover:    p.Cover,
		})
	}

	return f
}
