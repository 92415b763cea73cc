package volume

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var DefaultCoverExt = []string{"jpg", "jpeg", "png", "gif", "webp"}

// DiscoverCovers lists image files directly inside dir whose extension is in
// exts. A missing dir yields no covers.
func DiscoverCovers(dir string, exts []string) ([]string, error) {
	if len(exts) == 0 {
		exts = DefaultCoverExt
	}

	allowed := map[string]bool{}
	for _, e := range exts {
		e = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(e), "."))
		if e != "" {
			allowed[e] = true
		}
	}

	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}

		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(e.Name()), "."))
		if allowed[ext] {
			out = append(out, filepath.Join(dir, e.Name()))
		}
	}

	sort.Strings(out)
	return out, nil
}
