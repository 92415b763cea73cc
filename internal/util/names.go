package util

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	reWhitespace  = regexp.MustCompile(`\s+`)
	reUnderscores = regexp.MustCompile(`_+`)
)

// SeriesDirName is the per-series output folder: whitespace runs become
// underscores and "_EPUB" is appended ("Shadow Slave" -> "Shadow_Slave_EPUB").
func SeriesDirName(series string) string {
	name := reWhitespace.ReplaceAllString(strings.TrimSpace(series), "_")
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, name)

	return name + "_EPUB"
}

// Sanitize lowercases s, folds accents and keeps only letters, digits and
// single underscores.
func Sanitize(s string) string {
	s = norm.NFKD.String(s)
	s = strings.ToLower(s)

	clean := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case unicode.Is(unicode.Mn, r):
			continue
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			clean = append(clean, r)
		default:
			clean = append(clean, '_')
		}
	}

	s = reUnderscores.ReplaceAllString(string(clean), "_")

	return strings.Trim(s, "_")
}
