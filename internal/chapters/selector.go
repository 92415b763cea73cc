package chapters

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseRange parses "5-12" (or a single "7") into an inclusive interval.
func ParseRange(rng string) (int, int, error) {
	rng = strings.TrimSpace(rng)
	if rng == "" {
		return 0, 0, fmt.Errorf("%w: empty", ErrInvalidRange)
	}

	parts := strings.Split(rng, "-")
	if len(parts) > 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidRange, rng)
	}

	start, err := atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidRange, rng)
	}

	end := start
	if len(parts) == 2 {
		if end, err = atoi(parts[1]); err != nil {
			return 0, 0, fmt.Errorf("%w: %q", ErrInvalidRange, rng)
		}
	}

	if start <= 0 || end <= 0 || start > end {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidRange, rng)
	}

	return start, end, nil
}

// FormatRange is the inverse of ParseRange.
func FormatRange(start, end int) string {
	if start == end {
		return strconv.Itoa(start)
	}

	return fmt.Sprintf("%d-%d", start, end)
}

func atoi(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}
