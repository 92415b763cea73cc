// Package volume holds volume plans and packages collected chapters into
// EPUB files.
package volume

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Plan is one confirmed volume: its number, title, chapter interval and an
// optional local cover image.
type Plan struct {
	Number int    `yaml:"volume" validate:"gte=1"`
	Title  string `yaml:"title" validate:"required"`
	Start  int    `yaml:"start" validate:"gte=1"`
	End    int    `yaml:"end" validate:"gtefield=Start"`
	Cover  string `yaml:"cover,omitempty"`
}

func (p Plan) Len() int { return p.End - p.Start + 1 }

var validate = validator.New()

// ValidationError lists the offending plan fields with readable messages.
type ValidationError struct {
	Volume int
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+e.Fields[k])
	}

	return fmt.Sprintf("volume %d: %s", e.Volume, strings.Join(parts, "; "))
}

// Validate checks a plan before it is accepted into a campaign.
func (p Plan) Validate() error {
	p.Title = strings.TrimSpace(p.Title)

	err := validate.Struct(p)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[strings.ToLower(fe.Field())] = friendlyMessage(fe)
	}

	return &ValidationError{Volume: p.Number, Fields: fields}
}

func friendlyMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte":
		return "must be at least " + fe.Param()
	case "gtefield":
		return "must not be before " + strings.ToLower(fe.Param())
	default:
		return "is invalid"
	}
}
