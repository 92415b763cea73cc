package lightnovel

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/brogergvhs/noveld/internal/providers"
)

// Markdown renders a chapter for reading in a terminal.
func Markdown(c providers.ChapterContent) (string, error) {
	body, err := htmltomarkdown.ConvertString(c.Body)
	if err != nil {
		return "", fmt.Errorf("convert chapter body: %w", err)
	}

	return "# " + c.Title + "\n\n" + strings.TrimSpace(body) + "\n", nil
}
