package lightnovel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brogergvhs/noveld/internal/providers"
)

func TestMarkdown(t *testing.T) {
	got, err := Markdown(providers.ChapterContent{
		Title: "Chapter 1",
		Body:  "<p>Hello <strong>there</strong>.</p><p>Bye.</p>",
	})
	require.NoError(t, err)

	assert.Equal(t, "# Chapter 1\n\nHello **there**.\n\nBye.\n", got)
}
