package ui

import (
	"bytes"
	"testing"
	"time"

	"github.com/brogergvhs/noveld/internal/campaign"
	"github.com/stretchr/testify/assert"
)

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	PrintSummary(&buf, campaign.Summary{Statuses: []campaign.VolumeStatus{
		{Volume: 1, Outcome: campaign.AllSucceeded, Chapters: 3, Output: "S_EPUB/s_volume_1.epub", Bytes: 2048},
		{Volume: 2, Outcome: campaign.PartiallyFailed, Chapters: 1, Failed: []int{5, 6}},
	}}, 3*time.Second)

	out := buf.String()
	assert.Contains(t, out, "Volume 1: Successfully scraped")
	assert.Contains(t, out, "S_EPUB/s_volume_1.epub")
	assert.Contains(t, out, "Volume 2: Failed chapters - 5, 6")
	assert.Contains(t, out, "Chapters: 4")
	assert.Contains(t, out, "Failed:   2")
	assert.Contains(t, out, "2.00 KB")
	assert.NotContains(t, out, "All volumes successfully scraped!")
}

func TestPrintSummary_AllSucceeded(t *testing.T) {
	var buf bytes.Buffer
	PrintSummary(&buf, campaign.Summary{Statuses: []campaign.VolumeStatus{
		{Volume: 1, Outcome: campaign.AllSucceeded},
		{Volume: 2, Outcome: campaign.AllSucceeded},
	}}, 0)

	assert.Contains(t, buf.String(), "All volumes successfully scraped!")
}
