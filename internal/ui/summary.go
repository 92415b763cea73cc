package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/brogergvhs/noveld/internal/campaign"
	"github.com/brogergvhs/noveld/internal/util"
)

var (
	summaryTitleStyle = lipgloss.NewStyle().Bold(true)
	summaryOKStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	summaryWarnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	summaryErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	summaryMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// PrintSummary writes the per-volume results and campaign totals.
func PrintSummary(w io.Writer, sum campaign.Summary, elapsed time.Duration) {
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, summaryTitleStyle.Render("Summary of Scraping Results:"))

	for _, st := range sum.Statuses {
		line := fmt.Sprintf("Volume %d: %s", st.Volume, st.Describe())

		switch {
		case st.Outcome == campaign.AllSucceeded:
			line = summaryOKStyle.Render(line)
		case st.Cancelled():
			line = summaryWarnStyle.Render(line)
		default:
			line = summaryErrorStyle.Render(line)
		}
		_, _ = fmt.Fprintln(w, line)

		if st.Output != "" {
			_, _ = fmt.Fprintln(w, summaryMutedStyle.Render("  "+st.Output))
		}
	}

	chapters, failed, bytes := sum.Totals()
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintf(w, "Chapters: %d\n", chapters)
	_, _ = fmt.Fprintf(w, "Failed:   %d\n", failed)
	_, _ = fmt.Fprintf(w, "Data:     %s\n", util.Human(bytes))
	_, _ = fmt.Fprintf(w, "Time:     %s\n", elapsed.Round(time.Second))

	if sum.AllSucceeded() && len(sum.Statuses) > 0 {
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, summaryOKStyle.Render("All volumes successfully scraped!"))
	}
}
