package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/brogergvhs/noveld/internal/providers"
	"github.com/brogergvhs/noveld/internal/providers/lightnovel"
	"github.com/brogergvhs/noveld/internal/ui"
)

func init() {
	previewCmd := &cobra.Command{
		Use:   "preview <chapter>",
		Short: "Fetch one chapter and print it as Markdown",
		Args:  cobra.ExactArgs(1),
		RunE:  runPreview,
	}

	previewCmd.Flags().StringVar(&flagURL, "url", "", "novel series or chapter page URL")
	previewCmd.Flags().StringVar(&flagSlug, "slug", "", "novel slug as it appears in /novel/<slug>/")
	addClientFlags(previewCmd)

	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return fmt.Errorf("invalid chapter number %q", args[0])
	}

	slug, err := resolveSlug(flagURL, flagSlug)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(clientOptions())
	if err != nil {
		return err
	}

	logSvc := ui.NewLogger(cfg.Debug)
	scr, err := newScraper(cfg, logSvc)
	if err != nil {
		return err
	}

	id := providers.ChapterID{Slug: slug, Number: n}
	logSvc.Debugf("GET %s", scr.ChapterURL(id))

	content, err := scr.FetchChapter(cmd.Context(), id)
	if err != nil {
		return err
	}

	md, err := lightnovel.Markdown(content)
	if err != nil {
		return err
	}

	fmt.Print(md)
	return nil
}
