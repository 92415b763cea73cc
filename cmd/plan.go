package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/brogergvhs/noveld/internal/campaign"
	"github.com/brogergvhs/noveld/internal/config"
	"github.com/brogergvhs/noveld/internal/prompt"
	"github.com/brogergvhs/noveld/internal/volume"
)

func init() {
	planCmd := &cobra.Command{
		Use:   "plan <file.yaml>",
		Short: "Build a campaign file interactively for `scrape --plan`",
		Args:  cobra.ExactArgs(1),
		RunE:  runPlan,
	}

	planCmd.Flags().StringVar(&flagURL, "url", "", "novel series or chapter page URL")
	planCmd.Flags().StringVar(&flagSlug, "slug", "", "novel slug as it appears in /novel/<slug>/")
	planCmd.Flags().StringVar(&flagCoverDir, "cover-dir", "", "folder searched for cover images")

	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	slug, err := resolveSlug(flagURL, flagSlug)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(config.Options{CoverDir: flagCoverDir})
	if err != nil {
		return err
	}

	covers, err := volume.DiscoverCovers(cfg.CoverDir, cfg.CoverExt)
	if err != nil {
		return err
	}
	// Covers are stored absolute; relative ones would resolve against the
	// plan file's folder.
	for i, c := range covers {
		if abs, err := filepath.Abs(c); err == nil {
			covers[i] = abs
		}
	}

	term := &prompt.Terminal{}
	in, ok, err := prompt.AskCampaign(term)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("Aborted.")
		return nil
	}

	plans, err := prompt.AskPlans(term, in, covers)
	if err != nil {
		return err
	}

	file := campaign.NewFile(campaign.Campaign{
		Slug:   slug,
		Series: in.Series,
		Author: in.Author,
		Plans:  plans,
	}, flagURL)

	if err := file.Save(args[0]); err != nil {
		return err
	}

	fmt.Printf("Wrote %d volume plans to %s\n", len(plans), args[0])
	return nil
}
