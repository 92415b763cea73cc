package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brogergvhs/noveld/internal/providers/lightnovel"
	"github.com/brogergvhs/noveld/internal/ui"
)

func init() {
	checkCmd := &cobra.Command{
		Use:   "check <url>",
		Short: "Validate a novel URL and print its slug",
		Args:  cobra.ExactArgs(1),
		RunE:  runCheck,
	}

	addClientFlags(checkCmd)

	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	slug, err := lightnovel.ParseSeriesURL(args[0])
	if err != nil {
		return err
	}

	cfg, err := loadConfig(clientOptions())
	if err != nil {
		return err
	}

	scr, err := newScraper(cfg, ui.NewLogger(cfg.Debug))
	if err != nil {
		return err
	}

	if err := scr.CheckReachable(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("url not reachable: %w", err)
	}

	fmt.Println("Slug:", slug)
	return nil
}
