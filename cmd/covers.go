package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brogergvhs/noveld/internal/config"
	"github.com/brogergvhs/noveld/internal/volume"
)

var coversCmd = &cobra.Command{
	Use:   "covers [dir]",
	Short: "List the cover images available for volume plans",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := config.Options{}
		if len(args) == 1 {
			opts.CoverDir = args[0]
		}

		cfg, err := loadConfig(opts)
		if err != nil {
			return err
		}

		covers, err := volume.DiscoverCovers(cfg.CoverDir, cfg.CoverExt)
		if err != nil {
			return err
		}
		if len(covers) == 0 {
			fmt.Printf("No cover images in %s\n", cfg.CoverDir)
			return nil
		}

		for i, c := range covers {
			fmt.Printf("%3d) %s\n", i+1, c)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(coversCmd)
}
