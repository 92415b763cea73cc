package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/brogergvhs/noveld/internal/campaign"
	"github.com/brogergvhs/noveld/internal/chapters"
	"github.com/brogergvhs/noveld/internal/config"
	"github.com/brogergvhs/noveld/internal/prompt"
	"github.com/brogergvhs/noveld/internal/providers/lightnovel"
	"github.com/brogergvhs/noveld/internal/ui"
	"github.com/brogergvhs/noveld/internal/util"
	"github.com/brogergvhs/noveld/internal/volume"
)

var (
	// selection
	flagURL  string
	flagSlug string
	flagPlan string

	// runtime
	flagOutput      string
	flagMaxAttempts int
	flagTimeout     time.Duration
	flagProgress    bool
	flagCoverDir    string
	flagNoCheck     bool

	// headers/auth
	flagCookie     string
	flagCookieFile string
	flagUserAgent  string
	flagCloudflare bool
)

func init() {
	scrapeCmd := &cobra.Command{
		Use:   "scrape",
		Short: "Scrape chapter ranges and package each volume as an EPUB. Uses the defaults from the selected config, overwritten by CLI flags",
		Long: `Scrape runs a campaign: one EPUB per volume plan, in order.

Without --plan the plans are collected interactively. Type 'exit' at any
prompt to quit.`,
		RunE: runScrape,
	}

	// selection
	scrapeCmd.Flags().StringVar(&flagURL, "url", "", "novel series or chapter page URL")
	scrapeCmd.Flags().StringVar(&flagSlug, "slug", "", "novel slug as it appears in /novel/<slug>/")
	scrapeCmd.Flags().StringVar(&flagPlan, "plan", "", "YAML campaign file (skips the prompts)")

	addClientFlags(scrapeCmd)

	// runtime
	scrapeCmd.Flags().StringVar(&flagOutput, "output", "", "root folder for the <Series>_EPUB directory")
	scrapeCmd.Flags().IntVar(&flagMaxAttempts, "max-attempts", 0, "attempts per chapter before it is reported as failed")
	scrapeCmd.Flags().BoolVar(&flagProgress, "progress", false, "show a progress bar per volume")
	scrapeCmd.Flags().StringVar(&flagCoverDir, "cover-dir", "", "folder searched for cover images")
	scrapeCmd.Flags().BoolVar(&flagNoCheck, "no-check", false, "skip the reachability check of --url")

	rootCmd.AddCommand(scrapeCmd)
}

// addClientFlags registers the HTTP flags shared by every command that
// talks to the site.
func addClientFlags(cmd *cobra.Command) {
	cmd.Flags().DurationVar(&flagTimeout, "timeout", 0, "per-request timeout (e.g. 10s)")
	cmd.Flags().StringVar(&flagCookie, "cookie", "", "cookie string, e.g. \"key=value; other=123\"")
	cmd.Flags().StringVar(&flagCookieFile, "cookie-file", "", "path to a text file with cookies (one header line)")
	cmd.Flags().StringVar(&flagUserAgent, "user-agent", "", "override User-Agent")
	cmd.Flags().BoolVar(&flagCloudflare, "cloudflare", false, "use the Cloudflare-friendly transport")
}

func clientOptions() config.Options {
	return config.Options{
		Timeout:    flagTimeout,
		Cookie:     flagCookie,
		CookieFile: flagCookieFile,
		UserAgent:  flagUserAgent,
		Cloudflare: flagCloudflare,
	}
}

func runScrape(cmd *cobra.Command, _ []string) error {
	opts := clientOptions()
	opts.Output = flagOutput
	opts.MaxAttempts = flagMaxAttempts
	opts.Progress = flagProgress
	opts.CoverDir = flagCoverDir

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logSvc := ui.NewLogger(cfg.Debug)

	if err := os.MkdirAll(cfg.Output, 0755); err != nil {
		return fmt.Errorf("cannot create output folder: %w", err)
	}

	fmt.Println("Full config:")
	cfg.Print(os.Stdout)
	fmt.Println()

	scr, err := newScraper(cfg, logSvc)
	if err != nil {
		return err
	}

	ctx, stop := util.InterruptContext(cmd.Context())
	defer stop()

	if flagPlan != "" {
		file, err := campaign.LoadFile(flagPlan)
		if err != nil {
			return err
		}
		if file.Slug == "" && file.URL == "" {
			if file.Slug, err = resolveSlug(flagURL, flagSlug); err != nil {
				return err
			}
		}
		c, err := file.Campaign()
		if err != nil {
			return err
		}

		if sum := runCampaign(ctx, cfg, scr, logSvc, c); !sum.AllSucceeded() {
			return errIncomplete
		}
		return nil
	}

	return runInteractive(ctx, cfg, scr, logSvc)
}

func runInteractive(ctx context.Context, cfg *config.Config, scr *lightnovel.Scraper, logSvc *ui.Logger) error {
	term := &prompt.Terminal{}

	term.Println("=========================================")
	term.Println("Welcome to the Scraper!")
	term.Println("Type 'exit' at any time to exit the program.")
	term.Println("=========================================")
	term.Println()

	slug, err := interactiveSlug(ctx, term, scr)
	if err != nil {
		return err
	}

	covers, err := volume.DiscoverCovers(cfg.CoverDir, cfg.CoverExt)
	if err != nil {
		logSvc.Warnf("Cannot list covers in %s: %v", cfg.CoverDir, err)
	}

	allOK := true
	for {
		in, ok, err := prompt.AskCampaign(term)
		if err != nil {
			return err
		}
		if !ok {
			term.Println("Exiting the program. Please run again with the correct inputs.")
			return nil
		}

		term.Println(fmt.Sprintf("Gathering information for volumes %d to %d of %s...", in.StartVolume, in.EndVolume, in.Series))
		plans, err := prompt.AskPlans(term, in, covers)
		if err != nil {
			return err
		}

		sum := runCampaign(ctx, cfg, scr, logSvc, campaign.Campaign{
			Slug:   slug,
			Series: in.Series,
			Author: in.Author,
			Plans:  plans,
		})
		allOK = allOK && sum.AllSucceeded()

		if ctx.Err() != nil {
			break
		}

		again, err := term.Confirm("Do you want to run the program again?")
		if err != nil {
			return err
		}
		if !again {
			term.Println("Exiting the program...")
			break
		}
		term.Println("\nRestarting the program...")
	}

	if !allOK {
		return errIncomplete
	}
	return nil
}

func interactiveSlug(ctx context.Context, term *prompt.Terminal, scr *lightnovel.Scraper) (string, error) {
	if flagSlug != "" {
		return flagSlug, nil
	}

	url := flagURL
	for {
		if url == "" {
			var err error
			if url, err = term.String("Enter the novel URL"); err != nil {
				return "", err
			}
		}

		slug, err := lightnovel.ParseSeriesURL(url)
		if err == nil && !flagNoCheck {
			err = scr.CheckReachable(ctx, url)
		}
		if err == nil {
			return slug, nil
		}
		if errors.Is(ctx.Err(), context.Canceled) {
			return "", ctx.Err()
		}

		term.Println(fmt.Sprintf("Invalid URL: %v", err))
		url = ""
	}
}

func runCampaign(ctx context.Context, cfg *config.Config, scr *lightnovel.Scraper, logSvc *ui.Logger, c campaign.Campaign) campaign.Summary {
	fetcher := chapters.NewFetcher(scr, chapters.FetcherOptions{
		Logger:  logSvc,
		Backoff: cfg.RetryBackoff,
	})

	runOpts := campaign.Options{
		OutputRoot: cfg.Output,
		Logger:     logSvc,
	}

	var pm *ui.MPBProgressManager
	if cfg.Progress {
		pm = ui.NewProgressManager(os.Stdout)
		logSvc.SetOutput(pm.Writer())
		runOpts.Progress = func(label string) chapters.Progress {
			return pm.Register(label)
		}
	}

	runner := campaign.NewRunner(
		chapters.NewCollector(fetcher, cfg.MaxAttempts),
		volume.NewAssembler(logSvc),
		runOpts,
	)

	start := time.Now()
	sum := runner.Run(ctx, c)
	if pm != nil {
		pm.Close()
		logSvc.SetOutput(os.Stdout)
	}

	ui.PrintSummary(os.Stdout, sum, time.Since(start))
	return sum
}
