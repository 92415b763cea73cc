package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/brogergvhs/noveld/internal/config"
	"github.com/brogergvhs/noveld/internal/prompt"
	"github.com/brogergvhs/noveld/internal/providers/lightnovel"
	"github.com/brogergvhs/noveld/internal/ui"
	"github.com/brogergvhs/noveld/internal/util"
)

var (
	flagIgnoreConfig bool
	flagDebug        bool
)

// errIncomplete makes the process exit non-zero after the summary has been
// printed.
var errIncomplete = errors.New("not all volumes were scraped successfully")

var rootCmd = &cobra.Command{
	Use:           "noveld",
	Short:         "Web novel scraper that packages chapter ranges into EPUB volumes",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagIgnoreConfig, "ignore-config", false, "ignore config and use only CLI flags")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, prompt.ErrExit) {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

// loadConfig resolves the effective config and reports which file it came
// from.
func loadConfig(opts config.Options) (*config.Config, error) {
	opts.IgnoreConfig = flagIgnoreConfig
	opts.Debug = opts.Debug || flagDebug

	cfg, used, err := config.DefaultStore().LoadMerged(opts)
	if err != nil {
		return nil, err
	}
	if used != "" {
		fmt.Printf("Config file: %s\n", used)
	}

	return cfg, nil
}

// newScraper wires the HTTP client from cfg to the content site.
func newScraper(cfg *config.Config, log *ui.Logger) (*lightnovel.Scraper, error) {
	client, err := util.NewHTTPClient(util.HTTPClientOptions{
		Timeout:     cfg.Timeout,
		UserAgent:   cfg.UserAgent,
		Cookie:      cfg.Cookie,
		CookieFile:  cfg.CookieFile,
		Cloudflare:  cfg.Cloudflare,
		DebugLogger: log,
	})
	if err != nil {
		return nil, err
	}

	return lightnovel.NewScraper(client, cfg.BaseURL, log), nil
}

// resolveSlug accepts either a bare slug or a series/chapter URL.
func resolveSlug(url, slug string) (string, error) {
	if slug != "" {
		return slug, nil
	}
	if url == "" {
		return "", errors.New("missing --url or --slug")
	}

	return lightnovel.ParseSeriesURL(url)
}
