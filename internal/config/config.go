package config

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/brogergvhs/noveld/internal/chapters"
	"github.com/brogergvhs/noveld/internal/providers/lightnovel"
	"github.com/brogergvhs/noveld/internal/util"
	"github.com/brogergvhs/noveld/internal/volume"
)

type Config struct {
	Output       string        `yaml:"output"`
	BaseURL      string        `yaml:"base_url"`
	MaxAttempts  int           `yaml:"max_attempts"`
	Timeout      time.Duration `yaml:"timeout"`
	RetryBackoff time.Duration `yaml:"retry_backoff"`
	Debug        bool          `yaml:"debug"`
	Progress     bool          `yaml:"progress"`

	UserAgent  string `yaml:"user_agent"`
	Cookie     string `yaml:"cookie"`
	CookieFile string `yaml:"cookie_file"`
	Cloudflare bool   `yaml:"cloudflare"`

	CoverDir string   `yaml:"cover_dir"`
	CoverExt []string `yaml:"cover_ext"`
}

// Options carries command-line overrides. Zero values mean "not set".
type Options struct {
	IgnoreConfig bool
	Debug        bool
	Progress     bool
	Output       string
	BaseURL      string
	MaxAttempts  int
	Timeout      time.Duration
	UserAgent    string
	Cookie       string
	CookieFile   string
	Cloudflare   bool
	CoverDir     string
}

func DefaultConfig() *Config {
	return &Config{
		Output:       ".",
		BaseURL:      lightnovel.DefaultBaseURL,
		MaxAttempts:  chapters.DefaultMaxAttempts,
		Timeout:      util.DefaultTimeout,
		RetryBackoff: 0,
		CoverDir:     "img",
		CoverExt:     append([]string(nil), volume.DefaultCoverExt...),
	}
}

func SaveYAML(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func loadYAML(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	c := DefaultConfig()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, err
	}

	return c, nil
}

// LoadMerged resolves the effective config: active profile (or defaults),
// then NOVELD_* environment (a .env file in the working directory is read
// first), then command-line options.
func (s Store) LoadMerged(opts Options) (*Config, string, error) {
	cfg, used, err := s.loadBase(opts.IgnoreConfig)
	if err != nil {
		return nil, "", err
	}

	_ = godotenv.Load()
	if err := applyEnv(cfg, os.LookupEnv); err != nil {
		return nil, "", err
	}

	mergeConfig(cfg, opts)
	normalizeDefaults(cfg)

	return cfg, used, nil
}

func (s Store) loadBase(ignore bool) (*Config, string, error) {
	if ignore {
		return DefaultConfig(), "(ignored config)", nil
	}

	activePath, err := s.ActiveConfigPath()
	if err == ErrNoConfig || activePath == "" {
		return DefaultConfig(), "(default config in memory)\nRun `noveld config init` to create an actual config\n", nil
	}
	if err != nil {
		return nil, "", err
	}

	cfg, err := loadYAML(activePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config %s: %w", activePath, err)
	}

	return cfg, activePath, nil
}

func applyEnv(c *Config, lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}

	str("NOVELD_OUTPUT", &c.Output)
	str("NOVELD_BASE_URL", &c.BaseURL)
	str("NOVELD_USER_AGENT", &c.UserAgent)
	str("NOVELD_COOKIE", &c.Cookie)
	str("NOVELD_COOKIE_FILE", &c.CookieFile)
	str("NOVELD_COVER_DIR", &c.CoverDir)

	if v, ok := lookup("NOVELD_MAX_ATTEMPTS"); ok && v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("NOVELD_MAX_ATTEMPTS: %w", err)
		}
		c.MaxAttempts = n
	}
	if v, ok := lookup("NOVELD_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("NOVELD_TIMEOUT: %w", err)
		}
		c.Timeout = d
	}
	if v, ok := lookup("NOVELD_CLOUDFLARE"); ok && v != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("NOVELD_CLOUDFLARE: %w", err)
		}
		c.Cloudflare = b
	}

	return nil
}

func mergeConfig(c *Config, o Options) {
	if o.Output != "" {
		c.Output = o.Output
	}
	if o.BaseURL != "" {
		c.BaseURL = o.BaseURL
	}
	if o.MaxAttempts != 0 {
		c.MaxAttempts = o.MaxAttempts
	}
	if o.Timeout != 0 {
		c.Timeout = o.Timeout
	}
	if o.Debug {
		c.Debug = true
	}
	if o.Progress {
		c.Progress = true
	}
	if o.UserAgent != "" {
		c.UserAgent = o.UserAgent
	}
	if o.Cookie != "" {
		c.Cookie = o.Cookie
	}
	if o.CookieFile != "" {
		c.CookieFile = o.CookieFile
	}
	if o.Cloudflare {
		c.Cloudflare = true
	}
	if o.CoverDir != "" {
		c.CoverDir = o.CoverDir
	}
}

func normalizeDefaults(c *Config) {
	if c.Output == "" {
		c.Output = "."
	}
	if c.BaseURL == "" {
		c.BaseURL = lightnovel.DefaultBaseURL
	}
	if c.MaxAttempts < 1 {
		c.MaxAttempts = chapters.DefaultMaxAttempts
	}
	if c.Timeout <= 0 {
		c.Timeout = util.DefaultTimeout
	}
	if c.RetryBackoff < 0 {
		c.RetryBackoff = 0
	}
	if len(c.CoverExt) == 0 {
		c.CoverExt = append([]string(nil), volume.DefaultCoverExt...)
	}
}

func (c *Config) Print(w io.Writer) {
	_, _ = fmt.Fprintf(w, " -output: %s\n", c.Output)
	_, _ = fmt.Fprintf(w, " -base_url: %s\n", c.BaseURL)
	_, _ = fmt.Fprintf(w, " -max_attempts: %d\n", c.MaxAttempts)
	_, _ = fmt.Fprintf(w, " -timeout: %s\n", c.Timeout)
	if c.RetryBackoff > 0 {
		_, _ = fmt.Fprintf(w, " -retry_backoff: %s\n", c.RetryBackoff)
	}
	if c.Debug {
		_, _ = fmt.Fprintf(w, " -debug: %t\n", c.Debug)
	}
	if c.Progress {
		_, _ = fmt.Fprintf(w, " -progress: %t\n", c.Progress)
	}
	if c.UserAgent != "" {
		_, _ = fmt.Fprintf(w, " -user_agent: %s\n", c.UserAgent)
	}
	if c.CookieFile != "" {
		_, _ = fmt.Fprintf(w, " -cookie_file: %s\n", c.CookieFile)
	}
	if c.Cloudflare {
		_, _ = fmt.Fprintf(w, " -cloudflare: %t\n", c.Cloudflare)
	}
	if c.CoverDir != "" {
		_, _ = fmt.Fprintf(w, " -cover_dir: %s\n", c.CoverDir)
	}
	if len(c.CoverExt) > 0 {
		_, _ = fmt.Fprintf(w, " -cover_ext: %s\n", strings.Join(c.CoverExt, ", "))
	}
}
