package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brogergvhs/noveld/internal/chapters"
	"github.com/brogergvhs/noveld/internal/util"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
}

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()

	assert.Equal(t, chapters.DefaultMaxAttempts, c.MaxAttempts)
	assert.Equal(t, util.DefaultTimeout, c.Timeout)
	assert.Zero(t, c.RetryBackoff)
	assert.Equal(t, ".", c.Output)
	assert.NotEmpty(t, c.CoverExt)
}

func TestApplyEnv(t *testing.T) {
	c := DefaultConfig()

	err := applyEnv(c, lookupFrom(map[string]string{
		"NOVELD_OUTPUT":       " books ",
		"NOVELD_MAX_ATTEMPTS": "3",
		"NOVELD_TIMEOUT":      "30s",
		"NOVELD_CLOUDFLARE":   "true",
		"NOVELD_COOKIE":       "",
	}))
	require.NoError(t, err)

	assert.Equal(t, "books", c.Output)
	assert.Equal(t, 3, c.MaxAttempts)
	assert.Equal(t, 30*time.Second, c.Timeout)
	assert.True(t, c.Cloudflare)
	assert.Empty(t, c.Cookie)
}

func TestApplyEnv_Invalid(t *testing.T) {
	err := applyEnv(DefaultConfig(), lookupFrom(map[string]string{"NOVELD_MAX_ATTEMPTS": "many"}))
	assert.ErrorContains(t, err, "NOVELD_MAX_ATTEMPTS")

	err = applyEnv(DefaultConfig(), lookupFrom(map[string]string{"NOVELD_TIMEOUT": "soon"}))
	assert.ErrorContains(t, err, "NOVELD_TIMEOUT")
}

func TestMergeConfig_FlagsWin(t *testing.T) {
	c := DefaultConfig()
	c.Output = "from-file"
	c.MaxAttempts = 2

	mergeConfig(c, Options{Output: "from-flag", Timeout: time.Minute})

	assert.Equal(t, "from-flag", c.Output)
	assert.Equal(t, 2, c.MaxAttempts, "unset flag keeps the file value")
	assert.Equal(t, time.Minute, c.Timeout)
}

func TestNormalizeDefaults(t *testing.T) {
	c := &Config{MaxAttempts: -1, RetryBackoff: -time.Second}
	normalizeDefaults(c)

	assert.Equal(t, ".", c.Output)
	assert.Equal(t, chapters.DefaultMaxAttempts, c.MaxAttempts)
	assert.Equal(t, util.DefaultTimeout, c.Timeout)
	assert.Zero(t, c.RetryBackoff)
	assert.NotEmpty(t, c.BaseURL)
}

func TestLoadMerged_NoProfile(t *testing.T) {
	s := Store{Root: t.TempDir()}

	cfg, used, err := s.LoadMerged(Options{MaxAttempts: 7})
	require.NoError(t, err)

	assert.Contains(t, used, "default config in memory")
	assert.Equal(t, 7, cfg.MaxAttempts)
}

func TestLoadMerged_ActiveProfile(t *testing.T) {
	s := Store{Root: t.TempDir()}

	path, err := s.CreateConfig("work")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte("output: /tmp/novels\ntimeout: 25s\nmax_attempts: 2\n"), 0644))
	require.NoError(t, s.SwitchConfig("work"))

	cfg, used, err := s.LoadMerged(Options{})
	require.NoError(t, err)

	assert.Equal(t, path, used)
	assert.Equal(t, "/tmp/novels", cfg.Output)
	assert.Equal(t, 25*time.Second, cfg.Timeout)
	assert.Equal(t, 2, cfg.MaxAttempts)
	assert.NotEmpty(t, cfg.CoverExt, "keys missing from the file keep their defaults")
}

func TestLoadMerged_IgnoreConfig(t *testing.T) {
	s := Store{Root: t.TempDir()}
	path, err := s.CreateConfig("work")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte("max_attempts: 2\n"), 0644))
	require.NoError(t, s.SwitchConfig("work"))

	cfg, _, err := s.LoadMerged(Options{IgnoreConfig: true})
	require.NoError(t, err)
	assert.Equal(t, chapters.DefaultMaxAttempts, cfg.MaxAttempts)
}

func TestStore_Profiles(t *testing.T) {
	s := Store{Root: t.TempDir()}

	_, err := s.CurrentLabel()
	assert.ErrorIs(t, err, ErrNoConfig)

	path, err := s.InitDefault()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(s.ConfigsDir(), "Default.yaml"), path)

	_, err = s.InitDefault()
	assert.ErrorIs(t, err, os.ErrExist)

	_, err = s.CreateConfig("work")
	require.NoError(t, err)
	_, err = s.CreateConfig("work")
	assert.Error(t, err)

	require.NoError(t, s.SwitchConfig("work"))
	require.NoError(t, s.RenameConfig("work", "office"))

	label, err := s.CurrentLabel()
	require.NoError(t, err)
	assert.Equal(t, "office", label, "renaming the active profile keeps it active")

	list, err := s.ListConfigs()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Default", list[0].Label)
	assert.Equal(t, "office", list[1].Label)
	assert.True(t, list[1].Active)

	fellBack, err := s.RemoveConfig("office")
	require.NoError(t, err)
	assert.True(t, fellBack)

	label, err = s.CurrentLabel()
	require.NoError(t, err)
	assert.Equal(t, "Default", label)

	_, err = s.RemoveConfig("Default")
	assert.Error(t, err)
}

func TestStore_RejectsBadLabels(t *testing.T) {
	s := Store{Root: t.TempDir()}

	_, err := s.CreateConfig("  ")
	assert.Error(t, err)
	_, err = s.CreateConfig("../escape")
	assert.Error(t, err)
	assert.Error(t, s.SwitchConfig("missing"))
}
