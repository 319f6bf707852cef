package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestValidate checks defaults and format validations for Config.
func TestValidate(t *testing.T) {
	t.Parallel()

	require.Error(t, Validate(nil))

	// Empty settings get defaults.
	settings := new(Config)
	require.NoError(t, Validate(settings))
	require.Equal(t, DefaultRepository, settings.Repository)
	require.Equal(t, DefaultAPIBaseURL, settings.APIBaseURL)
	require.Equal(t, DefaultBinaryName, settings.BinaryName)
	require.Equal(t, DefaultMenuCommand, settings.MenuCommand)

	bad := []*Config{
		{Repository: "acme"},
		{Repository: "acme/tool/extra"},
		{Repository: "/tool"},
		{APIBaseURL: "not a url"},
		{APIBaseURL: "/relative/path"},
		{BinaryName: "../grok"},
		{BinaryName: "bin/grok"},
		{Timeout: -time.Second},
		{LogLevel: "verbose"},
	}
	for _, cfg := range bad {
		require.Error(t, Validate(cfg), "%+v", cfg)
	}
}

// TestSaveLoadRoundtrip ensures settings are persisted and loaded back correctly.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")

	settings := &Config{
		Repository: "acme/tool",
		APIBaseURL: "https://api.example.com",
		BinaryName: "tool",
		TargetDir:  "/tmp/out",
		Timeout:    30 * time.Second,
		Token:      "secret",
	}

	require.NoError(t, Save(path, settings))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, settings.Repository, loaded.Repository)
	require.Equal(t, settings.APIBaseURL, loaded.APIBaseURL)
	require.Equal(t, settings.BinaryName, loaded.BinaryName)
	require.Equal(t, settings.TargetDir, loaded.TargetDir)
	require.Equal(t, settings.Timeout, loaded.Timeout)

	// The token never reaches the file.
	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotContains(t, string(contents), "secret")

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.False(t, info.IsDir())
}

// TestLoadOptional returns defaults for a missing file and errors for a broken one.
func TestLoadOptional(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	cfg, err := LoadOptional(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	require.Equal(t, DefaultRepository, cfg.Repository)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("repository: [unterminated"), DefaultFilePermissions))

	_, err = LoadOptional(broken)
	require.Error(t, err)
}
