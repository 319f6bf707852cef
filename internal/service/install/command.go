package install

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/oshokin/grokker-shim/internal/config"
	"github.com/oshokin/grokker-shim/internal/installer"
	"github.com/oshokin/grokker-shim/internal/logger"
	"github.com/oshokin/grokker-shim/internal/platform"
	"github.com/oshokin/grokker-shim/internal/release"
	"github.com/oshokin/grokker-shim/internal/version"
)

// Options are inputs accepted by the install entry point.
// Non-empty fields override the settings file.
type Options struct {
	// ConfigPath is the optional path to the settings YAML file.
	ConfigPath string
	// Repository overrides the "owner/repo" identifier.
	Repository string
	// BinaryName overrides the installed file name.
	BinaryName string
	// TargetDir overrides the destination directory.
	TargetDir string
	// Platform overrides the detected operating system (windows, darwin, linux).
	Platform string
	// APIBaseURL overrides the hosting API root.
	APIBaseURL string
	// Progress receives the download progress bar; nil disables it.
	Progress io.Writer
}

// Run resolves and installs the latest release binary and returns where it landed.
func Run(ctx context.Context, opts *Options) (*installer.Binary, error) {
	ctx = logger.WithName(ctx, "install")

	if opts == nil {
		opts = new(Options)
	}

	cfg, err := loadSettings(opts)
	if err != nil {
		return nil, err
	}

	id, err := platform.Parse(opts.Platform)
	if err != nil {
		return nil, fmt.Errorf("detect platform: %w", err)
	}

	targetDir, err := resolveTargetDir(cfg.TargetDir)
	if err != nil {
		return nil, err
	}

	ctx = logger.WithKV(ctx, "repository", cfg.Repository, "platform", id.String())

	httpClient := &http.Client{Timeout: cfg.Timeout}

	resolver, err := release.NewResolver(
		httpClient,
		release.WithBaseURL(cfg.APIBaseURL),
		release.WithToken(cfg.Token),
		release.WithUserAgent(version.UserAgent()),
	)
	if err != nil {
		return nil, fmt.Errorf("create resolver: %w", err)
	}

	logger.Info(ctx, "Resolving the latest release")

	asset, err := resolver.Resolve(ctx, cfg.Repository, id)
	if err != nil {
		return nil, fmt.Errorf("resolve asset: %w", err)
	}

	warnIfRunning(ctx, id.BinaryFileName(cfg.BinaryName))

	inst := installer.New(
		httpClient,
		installer.WithProgress(opts.Progress),
		installer.WithUserAgent(version.UserAgent()),
	)

	logger.InfoKV(ctx, "Downloading release asset", "asset", asset.Name, "url", asset.DownloadURL)

	bin, err := inst.Install(ctx, *asset, targetDir, cfg.BinaryName, id)
	if err != nil {
		return nil, fmt.Errorf("install %s: %w", asset.Name, err)
	}

	logger.InfoKV(ctx, "Binary installed", "path", bin.Path, "size", bin.Size, "mode", bin.Mode.String())

	return bin, nil
}

// loadSettings merges the settings file (or defaults) with the option overrides.
func loadSettings(opts *Options) (*config.Config, error) {
	cfg, err := config.LoadOptional(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	if opts.Repository != "" {
		cfg.Repository = opts.Repository
	}

	if opts.BinaryName != "" {
		cfg.BinaryName = opts.BinaryName
	}

	if opts.TargetDir != "" {
		cfg.TargetDir = opts.TargetDir
	}

	if opts.APIBaseURL != "" {
		cfg.APIBaseURL = opts.APIBaseURL
	}

	if err = config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("validate settings: %w", err)
	}

	return cfg, nil
}

// resolveTargetDir defaults an empty directory to the one holding this executable.
func resolveTargetDir(dir string) (string, error) {
	if dir != "" {
		return filepath.Clean(dir), nil
	}

	executable, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}

	return filepath.Dir(executable), nil
}

// warnIfRunning logs live processes of the binary about to be overwritten.
func warnIfRunning(ctx context.Context, fileName string) {
	pids, err := installer.RunningInstances(fileName)
	if err != nil {
		logger.DebugKV(ctx, "Could not list processes", "error", err)

		return
	}

	if len(pids) > 0 {
		logger.WarnKV(ctx, "Binary is running and may not be replaceable", "file", fileName, "pids", pids)
	}
}
