package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/grokker-shim/internal/logger"
	"github.com/oshokin/grokker-shim/internal/release"
)

// Config holds the settings shared by the grokker-shim commands.
type Config struct {
	// Repository is the "owner/repo" identifier whose latest release is installed.
	Repository string `yaml:"repository"`
	// APIBaseURL is the hosting API root, e.g. https://api.github.com.
	APIBaseURL string `yaml:"api_base_url"`
	// BinaryName is the installed file name without the platform suffix.
	BinaryName string `yaml:"binary_name"`
	// TargetDir is where the binary is written. Empty means next to this executable.
	TargetDir string `yaml:"target_dir,omitempty"`
	// Timeout bounds each HTTP request. Zero leaves transport defaults in place.
	Timeout time.Duration `yaml:"timeout,omitempty"`
	// TerminalName labels the terminal session opened by the menu command.
	TerminalName string `yaml:"terminal_name"`
	// MenuCommand is the text sent to the terminal session by the menu command.
	MenuCommand string `yaml:"menu_command"`
	// LogLevel is the minimum level of log messages.
	LogLevel string `yaml:"log_level,omitempty"`
	// Token authenticates API requests. It is read from TokenEnvVar only.
	Token string `yaml:"-"`
}

const (
	// DefaultConfigFilename is the default filename for settings.
	DefaultConfigFilename = "grokker-shim-settings.yaml"

	// DefaultRepository is the repository publishing the grok binary.
	DefaultRepository = "stevegt/grokker"

	// DefaultAPIBaseURL is the public GitHub REST API root.
	DefaultAPIBaseURL = "https://api.github.com"

	// DefaultBinaryName is the installed file name of the companion tool.
	DefaultBinaryName = "grok"

	// DefaultTerminalName labels the menu terminal session.
	DefaultTerminalName = "aidda-menu"

	// DefaultMenuCommand is sent to the menu terminal session.
	DefaultMenuCommand = "grok aidda menu"

	// DefaultFilePermissions is the file mode of saved settings.
	DefaultFilePermissions = 0o600

	// TokenEnvVar names the environment variable holding the API token.
	TokenEnvVar = "GITHUB_TOKEN"
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errInvalidBinaryName is returned when the binary name contains a path.
	errInvalidBinaryName = errors.New("binary name must be a plain file name")
	// errInvalidLogLevel is returned for unknown log levels.
	errInvalidLogLevel = errors.New("unknown log level")
	// errRelativeBaseURL is returned when the API base URL lacks a scheme or host.
	errRelativeBaseURL = errors.New("API base URL must be absolute")
	// errNegativeTimeout is returned when the timeout is below zero.
	errNegativeTimeout = errors.New("timeout must not be negative")
)

// Default returns settings populated with defaults.
func Default() *Config {
	return &Config{
		Repository:   DefaultRepository,
		APIBaseURL:   DefaultAPIBaseURL,
		BinaryName:   DefaultBinaryName,
		TerminalName: DefaultTerminalName,
		MenuCommand:  DefaultMenuCommand,
		Token:        os.Getenv(TokenEnvVar),
	}
}

// Load reads configuration from path and validates it.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	cfg := Default()
	if err = yaml.Unmarshal(contents, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err = Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOptional behaves like Load but returns defaults when the file does not exist.
// Lifecycle hooks invoke the installer without any settings file.
func LoadOptional(path string) (*Config, error) {
	cfg, err := Load(path)
	if err == nil {
		return cfg, nil
	}

	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	cfg = Default()
	if err = Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes cfg to path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err = os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate fills empty fields with defaults and checks the rest for formatting.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	applyDefaults(cfg)

	if _, _, err := release.ParseRepository(cfg.Repository); err != nil {
		return err
	}

	baseURL, err := url.ParseRequestURI(cfg.APIBaseURL)
	if err != nil {
		return fmt.Errorf("invalid API base URL: %w", err)
	}

	if baseURL.Scheme == "" || baseURL.Host == "" {
		return fmt.Errorf("%q: %w", cfg.APIBaseURL, errRelativeBaseURL)
	}

	if cfg.BinaryName != filepath.Base(cfg.BinaryName) || cfg.BinaryName == "." || cfg.BinaryName == ".." {
		return fmt.Errorf("%q: %w", cfg.BinaryName, errInvalidBinaryName)
	}

	if cfg.Timeout < 0 {
		return errNegativeTimeout
	}

	if _, ok := logger.ParseLogLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("%q: %w", cfg.LogLevel, errInvalidLogLevel)
	}

	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Repository == "" {
		cfg.Repository = DefaultRepository
	}

	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = DefaultAPIBaseURL
	}

	if cfg.BinaryName == "" {
		cfg.BinaryName = DefaultBinaryName
	}

	if cfg.TerminalName == "" {
		cfg.TerminalName = DefaultTerminalName
	}

	if cfg.MenuCommand == "" {
		cfg.MenuCommand = DefaultMenuCommand
	}
}
