package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/grokker-shim/internal/config"
	"github.com/oshokin/grokker-shim/internal/logger"
	"github.com/oshokin/grokker-shim/internal/service/editor"
	"github.com/oshokin/grokker-shim/internal/version"
)

var (
	// cfgPath stores the settings file path.
	cfgPath string
	// logLevel overrides the log level from the settings file.
	logLevel string

	// rootCmd is the base command of the editor shim.
	rootCmd = &cobra.Command{
		Use:   "grokker-shim",
		Short: "Editor integration shim for the grok command-line tool.",
		Long: `Installs the latest grok release binary for this operating system and
runs the editor commands of the grokker integration.

The installer asks the hosting API for the latest release, downloads the asset
whose name matches this platform and marks it executable.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: applyLogLevel,
	}
)

// Execute runs the grokker-shim CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := executeRoot(); err != nil {
		os.Exit(1)
	}
}

// executeRoot runs the command tree and reports a failure as an error notification on stderr.
func executeRoot() error {
	err := rootCmd.Execute()
	if err != nil {
		_ = editor.NewConsoleNotifier(rootCmd.ErrOrStderr()).Error(err.Error())
	}

	return err
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", config.DefaultConfigFilename, "path to settings file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(installCmd, helloCmd, menuCmd, runCmd, commandsCmd, initConfigCmd)
}

// applyLogLevel sets the global log level from the flag or the settings file.
func applyLogLevel(_ *cobra.Command, _ []string) error {
	value := logLevel
	if value == "" {
		if cfg, err := config.LoadOptional(cfgPath); err == nil {
			value = cfg.LogLevel
		}
	}

	level, ok := logger.ParseLogLevel(value)
	if !ok {
		return fmt.Errorf("unknown log level %q", value)
	}

	logger.SetLevel(level)

	return nil
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}

	return signal.NotifyContext(parent, syscall.SIGTERM, syscall.SIGINT)
}
