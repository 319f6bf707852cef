package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oshokin/grokker-shim/internal/service/editor"
	"github.com/oshokin/grokker-shim/internal/service/install"
)

var (
	// installOptions collects the install flag overrides.
	installOptions install.Options
	// noProgress disables the download progress bar.
	noProgress bool

	// installCmd downloads the latest release binary.
	installCmd = &cobra.Command{
		Use:   "install",
		Short: "Install the latest release binary for this platform.",
		Long: `Fetches the latest release of the configured repository, picks the asset
whose name contains this operating system (windows, darwin or linux), streams it
to <dir>/<binary>[.exe] and, outside Windows, sets mode 0755.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signalContext(cmd.Context())
			defer stop()

			opts := installOptions
			opts.ConfigPath = cfgPath

			if !noProgress {
				opts.Progress = cmd.ErrOrStderr()
			}

			bin, err := install.Run(ctx, &opts)
			if err != nil {
				return err
			}

			return editor.NewConsoleNotifier(cmd.OutOrStdout()).
				Info(fmt.Sprintf("Binary installed at %s", bin.Path))
		},
	}
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	flags := installCmd.Flags()
	flags.StringVar(&installOptions.Repository, "repo", "", "repository as owner/repo")
	flags.StringVar(&installOptions.BinaryName, "binary", "", "installed binary name without extension")
	flags.StringVarP(&installOptions.TargetDir, "dir", "d", "", "target directory (default: next to this executable)")
	flags.StringVar(&installOptions.Platform, "platform", "", "override the detected platform (windows, darwin, linux)")
	flags.StringVar(&installOptions.APIBaseURL, "api-url", "", "hosting API base URL")
	flags.BoolVar(&noProgress, "no-progress", false, "do not render the download progress bar")
}
