package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/grokker-shim/internal/config"
	"github.com/oshokin/grokker-shim/internal/service/editor"
	"github.com/oshokin/grokker-shim/internal/service/install"
)

// execute runs the root command with args and returns its combined output.
// Commands share package-level flag state, so these tests do not run in parallel.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)

	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)

		force = false
		noProgress = false
		installOptions = install.Options{}
		logLevel = ""
		cfgPath = config.DefaultConfigFilename
	})

	err := executeRoot()

	return out.String(), err
}

func TestCommandsListsIDs(t *testing.T) {
	out, err := execute(t, "commands")
	require.NoError(t, err)
	require.Contains(t, out, editor.AiddaMenuCommand)
	require.Contains(t, out, editor.HelloWorldCommand)
	require.Contains(t, out, "Hello World")
	require.Less(t, strings.Index(out, editor.AiddaMenuCommand), strings.Index(out, editor.HelloWorldCommand))
}

func TestHelloShowsGreeting(t *testing.T) {
	out, err := execute(t, "hello", "-c", filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.Contains(t, out, editor.Greeting)
}

func TestRunUnknownCommand(t *testing.T) {
	_, err := execute(t, "run", "grokker.nope", "-c", filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, editor.ErrUnknownCommand)
}

func TestInitConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.DefaultConfigFilename)

	_, err := execute(t, "init-config", "-c", path)
	require.NoError(t, err)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, config.DefaultRepository, cfg.Repository)

	_, err = execute(t, "init-config", "-c", path)
	require.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("repository: acme/tool\n"), 0o600))

	_, err = execute(t, "init-config", "-c", path, "--force")
	require.NoError(t, err)

	cfg, err = config.Load(path)
	require.NoError(t, err)
	require.Equal(t, config.DefaultRepository, cfg.Repository)
}

func TestUnknownLogLevel(t *testing.T) {
	_, err := execute(t, "commands", "--log-level", "loud")
	require.Error(t, err)
}

func TestInstallFailureIsNotified(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "install",
		"-c", filepath.Join(dir, "missing.yaml"),
		"--dir", dir,
		"--platform", "plan9",
		"--no-progress",
	)
	require.Error(t, err)
	require.Contains(t, out, "Error: ")
	require.Contains(t, out, "unsupported platform")
	require.Equal(t, 1, strings.Count(out, "unsupported platform"))
}
