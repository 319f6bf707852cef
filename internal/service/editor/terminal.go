package editor

import (
	"context"
	"fmt"
	"io"
	"os/exec"

	"github.com/oshokin/grokker-shim/internal/platform"
)

// Terminal is a long-lived, named terminal session.
type Terminal interface {
	// Show brings the session to the foreground.
	Show(ctx context.Context) error
	// SendText runs text as a command line inside the session.
	SendText(ctx context.Context, text string) error
}

// ShellTerminal runs sent text through the platform shell with the given stdio.
type ShellTerminal struct {
	name   string
	shell  []string
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// NewShellTerminal creates a session named name bound to the given stdio.
func NewShellTerminal(name string, stdin io.Reader, stdout, stderr io.Writer) *ShellTerminal {
	return &ShellTerminal{
		name:   name,
		shell:  shellFor(platform.Current()),
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
	}
}

// Name returns the session label.
func (t *ShellTerminal) Name() string {
	return t.name
}

// Show prints the session banner.
func (t *ShellTerminal) Show(_ context.Context) error {
	if _, err := fmt.Fprintf(t.stdout, "== %s ==\n", t.name); err != nil {
		return fmt.Errorf("show terminal %s: %w", t.name, err)
	}

	return nil
}

// SendText runs text with the session shell and waits for it to exit.
func (t *ShellTerminal) SendText(ctx context.Context, text string) error {
	args := append(append([]string(nil), t.shell[1:]...), text)

	//nolint:gosec // Running the configured command line is the purpose of the session.
	cmd := exec.CommandContext(ctx, t.shell[0], args...)
	cmd.Stdin = t.stdin
	cmd.Stdout = t.stdout
	cmd.Stderr = t.stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("terminal %s: run %q: %w", t.name, text, err)
	}

	return nil
}

// shellFor returns the command-line interpreter for id.
func shellFor(id platform.ID) []string {
	if id == platform.Windows {
		return []string{"cmd.exe", "/C"}
	}

	return []string{"sh", "-c"}
}
