package editor

import (
	"bytes"
	"context"
	"errors"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/grokker-shim/internal/platform"
)

// recordingTerminal captures calls instead of running a shell.
type recordingTerminal struct {
	calls   []string
	showErr error
}

func (t *recordingTerminal) Show(context.Context) error {
	t.calls = append(t.calls, "show")

	return t.showErr
}

func (t *recordingTerminal) SendText(_ context.Context, text string) error {
	t.calls = append(t.calls, "send:"+text)

	return nil
}

// TestRegistry_BuiltIns lists the built-in commands in sorted order.
func TestRegistry_BuiltIns(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	require.Equal(t, []string{AiddaMenuCommand, HelloWorldCommand}, r.IDs())

	err := r.Execute(context.Background(), "grokker.missing", &Session{})
	require.ErrorIs(t, err, ErrUnknownCommand)
}

// TestHelloWorld shows the greeting through the session notifier.
func TestHelloWorld(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	s := &Session{Notifier: NewConsoleNotifier(&out)}

	require.NoError(t, NewRegistry().Execute(context.Background(), HelloWorldCommand, s))
	require.Contains(t, out.String(), Greeting)

	require.ErrorIs(t, HelloWorld(context.Background(), &Session{}), errNoNotifier)
}

// TestAiddaMenu shows the terminal before sending the menu command.
func TestAiddaMenu(t *testing.T) {
	t.Parallel()

	term := new(recordingTerminal)
	s := &Session{Terminal: term, MenuCommand: "grok aidda menu"}

	require.NoError(t, NewRegistry().Execute(context.Background(), AiddaMenuCommand, s))
	require.Equal(t, []string{"show", "send:grok aidda menu"}, term.calls)

	failing := &recordingTerminal{showErr: errors.New("no display")}
	err := AiddaMenu(context.Background(), &Session{Terminal: failing, MenuCommand: "x"})
	require.Error(t, err)
	require.Equal(t, []string{"show"}, failing.calls)

	require.ErrorIs(t, AiddaMenu(context.Background(), nil), errNoTerminal)
}

// TestConsoleNotifier_Error prefixes error messages.
func TestConsoleNotifier_Error(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	require.NoError(t, NewConsoleNotifier(&out).Error("download failed"))
	require.Contains(t, out.String(), "Error: download failed")
}

// TestShellTerminal runs the sent text through the shell.
func TestShellTerminal(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("uses a POSIX shell")
	}

	var stdout, stderr bytes.Buffer

	term := NewShellTerminal("aidda-menu", strings.NewReader(""), &stdout, &stderr)
	require.Equal(t, "aidda-menu", term.Name())

	require.NoError(t, term.Show(context.Background()))
	require.NoError(t, term.SendText(context.Background(), "echo from-session"))
	require.Contains(t, stdout.String(), "== aidda-menu ==")
	require.Contains(t, stdout.String(), "from-session")

	require.Error(t, term.SendText(context.Background(), "exit 3"))
}

// TestShellFor picks cmd.exe on Windows and sh elsewhere.
func TestShellFor(t *testing.T) {
	t.Parallel()

	require.Equal(t, []string{"cmd.exe", "/C"}, shellFor(platform.Windows))
	require.Equal(t, []string{"sh", "-c"}, shellFor(platform.Linux))
	require.Equal(t, []string{"sh", "-c"}, shellFor(platform.Darwin))
}
