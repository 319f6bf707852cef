package cmd

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/oshokin/grokker-shim/internal/config"
	"github.com/oshokin/grokker-shim/internal/logger"
	"github.com/oshokin/grokker-shim/internal/service/editor"
)

var (
	// helloCmd shows the greeting notification.
	helloCmd = &cobra.Command{
		Use:   "hello",
		Short: "Show the greeting notification.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEditorCommand(cmd, editor.HelloWorldCommand)
		},
	}

	// menuCmd opens the menu terminal session.
	menuCmd = &cobra.Command{
		Use:   "menu",
		Short: "Open the aidda menu terminal session.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEditorCommand(cmd, editor.AiddaMenuCommand)
		},
	}

	// runCmd executes any registered editor command by ID.
	runCmd = &cobra.Command{
		Use:       "run <command-id>",
		Short:     "Run an editor command by its ID.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: editor.NewRegistry().IDs(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEditorCommand(cmd, args[0])
		},
	}

	// commandsCmd lists the registered editor commands.
	commandsCmd = &cobra.Command{
		Use:   "commands",
		Short: "List the editor command IDs.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			renderCommands(cmd.OutOrStdout(), editor.NewRegistry().IDs())
		},
	}
)

// commandTitles are the palette titles of the editor commands.
var commandTitles = map[string]string{
	editor.HelloWorldCommand: "Hello World",
	editor.AiddaMenuCommand:  "Aidda Menu",
}

// renderCommands prints the command IDs with their titles as a borderless table.
func renderCommands(w io.Writer, ids []string) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.Style().Options.SeparateRows = false
	t.Style().Options.SeparateHeader = false
	t.Style().Format.Header = text.FormatDefault

	t.AppendHeader(table.Row{"ID", "Title"})

	for _, id := range ids {
		t.AppendRow(table.Row{id, commandTitles[id]})
	}

	t.Render()
}

// runEditorCommand builds a session owned by this invocation and executes id in it.
func runEditorCommand(cmd *cobra.Command, id string) error {
	ctx, stop := signalContext(cmd.Context())
	defer stop()

	cfg, err := config.LoadOptional(cfgPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	terminal := editor.NewShellTerminal(cfg.TerminalName, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())

	ctx = logger.WithName(ctx, "editor")
	logger.DebugKV(ctx, "Running editor command", "id", id, "terminal", terminal.Name())

	session := &editor.Session{
		Terminal:    terminal,
		Notifier:    editor.NewConsoleNotifier(cmd.OutOrStdout()),
		MenuCommand: cfg.MenuCommand,
	}

	return editor.NewRegistry().Execute(ctx, id, session)
}
