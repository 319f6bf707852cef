package editor

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Notifier surfaces messages to a human.
type Notifier interface {
	Info(message string) error
	Error(message string) error
}

// ConsoleNotifier prints colored messages to a writer.
type ConsoleNotifier struct {
	// w receives the rendered messages.
	w io.Writer
	// info renders informational messages.
	info *color.Color
	// fail renders error messages.
	fail *color.Color
}

// NewConsoleNotifier creates a notifier writing to w.
func NewConsoleNotifier(w io.Writer) *ConsoleNotifier {
	return &ConsoleNotifier{
		w:    w,
		info: color.New(color.FgGreen),
		fail: color.New(color.FgRed, color.Bold),
	}
}

// Info prints an informational message.
func (n *ConsoleNotifier) Info(message string) error {
	if _, err := n.info.Fprintln(n.w, message); err != nil {
		return fmt.Errorf("notify: %w", err)
	}

	return nil
}

// Error prints an error message.
func (n *ConsoleNotifier) Error(message string) error {
	if _, err := n.fail.Fprintln(n.w, "Error: "+message); err != nil {
		return fmt.Errorf("notify: %w", err)
	}

	return nil
}
