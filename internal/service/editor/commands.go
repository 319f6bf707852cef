package editor

import (
	"context"
	"errors"
	"fmt"
	"slices"
)

const (
	// HelloWorldCommand shows the greeting notification.
	HelloWorldCommand = "grokker.helloWorld"
	// AiddaMenuCommand opens the menu terminal session.
	AiddaMenuCommand = "grokker.aiddaMenu"

	// Greeting is the message shown by HelloWorldCommand.
	Greeting = "Hello Again Big World from grokker!"
)

var (
	// ErrUnknownCommand is returned for command IDs that are not registered.
	ErrUnknownCommand = errors.New("unknown command")
	// errNoNotifier is returned when the session has no notifier.
	errNoNotifier = errors.New("session has no notifier")
	// errNoTerminal is returned when the session has no terminal.
	errNoTerminal = errors.New("session has no terminal")
)

// Session holds the collaborators a command may use.
type Session struct {
	// Terminal is the named terminal session used by the menu command.
	Terminal Terminal
	// Notifier surfaces messages to the user.
	Notifier Notifier
	// MenuCommand is the text sent to Terminal by AiddaMenuCommand.
	MenuCommand string
}

// Handler runs one editor command.
type Handler func(ctx context.Context, s *Session) error

// Registry maps command IDs to handlers.
type Registry struct {
	handlers map[string]Handler
}

// NewRegistry returns a registry with the built-in commands.
func NewRegistry() *Registry {
	r := &Registry{handlers: make(map[string]Handler, 2)}

	r.handlers[HelloWorldCommand] = HelloWorld
	r.handlers[AiddaMenuCommand] = AiddaMenu

	return r
}

// Execute runs the handler registered under id.
func (r *Registry) Execute(ctx context.Context, id string, s *Session) error {
	h, ok := r.handlers[id]
	if !ok {
		return fmt.Errorf("%s: %w", id, ErrUnknownCommand)
	}

	return h(ctx, s)
}

// IDs returns the registered command IDs sorted.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.handlers))
	for id := range r.handlers {
		ids = append(ids, id)
	}

	slices.Sort(ids)

	return ids
}

// HelloWorld shows the greeting.
func HelloWorld(_ context.Context, s *Session) error {
	if s == nil || s.Notifier == nil {
		return errNoNotifier
	}

	return s.Notifier.Info(Greeting)
}

// AiddaMenu shows the terminal session and sends the menu command to it.
func AiddaMenu(ctx context.Context, s *Session) error {
	if s == nil || s.Terminal == nil {
		return errNoTerminal
	}

	if err := s.Terminal.Show(ctx); err != nil {
		return err
	}

	return s.Terminal.SendText(ctx, s.MenuCommand)
}
