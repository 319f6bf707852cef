// Package editor implements the editor command surface: a registry of
// command IDs, a greeting notification and a menu command sent to a named
// terminal session.
//
// The terminal session and the notifier live in a Session value owned by the
// caller and passed to every command.
package editor
