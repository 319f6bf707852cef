package platform

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// ID is the normalized operating system identifier.
type ID int

const (
	// Unknown is any operating system without a release asset.
	Unknown ID = iota
	// Windows is Microsoft Windows.
	Windows
	// Darwin is macOS.
	Darwin
	// Linux is any Linux distribution.
	Linux
)

// ErrUnsupported is returned for platforms without traits.
var ErrUnsupported = errors.New("unsupported platform")

// Traits describe how a platform selects and installs the release asset.
type Traits struct {
	// AssetSubstring must appear in the asset name (case-sensitive).
	AssetSubstring string
	// FileSuffix is appended to the installed binary name.
	FileSuffix string
	// Executable reports whether the installed file gets mode 0755.
	Executable bool
}

// traits is the single mapping from ID to platform behavior.
// Unknown intentionally has no entry.
//
//nolint:gochecknoglobals // Read-only lookup table.
var traits = map[ID]Traits{
	Windows: {AssetSubstring: "windows", FileSuffix: ".exe", Executable: false},
	Darwin:  {AssetSubstring: "darwin", FileSuffix: "", Executable: true},
	Linux:   {AssetSubstring: "linux", FileSuffix: "", Executable: true},
}

// Known returns every ID that has traits, in declaration order.
func Known() []ID {
	return []ID{Windows, Darwin, Linux}
}

// Current returns the ID of the running operating system.
func Current() ID {
	return FromGOOS(runtime.GOOS)
}

// FromGOOS maps a GOOS value to an ID.
func FromGOOS(goos string) ID {
	switch goos {
	case "windows":
		return Windows
	case "darwin":
		return Darwin
	case "linux":
		return Linux
	default:
		return Unknown
	}
}

// Parse converts a platform name (case-insensitive) into an ID.
// An empty string yields the current platform.
func Parse(s string) (ID, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Current(), nil
	}

	if s == "macos" {
		return Darwin, nil
	}

	id := FromGOOS(s)
	if id == Unknown {
		return Unknown, fmt.Errorf("%q: %w", s, ErrUnsupported)
	}

	return id, nil
}

// String returns the canonical lowercase name.
func (id ID) String() string {
	switch id {
	case Windows:
		return "windows"
	case Darwin:
		return "darwin"
	case Linux:
		return "linux"
	case Unknown:
		return "unknown"
	default:
		return fmt.Sprintf("platform(%d)", int(id))
	}
}

// Traits returns the behavior of id, or false when it has none.
func (id ID) Traits() (Traits, bool) {
	t, ok := traits[id]

	return t, ok
}

// RequireTraits returns the traits of id or ErrUnsupported.
func (id ID) RequireTraits() (Traits, error) {
	t, ok := id.Traits()
	if !ok {
		return Traits{}, fmt.Errorf("%s: %w", id, ErrUnsupported)
	}

	return t, nil
}

// BinaryFileName returns name with the platform file suffix.
func (id ID) BinaryFileName(name string) string {
	t, _ := id.Traits()

	return name + t.FileSuffix
}
