// Package detector picks how diagnostics are rendered from the terminal and
// CI environment.
package detector

import (
	"io"
	"os"

	"golang.org/x/term"
	"go.trai.ch/xmlres/internal/core/domain"
	"go.trai.ch/zerr"
)

// Format is the rendering of a diagnostics report.
type Format int

const (
	// FormatAuto picks FormatPretty or FormatPlain from the environment.
	FormatAuto Format = iota
	// FormatPretty renders colored, grouped output for terminals.
	FormatPretty
	// FormatPlain renders one line per diagnostic, file:line:col style.
	FormatPlain
	// FormatJSON renders machine-readable results.
	FormatJSON
)

// String returns the flag value of the format.
func (f Format) String() string {
	switch f {
	case FormatPretty:
		return "pretty"
	case FormatPlain:
		return "plain"
	case FormatJSON:
		return "json"
	default:
		return "auto"
	}
}

// IsCI reports whether the CI environment variable is set to a true value.
func IsCI() bool {
	ci := os.Getenv("CI")
	return ci == "true" || ci == "1"
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Detect returns the format suited to w: pretty on an interactive terminal,
// plain when writing to a pipe, a file or under CI.
func Detect(w io.Writer) Format {
	if !IsTerminal(w) || IsCI() {
		return FormatPlain
	}
	return FormatPretty
}

// ParseFormat parses a --format flag value. "linear" and "ci" are accepted
// as aliases of "plain".
func ParseFormat(flag string) (Format, error) {
	switch flag {
	case "", "auto":
		return FormatAuto, nil
	case "pretty", "text":
		return FormatPretty, nil
	case "plain", "linear", "ci":
		return FormatPlain, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatAuto, zerr.With(zerr.Wrap(domain.ErrUnknownFormat, "invalid --format value"), "format", flag)
	}
}

// Resolve applies a user choice to the detected format.
func Resolve(detected, user Format) Format {
	if user == FormatAuto {
		return detected
	}
	return user
}
