// Package style holds the colors and icons shared by the logger and the
// diagnostics report.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/xmlres/internal/core/domain"
)

// Palette.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
	Blue   = lipgloss.Color("#3B82F6")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Info    = "i"
	Dot     = "●"
	Circle  = "○"
)

// SeverityColor returns the color a severity is rendered in.
func SeverityColor(s domain.Severity) lipgloss.Color {
	switch s {
	case domain.SeverityError:
		return Red
	case domain.SeverityWarning:
		return Yellow
	case domain.SeverityInformation:
		return Blue
	default:
		return Slate
	}
}

// SeverityIcon returns the icon a severity is prefixed with.
func SeverityIcon(s domain.Severity) string {
	switch s {
	case domain.SeverityError:
		return Cross
	case domain.SeverityWarning:
		return Warning
	case domain.SeverityInformation:
		return Info
	default:
		return Dot
	}
}
