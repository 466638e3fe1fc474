// Package style provides semantic terminal styling using lipgloss.
//
// This is the only package that imports lipgloss for styling. All helpers
// are semantic (Error, Warning, Muted) rather than visual, and never touch
// the plain-text help contract on stdout: styling applies to the error and
// browser surfaces only.
//
// When disabled, all helpers return the input unchanged with no ANSI codes.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	enabled bool

	successStyle lipgloss.Style
	warningStyle lipgloss.Style
	errorStyle   lipgloss.Style
	infoStyle    lipgloss.Style
	headerStyle  lipgloss.Style
	mutedStyle   lipgloss.Style
)

// Init initializes the style package. It respects the NO_COLOR convention:
// when the environment disables color, styling stays off regardless of the
// enable parameter. Call once from main before any output.
func Init(enable bool) {
	if termenv.EnvNoColor() {
		enabled = false
		return
	}

	enabled = enable
	if !enabled {
		return
	}

	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	infoStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	headerStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
}

// Enabled returns true if styling is enabled.
func Enabled() bool {
	return enabled
}

// Success styles text as success.
func Success(text string) string {
	return render(successStyle, text)
}

// Warning styles text as warning.
func Warning(text string) string {
	return render(warningStyle, text)
}

// Error styles text as error.
func Error(text string) string {
	return render(errorStyle, text)
}

// Info styles text as informational.
func Info(text string) string {
	return render(infoStyle, text)
}

// Header styles text as a section header.
func Header(text string) string {
	return render(headerStyle, text)
}

// Muted styles text as de-emphasized.
func Muted(text string) string {
	return render(mutedStyle, text)
}

func render(s lipgloss.Style, text string) string {
	if !enabled {
		return text
	}
	return s.Render(text)
}
