// Package output provides styled terminal output for the Kindling CLI.
//
// All user-facing reporting goes through this package so the creation
// workflow stays consistent: green for success, red for failures, yellow
// for deferred warnings, gray for next steps.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("green")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("red")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("yellow"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	verboseMode bool
	writer      io.Writer = os.Stdout
)

// SetVerbose enables or disables verbose output for debugging.
// Called by the CLI when the --verbose flag is set.
func SetVerbose(v bool) {
	verboseMode = v
}

// SetWriter redirects all output to w. Tests use this to capture reporting.
func SetWriter(w io.Writer) {
	writer = w
}

// Success prints a completed-operation message with 🔥 emoji and green color.
//
// Example:
//
//	output.Success("Created project: myapp")
func Success(msg string) {
	fmt.Fprintln(writer, successStyle.Render("🔥 "+msg))
}

// Error prints a failure that needs user attention, red and bold.
func Error(msg string) {
	fmt.Fprintln(writer, errorStyle.Render("❌ "+msg))
}

// Warn prints a non-fatal problem in yellow. The creation workflow uses
// this for deferred warnings collected during an otherwise successful run.
func Warn(msg string) {
	fmt.Fprintln(writer, warnStyle.Render("⚠️  "+msg))
}

// Info prints a status update or explanation in cyan.
func Info(msg string) {
	fmt.Fprintln(writer, infoStyle.Render("ℹ️  "+msg))
}

// Step prints an indented actionable next step in gray.
//
// Example:
//
//	output.Step("cd myapp")
//	output.Step("npm run serve")
func Step(msg string) {
	fmt.Fprintln(writer, stepStyle.Render("   "+msg))
}

// Verbose prints a debug message only when verbose mode is enabled.
func Verbose(msg string) {
	if verboseMode {
		fmt.Fprintln(writer, stepStyle.Render("🔍 "+msg))
	}
}
