package console

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/charmbracelet/lipgloss"
)

// Reporter is the diagnostic sink handed to every interactive component
type Reporter interface {
	Warn(msg string)
	Error(msg string)
}

var (
	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F59E0B")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			Bold(true)

	// SuccessStyle marks confirmations such as "Record inserted successfully."
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981"))
)

// ConsoleReporter prints styled diagnostics for the operator and mirrors them to a structured logger.
// The mirror logs at info level so the operator does not see each message twice on a
// console handler running at the default warn level.
type ConsoleReporter struct {
	out    io.Writer
	logger *slog.Logger
}

// NewReporter creates a ConsoleReporter. A nil logger disables the structured copy.
func NewReporter(out io.Writer, logger *slog.Logger) *ConsoleReporter {
	return &ConsoleReporter{out: out, logger: logger}
}

// Warn implements Reporter
func (r *ConsoleReporter) Warn(msg string) {
	fmt.Fprintln(r.out, warnStyle.Render("WARNING:")+" "+msg)
	if r.logger != nil {
		r.logger.Info("reported", "severity", "warning", "message", msg)
	}
}

// Error implements Reporter
func (r *ConsoleReporter) Error(msg string) {
	fmt.Fprintln(r.out, errorStyle.Render("ERROR:")+" "+msg)
	if r.logger != nil {
		r.logger.Info("reported", "severity", "error", "message", msg)
	}
}
