// Package testutil provides scripted console collaborators for tests
package testutil

import (
	"io"
	"strings"
)

// ScriptedPrompter answers prompts from a fixed list of lines and records every label.
// Once the script is exhausted it returns io.EOF.
type ScriptedPrompter struct {
	Lines  []string
	Labels []string
}

// NewScriptedPrompter creates a prompter that replays lines in order
func NewScriptedPrompter(lines ...string) *ScriptedPrompter {
	return &ScriptedPrompter{Lines: lines}
}

// Prompt implements console.Prompter
func (p *ScriptedPrompter) Prompt(label string) (string, error) {
	p.Labels = append(p.Labels, label)
	if len(p.Lines) == 0 {
		return "", io.EOF
	}
	line := p.Lines[0]
	p.Lines = p.Lines[1:]
	return line, nil
}

// Remaining reports how many scripted lines were not consumed
func (p *ScriptedPrompter) Remaining() int {
	return len(p.Lines)
}

// RecordingReporter collects diagnostics instead of printing them
type RecordingReporter struct {
	Warnings []string
	Errors   []string
}

// Warn implements console.Reporter
func (r *RecordingReporter) Warn(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// Error implements console.Reporter
func (r *RecordingReporter) Error(msg string) {
	r.Errors = append(r.Errors, msg)
}

// HasWarning reports whether any warning contains substr
func (r *RecordingReporter) HasWarning(substr string) bool {
	for _, w := range r.Warnings {
		if strings.Contains(w, substr) {
			return true
		}
	}
	return false
}

// HasError reports whether any error contains substr
func (r *RecordingReporter) HasError(substr string) bool {
	for _, e := range r.Errors {
		if strings.Contains(e, substr) {
			return true
		}
	}
	return false
}
