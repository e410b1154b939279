// Package console holds the operator-facing input and diagnostic sinks.
package console

import (
	"errors"
	"io"
	"strings"

	"github.com/ergochat/readline"
)

// ErrInterrupted is returned by a Prompter when the operator aborts input (Ctrl-C)
var ErrInterrupted = errors.New("input interrupted")

// Prompter reads one line of operator input after showing a label.
// Implementations return io.EOF or ErrInterrupted when input ends; those
// are the only errors and they end the session.
type Prompter interface {
	Prompt(label string) (string, error)
}

// LinePrompter is a Prompter backed by a readline instance
type LinePrompter struct {
	rl *readline.Instance
}

// NewLinePrompter creates a readline based prompter on the given streams.
// A nil stdin or stdout falls back to the process streams.
func NewLinePrompter(stdin io.ReadCloser, stdout io.Writer) (*LinePrompter, error) {
	rl, err := readline.NewFromConfig(&readline.Config{
		Stdin:  stdin,
		Stdout: stdout,
	})
	if err != nil {
		return nil, err
	}
	return &LinePrompter{rl: rl}, nil
}

// Prompt implements Prompter
func (p *LinePrompter) Prompt(label string) (string, error) {
	p.rl.SetPrompt(label)
	line, err := p.rl.ReadLine()
	if err != nil {
		if errors.Is(err, readline.ErrInterrupt) {
			return "", ErrInterrupted
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Close releases the terminal
func (p *LinePrompter) Close() error {
	return p.rl.Close()
}
