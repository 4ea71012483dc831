package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// Prompter asks the user for one line of input. It returns io.EOF once the
// user is done typing (Ctrl+D, Ctrl+C or closed input).
type Prompter interface {
	Prompt(label string) (string, error)
}

// Readline prompts on the terminal with line editing and in-memory history
type Readline struct {
	rl *readline.Instance
}

// NewReadline creates a terminal prompter. Close it when done.
func NewReadline() (*Readline, error) {
	rl, err := readline.NewEx(&readline.Config{
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize terminal: %w", err)
	}
	return &Readline{rl: rl}, nil
}

func (r *Readline) Prompt(label string) (string, error) {
	r.rl.SetPrompt(label)
	line, err := r.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return "", io.EOF
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (r *Readline) Close() error {
	return r.rl.Close()
}

// Lines prompts by writing the label to out and reading lines from in.
// It is used when stdin is not a terminal.
type Lines struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func NewLines(in io.Reader, out io.Writer) *Lines {
	return &Lines{
		scanner: bufio.NewScanner(in),
		out:     out,
	}
}

func (l *Lines) Prompt(label string) (string, error) {
	fmt.Fprint(l.out, label)
	if !l.scanner.Scan() {
		if err := l.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(l.scanner.Text()), nil
}

// IsTerminal reports whether stdin and stdout are attached to a terminal
func IsTerminal() bool {
	return readline.DefaultIsTerminal()
}
