// Package prompt provides the interactive confirmation capability used by
// state-changing commands. Commands depend on the Confirmer interface rather
// than the terminal directly, so tests can script answers deterministically.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrAborted reports that the user declined a confirmation. It is a normal
// cancellation outcome, not a fault: callers must not retry, and the CLI
// reports it as a plain cancellation message rather than an error trace.
var ErrAborted = errors.New("operation aborted by user")

// Confirmer asks a yes/no question and reports the answer. def is returned
// when the user accepts the default (empty input).
type Confirmer interface {
	Confirm(question string, def bool) (bool, error)
}

// Terminal is a Confirmer reading one line per question from an input stream,
// mirroring the `[y/n] (n):` prompts of the original tooling.
type Terminal struct {
	In  io.Reader
	Out io.Writer
}

// NewTerminal builds a Terminal prompt over the given streams.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{In: in, Out: out}
}

// Confirm writes "question [y/n] (d): " and reads answers until one parses.
func (t *Terminal) Confirm(question string, def bool) (bool, error) {
	reader := bufio.NewReader(t.In)
	hint := "n"
	if def {
		hint = "y"
	}
	for {
		fmt.Fprintf(t.Out, "%s [y/n] (%s): ", question, hint)
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			if errors.Is(err, io.EOF) {
				// Closed stdin behaves like accepting the default.
				return def, nil
			}
			return false, fmt.Errorf("read confirmation: %w", err)
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(t.Out, "Please enter y or n")
	}
}

// Scripted is a Confirmer that replays queued answers, for tests. Once the
// queue is exhausted it answers with the default.
type Scripted struct {
	Answers []bool
	// Asked records every question in order.
	Asked []string
}

func (s *Scripted) Confirm(question string, def bool) (bool, error) {
	s.Asked = append(s.Asked, question)
	if len(s.Answers) == 0 {
		return def, nil
	}
	ans := s.Answers[0]
	s.Answers = s.Answers[1:]
	return ans, nil
}
