// Package prompt implements the interactive disposition loop the pre-commit
// hook runs when staged changes are not formatted: apply the fix, force the
// commit, or cancel. Answers are read from a terminal device rather than
// stdin, because git runs hooks with stdin detached.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// EnvTTY overrides the terminal device answers are read from. It exists so
// tests can feed answers from a file.
const EnvTTY = "PRE_COMMIT_HOOK_TTY"

// Answer is one parsed response to the hook prompt.
type Answer int

const (
	// AnswerInvalid is anything unrecognized; the loop re-prompts.
	AnswerInvalid Answer = iota
	// AnswerApply applies the formatting patch to worktree and index.
	AnswerApply
	// AnswerForce commits anyway, leaving the formatting as-is.
	AnswerForce
	// AnswerCancel aborts the commit.
	AnswerCancel
	// AnswerHelp redisplays the help text; the loop re-prompts.
	AnswerHelp
)

// ParseAnswer maps a raw input line to an Answer.
func ParseAnswer(line string) Answer {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "a":
		return AnswerApply
	case "f":
		return AnswerForce
	case "c":
		return AnswerCancel
	case "?":
		return AnswerHelp
	default:
		return AnswerInvalid
	}
}

// OpenTTY opens the terminal device for reading answers: the file named by
// PRE_COMMIT_HOOK_TTY when set, /dev/tty otherwise.
func OpenTTY(lookupEnv func(string) (string, bool)) (io.ReadCloser, error) {
	path := "/dev/tty"
	if v, ok := lookupEnv(EnvTTY); ok && v != "" {
		path = v
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open terminal %s for answers: %w", path, err)
	}
	return f, nil
}

// Prompter runs the answer loop: questions go to Out, answers come from In.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// New creates a Prompter reading answers from in and writing prompts to out.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

const helpText = `  a - apply the suggested formatting changes to both the working tree and the commit
  f - force the commit through without formatting changes
  c - cancel the commit
  ? - show this help
`

// Ask loops until a terminal answer (apply, force, cancel) arrives. Help and
// unrecognized input re-prompt; there is no timeout. During a merge the
// wording recommends forcing, since formatting noise complicates conflict
// resolution, but the available choices are the same.
func (p *Prompter) Ask(merge bool) (Answer, error) {
	question := "Apply suggested changes, force the commit, or cancel? [a/f/c/?] "
	if merge {
		question = "A merge is in progress; forcing the commit is recommended.\n" +
			"Apply suggested changes, force the commit, or cancel? [a/f/c/?] "
	}

	for {
		fmt.Fprint(p.out, question)

		line, err := p.in.ReadString('\n')
		if err != nil && line == "" {
			return AnswerCancel, fmt.Errorf("read answer: %w", err)
		}

		switch answer := ParseAnswer(line); answer {
		case AnswerApply, AnswerForce, AnswerCancel:
			return answer, nil
		case AnswerHelp:
			fmt.Fprint(p.out, helpText)
		default:
			fmt.Fprintln(p.out, "Invalid answer, try again.")
		}
	}
}

// Pause prints msg and blocks until the user presses enter. Used to make
// sure a message is seen before git's own output scrolls past it.
func (p *Prompter) Pause(msg string) error {
	fmt.Fprintf(p.out, "%s (press enter to continue) ", msg)
	_, err := p.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return fmt.Errorf("read acknowledgement: %w", err)
	}
	return nil
}
