// Package prompt asks the operator questions on the terminal.
package prompt

import (
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"golang.org/x/term"

	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/errors"
)

// ErrNotTerminal is returned when a prompt is needed but stdin is not a terminal.
var ErrNotTerminal = errors.New("input is not a terminal")

// Prompter asks questions. Every method returns errors.ErrCanceled when
// the operator presses Ctrl-C.
type Prompter interface {
	Select(message string, options []string, def string) (string, error)
	Confirm(message string, def bool) (bool, error)
	Password(message string, validate func(string) error) (string, error)
}

// Survey is the terminal Prompter.
type Survey struct {
	in     terminal.FileReader
	out    terminal.FileWriter
	errOut io.Writer
}

// NewSurvey returns a Prompter reading from in and drawing on out.
func NewSurvey(in terminal.FileReader, out terminal.FileWriter, errOut io.Writer) *Survey {
	return &Survey{in: in, out: out, errOut: errOut}
}

// Stdio returns a Prompter on the process's standard streams.
func Stdio() *Survey {
	return NewSurvey(os.Stdin, os.Stdout, os.Stderr)
}

// Interactive reports whether stdin is a terminal.
func (s *Survey) Interactive() bool {
	return term.IsTerminal(int(s.in.Fd()))
}

func (s *Survey) ask(p survey.Prompt, response any, opts ...survey.AskOpt) error {
	if !s.Interactive() {
		return ErrNotTerminal
	}
	opts = append(opts, survey.WithStdio(s.in, s.out, s.errOut))
	if err := survey.AskOne(p, response, opts...); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return errors.ErrCanceled
		}
		return err
	}
	return nil
}

// Select asks for one of options.
func (s *Survey) Select(message string, options []string, def string) (string, error) {
	var answer string
	p := &survey.Select{Message: message, Options: options}
	if def != "" {
		p.Default = def
	}
	if err := s.ask(p, &answer); err != nil {
		return "", err
	}
	return answer, nil
}

// Confirm asks a yes/no question.
func (s *Survey) Confirm(message string, def bool) (bool, error) {
	var answer bool
	if err := s.ask(&survey.Confirm{Message: message, Default: def}, &answer); err != nil {
		return false, err
	}
	return answer, nil
}

// Password asks for a hidden value. validate runs on every submission and
// its error is shown before asking again.
func (s *Survey) Password(message string, validate func(string) error) (string, error) {
	var answer string
	var opts []survey.AskOpt
	if validate != nil {
		opts = append(opts, survey.WithValidator(func(v any) error {
			str, _ := v.(string)
			return validate(str)
		}))
	}
	if err := s.ask(&survey.Password{Message: message}, &answer, opts...); err != nil {
		return "", err
	}
	return answer, nil
}
