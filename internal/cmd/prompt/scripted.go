package prompt

import (
	"fmt"

	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/errors"
)

// Answer is one scripted response. Err, when set, is returned instead.
type Answer struct {
	Value string
	Yes   bool
	Err   error
}

// Scripted replays answers in order. It is used by command tests and by
// non-interactive callers that already know every answer.
type Scripted struct {
	Answers []Answer
	// Asked records every message in order.
	Asked []string
}

// NewScripted returns a Prompter replaying answers.
func NewScripted(answers ...Answer) *Scripted {
	return &Scripted{Answers: answers}
}

func (s *Scripted) next(message string) (Answer, error) {
	s.Asked = append(s.Asked, message)
	if len(s.Answers) == 0 {
		return Answer{}, errors.ErrCanceled
	}
	a := s.Answers[0]
	s.Answers = s.Answers[1:]
	return a, a.Err
}

// Select returns the next value, which must be one of options.
func (s *Scripted) Select(message string, options []string, _ string) (string, error) {
	a, err := s.next(message)
	if err != nil {
		return "", err
	}
	for _, o := range options {
		if o == a.Value {
			return a.Value, nil
		}
	}
	return "", fmt.Errorf("scripted answer %q is not an option of %q", a.Value, message)
}

// Confirm returns the next Yes.
func (s *Scripted) Confirm(message string, _ bool) (bool, error) {
	a, err := s.next(message)
	return a.Yes, err
}

// Password returns the next value. Values rejected by validate are skipped
// the way a terminal would ask again.
func (s *Scripted) Password(message string, validate func(string) error) (string, error) {
	for {
		a, err := s.next(message)
		if err != nil {
			return "", err
		}
		if validate == nil || validate(a.Value) == nil {
			return a.Value, nil
		}
	}
}
