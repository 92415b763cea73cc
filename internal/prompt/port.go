// Package prompt collects campaign parameters and volume plans from the
// terminal. Typing "exit" at any prompt aborts with ErrExit.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

var ErrExit = errors.New("exit requested")

// Port is the interaction capability the plan builder depends on.
type Port interface {
	String(label string) (string, error)
	Int(label string) (int, error)
	Confirm(label string) (bool, error)
	Select(label string, items []string) (int, error)
	Println(a ...any)
}

// Terminal implements Port with promptui.
type Terminal struct {
	Stdin  io.ReadCloser
	Stdout io.WriteCloser
}

func isExit(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "exit")
}

func (t *Terminal) run(label string, validate promptui.ValidateFunc) (string, error) {
	p := promptui.Prompt{
		Label:    label,
		Validate: validate,
		Stdin:    t.Stdin,
		Stdout:   t.Stdout,
	}

	s, err := p.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			return "", ErrExit
		}
		return "", err
	}
	if isExit(s) {
		return "", ErrExit
	}

	return s, nil
}

func (t *Terminal) String(label string) (string, error) {
	s, err := t.run(label, func(in string) error {
		if strings.TrimSpace(in) == "" {
			return errors.New("input cannot be empty")
		}
		return nil
	})

	return strings.TrimSpace(s), err
}

func (t *Terminal) Int(label string) (int, error) {
	s, err := t.run(label, func(in string) error {
		if isExit(in) {
			return nil
		}
		if _, err := strconv.Atoi(strings.TrimSpace(in)); err != nil {
			return errors.New("enter a valid number or type 'exit' to quit")
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return strconv.Atoi(strings.TrimSpace(s))
}

func (t *Terminal) Confirm(label string) (bool, error) {
	s, err := t.run(label+" (y/n)", func(in string) error {
		switch strings.ToLower(strings.TrimSpace(in)) {
		case "y", "yes", "n", "no", "exit":
			return nil
		}
		return errors.New("type 'y' for yes or 'n' for no")
	})
	if err != nil {
		return false, err
	}

	a := strings.ToLower(strings.TrimSpace(s))
	return a == "y" || a == "yes", nil
}

func (t *Terminal) Select(label string, items []string) (int, error) {
	sel := promptui.Select{
		Label:  label,
		Items:  items,
		Size:   10,
		Stdin:  t.Stdin,
		Stdout: t.Stdout,
	}

	idx, _, err := sel.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			return 0, ErrExit
		}
		return 0, fmt.Errorf("selection cancelled: %w", err)
	}

	return idx, nil
}

func (t *Terminal) Println(a ...any) {
	var w io.Writer = t.Stdout
	if w == nil {
		w = os.Stdout
	}
	_, _ = fmt.Fprintln(w, a...)
}
