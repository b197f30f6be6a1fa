// Package ui holds the terminal capabilities the commands depend on: text,
// select and confirm prompts plus table and message output. Commands only see
// the Prompter interface, so a plain line-based fallback can stand in for the
// interactive prompts.
package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/mattn/go-isatty"
)

// ErrAborted is returned when the user interrupts a prompt or input ends.
var ErrAborted = errors.New("aborted")

// Prompter asks the user for input.
type Prompter interface {
	// Text asks for a free-text answer. def is returned for an empty answer.
	Text(label, def string) (string, error)
	// Select asks the user to pick one item and returns its 0-based index.
	Select(label string, items []string) (int, error)
	// Confirm asks a yes/no question. The default answer is no.
	Confirm(label string) (bool, error)
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// NewPrompter returns an Interactive prompter when both in and out are
// terminals and a Plain one otherwise.
func NewPrompter(in *os.File, out *os.File) Prompter {
	if IsTerminal(in) && IsTerminal(out) {
		return Interactive{}
	}
	return NewPlain(in, out)
}

// Interactive prompts with promptui.
type Interactive struct{}

var promptTemplates = &promptui.PromptTemplates{
	Prompt:  "{{ . }}: ",
	Valid:   "{{ . | green }}: ",
	Invalid: "{{ . | red }}: ",
	Success: "{{ . | bold }}: ",
}

func (Interactive) Text(label, def string) (string, error) {
	p := promptui.Prompt{
		Label:     label,
		Default:   def,
		AllowEdit: def != "",
		Templates: promptTemplates,
	}
	result, err := p.Run()
	if err != nil {
		return "", mapPromptErr(err)
	}
	return result, nil
}

func (Interactive) Select(label string, items []string) (int, error) {
	s := promptui.Select{
		Label: label,
		Items: items,
		Size:  len(items),
	}
	idx, _, err := s.Run()
	if err != nil {
		return 0, mapPromptErr(err)
	}
	return idx, nil
}

func (Interactive) Confirm(label string) (bool, error) {
	p := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	_, err := p.Run()
	if errors.Is(err, promptui.ErrAbort) {
		return false, nil
	}
	if err != nil {
		return false, mapPromptErr(err)
	}
	return true, nil
}

func mapPromptErr(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return ErrAborted
	}
	return err
}

// Plain prompts line by line on any reader and writer.
type Plain struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPlain returns a Plain prompter reading from in and writing to out.
func NewPlain(in io.Reader, out io.Writer) *Plain {
	return &Plain{in: bufio.NewReader(in), out: out}
}

func (p *Plain) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			return "", ErrAborted
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (p *Plain) Text(label, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", label, def)
	} else {
		fmt.Fprintf(p.out, "%s: ", label)
	}
	line, err := p.readLine()
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(line) == "" {
		return def, nil
	}
	return line, nil
}

func (p *Plain) Select(label string, items []string) (int, error) {
	fmt.Fprintf(p.out, "%s\n", label)
	for i, item := range items {
		fmt.Fprintf(p.out, "  %d. %s\n", i+1, item)
	}
	for {
		fmt.Fprintf(p.out, "Enter your choice (1-%d): ", len(items))
		line, err := p.readLine()
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err == nil && n >= 1 && n <= len(items) {
			return n - 1, nil
		}
		fmt.Fprintf(p.out, "Invalid choice. Please enter a number between 1 and %d.\n", len(items))
	}
}

// Confirm treats end of input as no.
func (p *Plain) Confirm(label string) (bool, error) {
	fmt.Fprintf(p.out, "%s [y/N]: ", label)
	line, err := p.readLine()
	if errors.Is(err, ErrAborted) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
