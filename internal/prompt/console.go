// Package prompt reads answers from the user on a terminal.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

var ErrNoInput = errors.New("no input")

// Console prompts on its output and reads answers line by line
// from its input. Passwords are read without echo when the input
// is a terminal.
type Console struct {
	input  io.Reader
	reader *bufio.Reader
	output io.Writer
}

func New(input io.Reader, output io.Writer) *Console {
	return &Console{
		input:  input,
		reader: bufio.NewReader(input),
		output: output,
	}
}

// ReadLine writes the prompt and returns the next line read,
// without its line ending.
func (c *Console) ReadLine(prompt string) (line string, err error) {
	_, err = fmt.Fprint(c.output, prompt)
	if err != nil {
		return "", fmt.Errorf("writing prompt: %w", err)
	}
	return c.readLine()
}

func (c *Console) readLine() (line string, err error) {
	line, err = c.reader.ReadString('\n')
	switch {
	case err == nil:
	case errors.Is(err, io.EOF) && line != "":
	case errors.Is(err, io.EOF):
		return "", fmt.Errorf("%w: end of input reached", ErrNoInput)
	default:
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ReadPassword writes the prompt and reads a line without echoing it
// if the input is a terminal.
func (c *Console) ReadPassword(prompt string) (password string, err error) {
	file, ok := c.input.(*os.File)
	if !ok || !term.IsTerminal(int(file.Fd())) {
		return c.ReadLine(prompt)
	}

	_, err = fmt.Fprint(c.output, prompt)
	if err != nil {
		return "", fmt.Errorf("writing prompt: %w", err)
	}

	b, err := term.ReadPassword(int(file.Fd()))
	_, _ = fmt.Fprintln(c.output)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(b), nil
}

// Confirm asks a yes or no question until the answer is valid.
// An empty answer selects the default.
func (c *Console) Confirm(question string, defaultYes bool) (yes bool, err error) {
	suffix := "[y/N]"
	if defaultYes {
		suffix = "[Y/n]"
	}

	for {
		answer, err := c.ReadLine(question + " " + suffix + " ")
		if err != nil {
			return false, err
		}

		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "":
			return defaultYes, nil
		case "y", "yes", "д", "да":
			return true, nil
		case "n", "no", "н", "нет":
			return false, nil
		}

		_, err = fmt.Fprintln(c.output, "Please answer with 'y' or 'n'.")
		if err != nil {
			return false, fmt.Errorf("writing prompt: %w", err)
		}
	}
}
