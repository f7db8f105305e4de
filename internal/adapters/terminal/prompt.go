package terminal

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"gitget/internal/domain"
	"gitget/internal/ports"
)

// Prompter asks yes/no questions on a reader/writer pair
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// Ensure Prompter implements ports.Prompter
var _ ports.Prompter = (*Prompter)(nil)

// NewPrompter creates a prompter reading answers from in
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Confirm prints question and parses one line of input. An empty answer
// is no.
func (p *Prompter) Confirm(question string) (bool, error) {
	fmt.Fprint(p.out, question+" ")
	line, err := p.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}
	answer := strings.TrimSpace(line)
	if answer == "" {
		return false, nil
	}
	return ParseBool(answer)
}

// ParseBool accepts y, yes, t, true, on, 1 and n, no, f, false, off, 0 in
// any case.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "t", "true", "on", "1":
		return true, nil
	case "n", "no", "f", "false", "off", "0":
		return false, nil
	}
	return false, fmt.Errorf("%w: %q", domain.ErrInvalidResponse, s)
}
