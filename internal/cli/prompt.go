package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// prompter reads interactive input. Commands build one from cobra's
// in/out streams so tests can script answers.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out}
}

// Line prints a label and reads one trimmed line.
func (p *prompter) Line(label string) string {
	fmt.Fprintf(p.out, "%s: ", label)
	line, _ := p.in.ReadString('\n')
	return strings.TrimSpace(line)
}

// Confirm asks a yes/no question; only an explicit "y"/"yes" is true.
func (p *prompter) Confirm(label string) bool {
	fmt.Fprintf(p.out, "%s [y/N]: ", label)
	line, _ := p.in.ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// Number reads an integer; blank input returns (0, false).
func (p *prompter) Number(label string) (int, bool) {
	raw := p.Line(label)
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		fmt.Fprintln(p.out, "Please enter a number.")
		return p.Number(label)
	}
	return n, true
}
