package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrInterrupted is returned by prompters when the user aborts a prompt.
var ErrInterrupted = errors.New("prompt interrupted")

// Kind selects how a question is asked.
type Kind int

const (
	Select Kind = iota
	MultiSelect
	Input
)

// Choice is one option of a Select or MultiSelect question. An empty Value
// means the label is the value.
type Choice struct {
	Label string
	Value string
}

func (c Choice) value() string {
	if c.Value == "" {
		return c.Label
	}
	return c.Value
}

// Question describes one prompt. Its answer is stored under Name.
type Question struct {
	Kind    Kind
	Name    string
	Message string
	Choices []Choice
}

func (q Question) labels() []string {
	labels := make([]string, len(q.Choices))
	for i, c := range q.Choices {
		labels[i] = c.Label
	}
	return labels
}

func (q Question) valueOf(label string) string {
	for _, c := range q.Choices {
		if c.Label == label {
			return c.value()
		}
	}
	return label
}

// Answers holds the answers of one Ask call keyed by question name.
type Answers map[string][]string

// Value returns the single answer for name, or "" when there is none.
func (a Answers) Value(name string) string {
	if v := a[name]; len(v) > 0 {
		return v[0]
	}
	return ""
}

func (a Answers) Values(name string) []string { return a[name] }

// Prompter asks questions in order and collects the answers.
type Prompter interface {
	Ask(questions ...Question) (Answers, error)
}

// LinePrompter asks questions over plain lines of text. It is used when
// input is not a terminal.
type LinePrompter struct {
	sc  *bufio.Scanner
	out io.Writer
}

func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{sc: bufio.NewScanner(in), out: out}
}

func (p *LinePrompter) Ask(questions ...Question) (Answers, error) {
	answers := make(Answers, len(questions))
	for _, q := range questions {
		var (
			vals []string
			err  error
		)
		switch q.Kind {
		case Select:
			vals, err = p.choose(q, false)
		case MultiSelect:
			vals, err = p.choose(q, true)
		default:
			var line string
			line, err = p.readLine(q.Message + " ")
			vals = []string{line}
		}
		if err != nil {
			return nil, err
		}
		answers[q.Name] = vals
	}
	return answers, nil
}

func (p *LinePrompter) readLine(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if !p.sc.Scan() {
		if err := p.sc.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.sc.Text()), nil
}

func (p *LinePrompter) choose(q Question, multi bool) ([]string, error) {
	fmt.Fprintln(p.out, q.Message)
	for i, c := range q.Choices {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, c.Label)
	}
	prompt := "> "
	if multi {
		prompt = "Numbers separated by commas (empty for none) > "
	}

	for {
		line, err := p.readLine(prompt)
		if err != nil {
			return nil, err
		}
		vals, ok := q.resolve(line, multi)
		if ok {
			return vals, nil
		}
		fmt.Fprintln(p.out, "Please choose one of the listed options.")
	}
}

// resolve maps typed numbers or labels to choice values.
func (q Question) resolve(line string, multi bool) ([]string, bool) {
	var tokens []string
	if multi {
		for _, tok := range strings.Split(line, ",") {
			if tok = strings.TrimSpace(tok); tok != "" {
				tokens = append(tokens, tok)
			}
		}
		if len(tokens) == 0 {
			return []string{}, true
		}
	} else {
		if line == "" {
			return nil, false
		}
		tokens = []string{line}
	}

	vals := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		c, ok := q.lookup(tok)
		if !ok {
			return nil, false
		}
		vals = append(vals, c.value())
	}
	return vals, true
}

func (q Question) lookup(tok string) (Choice, bool) {
	if n, err := strconv.Atoi(tok); err == nil {
		if n >= 1 && n <= len(q.Choices) {
			return q.Choices[n-1], true
		}
		return Choice{}, false
	}
	for _, c := range q.Choices {
		if strings.EqualFold(c.Label, tok) || strings.EqualFold(c.value(), tok) {
			return c, true
		}
	}
	return Choice{}, false
}
