package shell

import (
	"runtime"
	"testing"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	expect "github.com/Netflix/go-expect"
	"github.com/hinshun/vt10x"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var departmentQuestion = Question{
	Kind:    Select,
	Name:    "department",
	Message: "Select a department to list books:",
	Choices: []Choice{
		{Label: "Microbiology", Value: "microbiology"},
		{Label: "Psychology", Value: "psychology"},
		{Label: "Computer Science", Value: "computerscience"},
	},
}

// askOnConsole runs Ask against a pseudo-terminal driven by keys.
func askOnConsole(t *testing.T, keys func(c *expect.Console), questions ...Question) (Answers, error) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("pseudo-terminal tests need a unix pty")
	}
	c, _, err := vt10x.NewVT10XConsole()
	require.NoError(t, err)
	defer c.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		keys(c)
		c.ExpectEOF()
	}()

	p := NewSurveyPrompter(survey.WithStdio(c.Tty(), c.Tty(), c.Tty()))
	ans, askErr := p.Ask(questions...)

	c.Tty().Close()
	<-done
	return ans, askErr
}

func TestSurveySelectReturnsValue(t *testing.T) {
	ans, err := askOnConsole(t, func(c *expect.Console) {
		c.ExpectString("Select a department to list books:")
		c.Send(string(terminal.KeyArrowDown))
		c.Send(string(terminal.KeyArrowDown))
		c.SendLine("")
	}, departmentQuestion)
	require.NoError(t, err)
	assert.Equal(t, "computerscience", ans.Value("department"))
}

func TestSurveyMultiSelectReturnsValues(t *testing.T) {
	multi := departmentQuestion
	multi.Kind = MultiSelect
	multi.Name = "departments"
	multi.Message = "Select departments to add books from:"

	ans, err := askOnConsole(t, func(c *expect.Console) {
		c.ExpectString("Select departments to add books from:")
		c.Send(" ")
		c.Send(string(terminal.KeyArrowDown))
		c.Send(string(terminal.KeyArrowDown))
		c.Send(" ")
		c.SendLine("")
	}, multi)
	require.NoError(t, err)
	assert.Equal(t, []string{"microbiology", "computerscience"}, ans.Values("departments"))
}

func TestSurveyInputKeyedByName(t *testing.T) {
	ans, err := askOnConsole(t, func(c *expect.Console) {
		c.ExpectString("Enter your name:")
		c.SendLine("Ann")
		c.ExpectString("Enter the ISBN")
		c.SendLine("9780262533058")
	},
		Question{Kind: Input, Name: "memberName", Message: "Enter your name:"},
		Question{Kind: Input, Name: "isbn", Message: "Enter the ISBN of the book you want to borrow:"},
	)
	require.NoError(t, err)
	assert.Equal(t, "Ann", ans.Value("memberName"))
	assert.Equal(t, "9780262533058", ans.Value("isbn"))
}

func TestSurveyInterrupt(t *testing.T) {
	_, err := askOnConsole(t, func(c *expect.Console) {
		c.ExpectString("Select a department to list books:")
		c.Send(string(terminal.KeyInterrupt))
	}, departmentQuestion)
	require.ErrorIs(t, err, ErrInterrupted)
}
