package shell

import (
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// SurveyPrompter renders questions as interactive terminal widgets.
type SurveyPrompter struct {
	opts []survey.AskOpt
}

func NewSurveyPrompter(opts ...survey.AskOpt) *SurveyPrompter {
	return &SurveyPrompter{opts: opts}
}

func (p *SurveyPrompter) Ask(questions ...Question) (Answers, error) {
	answers := make(Answers, len(questions))
	for _, q := range questions {
		var (
			vals []string
			err  error
		)
		switch q.Kind {
		case Select:
			var label string
			err = survey.AskOne(&survey.Select{Message: q.Message, Options: q.labels()}, &label, p.opts...)
			vals = []string{q.valueOf(label)}
		case MultiSelect:
			var labels []string
			err = survey.AskOne(&survey.MultiSelect{Message: q.Message, Options: q.labels()}, &labels, p.opts...)
			vals = make([]string, 0, len(labels))
			for _, l := range labels {
				vals = append(vals, q.valueOf(l))
			}
		default:
			var line string
			err = survey.AskOne(&survey.Input{Message: q.Message}, &line, p.opts...)
			vals = []string{line}
		}
		if errors.Is(err, terminal.InterruptErr) {
			return nil, ErrInterrupted
		}
		if err != nil {
			return nil, err
		}
		answers[q.Name] = vals
	}
	return answers, nil
}
