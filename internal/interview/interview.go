// Package interview models the interactive question sequence that drives
// project creation: fixed intro questions, questions injected by feature
// plugins, and an environment-dependent outro. The whole sequence runs as
// one interview producing a single answers map.
package interview

import (
	"fmt"

	"github.com/kindling-cli/kindling/internal/input"
)

// Type identifies how a question is rendered.
type Type string

const (
	// Input asks for free text.
	Input Type = "input"
	// Confirm asks a yes/no question.
	Confirm Type = "confirm"
	// Select asks for exactly one of Choices.
	Select Type = "select"
	// MultiSelect asks for any subset of Choices.
	MultiSelect Type = "multiselect"
)

// Question is one prompt descriptor in the interview sequence.
type Question struct {
	Name    string
	Type    Type
	Message string
	Choices []string
	Default any

	// When gates the question on earlier answers. Nil means always ask.
	When func(Answers) bool
}

// Answers maps question names to the user's responses: string for Input
// and Select, bool for Confirm, []string for MultiSelect.
type Answers map[string]any

// Prompter executes a question sequence. The terminal implementation
// renders through internal/input; tests substitute canned answers.
type Prompter interface {
	Ask(questions []Question) (Answers, error)
}

// Build assembles the final interview: intro questions, then questions
// injected by feature plugins, then the outro.
func Build(intro, injected, outro []Question) []Question {
	qs := make([]Question, 0, len(intro)+len(injected)+len(outro))
	qs = append(qs, intro...)
	qs = append(qs, injected...)
	qs = append(qs, outro...)
	return qs
}

// TerminalPrompter renders questions on the terminal, honoring When
// predicates against the answers collected so far.
type TerminalPrompter struct{}

// Ask runs the questions in order and returns the combined answers.
func (TerminalPrompter) Ask(questions []Question) (Answers, error) {
	answers := make(Answers, len(questions))

	for _, q := range questions {
		if q.When != nil && !q.When(answers) {
			continue
		}

		switch q.Type {
		case Input:
			def, _ := q.Default.(string)
			answers[q.Name] = input.Prompt(q.Message, def)
		case Confirm:
			def, _ := q.Default.(bool)
			answers[q.Name] = input.Confirm(q.Message, def)
		case Select:
			defIdx := 0
			if def, ok := q.Default.(string); ok {
				for i, c := range q.Choices {
					if c == def {
						defIdx = i
						break
					}
				}
			}
			answers[q.Name] = input.Select(q.Message, q.Choices, defIdx)
		case MultiSelect:
			answers[q.Name] = input.MultiSelect(q.Message, q.Choices)
		default:
			return nil, fmt.Errorf("unknown question type %q for %q", q.Type, q.Name)
		}
	}

	return answers, nil
}
