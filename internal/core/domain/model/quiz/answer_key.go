package quiz

import (
	"fmt"

	"github.com/casper4088/quiz-bot/internal/pkg/errs"
)

// DefaultAnswerKey is used when no key is configured.
const DefaultAnswerKey = "1A 2C 3B 4D 5A 6B 7C 8D 9A 10C 11D 12D 13D 14D 15D 16D 17D 18D 19D 20D"

// AnswerKey holds the correct choice for every graded question.
type AnswerKey struct {
	choices   map[int]Choice
	questions []int
}

// NewAnswerKey copies choices. Question numbers must be positive and every
// choice must be A..D.
func NewAnswerKey(choices map[int]Choice) (AnswerKey, error) {
	if len(choices) == 0 {
		return AnswerKey{}, errs.NewValueIsRequiredError("answer key")
	}

	copied := make(Answers, len(choices))
	for q, c := range choices {
		if q <= 0 {
			return AnswerKey{}, errs.NewValueIsInvalidErrorWithCause(
				"answer key", fmt.Errorf("question %d must be positive", q))
		}
		if !c.IsValid() {
			return AnswerKey{}, errs.NewValueIsInvalidErrorWithCause(
				"answer key", fmt.Errorf("question %d has choice %q", q, c))
		}
		copied[q] = c
	}

	return AnswerKey{choices: copied, questions: copied.Questions()}, nil
}

// ParseAnswerKey reads a key written in the same free format participants
// use, e.g. "1A 2C 3B".
func ParseAnswerKey(raw string) (AnswerKey, error) {
	answers, err := ParseAnswers(raw)
	if err != nil {
		return AnswerKey{}, errs.NewValueIsInvalidErrorWithCause("answer key", err)
	}
	return NewAnswerKey(answers)
}

// Total is the number of graded questions.
func (k AnswerKey) Total() int {
	return len(k.questions)
}

// Questions returns graded question numbers in ascending order.
func (k AnswerKey) Questions() []int {
	return append([]int(nil), k.questions...)
}

func (k AnswerKey) Expected(question int) (Choice, bool) {
	c, ok := k.choices[question]
	return c, ok
}

func (k AnswerKey) String() string {
	return Answers(k.choices).String()
}
