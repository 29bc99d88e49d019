package quiz

import (
	"errors"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// ErrAnswersNotRecognized is returned when a message contains no
// question/choice pair at all.
var ErrAnswersNotRecognized = errors.New("answers are not recognized")

// Choice is one of the four options of a question.
type Choice string

const (
	ChoiceA Choice = "A"
	ChoiceB Choice = "B"
	ChoiceC Choice = "C"
	ChoiceD Choice = "D"
)

func (c Choice) IsValid() bool {
	switch c {
	case ChoiceA, ChoiceB, ChoiceC, ChoiceD:
		return true
	default:
		return false
	}
}

// answerPattern matches "1A", "1:A", "1-A", "1)A", "1.A" and "1 : A".
var answerPattern = regexp.MustCompile(`(\d{1,4})\s*[:\-).]*\s*([ABCD])`)

// Answers maps a question number to the chosen option.
type Answers map[int]Choice

// ParseAnswers extracts every question/choice pair from text, ignoring case
// and anything between pairs. When a question appears twice the later choice
// wins.
//
//	ParseAnswers("1a, 2:c 3)B") // {1:A 2:C 3:B}
func ParseAnswers(text string) (Answers, error) {
	upper := strings.ToUpper(strings.TrimSpace(text))
	matches := answerPattern.FindAllStringSubmatch(upper, -1)
	if len(matches) == 0 {
		return nil, ErrAnswersNotRecognized
	}

	answers := make(Answers, len(matches))
	for _, m := range matches {
		q, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		answers[q] = Choice(m[2])
	}
	return answers, nil
}

// Questions returns the answered question numbers in ascending order.
func (a Answers) Questions() []int {
	questions := make([]int, 0, len(a))
	for q := range a {
		questions = append(questions, q)
	}
	sort.Ints(questions)
	return questions
}

// String renders the persisted form "1:A,2:C", ordered by question.
func (a Answers) String() string {
	parts := make([]string, 0, len(a))
	for _, q := range a.Questions() {
		parts = append(parts, strconv.Itoa(q)+":"+string(a[q]))
	}
	return strings.Join(parts, ",")
}
