package quiz

import (
	"fmt"
	"strings"
)

type Verdict int

const (
	Correct Verdict = iota + 1
	Wrong
	Missing
)

func (v Verdict) String() string {
	switch v {
	case Correct:
		return "correct"
	case Wrong:
		return "wrong"
	case Missing:
		return "missing"
	default:
		return "unknown"
	}
}

// QuestionResult is the verdict for one question of the key. Got is empty
// when the question was not answered.
type QuestionResult struct {
	Question int
	Expected Choice
	Got      Choice
	Verdict  Verdict
}

func (r QuestionResult) String() string {
	switch r.Verdict {
	case Correct:
		return fmt.Sprintf("%d:%s ✅", r.Question, r.Got)
	case Wrong:
		return fmt.Sprintf("%d:%s ❌ (correct: %s)", r.Question, r.Got, r.Expected)
	default:
		return fmt.Sprintf("%d:— ❌ (correct: %s)", r.Question, r.Expected)
	}
}

// GradeResult is the outcome of grading one submission.
type GradeResult struct {
	Score     int
	Total     int
	Questions []QuestionResult
}

// Report renders one line per question of the key.
func (g GradeResult) Report() string {
	lines := make([]string, 0, len(g.Questions))
	for _, q := range g.Questions {
		lines = append(lines, q.String())
	}
	return strings.Join(lines, "\n")
}
