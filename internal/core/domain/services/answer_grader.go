package services

import (
	"github.com/casper4088/quiz-bot/internal/core/domain/model/quiz"
)

// AnswerGrader grades parsed answers against an answer key.
//
// Every question of the key produces exactly one QuestionResult, in key
// order. Answers to questions outside the key are ignored, so Total is always
// the size of the key.
//
// Example:
//
//	key, _ := quiz.NewAnswerKey(map[int]quiz.Choice{1: quiz.ChoiceA, 2: quiz.ChoiceB})
//	answers, _ := quiz.ParseAnswers("1A 2C")
//	result := services.NewAnswerGrader().Grade(key, answers)
//	// result.Score == 1, result.Questions[1].Verdict == quiz.Wrong
type AnswerGrader struct{}

func NewAnswerGrader() AnswerGrader {
	return AnswerGrader{}
}

func (AnswerGrader) Grade(key quiz.AnswerKey, answers quiz.Answers) quiz.GradeResult {
	questions := key.Questions()
	result := quiz.GradeResult{
		Total:     len(questions),
		Questions: make([]quiz.QuestionResult, 0, len(questions)),
	}

	for _, q := range questions {
		expected, _ := key.Expected(q)
		got, answered := answers[q]

		qr := quiz.QuestionResult{Question: q, Expected: expected, Got: got}
		switch {
		case !answered:
			qr.Verdict = quiz.Missing
		case got == expected:
			qr.Verdict = quiz.Correct
			result.Score++
		default:
			qr.Verdict = quiz.Wrong
		}
		result.Questions = append(result.Questions, qr)
	}

	return result
}
