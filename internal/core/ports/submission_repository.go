package ports

import (
	"context"

	"github.com/casper4088/quiz-bot/internal/core/domain/model/quiz"
)

// SubmissionRepository stores quiz attempts. Submissions are never updated.
type SubmissionRepository interface {
	Add(ctx context.Context, submission *quiz.Submission) error

	// ListByQuiz returns every submission of a quiz, oldest first.
	ListByQuiz(ctx context.Context, quizID string) ([]*quiz.Submission, error)

	// ListRecent returns up to limit submissions of any quiz, newest first.
	ListRecent(ctx context.Context, limit int) ([]*quiz.Submission, error)
}
