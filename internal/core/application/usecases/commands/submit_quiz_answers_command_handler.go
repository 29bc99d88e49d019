package commands

import (
	"context"

	"github.com/casper4088/quiz-bot/internal/core/domain/model/kernel"
	"github.com/casper4088/quiz-bot/internal/core/domain/model/quiz"
	"github.com/casper4088/quiz-bot/internal/core/domain/services"
)

// SubmitQuizAnswersResult is what the participant is shown right after
// submitting.
type SubmitQuizAnswersResult struct {
	Submission *quiz.Submission
	Grade      quiz.GradeResult
}

// SubmitQuizAnswersCommandHandler parses, grades and stores one attempt.
// Nothing is stored when the message holds no recognizable answers.
type SubmitQuizAnswersCommandHandler struct {
	uowFactory SubmissionUoWFactory
	key        quiz.AnswerKey
	grader     services.AnswerGrader
	clock      kernel.Clock
}

func NewSubmitQuizAnswersCommandHandler(
	uowFactory SubmissionUoWFactory,
	key quiz.AnswerKey,
	clock kernel.Clock,
) SubmitQuizAnswersCommandHandler {
	return SubmitQuizAnswersCommandHandler{
		uowFactory: uowFactory,
		key:        key,
		grader:     services.NewAnswerGrader(),
		clock:      clock,
	}
}

func (h SubmitQuizAnswersCommandHandler) Handle(
	ctx context.Context,
	cmd SubmitQuizAnswersCommand,
) (SubmitQuizAnswersResult, error) {
	if err := cmd.Validate(); err != nil {
		return SubmitQuizAnswersResult{}, err
	}

	answers, err := quiz.ParseAnswers(cmd.Text())
	if err != nil {
		return SubmitQuizAnswersResult{}, err
	}

	grade := h.grader.Grade(h.key, answers)

	submission, err := quiz.NewSubmission(
		cmd.SubmissionID(), cmd.Participant(), cmd.QuizID(), answers, grade, h.clock.Now())
	if err != nil {
		return SubmitQuizAnswersResult{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return SubmitQuizAnswersResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.SubmissionRepository().Add(ctx, submission); err != nil {
		return SubmitQuizAnswersResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return SubmitQuizAnswersResult{}, err
	}

	return SubmitQuizAnswersResult{Submission: submission, Grade: grade}, nil
}
