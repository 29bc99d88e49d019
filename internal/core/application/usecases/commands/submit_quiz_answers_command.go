package commands

import (
	"errors"
	"strings"

	"github.com/casper4088/quiz-bot/internal/core/domain/model/kernel"
	"github.com/casper4088/quiz-bot/internal/core/domain/model/quiz"
	"github.com/casper4088/quiz-bot/internal/pkg/errs"
	"github.com/casper4088/quiz-bot/internal/pkg/guard"
)

var ErrSubmitQuizAnswersCommandIsNotConstructed = errors.New(
	"SubmitQuizAnswersCommand must be created via NewSubmitQuizAnswersCommand constructor",
)

// SubmitQuizAnswersCommand carries the raw answer message of a participant.
// The text is parsed by the handler so that a malformed message is reported
// as quiz.ErrAnswersNotRecognized.
type SubmitQuizAnswersCommand struct { //nolint:recvcheck //using for validation
	submissionID kernel.UUID
	participant  quiz.Participant
	quizID       string
	text         string

	guard guard.ConstructorGuard
}

func NewSubmitQuizAnswersCommand(
	submissionID kernel.UUID,
	participant quiz.Participant,
	quizID, text string,
) (SubmitQuizAnswersCommand, error) {
	cmd := SubmitQuizAnswersCommand{
		submissionID: submissionID,
		participant:  participant,
		quizID:       strings.TrimSpace(quizID),
		text:         text,
		guard:        guard.NewConstructorGuard(),
	}

	var quizErr error
	if cmd.quizID == "" {
		quizErr = errs.NewValueIsRequiredError("quiz id")
	}

	if err := errors.Join(
		submissionID.Validate(),
		participant.UserID.Validate(),
		quizErr,
	); err != nil {
		return SubmitQuizAnswersCommand{}, err
	}

	return cmd, nil
}

func (c SubmitQuizAnswersCommand) Validate() error {
	return c.guard.Validate(ErrSubmitQuizAnswersCommandIsNotConstructed)
}

func (c SubmitQuizAnswersCommand) SubmissionID() kernel.UUID {
	return c.submissionID
}

func (c SubmitQuizAnswersCommand) Participant() quiz.Participant {
	return c.participant
}

func (c SubmitQuizAnswersCommand) QuizID() string {
	return c.quizID
}

func (c SubmitQuizAnswersCommand) Text() string {
	return c.text
}
