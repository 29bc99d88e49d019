package quiz

import (
	"errors"
	"strings"
	"time"

	"github.com/casper4088/quiz-bot/internal/core/domain/model/kernel"
	"github.com/casper4088/quiz-bot/internal/pkg/errs"
	"github.com/casper4088/quiz-bot/internal/pkg/guard"
)

var ErrSubmissionIsNotConstructed = errors.New("Submission must be created via NewSubmission constructor")

// Submission is one graded attempt. Submissions are append-only.
type Submission struct {
	id          kernel.UUID
	participant Participant
	quizID      string
	answers     string
	score       int
	total       int
	createdAt   time.Time

	guard guard.ConstructorGuard
}

// NewSubmission records answers in their canonical form together with the
// grade they received.
func NewSubmission(
	id kernel.UUID,
	participant Participant,
	quizID string,
	answers Answers,
	grade GradeResult,
	createdAt time.Time,
) (*Submission, error) {
	return RestoreSubmission(id, participant, quizID, answers.String(), grade.Score, grade.Total, createdAt)
}

// RestoreSubmission rebuilds a stored submission.
func RestoreSubmission(
	id kernel.UUID,
	participant Participant,
	quizID, answers string,
	score, total int,
	createdAt time.Time,
) (*Submission, error) {
	s := &Submission{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		s.setID(id),
		s.setParticipant(participant),
		s.setQuizID(quizID),
		s.setScore(score, total),
		s.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}
	s.answers = answers

	return s, nil
}

func (s *Submission) Validate() error {
	if s == nil {
		return ErrSubmissionIsNotConstructed
	}
	return s.guard.Validate(ErrSubmissionIsNotConstructed)
}

func (s *Submission) ID() kernel.UUID {
	return s.id
}

func (s *Submission) Participant() Participant {
	return s.participant
}

func (s *Submission) QuizID() string {
	return s.quizID
}

// Answers returns the canonical "1:A,2:C" form.
func (s *Submission) Answers() string {
	return s.answers
}

func (s *Submission) Score() int {
	return s.score
}

func (s *Submission) Total() int {
	return s.total
}

func (s *Submission) CreatedAt() time.Time {
	return s.createdAt
}

func (s *Submission) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Submission) setParticipant(p Participant) error {
	if err := p.UserID.Validate(); err != nil {
		return err
	}
	s.participant = p
	return nil
}

func (s *Submission) setQuizID(quizID string) error {
	clean := strings.TrimSpace(quizID)
	if clean == "" {
		return errs.NewValueIsRequiredError("quiz id")
	}
	s.quizID = clean
	return nil
}

func (s *Submission) setScore(score, total int) error {
	if total < 0 {
		return errs.NewValueIsOutOfRangeError("total", total, 0, "unbounded")
	}
	if score < 0 || score > total {
		return errs.NewValueIsOutOfRangeError("score", score, 0, total)
	}
	s.score = score
	s.total = total
	return nil
}

func (s *Submission) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("created at")
	}
	s.createdAt = createdAt
	return nil
}
