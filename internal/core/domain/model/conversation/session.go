package conversation

import (
	"errors"
	"fmt"
	"time"

	"github.com/casper4088/quiz-bot/internal/core/domain/model/kernel"
	"github.com/casper4088/quiz-bot/internal/core/domain/model/order"
	"github.com/casper4088/quiz-bot/internal/core/domain/model/quiz"
)

var (
	// ErrUnexpectedInput is returned when the input kind makes no sense for
	// the current step, including any input while idle.
	ErrUnexpectedInput = errors.New("input is not expected at this step")

	ErrNoCompletedForm = errors.New("order form is not completed")
)

// Draft is the order form collected so far.
type Draft struct {
	ServiceType order.ServiceType
	Name        string
	Phone       string
	Problem     string
	Address     string
	Location    *kernel.Location
}

// Session is the dialogue state of one user in one chat.
type Session struct {
	key       Key
	step      Step
	draft     Draft
	completed *order.Details
	updatedAt time.Time
}

// NewSession returns an idle session.
func NewSession(key Key, now time.Time) *Session {
	return &Session{key: key, step: StepIdle, updatedAt: now}
}

func (s *Session) Key() Key {
	return s.key
}

func (s *Session) Step() Step {
	return s.step
}

func (s *Session) Draft() Draft {
	return s.draft
}

func (s *Session) UpdatedAt() time.Time {
	return s.updatedAt
}

// IsExpired reports whether the session was untouched for longer than ttl.
// A non-positive ttl never expires.
func (s *Session) IsExpired(now time.Time, ttl time.Duration) bool {
	return ttl > 0 && now.Sub(s.updatedAt) > ttl
}

// StartQuiz waits for one message of answers. Any open order form is dropped.
func (s *Session) StartQuiz(now time.Time) {
	s.reset(now)
	s.step = StepAwaitingQuizAnswers
}

// StartOrder opens a fresh order form.
func (s *Session) StartOrder(now time.Time) {
	s.reset(now)
	s.step = StepAwaitingServiceType
}

// Cancel returns to idle and drops everything collected.
func (s *Session) Cancel(now time.Time) {
	s.reset(now)
}

// Apply validates in against the current step. On success the session
// advances and the new step is returned; on failure the step is unchanged.
//
// Confirming the last step moves to idle and makes the built order details
// available through TakeCompleted.
func (s *Session) Apply(in Input, now time.Time) (Step, error) {
	next, err := s.apply(in)
	if err != nil {
		return s.step, err
	}
	s.step = next
	s.updatedAt = now
	return s.step, nil
}

// TakeCompleted hands out the details of a confirmed form exactly once.
func (s *Session) TakeCompleted() (order.Details, error) {
	if s.completed == nil {
		return order.Details{}, ErrNoCompletedForm
	}
	d := *s.completed
	s.completed = nil
	return d, nil
}

func (s *Session) apply(in Input) (Step, error) {
	switch s.step {
	case StepAwaitingQuizAnswers:
		return s.applyQuizAnswers(in)
	case StepAwaitingServiceType:
		return s.applyServiceType(in)
	case StepAwaitingName:
		return s.applyName(in)
	case StepAwaitingPhone:
		return s.applyPhone(in)
	case StepAwaitingProblem:
		return s.applyProblem(in)
	case StepAwaitingAddress:
		return s.applyAddress(in)
	case StepAwaitingConfirmation:
		return s.applyConfirmation(in)
	default:
		return "", fmt.Errorf("%w: %s while %s", ErrUnexpectedInput, in.Kind, s.step)
	}
}

func (s *Session) applyQuizAnswers(in Input) (Step, error) {
	if in.Kind != InputText {
		return "", s.unexpected(in)
	}
	if _, err := quiz.ParseAnswers(in.Text); err != nil {
		return "", err
	}
	return StepIdle, nil
}

func (s *Session) applyServiceType(in Input) (Step, error) {
	var raw string
	switch in.Kind {
	case InputChoice:
		raw = in.Choice
	case InputText:
		raw = in.Text
	default:
		return "", s.unexpected(in)
	}

	st, err := order.ParseServiceType(raw)
	if err != nil {
		return "", err
	}
	s.draft.ServiceType = st
	return StepAwaitingName, nil
}

func (s *Session) applyName(in Input) (Step, error) {
	if in.Kind != InputText {
		return "", s.unexpected(in)
	}
	name, err := order.NormalizeName(in.Text)
	if err != nil {
		return "", err
	}
	s.draft.Name = name
	return StepAwaitingPhone, nil
}

func (s *Session) applyPhone(in Input) (Step, error) {
	var raw string
	switch in.Kind {
	case InputContact:
		raw = in.Phone
	case InputText:
		raw = in.Text
	default:
		return "", s.unexpected(in)
	}

	phone, err := order.NormalizePhone(raw)
	if err != nil {
		return "", err
	}
	s.draft.Phone = phone
	return StepAwaitingProblem, nil
}

func (s *Session) applyProblem(in Input) (Step, error) {
	if in.Kind != InputText {
		return "", s.unexpected(in)
	}
	problem, err := order.NormalizeProblem(in.Text)
	if err != nil {
		return "", err
	}
	s.draft.Problem = problem
	return StepAwaitingAddress, nil
}

func (s *Session) applyAddress(in Input) (Step, error) {
	switch in.Kind {
	case InputLocation:
		if err := in.Location.Validate(); err != nil {
			return "", err
		}
		loc := in.Location
		s.draft.Location = &loc
		s.draft.Address = ""
	case InputText:
		address, err := order.NormalizeAddress(in.Text)
		if err != nil {
			return "", err
		}
		s.draft.Address = address
		s.draft.Location = nil
	default:
		return "", s.unexpected(in)
	}
	return StepAwaitingConfirmation, nil
}

func (s *Session) applyConfirmation(in Input) (Step, error) {
	if in.Kind != InputChoice {
		return "", s.unexpected(in)
	}

	switch in.Choice {
	case ChoiceConfirm:
		d := s.draft
		details, err := order.NewDetails(d.ServiceType, d.Name, d.Phone, d.Problem, d.Address, d.Location)
		if err != nil {
			return "", err
		}
		s.draft = Draft{}
		s.completed = &details
		return StepIdle, nil
	case ChoiceCancel:
		s.draft = Draft{}
		return StepIdle, nil
	default:
		return "", s.unexpected(in)
	}
}

func (s *Session) unexpected(in Input) error {
	return fmt.Errorf("%w: %s while %s", ErrUnexpectedInput, in.Kind, s.step)
}

func (s *Session) reset(now time.Time) {
	s.step = StepIdle
	s.draft = Draft{}
	s.completed = nil
	s.updatedAt = now
}
