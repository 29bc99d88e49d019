package conversation

import (
	"fmt"

	"github.com/casper4088/quiz-bot/internal/pkg/errs"
)

type Step string

const (
	StepIdle                 Step = "idle"
	StepAwaitingQuizAnswers  Step = "awaiting_quiz_answers"
	StepAwaitingServiceType  Step = "awaiting_service_type"
	StepAwaitingName         Step = "awaiting_name"
	StepAwaitingPhone        Step = "awaiting_phone"
	StepAwaitingProblem      Step = "awaiting_problem"
	StepAwaitingAddress      Step = "awaiting_address"
	StepAwaitingConfirmation Step = "awaiting_confirmation"
)

func Steps() []Step {
	return []Step{
		StepIdle,
		StepAwaitingQuizAnswers,
		StepAwaitingServiceType,
		StepAwaitingName,
		StepAwaitingPhone,
		StepAwaitingProblem,
		StepAwaitingAddress,
		StepAwaitingConfirmation,
	}
}

func ParseStep(raw string) (Step, error) {
	for _, s := range Steps() {
		if string(s) == raw {
			return s, nil
		}
	}
	return "", errs.NewValueIsInvalidErrorWithCause("step", fmt.Errorf("%q is not a known step", raw))
}

// IsOrderForm reports whether the step belongs to the service order form.
func (s Step) IsOrderForm() bool {
	switch s {
	case StepAwaitingServiceType, StepAwaitingName, StepAwaitingPhone,
		StepAwaitingProblem, StepAwaitingAddress, StepAwaitingConfirmation:
		return true
	default:
		return false
	}
}

func (s Step) String() string {
	return string(s)
}
