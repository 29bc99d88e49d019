package order

import (
	"errors"
	"fmt"

	"github.com/casper4088/quiz-bot/internal/core/domain/model/kernel"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	ErrAlreadyAssigned = errors.New("order is already assigned")
	ErrNotAssignedYet  = errors.New("order is not assigned yet")
	ErrWrongAgent      = errors.New("order is assigned to another agent")
	ErrInvalidStatus   = errors.New("status is invalid")
	ErrAlreadyRated    = errors.New("order is already rated")
	ErrWrongRequester  = errors.New("order belongs to another requester")
	ErrInvalidRating   = errors.New("rating is invalid")
	ErrNotDoneYet      = errors.New("order is not done yet")
)

// AlreadyAssignedError is the outcome of claiming an order someone else holds.
// Assignee is the winning agent so the caller can report "already taken".
type AlreadyAssignedError struct {
	Assignee kernel.UserID
}

func NewAlreadyAssignedError(assignee kernel.UserID) *AlreadyAssignedError {
	return &AlreadyAssignedError{Assignee: assignee}
}

func (e *AlreadyAssignedError) Error() string {
	return fmt.Sprintf("%s: assignee is %s", ErrAlreadyAssigned, e.Assignee)
}

func (e *AlreadyAssignedError) Unwrap() error {
	return ErrAlreadyAssigned
}
