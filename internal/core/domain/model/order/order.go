package order

import (
	"errors"
	"fmt"
	"time"

	"github.com/casper4088/quiz-bot/internal/core/domain/model/kernel"
	"github.com/casper4088/quiz-bot/internal/pkg/errs"
)

// Order is a service ticket. It is the aggregate root of the service bot.
//
// Order follows these invariants:
//   - id, requester, details and createdAt never change after creation
//   - assignedTo goes from unset to one agent exactly once
//   - status may only be changed by the assignee
//   - rating goes from unset to one value exactly once, set by the requester
//     after the order is done; ratedAgent snapshots the assignee at that moment
type Order struct {
	id        kernel.UUID
	requester kernel.UserID
	details   Details
	createdAt time.Time

	status     Status
	assignedTo *kernel.UserID
	rating     *Rating
	ratedAgent *kernel.UserID

	isConstructed bool
}

// NewOrder creates an order in status new with no assignee and no rating.
//
// Example:
//
//	details, _ := order.NewDetails(order.Repair, "Aziz", "+998901234567", "Leaking tap", "Chilonzor 7", nil)
//	o, err := order.NewOrder(kernel.NewUUID(), requester, details, clock.Now())
func NewOrder(id kernel.UUID, requester kernel.UserID, details Details, createdAt time.Time) (*Order, error) {
	o := &Order{
		status:        New,
		isConstructed: true,
	}
	if err := errors.Join(
		o.setID(id),
		o.setRequester(requester),
		o.setDetails(details),
		o.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}
	return o, nil
}

// RestoreOrder rebuilds an order read from storage and re-checks the
// invariants a stored row could violate.
func RestoreOrder(
	id kernel.UUID,
	requester kernel.UserID,
	details Details,
	createdAt time.Time,
	status Status,
	assignedTo *kernel.UserID,
	rating *int,
	ratedAgent *kernel.UserID,
) (*Order, error) {
	o, err := NewOrder(id, requester, details, createdAt)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}
	if assignedTo != nil {
		if err = assignedTo.Validate(); err != nil {
			return nil, err
		}
		agent := *assignedTo
		o.assignedTo = &agent
	}
	if status != New && o.assignedTo == nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%s requires an assigned agent", status))
	}
	o.status = status

	if rating != nil {
		r, ratingErr := NewRating(*rating)
		if ratingErr != nil {
			return nil, ratingErr
		}
		if ratedAgent == nil {
			return nil, errs.NewValueIsRequiredError("rated agent")
		}
		agent := *ratedAgent
		o.rating = &r
		o.ratedAgent = &agent
	}

	return o, nil
}

// Validate ensures the order was built by NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) Requester() kernel.UserID {
	return o.requester
}

func (o *Order) Details() Details {
	return o.details
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) Status() Status {
	return o.status
}

// AssignedTo returns nil while the order is unclaimed.
func (o *Order) AssignedTo() *kernel.UserID {
	return o.assignedTo
}

// Rating returns nil while the order is unrated.
func (o *Order) Rating() *Rating {
	return o.rating
}

// RatedAgent returns the agent the rating was given to, nil while unrated.
func (o *Order) RatedAgent() *kernel.UserID {
	return o.ratedAgent
}

func (o *Order) IsAssigned() bool {
	return o.assignedTo != nil
}

func (o *Order) IsAssignedTo(agent kernel.UserID) bool {
	return o.assignedTo != nil && *o.assignedTo == agent
}

func (o *Order) IsRated() bool {
	return o.rating != nil
}

// Assign claims the order for agent. A claimed order is never reassigned:
// the call fails with *AlreadyAssignedError naming the current assignee,
// even when agent already holds it.
func (o *Order) Assign(agent kernel.UserID) error {
	if err := agent.Validate(); err != nil {
		return err
	}
	if o.assignedTo != nil {
		return NewAlreadyAssignedError(*o.assignedTo)
	}
	o.assignedTo = &agent
	return nil
}

// SetStatus moves the order to status on behalf of agent.
//
// Guards, checked in this order:
//   - ErrNotAssignedYet when nobody has claimed the order
//   - ErrWrongAgent when agent is not the assignee
//   - ErrInvalidStatus when status is not new, in_progress or done
func (o *Order) SetStatus(agent kernel.UserID, status Status) error {
	if o.assignedTo == nil {
		return ErrNotAssignedYet
	}
	if *o.assignedTo != agent {
		return ErrWrongAgent
	}
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

// Rate stores the requester's score and snapshots the assignee as ratedAgent.
//
// Guards, checked in this order:
//   - ErrInvalidRating when score is outside 1..5
//   - ErrWrongRequester when requester did not create the order
//   - ErrAlreadyRated when a rating is already stored
//   - ErrNotDoneYet when the order is not done
func (o *Order) Rate(requester kernel.UserID, score int) error {
	rating, err := NewRating(score)
	if err != nil {
		return err
	}
	if requester != o.requester {
		return ErrWrongRequester
	}
	if o.rating != nil {
		return ErrAlreadyRated
	}
	if o.status != Done {
		return ErrNotDoneYet
	}
	if o.assignedTo == nil {
		return ErrNotAssignedYet
	}

	agent := *o.assignedTo
	o.rating = &rating
	o.ratedAgent = &agent
	return nil
}

// AvailableActions lists what may happen next:
//   - unclaimed: take
//   - claimed: a move to every status other than the current one
//   - done and unrated: rate (offered to the requester)
func (o *Order) AvailableActions() []Action {
	if o.assignedTo == nil {
		return []Action{ActionTake}
	}

	actions := make([]Action, 0, len(Statuses()))
	for _, s := range Statuses() {
		if s != o.status {
			actions = append(actions, statusAction(s))
		}
	}
	if o.status == Done && o.rating == nil {
		actions = append(actions, ActionRate)
	}
	return actions
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setRequester(requester kernel.UserID) error {
	if err := requester.Validate(); err != nil {
		return err
	}
	o.requester = requester
	return nil
}

func (o *Order) setDetails(details Details) error {
	if err := details.Validate(); err != nil {
		return err
	}
	o.details = details
	return nil
}

func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("created at")
	}
	o.createdAt = createdAt
	return nil
}
