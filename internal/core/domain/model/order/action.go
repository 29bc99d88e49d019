package order

// Action is a follow-up operation that is currently valid for an order.
// Notification renderers turn actions into buttons.
type Action int

const (
	ActionTake Action = iota + 1
	ActionMarkNew
	ActionMarkInProgress
	ActionMarkDone
	ActionRate
)

func (a Action) String() string {
	switch a {
	case ActionTake:
		return "take"
	case ActionMarkNew:
		return "mark_new"
	case ActionMarkInProgress:
		return "mark_in_progress"
	case ActionMarkDone:
		return "mark_done"
	case ActionRate:
		return "rate"
	default:
		return "unknown"
	}
}

// TargetStatus returns the status a status-changing action moves to.
func (a Action) TargetStatus() (Status, bool) {
	switch a {
	case ActionMarkNew:
		return New, true
	case ActionMarkInProgress:
		return InProgress, true
	case ActionMarkDone:
		return Done, true
	default:
		return Unknown, false
	}
}

func statusAction(s Status) Action {
	switch s {
	case New:
		return ActionMarkNew
	case InProgress:
		return ActionMarkInProgress
	default:
		return ActionMarkDone
	}
}
