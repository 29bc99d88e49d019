package order

import (
	"fmt"
	"strings"
)

// Status is the work state of an order.
//
//	new <──> in_progress <──> done
//	 ^                         │
//	 └─────────────────────────┘
//
// Any valid status may follow any other; who may change it is decided by
// Order.SetStatus.
type Status int

const (
	// Unknown (0) catches uninitialized values.
	Unknown Status = iota
	New
	InProgress
	Done
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		New:        "new",
		InProgress: "in_progress",
		Done:       "done",
	}
}

// Statuses lists the valid statuses in workflow order.
func Statuses() []Status {
	return []Status{New, InProgress, Done}
}

// ParseStatus accepts the persisted/callback form ("new", "in_progress", "done").
func ParseStatus(raw string) (Status, error) {
	needle := strings.ToLower(strings.TrimSpace(raw))
	for _, s := range Statuses() {
		if s.String() == needle {
			return s, nil
		}
	}
	return Unknown, fmt.Errorf("%w: %q is not a valid status", ErrInvalidStatus, raw)
}

// Validate returns ErrInvalidStatus for Unknown and out-of-range values.
func (s Status) Validate() error {
	if s < New || s > Done {
		return fmt.Errorf("%w: %d is not a valid status", ErrInvalidStatus, s)
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}
