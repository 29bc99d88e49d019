// Package telegram delivers order notifications to Telegram chats and owns
// the chat-facing rendering shared with the update routers: order cards,
// inline keyboards and callback data.
package telegram

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/casper4088/quiz-bot/internal/core/domain/model/kernel"
	"github.com/casper4088/quiz-bot/internal/core/domain/model/order"
)

var ErrUnknownCallback = errors.New("unknown callback data")

type CallbackKind int

const (
	CallbackUnknown CallbackKind = iota
	CallbackTake
	CallbackStatus
	CallbackRate
)

func (k CallbackKind) String() string {
	switch k {
	case CallbackTake:
		return "take"
	case CallbackStatus:
		return "status"
	case CallbackRate:
		return "rate"
	default:
		return "unknown"
	}
}

// Callback is the decoded data of an inline button press.
//
// Wire forms:
//
//	take:<order id>
//	status:<order id>:<new|in_progress|done>
//	rate:<order id>:<1..5>
type Callback struct {
	Kind    CallbackKind
	OrderID kernel.UUID
	Status  order.Status
	Score   int
}

func TakeCallback(orderID kernel.UUID) Callback {
	return Callback{Kind: CallbackTake, OrderID: orderID}
}

func StatusCallback(orderID kernel.UUID, status order.Status) Callback {
	return Callback{Kind: CallbackStatus, OrderID: orderID, Status: status}
}

func RateCallback(orderID kernel.UUID, score int) Callback {
	return Callback{Kind: CallbackRate, OrderID: orderID, Score: score}
}

// Data encodes the callback. The result stays under Telegram's 64 byte limit.
func (c Callback) Data() string {
	switch c.Kind {
	case CallbackTake:
		return "take:" + c.OrderID.String()
	case CallbackStatus:
		return "status:" + c.OrderID.String() + ":" + c.Status.String()
	case CallbackRate:
		return "rate:" + c.OrderID.String() + ":" + strconv.Itoa(c.Score)
	default:
		return ""
	}
}

// ParseCallback decodes button data. Anything malformed wraps
// ErrUnknownCallback. Status and score are only checked for shape here; the
// order aggregate validates their values.
func ParseCallback(data string) (Callback, error) {
	parts := strings.Split(data, ":")

	unknown := func() (Callback, error) {
		return Callback{}, fmt.Errorf("%w: %q", ErrUnknownCallback, data)
	}

	var kind CallbackKind
	switch {
	case parts[0] == "take" && len(parts) == 2:
		kind = CallbackTake
	case parts[0] == "status" && len(parts) == 3:
		kind = CallbackStatus
	case parts[0] == "rate" && len(parts) == 3:
		kind = CallbackRate
	default:
		return unknown()
	}

	id, err := kernel.UUIDFromString(parts[1])
	if err != nil {
		return unknown()
	}

	cb := Callback{Kind: kind, OrderID: id}
	switch kind {
	case CallbackStatus:
		if cb.Status, err = order.ParseStatus(parts[2]); err != nil {
			return unknown()
		}
	case CallbackRate:
		if cb.Score, err = strconv.Atoi(parts[2]); err != nil {
			return unknown()
		}
	}

	return cb, nil
}
