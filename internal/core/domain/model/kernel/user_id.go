package kernel

import (
	"strconv"

	"github.com/casper4088/quiz-bot/internal/pkg/errs"
)

// ErrUserIDIsNotConstructed is returned for the zero UserID.
var ErrUserIDIsNotConstructed = errs.NewValueIsRequiredError("user id must be non-zero")

// UserID is the chat identity of a person: a requester, an agent or a quiz
// participant. Telegram user ids are positive 64-bit integers.
type UserID int64

// NewUserID validates raw and returns it as a UserID.
func NewUserID(raw int64) (UserID, error) {
	id := UserID(raw)
	if err := id.Validate(); err != nil {
		return 0, err
	}
	return id, nil
}

// Validate rejects the zero value.
func (u UserID) Validate() error {
	if u == 0 {
		return ErrUserIDIsNotConstructed
	}
	return nil
}

// Int64 returns the raw identity for transport and storage.
func (u UserID) Int64() int64 {
	return int64(u)
}

func (u UserID) String() string {
	return strconv.FormatInt(int64(u), 10)
}
