package quiz

import (
	"strings"

	"github.com/casper4088/quiz-bot/internal/core/domain/model/kernel"
)

// Participant identifies who submitted. Names are whatever the chat client
// reported at submission time and may be empty.
type Participant struct {
	UserID   kernel.UserID
	FullName string
	Username string
}

func NewParticipant(userID kernel.UserID, fullName, username string) (Participant, error) {
	if err := userID.Validate(); err != nil {
		return Participant{}, err
	}
	return Participant{
		UserID:   userID,
		FullName: strings.TrimSpace(fullName),
		Username: strings.TrimPrefix(strings.TrimSpace(username), "@"),
	}, nil
}

// DisplayName renders "Full (@user)", "@user", "Full" or "Unknown".
func (p Participant) DisplayName() string {
	full := strings.TrimSpace(p.FullName)
	user := strings.TrimSpace(p.Username)
	switch {
	case user != "" && full != "":
		return full + " (@" + user + ")"
	case user != "":
		return "@" + user
	case full != "":
		return full
	default:
		return "Unknown"
	}
}
