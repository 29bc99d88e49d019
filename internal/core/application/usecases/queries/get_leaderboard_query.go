// Package queries contains the read-only use cases. Handlers read straight
// from the database and never load aggregates through a unit of work.
package queries

import (
	"errors"
	"strings"

	"github.com/casper4088/quiz-bot/internal/pkg/errs"
	"github.com/casper4088/quiz-bot/internal/pkg/guard"
)

var ErrGetLeaderboardQueryIsNotConstructed = errors.New(
	"GetLeaderboardQuery must be created via NewGetLeaderboardQuery constructor",
)

// GetLeaderboardQuery ranks every participant of one quiz.
//
// Example:
//
//	query, _ := NewGetLeaderboardQuery("quiz_001")
//	board, err := handler.Handle(ctx, query)
//	for i, e := range board.Top(5) {
//	    fmt.Printf("%d) %s %d/%d\n", i+1, e.Participant.DisplayName(), e.BestScore, e.Total)
//	}
type GetLeaderboardQuery struct {
	quizID string

	guard guard.ConstructorGuard
}

func NewGetLeaderboardQuery(quizID string) (GetLeaderboardQuery, error) {
	clean := strings.TrimSpace(quizID)
	if clean == "" {
		return GetLeaderboardQuery{}, errs.NewValueIsRequiredError("quiz id")
	}
	return GetLeaderboardQuery{quizID: clean, guard: guard.NewConstructorGuard()}, nil
}

func (q GetLeaderboardQuery) Validate() error {
	return q.guard.Validate(ErrGetLeaderboardQueryIsNotConstructed)
}

func (q GetLeaderboardQuery) QuizID() string {
	return q.quizID
}
