package services_test

import (
	"testing"
	"time"

	"github.com/casper4088/quiz-bot/internal/core/domain/model/kernel"
	"github.com/casper4088/quiz-bot/internal/core/domain/model/quiz"
	"github.com/casper4088/quiz-bot/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

func submission(t *testing.T, user kernel.UserID, full, username string, score int, at time.Duration) *quiz.Submission {
	t.Helper()
	p := quiz.Participant{UserID: user, FullName: full, Username: username}
	s, err := quiz.RestoreSubmission(kernel.NewUUID(), p, "quiz_001", "", score, 20, t0.Add(at))
	require.NoError(t, err)
	return s
}

func TestLeaderboardRanker_Rank(t *testing.T) {
	ranker := services.NewLeaderboardRanker()

	t.Run("best score keeps the earliest time it was reached", func(t *testing.T) {
		board := ranker.Rank([]*quiz.Submission{
			submission(t, 1, "Aziz", "", 12, 1*time.Minute),
			submission(t, 1, "Aziz", "", 15, 2*time.Minute),
			submission(t, 1, "Aziz", "", 15, 3*time.Minute),
		})

		require.Equal(t, 1, board.Len())
		e := board.Entries()[0]
		assert.Equal(t, 15, e.BestScore)
		assert.Equal(t, 20, e.Total)
		assert.Equal(t, t0.Add(2*time.Minute), e.BestAt)
		assert.Equal(t, 3, e.Attempts)
	})

	t.Run("should order by score then time then user", func(t *testing.T) {
		board := ranker.Rank([]*quiz.Submission{
			submission(t, 3, "C", "", 18, 5*time.Minute),
			submission(t, 2, "B", "", 18, 1*time.Minute),
			submission(t, 1, "A", "", 20, 9*time.Minute),
			submission(t, 5, "E", "", 10, 0),
			submission(t, 4, "D", "", 10, 0),
		})

		var order []kernel.UserID
		for _, e := range board.Entries() {
			order = append(order, e.Participant.UserID)
		}
		assert.Equal(t, []kernel.UserID{1, 2, 3, 4, 5}, order)

		rank, entry, ok := board.RankOf(3)
		assert.True(t, ok)
		assert.Equal(t, 3, rank)
		assert.Equal(t, 18, entry.BestScore)

		_, _, ok = board.RankOf(99)
		assert.False(t, ok)

		assert.Len(t, board.Top(2), 2)
		assert.Len(t, board.Top(10), 5)
		assert.Empty(t, board.Top(0))
	})

	t.Run("should keep the latest non-empty names", func(t *testing.T) {
		board := ranker.Rank([]*quiz.Submission{
			submission(t, 1, "Old Name", "old", 3, 1*time.Minute),
			submission(t, 1, "New Name", "", 2, 2*time.Minute),
		})

		p := board.Entries()[0].Participant
		assert.Equal(t, "New Name", p.FullName)
		assert.Equal(t, "old", p.Username)
		assert.Equal(t, "New Name (@old)", p.DisplayName())
	})

	t.Run("stats", func(t *testing.T) {
		board := ranker.Rank([]*quiz.Submission{
			submission(t, 1, "A", "", 10, 0),
			submission(t, 2, "B", "", 15, 0),
		})

		stats := board.Stats()

		assert.Equal(t, 2, stats.Participants)
		assert.InDelta(t, 12.5, stats.AverageBestScore, 0.001)
		require.NotNil(t, stats.Leader)
		assert.Equal(t, kernel.UserID(2), stats.Leader.Participant.UserID)
	})

	t.Run("empty history", func(t *testing.T) {
		board := ranker.Rank(nil)

		assert.Zero(t, board.Len())
		assert.Nil(t, board.Stats().Leader)
	})
}
