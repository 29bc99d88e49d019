package queries

import (
	"context"
	"time"

	"github.com/casper4088/quiz-bot/internal/core/domain/model/kernel"
	"github.com/casper4088/quiz-bot/internal/core/domain/model/quiz"
	"github.com/casper4088/quiz-bot/internal/core/domain/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetLeaderboardQueryHandler loads the whole submission history of a quiz
// and ranks it with services.LeaderboardRanker.
type GetLeaderboardQueryHandler struct {
	db     *gorm.DB
	ranker services.LeaderboardRanker
}

func NewGetLeaderboardQueryHandler(db *gorm.DB) GetLeaderboardQueryHandler {
	return GetLeaderboardQueryHandler{db: db, ranker: services.NewLeaderboardRanker()}
}

func (h GetLeaderboardQueryHandler) Handle(ctx context.Context, query GetLeaderboardQuery) (services.Leaderboard, error) {
	if err := query.Validate(); err != nil {
		return services.Leaderboard{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			user_id,
			full_name,
			username,
			score,
			total,
			created_at
		FROM submissions
		WHERE quiz_id = ?
		ORDER BY created_at, id
	`, query.QuizID()).Rows()
	if err != nil {
		return services.Leaderboard{}, err
	}
	defer rows.Close()

	submissions := make([]*quiz.Submission, 0)
	for rows.Next() {
		var (
			id                 uuid.UUID
			userID             int64
			fullName, username string
			score, total       int
			createdAt          time.Time
		)

		if err = rows.Scan(&id, &userID, &fullName, &username, &score, &total, &createdAt); err != nil {
			return services.Leaderboard{}, err
		}

		submissionID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return services.Leaderboard{}, idErr
		}

		participant := quiz.Participant{UserID: kernel.UserID(userID), FullName: fullName, Username: username}
		s, restoreErr := quiz.RestoreSubmission(submissionID, participant, query.QuizID(), "", score, total, createdAt)
		if restoreErr != nil {
			return services.Leaderboard{}, restoreErr
		}
		submissions = append(submissions, s)
	}

	if err = rows.Err(); err != nil {
		return services.Leaderboard{}, err
	}

	return h.ranker.Rank(submissions), nil
}
