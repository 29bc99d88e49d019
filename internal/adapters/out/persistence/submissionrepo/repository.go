package submissionrepo

import (
	"context"
	"math"
	"strings"

	"github.com/casper4088/quiz-bot/internal/core/domain/model/kernel"
	"github.com/casper4088/quiz-bot/internal/core/domain/model/quiz"
	"github.com/casper4088/quiz-bot/internal/pkg/errs"

	"gorm.io/gorm"
)

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormSubmissionRepository implements ports.SubmissionRepository. Rows are
// append-only: a participant may submit any number of times.
type GormSubmissionRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormSubmissionRepository(db *gorm.DB, tracker aggregateTracker) *GormSubmissionRepository {
	return &GormSubmissionRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormSubmissionRepository) Add(ctx context.Context, submission *quiz.Submission) error {
	if err := submission.Validate(); err != nil {
		return err
	}

	dto := fromDomain(submission)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(submission.ID(), submission)
	return nil
}

func (r *GormSubmissionRepository) ListByQuiz(ctx context.Context, quizID string) ([]*quiz.Submission, error) {
	quizID = strings.TrimSpace(quizID)
	if quizID == "" {
		return nil, errs.NewValueIsRequiredError("quiz id")
	}

	var dtos []SubmissionDTO
	err := r.db.WithContext(ctx).
		Where("quiz_id = ?", quizID).
		Order("created_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

func (r *GormSubmissionRepository) ListRecent(ctx context.Context, limit int) ([]*quiz.Submission, error) {
	if limit <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("limit", limit, 1, math.MaxInt32)
	}

	var dtos []SubmissionDTO
	if err := r.db.WithContext(ctx).Order("created_at DESC, id").Limit(limit).Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

func toDomainList(dtos []SubmissionDTO) ([]*quiz.Submission, error) {
	submissions := make([]*quiz.Submission, 0, len(dtos))
	for _, dto := range dtos {
		s, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		submissions = append(submissions, s)
	}
	return submissions, nil
}
