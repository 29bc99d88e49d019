// Package submissionrepo stores graded quiz attempts.
package submissionrepo

import (
	"time"

	"github.com/casper4088/quiz-bot/internal/core/domain/model/kernel"
	"github.com/casper4088/quiz-bot/internal/core/domain/model/quiz"

	"github.com/google/uuid"
)

type SubmissionDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    int64     `gorm:"not null;index"`
	FullName  string    `gorm:"size:256"`
	Username  string    `gorm:"size:64"`
	QuizID    string    `gorm:"size:64;not null;index"`
	Answers   string    `gorm:"type:text"`
	Score     int       `gorm:"not null"`
	Total     int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null;index"`
}

func (SubmissionDTO) TableName() string {
	return "submissions"
}

func fromDomain(s *quiz.Submission) SubmissionDTO {
	p := s.Participant()
	return SubmissionDTO{
		ID:        s.ID().Bytes(),
		UserID:    p.UserID.Int64(),
		FullName:  p.FullName,
		Username:  p.Username,
		QuizID:    s.QuizID(),
		Answers:   s.Answers(),
		Score:     s.Score(),
		Total:     s.Total(),
		CreatedAt: s.CreatedAt().UTC(),
	}
}

func toDomain(dto SubmissionDTO) (*quiz.Submission, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	participant := quiz.Participant{
		UserID:   kernel.UserID(dto.UserID),
		FullName: dto.FullName,
		Username: dto.Username,
	}

	return quiz.RestoreSubmission(id, participant, dto.QuizID, dto.Answers, dto.Score, dto.Total, dto.CreatedAt.UTC())
}
