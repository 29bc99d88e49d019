package conversation

import (
	"time"

	"github.com/casper4088/quiz-bot/internal/core/domain/model/kernel"
	"github.com/casper4088/quiz-bot/internal/core/domain/model/order"
)

// Snapshot is the storable form of a Session. A confirmed form waiting in
// TakeCompleted is not part of it.
type Snapshot struct {
	ChatID      int64     `json:"chat_id"`
	UserID      int64     `json:"user_id"`
	Step        string    `json:"step"`
	ServiceType string    `json:"service_type,omitempty"`
	Name        string    `json:"name,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Problem     string    `json:"problem,omitempty"`
	Address     string    `json:"address,omitempty"`
	Latitude    *float64  `json:"latitude,omitempty"`
	Longitude   *float64  `json:"longitude,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		ChatID:    s.key.ChatID,
		UserID:    s.key.UserID,
		Step:      string(s.step),
		Name:      s.draft.Name,
		Phone:     s.draft.Phone,
		Problem:   s.draft.Problem,
		Address:   s.draft.Address,
		UpdatedAt: s.updatedAt,
	}
	if s.draft.ServiceType != order.UnknownServiceType {
		snap.ServiceType = s.draft.ServiceType.String()
	}
	if loc := s.draft.Location; loc != nil {
		lat, lon := loc.Latitude(), loc.Longitude()
		snap.Latitude = &lat
		snap.Longitude = &lon
	}
	return snap
}

// RestoreSession rebuilds a session from storage.
func RestoreSession(snap Snapshot) (*Session, error) {
	step, err := ParseStep(snap.Step)
	if err != nil {
		return nil, err
	}

	s := &Session{
		key:       Key{ChatID: snap.ChatID, UserID: snap.UserID},
		step:      step,
		updatedAt: snap.UpdatedAt,
		draft: Draft{
			Name:    snap.Name,
			Phone:   snap.Phone,
			Problem: snap.Problem,
			Address: snap.Address,
		},
	}

	if snap.ServiceType != "" {
		if s.draft.ServiceType, err = order.ParseServiceType(snap.ServiceType); err != nil {
			return nil, err
		}
	}
	if snap.Latitude != nil && snap.Longitude != nil {
		loc, locErr := kernel.NewLocation(*snap.Latitude, *snap.Longitude)
		if locErr != nil {
			return nil, locErr
		}
		s.draft.Location = &loc
	}

	return s, nil
}
