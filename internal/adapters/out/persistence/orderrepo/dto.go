// Package orderrepo maps the order aggregate to the orders table.
package orderrepo

import (
	"time"

	"github.com/casper4088/quiz-bot/internal/core/domain/model/kernel"
	"github.com/casper4088/quiz-bot/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is one row of the orders table. Status and service type are stored
// in their text form so rows stay readable in exports and ad hoc SQL.
type OrderDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	RequesterID int64     `gorm:"not null;index"`
	ServiceType string    `gorm:"size:32;not null"`
	Name        string    `gorm:"size:100;not null"`
	Phone       string    `gorm:"size:32;not null"`
	Problem     string    `gorm:"size:1000;not null"`
	Address     string    `gorm:"size:300"`
	Latitude    *float64
	Longitude   *float64
	Status      string `gorm:"size:16;not null;index"`
	AssignedTo  *int64 `gorm:"index"`
	Rating      *int
	RatedAgent  *int64
	CreatedAt   time.Time `gorm:"not null;index"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(o *order.Order) OrderDTO {
	d := o.Details()
	dto := OrderDTO{
		ID:          o.ID().Bytes(),
		RequesterID: o.Requester().Int64(),
		ServiceType: d.ServiceType().String(),
		Name:        d.Name(),
		Phone:       d.Phone(),
		Problem:     d.Problem(),
		Address:     d.Address(),
		Status:      o.Status().String(),
		CreatedAt:   o.CreatedAt().UTC(),
	}

	if loc := d.Location(); loc != nil {
		lat, lon := loc.Latitude(), loc.Longitude()
		dto.Latitude = &lat
		dto.Longitude = &lon
	}
	if agent := o.AssignedTo(); agent != nil {
		raw := agent.Int64()
		dto.AssignedTo = &raw
	}
	if rating := o.Rating(); rating != nil {
		raw := rating.Int()
		dto.Rating = &raw
	}
	if agent := o.RatedAgent(); agent != nil {
		raw := agent.Int64()
		dto.RatedAgent = &raw
	}

	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	serviceType, err := order.ParseServiceType(dto.ServiceType)
	if err != nil {
		return nil, err
	}

	var location *kernel.Location
	if dto.Latitude != nil && dto.Longitude != nil {
		loc, locErr := kernel.NewLocation(*dto.Latitude, *dto.Longitude)
		if locErr != nil {
			return nil, locErr
		}
		location = &loc
	}

	details, err := order.NewDetails(serviceType, dto.Name, dto.Phone, dto.Problem, dto.Address, location)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		kernel.UserID(dto.RequesterID),
		details,
		dto.CreatedAt.UTC(),
		status,
		userIDPtr(dto.AssignedTo),
		dto.Rating,
		userIDPtr(dto.RatedAgent),
	)
}

func userIDPtr(raw *int64) *kernel.UserID {
	if raw == nil {
		return nil
	}
	id := kernel.UserID(*raw)
	return &id
}
