package queries

import (
	"time"

	"github.com/google/uuid"
)

// OrderView is the read model of an order for the HTTP API.
type OrderView struct {
	ID          uuid.UUID `json:"id"`
	Requester   int64     `json:"requester"`
	ServiceType string    `json:"service_type"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	Problem     string    `json:"problem"`
	Address     string    `json:"address,omitempty"`
	Latitude    *float64  `json:"latitude,omitempty"`
	Longitude   *float64  `json:"longitude,omitempty"`
	Status      string    `json:"status"`
	AssignedTo  *int64    `json:"assigned_to,omitempty"`
	Rating      *int      `json:"rating,omitempty"`
	RatedAgent  *int64    `json:"rated_agent,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

const orderViewColumns = `
	id,
	requester_id AS requester,
	service_type,
	name,
	phone,
	problem,
	address,
	latitude,
	longitude,
	status,
	assigned_to,
	rating,
	rated_agent,
	created_at
`
