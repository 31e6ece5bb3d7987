package models

import (
	"time"

	"freightapi/internal/domain"
)

// Booking is a user's reservation of a quantity of a service's capacity.
// Route and Total are denormalized at creation time and never recomputed.
type Booking struct {
	ID          int64                `json:"id"`
	UserID      int64                `json:"user_id"`
	ServiceID   int64                `json:"service_id"`
	Route       string               `json:"route"`
	Quantity    int                  `json:"quantity"`
	Total       int64                `json:"total"`
	Status      domain.BookingStatus `json:"status"`
	PrevStatus  domain.BookingStatus `json:"prev_status,omitempty"`
	BookingDate string               `json:"booking_date"`
	Payment     Payment              `json:"payment"`
	CreatedAt   time.Time            `json:"created_at"`
}
