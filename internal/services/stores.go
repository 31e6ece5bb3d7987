package services

import (
	"time"

	"freightapi/internal/domain"
	"freightapi/internal/domain/models"
)

// ServiceStore is the slice of the service repository the ledger needs.
type ServiceStore interface {
	GetByID(id int64) (models.FreightService, error)
	ReserveCapacity(id int64, qty int) error
	ReleaseCapacity(id int64, qty int) error
}

type BookingStore interface {
	Create(b models.Booking) (int64, error)
	GetByID(id int64) (models.Booking, error)
	ListByUser(userID int64) ([]models.Booking, error)
	ListAll() ([]models.Booking, error)
	ListStalePending(cutoff time.Time) ([]models.Booking, error)
	UpdateStatus(id int64, status, prev domain.BookingStatus) error
	SavePaymentOrder(id int64, orderID, currency string, amount int64) error
	MarkPaid(id int64, paymentID, signature string, paidAt time.Time) error
}

type NotificationStore interface {
	Create(n models.Notification) (int64, error)
	ListByUser(userID int64) ([]models.Notification, error)
	MarkRead(id, userID int64) error
	MarkAllRead(userID int64) error
}

// Notifier emits user-facing events. Implementations never fail the caller;
// delivery problems are logged and dropped.
type Notifier interface {
	Notify(userID int64, title, message, typ string, bookingID int64)
}
