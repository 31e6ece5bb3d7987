package services

import (
	"freightapi/internal/domain/models"
	"freightapi/internal/utils"
)

// NotificationService writes user-facing event records. Creation failures
// are logged and swallowed; a broken notification sink must never fail the
// booking or payment operation that triggered it.
type NotificationService struct {
	Notifications NotificationStore
	RequestID     string
}

func (s NotificationService) Notify(userID int64, title, message, typ string, bookingID int64) {
	if s.Notifications == nil {
		return
	}
	n := models.Notification{
		UserID:    userID,
		Title:     title,
		Message:   message,
		Type:      typ,
		BookingID: bookingID,
	}
	if _, err := s.Notifications.Create(n); err != nil {
		utils.LogEvent(s.RequestID, "notify", "create", "dropped notification: "+err.Error())
	}
}

func (s NotificationService) ListForUser(userID int64) ([]models.Notification, error) {
	return s.Notifications.ListByUser(userID)
}

func (s NotificationService) MarkRead(id, userID int64) error {
	return s.Notifications.MarkRead(id, userID)
}

func (s NotificationService) MarkAllRead(userID int64) error {
	return s.Notifications.MarkAllRead(userID)
}
