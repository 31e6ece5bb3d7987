package handlers

import (
	"net/http"

	"freightapi/internal/http/middleware"
	"freightapi/internal/repositories"
	"freightapi/internal/services"

	"github.com/gin-gonic/gin"
)

func newNotificationService(c *gin.Context) services.NotificationService {
	return services.NotificationService{
		Notifications: repositories.NotificationRepo{},
		RequestID:     middleware.GetRequestID(c),
	}
}

// GET /api/notifications
func ListNotifications(c *gin.Context) {
	rc := middleware.Principal(c)
	items, err := newNotificationService(c).ListForUser(rc.UserID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": items})
}

// PUT /api/notifications/:id/read
func MarkNotificationRead(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	rc := middleware.Principal(c)
	if err := newNotificationService(c).MarkRead(id, rc.UserID); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "notification marked read"})
}

// PUT /api/notifications/read-all
func MarkAllNotificationsRead(c *gin.Context) {
	rc := middleware.Principal(c)
	if err := newNotificationService(c).MarkAllRead(rc.UserID); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "all notifications marked read"})
}
