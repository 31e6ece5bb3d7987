package handlers

import (
	"net/http"

	"freightapi/internal/domain"
	"freightapi/internal/http/middleware"
	"freightapi/internal/repositories"
	"freightapi/internal/services"

	"github.com/gin-gonic/gin"
)

func newBookingService(c *gin.Context) services.BookingService {
	reqID := middleware.GetRequestID(c)
	return services.BookingService{
		Bookings: repositories.BookingRepo{},
		Ledger: services.CapacityLedger{
			Services:  repositories.ServiceRepo{},
			RequestID: reqID,
		},
		Notifier: services.NotificationService{
			Notifications: repositories.NotificationRepo{},
			RequestID:     reqID,
		},
		RequestID: reqID,
	}
}

type createBookingRequest struct {
	ServiceID int64 `json:"service_id"`
	Quantity  int   `json:"quantity"`
}

// POST /api/bookings
func CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	booking, err := newBookingService(c).Create(middleware.Principal(c), req.ServiceID, req.Quantity)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// GET /api/bookings  (own bookings; admins see all)
func ListBookings(c *gin.Context) {
	bookings, err := newBookingService(c).List(middleware.Principal(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// GET /api/bookings/:id
func GetBooking(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	booking, err := newBookingService(c).Get(middleware.Principal(c), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// POST /api/bookings/:id/request-cancel
func RequestBookingCancellation(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	booking, err := newBookingService(c).RequestCancellation(middleware.Principal(c), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

type statusRequest struct {
	Status string `json:"status"`
}

// PUT /api/bookings/:id/status (admin)
func UpdateBookingStatus(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	var req statusRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	next, err := domain.ParseBookingStatus(req.Status)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	booking, err := newBookingService(c).SetStatus(middleware.Principal(c), id, next)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}
