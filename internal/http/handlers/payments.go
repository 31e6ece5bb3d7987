package handlers

import (
	"net/http"

	"freightapi/internal/gateway"
	"freightapi/internal/http/middleware"
	"freightapi/internal/repositories"
	"freightapi/internal/services"

	"github.com/gin-gonic/gin"
)

func newPaymentService(c *gin.Context) services.PaymentService {
	reqID := middleware.GetRequestID(c)
	env := getEnv()
	return services.PaymentService{
		Bookings: repositories.BookingRepo{},
		Gateway: &gateway.Client{
			BaseURL:   env.PaymentBaseURL,
			KeyID:     env.PaymentKeyID,
			KeySecret: env.PaymentKeySecret,
		},
		Secret:   []byte(env.PaymentKeySecret),
		Currency: env.PaymentCurrency,
		Notifier: services.NotificationService{
			Notifications: repositories.NotificationRepo{},
			RequestID:     reqID,
		},
		RequestID: reqID,
	}
}

// POST /api/bookings/:id/pay/initiate
func InitiatePayment(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	order, err := newPaymentService(c).Initiate(c.Request.Context(), middleware.Principal(c), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

type verifyRequest struct {
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id"`
	Signature string `json:"signature"`
}

// POST /api/bookings/:id/pay/verify
func VerifyPayment(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	var req verifyRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	booking, err := newPaymentService(c).Verify(middleware.Principal(c), id, req.OrderID, req.PaymentID, req.Signature)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "payment verified",
		"booking": booking,
	})
}

// GET /api/bookings/:id/receipt
func DownloadReceipt(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	svc := services.ReceiptService{
		Bookings:  repositories.BookingRepo{},
		RequestID: middleware.GetRequestID(c),
	}
	pdf, filename, err := svc.Generate(middleware.Principal(c), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
