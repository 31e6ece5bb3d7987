package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"freightapi/internal/domain"
	"freightapi/internal/domain/models"
	"freightapi/internal/gateway"
	"freightapi/internal/metrics"
	"freightapi/internal/utils"
)

// PaymentService owns the payment handshake: creating a gateway order for a
// booking and verifying the signed (orderId, paymentId) pair the client
// relays back. The HMAC check is the sole proof a payment happened; no
// server-to-gateway confirmation call is made.
type PaymentService struct {
	Bookings  BookingStore
	Gateway   gateway.Gateway
	Secret    []byte
	Currency  string
	Notifier  Notifier
	RequestID string
}

func (s PaymentService) currency() string {
	if s.Currency != "" {
		return s.Currency
	}
	return "INR"
}

// Initiate creates a gateway order for the booking's total, in minor units.
// Re-initiating while an unpaid order is open returns that order instead of
// orphaning it at the gateway.
func (s PaymentService) Initiate(ctx context.Context, rc domain.RequestContext, bookingID int64) (models.Payment, error) {
	b, err := s.Bookings.GetByID(bookingID)
	if err != nil {
		return models.Payment{}, err
	}
	if b.UserID != rc.UserID {
		return models.Payment{}, domain.ForbiddenError{Msg: "not your booking"}
	}
	if b.Total <= 0 {
		return models.Payment{}, domain.ValidationError{Field: "total", Msg: "must be a positive amount"}
	}
	if b.Payment.Status == models.PaymentStatusPaid {
		return models.Payment{}, domain.ConflictError{Resource: "payment", Msg: "booking already paid"}
	}
	if b.Payment.OrderID != "" && b.Payment.Status == models.PaymentStatusCreated {
		return b.Payment, nil
	}

	receipt := fmt.Sprintf("bk_%d_%d", bookingID, time.Now().UnixNano())
	order, err := s.Gateway.CreateOrder(ctx, utils.MinorUnits(b.Total), s.currency(), receipt,
		map[string]string{"booking_id": strconv.FormatInt(bookingID, 10)})
	if err != nil {
		return models.Payment{}, err
	}

	if err := s.Bookings.SavePaymentOrder(bookingID, order.ID, order.Currency, order.Amount); err != nil {
		return models.Payment{}, domain.InternalError{Msg: "failed to record gateway order", Err: err}
	}

	utils.LogEvent(s.RequestID, "payment", "initiate",
		fmt.Sprintf("booking_id=%d order_id=%s amount=%d", bookingID, order.ID, order.Amount))
	return models.Payment{
		OrderID:  order.ID,
		Currency: order.Currency,
		Amount:   order.Amount,
		Status:   models.PaymentStatusCreated,
	}, nil
}

// Verify checks the relayed signature against HMAC-SHA256 over
// "orderId|paymentId". On match the booking is marked paid and forced to
// Confirmed. A replay of an already-verified pair is an idempotent success;
// a cancelled or declined booking is never re-confirmed.
func (s PaymentService) Verify(rc domain.RequestContext, bookingID int64, orderID, paymentID, signature string) (models.Booking, error) {
	b, err := s.Bookings.GetByID(bookingID)
	if err != nil {
		return models.Booking{}, err
	}
	if b.UserID != rc.UserID {
		return models.Booking{}, domain.ForbiddenError{Msg: "not your booking"}
	}
	if b.Status == domain.StatusCancelled || b.Status == domain.StatusDeclined {
		metrics.PaymentsVerifiedTotal.WithLabelValues("rejected").Inc()
		return models.Booking{}, domain.ConflictError{
			Resource: "booking",
			Msg:      fmt.Sprintf("cannot confirm payment on a %s booking", b.Status),
		}
	}
	if b.Payment.Status == models.PaymentStatusPaid {
		if b.Payment.OrderID == orderID && b.Payment.PaymentID == paymentID {
			return b, nil
		}
		metrics.PaymentsVerifiedTotal.WithLabelValues("rejected").Inc()
		return models.Booking{}, domain.ConflictError{Resource: "payment", Msg: "already verified with a different payment"}
	}
	if b.Payment.OrderID == "" || b.Payment.OrderID != orderID {
		return models.Booking{}, domain.ValidationError{Field: "order_id", Msg: "does not match the initiated order"}
	}

	if !VerifySignature(s.Secret, orderID, paymentID, signature) {
		metrics.PaymentsVerifiedTotal.WithLabelValues("invalid_signature").Inc()
		utils.LogEvent(s.RequestID, "payment", "verify",
			fmt.Sprintf("booking_id=%d signature mismatch", bookingID))
		return models.Booking{}, domain.SignatureError{}
	}

	now := utils.NowUTC()
	if err := s.Bookings.MarkPaid(bookingID, paymentID, signature, now); err != nil {
		return models.Booking{}, err
	}
	metrics.PaymentsVerifiedTotal.WithLabelValues("ok").Inc()

	b.Payment.PaymentID = paymentID
	b.Payment.Signature = signature
	b.Payment.Status = models.PaymentStatusPaid
	b.Payment.PaidAt = &now
	b.Status = domain.StatusConfirmed
	b.PrevStatus = ""

	if s.Notifier != nil {
		s.Notifier.Notify(b.UserID, "Payment confirmed",
			fmt.Sprintf("Payment of %s for booking #%d was received. Your booking is confirmed.",
				utils.FormatINR(b.Total), b.ID),
			"payment", b.ID)
	}
	return b, nil
}

// Sign computes the hex HMAC-SHA256 signature over "orderId|paymentId".
func Sign(secret []byte, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature compares in constant time.
func VerifySignature(secret []byte, orderID, paymentID, signature string) bool {
	expected := Sign(secret, orderID, paymentID)
	return hmac.Equal([]byte(expected), []byte(signature))
}
