package services

import (
	"testing"
	"time"

	"freightapi/internal/domain"
	"freightapi/internal/domain/models"
)

func paidBooking() models.Booking {
	paidAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return models.Booking{
		ID: 5, UserID: user.UserID, ServiceID: 1, Route: "Delhi - Mumbai",
		Quantity: 30, Total: 60000, Status: domain.StatusConfirmed,
		BookingDate: "2026-03-01",
		Payment: models.Payment{
			OrderID: "order_1", Currency: "INR", Amount: 6000000,
			Status: models.PaymentStatusPaid, PaymentID: "pay_1", PaidAt: &paidAt,
		},
	}
}

func TestGenerateReceipt(t *testing.T) {
	b := paidBooking()
	svc := ReceiptService{Loader: func(int64) (models.Booking, error) { return b, nil }}

	pdf, filename, err := svc.Generate(user, 5)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatalf("empty PDF output")
	}
	if filename != "RECEIPT_5.pdf" {
		t.Fatalf("filename = %q", filename)
	}
}

func TestGenerateReceiptRequiresPaidStatus(t *testing.T) {
	for _, status := range []string{models.PaymentStatusNone, models.PaymentStatusCreated, "failed", "refunded"} {
		b := paidBooking()
		b.Payment.Status = status
		svc := ReceiptService{Loader: func(int64) (models.Booking, error) { return b, nil }}

		if _, _, err := svc.Generate(user, 5); !domain.IsConflict(err) {
			t.Fatalf("payment status %q should refuse a receipt, got %v", status, err)
		}
	}
}

func TestGenerateReceiptOwnership(t *testing.T) {
	b := paidBooking()
	svc := ReceiptService{Loader: func(int64) (models.Booking, error) { return b, nil }}

	if _, _, err := svc.Generate(other, 5); !domain.IsForbidden(err) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if _, _, err := svc.Generate(admin, 5); err != nil {
		t.Fatalf("admin should be able to issue receipts: %v", err)
	}
}
