package services

import (
	"context"
	"testing"

	"freightapi/internal/domain"
	"freightapi/internal/domain/models"
)

var secret = []byte("test-signing-key")

func paymentSvc(bookings *fakeBookingStore, gw *fakeGateway) PaymentService {
	return PaymentService{
		Bookings: bookings,
		Gateway:  gw,
		Secret:   secret,
	}
}

func pendingBooking() models.Booking {
	return models.Booking{
		ID: 5, UserID: user.UserID, ServiceID: 1, Route: "Delhi - Mumbai",
		Quantity: 30, Total: 60000, Status: domain.StatusPending,
	}
}

func TestInitiateCreatesOrderInMinorUnits(t *testing.T) {
	bookings := newFakeBookingStore(pendingBooking())
	gw := &fakeGateway{}
	s := paymentSvc(bookings, gw)

	p, err := s.Initiate(context.Background(), user, 5)
	if err != nil {
		t.Fatalf("initiate failed: %v", err)
	}
	if p.Amount != 6000000 {
		t.Fatalf("amount = %d, want 6000000 paise", p.Amount)
	}
	if p.Currency != "INR" || p.Status != models.PaymentStatusCreated {
		t.Fatalf("unexpected payment: %+v", p)
	}
	if stored := bookings.bookings[5].Payment; stored.OrderID != p.OrderID {
		t.Fatalf("order not persisted on booking: %+v", stored)
	}
}

func TestInitiateReusesOpenOrder(t *testing.T) {
	bookings := newFakeBookingStore(pendingBooking())
	gw := &fakeGateway{}
	s := paymentSvc(bookings, gw)

	first, err := s.Initiate(context.Background(), user, 5)
	if err != nil {
		t.Fatalf("first initiate failed: %v", err)
	}
	second, err := s.Initiate(context.Background(), user, 5)
	if err != nil {
		t.Fatalf("second initiate failed: %v", err)
	}
	if second.OrderID != first.OrderID {
		t.Fatalf("second initiate created a new order: %s vs %s", second.OrderID, first.OrderID)
	}
	if len(gw.orders) != 1 {
		t.Fatalf("gateway should only be called once, got %d orders", len(gw.orders))
	}
}

func TestInitiateGuards(t *testing.T) {
	zero := pendingBooking()
	zero.ID = 6
	zero.Total = 0
	paid := pendingBooking()
	paid.ID = 7
	paid.Payment.Status = models.PaymentStatusPaid
	bookings := newFakeBookingStore(pendingBooking(), zero, paid)
	s := paymentSvc(bookings, &fakeGateway{})

	if _, err := s.Initiate(context.Background(), other, 5); !domain.IsForbidden(err) {
		t.Fatalf("non-owner initiate should be forbidden, got %v", err)
	}
	if _, err := s.Initiate(context.Background(), user, 6); !domain.IsValidation(err) {
		t.Fatalf("zero total should fail validation, got %v", err)
	}
	if _, err := s.Initiate(context.Background(), user, 7); !domain.IsConflict(err) {
		t.Fatalf("already-paid booking should conflict, got %v", err)
	}
	if _, err := s.Initiate(context.Background(), user, 99); !domain.IsNotFound(err) {
		t.Fatalf("missing booking should be not found, got %v", err)
	}
}

func TestInitiateSurfacesGatewayError(t *testing.T) {
	bookings := newFakeBookingStore(pendingBooking())
	gw := &fakeGateway{failErr: domain.GatewayError{Code: "SERVER_ERROR", Msg: "upstream down"}}
	s := paymentSvc(bookings, gw)

	if _, err := s.Initiate(context.Background(), user, 5); !domain.IsGateway(err) {
		t.Fatalf("expected gateway error, got %v", err)
	}
	if bookings.bookings[5].Payment.OrderID != "" {
		t.Fatalf("no order should be stored on gateway failure")
	}
}

func TestVerifyWrongSignatureLeavesBookingUnchanged(t *testing.T) {
	b := pendingBooking()
	b.Payment = models.Payment{OrderID: "order_1", Currency: "INR", Amount: 6000000, Status: models.PaymentStatusCreated}
	bookings := newFakeBookingStore(b)
	s := paymentSvc(bookings, &fakeGateway{})

	_, err := s.Verify(user, 5, "order_1", "pay_1", "forged-signature")
	if !domain.IsSignature(err) {
		t.Fatalf("expected signature error, got %v", err)
	}
	stored := bookings.bookings[5]
	if stored.Status != domain.StatusPending || stored.Payment.Status != models.PaymentStatusCreated {
		t.Fatalf("booking mutated on failed verification: %+v", stored)
	}
}

func TestVerifyCorrectSignatureConfirmsExactlyOnce(t *testing.T) {
	b := pendingBooking()
	b.Payment = models.Payment{OrderID: "order_1", Currency: "INR", Amount: 6000000, Status: models.PaymentStatusCreated}
	bookings := newFakeBookingStore(b)
	notifier := &fakeNotifier{}
	s := paymentSvc(bookings, &fakeGateway{})
	s.Notifier = notifier

	sig := Sign(secret, "order_1", "pay_1")
	got, err := s.Verify(user, 5, "order_1", "pay_1", sig)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if got.Status != domain.StatusConfirmed || got.Payment.Status != models.PaymentStatusPaid {
		t.Fatalf("unexpected state after verify: %+v", got)
	}
	if got.Payment.PaidAt == nil {
		t.Fatalf("paid_at not set")
	}
	if len(notifier.events) != 1 {
		t.Fatalf("expected payment notification")
	}

	// replay of the same pair is an idempotent success
	again, err := s.Verify(user, 5, "order_1", "pay_1", sig)
	if err != nil {
		t.Fatalf("replay should be idempotent: %v", err)
	}
	if again.Status != domain.StatusConfirmed {
		t.Fatalf("replay changed state: %+v", again)
	}
}

// cancelAfterReadStore hands Verify a stale Pending snapshot while the
// underlying booking has already been cancelled, the interleaving an expiry
// sweep or admin cancel produces between Verify's read and its write.
type cancelAfterReadStore struct {
	*fakeBookingStore
}

func (s *cancelAfterReadStore) GetByID(id int64) (models.Booking, error) {
	b, err := s.fakeBookingStore.GetByID(id)
	if err == nil && b.Status == domain.StatusPending {
		_ = s.fakeBookingStore.UpdateStatus(id, domain.StatusCancelled, "")
	}
	return b, err
}

func TestVerifyLosingRaceWithCancellationDoesNotConfirm(t *testing.T) {
	b := pendingBooking()
	b.Payment = models.Payment{OrderID: "order_1", Currency: "INR", Amount: 6000000, Status: models.PaymentStatusCreated}
	store := &cancelAfterReadStore{fakeBookingStore: newFakeBookingStore(b)}
	s := paymentSvc(nil, &fakeGateway{})
	s.Bookings = store

	sig := Sign(secret, "order_1", "pay_1")
	if _, err := s.Verify(user, 5, "order_1", "pay_1", sig); !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
	got := store.fakeBookingStore.bookings[5]
	if got.Status != domain.StatusCancelled || got.Payment.Status == models.PaymentStatusPaid {
		t.Fatalf("cancelled booking was re-confirmed: %+v", got)
	}
}

func TestVerifyNeverReconfirmsCancelledBooking(t *testing.T) {
	b := pendingBooking()
	b.Status = domain.StatusCancelled
	b.Payment = models.Payment{OrderID: "order_1", Status: models.PaymentStatusCreated}
	bookings := newFakeBookingStore(b)
	s := paymentSvc(bookings, &fakeGateway{})

	sig := Sign(secret, "order_1", "pay_1")
	if _, err := s.Verify(user, 5, "order_1", "pay_1", sig); !domain.IsConflict(err) {
		t.Fatalf("cancelled booking should never re-confirm, got %v", err)
	}
	if bookings.bookings[5].Status != domain.StatusCancelled {
		t.Fatalf("cancelled booking mutated")
	}
}

func TestVerifyRejectsMismatchedOrder(t *testing.T) {
	b := pendingBooking()
	b.Payment = models.Payment{OrderID: "order_1", Status: models.PaymentStatusCreated}
	bookings := newFakeBookingStore(b)
	s := paymentSvc(bookings, &fakeGateway{})

	sig := Sign(secret, "order_2", "pay_1")
	if _, err := s.Verify(user, 5, "order_2", "pay_1", sig); !domain.IsValidation(err) {
		t.Fatalf("mismatched order id should fail validation, got %v", err)
	}
}

func TestVerifyOwnershipCheck(t *testing.T) {
	b := pendingBooking()
	b.Payment = models.Payment{OrderID: "order_1", Status: models.PaymentStatusCreated}
	bookings := newFakeBookingStore(b)
	s := paymentSvc(bookings, &fakeGateway{})

	sig := Sign(secret, "order_1", "pay_1")
	if _, err := s.Verify(other, 5, "order_1", "pay_1", sig); !domain.IsForbidden(err) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestSignVerifySignature(t *testing.T) {
	sig := Sign(secret, "order_1", "pay_1")
	if !VerifySignature(secret, "order_1", "pay_1", sig) {
		t.Fatalf("signature should verify")
	}
	if VerifySignature(secret, "order_1", "pay_2", sig) {
		t.Fatalf("signature over a different pair should not verify")
	}
	if VerifySignature([]byte("other-key"), "order_1", "pay_1", sig) {
		t.Fatalf("signature under a different key should not verify")
	}
}
