package services

import (
	"context"
	"fmt"
	"time"

	"freightapi/internal/domain"
	"freightapi/internal/domain/models"
	"freightapi/internal/gateway"
)

// fakeServiceStore mirrors the repository's conditional-update semantics in
// memory.
type fakeServiceStore struct {
	services map[int64]*models.FreightService
	releases []int64
}

func newFakeServiceStore(svcs ...models.FreightService) *fakeServiceStore {
	f := &fakeServiceStore{services: map[int64]*models.FreightService{}}
	for i := range svcs {
		s := svcs[i]
		f.services[s.ID] = &s
	}
	return f
}

func (f *fakeServiceStore) GetByID(id int64) (models.FreightService, error) {
	s, ok := f.services[id]
	if !ok {
		return models.FreightService{}, domain.NotFoundError{Resource: "service"}
	}
	return *s, nil
}

func (f *fakeServiceStore) ReserveCapacity(id int64, qty int) error {
	s, ok := f.services[id]
	if !ok {
		return domain.NotFoundError{Resource: "service"}
	}
	if s.Available < qty {
		return domain.CapacityError{ServiceID: id, Requested: qty}
	}
	s.Available -= qty
	return nil
}

func (f *fakeServiceStore) ReleaseCapacity(id int64, qty int) error {
	s, ok := f.services[id]
	if !ok {
		return domain.NotFoundError{Resource: "service"}
	}
	s.Available += qty
	if s.Available > s.Capacity {
		s.Available = s.Capacity
	}
	f.releases = append(f.releases, id)
	return nil
}

type fakeBookingStore struct {
	bookings map[int64]*models.Booking
	nextID   int64
}

func newFakeBookingStore(bookings ...models.Booking) *fakeBookingStore {
	f := &fakeBookingStore{bookings: map[int64]*models.Booking{}, nextID: 1}
	for i := range bookings {
		b := bookings[i]
		f.bookings[b.ID] = &b
		if b.ID >= f.nextID {
			f.nextID = b.ID + 1
		}
	}
	return f
}

func (f *fakeBookingStore) Create(b models.Booking) (int64, error) {
	b.ID = f.nextID
	b.CreatedAt = time.Now()
	f.nextID++
	f.bookings[b.ID] = &b
	return b.ID, nil
}

func (f *fakeBookingStore) GetByID(id int64) (models.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return models.Booking{}, domain.NotFoundError{Resource: "booking"}
	}
	return *b, nil
}

func (f *fakeBookingStore) ListByUser(userID int64) ([]models.Booking, error) {
	out := []models.Booking{}
	for _, b := range f.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingStore) ListAll() ([]models.Booking, error) {
	out := []models.Booking{}
	for _, b := range f.bookings {
		out = append(out, *b)
	}
	return out, nil
}

func (f *fakeBookingStore) ListStalePending(cutoff time.Time) ([]models.Booking, error) {
	out := []models.Booking{}
	for _, b := range f.bookings {
		if b.Status == domain.StatusPending && b.Payment.Status != models.PaymentStatusPaid && b.CreatedAt.Before(cutoff) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingStore) UpdateStatus(id int64, status, prev domain.BookingStatus) error {
	b, ok := f.bookings[id]
	if !ok {
		return domain.NotFoundError{Resource: "booking"}
	}
	b.Status = status
	b.PrevStatus = prev
	return nil
}

func (f *fakeBookingStore) SavePaymentOrder(id int64, orderID, currency string, amount int64) error {
	b, ok := f.bookings[id]
	if !ok {
		return domain.NotFoundError{Resource: "booking"}
	}
	b.Payment.OrderID = orderID
	b.Payment.Currency = currency
	b.Payment.Amount = amount
	b.Payment.Status = models.PaymentStatusCreated
	return nil
}

func (f *fakeBookingStore) MarkPaid(id int64, paymentID, signature string, paidAt time.Time) error {
	b, ok := f.bookings[id]
	if !ok {
		return domain.NotFoundError{Resource: "booking"}
	}
	// mirror the repository's conditional update
	if b.Payment.Status == models.PaymentStatusPaid ||
		b.Status == domain.StatusCancelled || b.Status == domain.StatusDeclined {
		return domain.ConflictError{Resource: "booking", Msg: "no longer payable"}
	}
	b.Payment.PaymentID = paymentID
	b.Payment.Signature = signature
	b.Payment.Status = models.PaymentStatusPaid
	b.Payment.PaidAt = &paidAt
	b.Status = domain.StatusConfirmed
	b.PrevStatus = ""
	return nil
}

type fakeNotifier struct {
	events []string
}

func (f *fakeNotifier) Notify(userID int64, title, message, typ string, bookingID int64) {
	f.events = append(f.events, fmt.Sprintf("%d:%s", bookingID, title))
}

type fakeGateway struct {
	orders  []gateway.Order
	nextID  int
	failErr error
}

func (f *fakeGateway) CreateOrder(_ context.Context, amount int64, currency, receipt string, _ map[string]string) (gateway.Order, error) {
	if f.failErr != nil {
		return gateway.Order{}, f.failErr
	}
	f.nextID++
	order := gateway.Order{
		ID:       fmt.Sprintf("order_%d", f.nextID),
		Amount:   amount,
		Currency: currency,
		Receipt:  receipt,
		Status:   "created",
	}
	f.orders = append(f.orders, order)
	return order, nil
}
