package services

import (
	"fmt"
	"time"

	"freightapi/internal/domain"
	"freightapi/internal/domain/models"
	"freightapi/internal/metrics"
	"freightapi/internal/utils"
)

// BookingService owns the booking lifecycle: creation against the capacity
// ledger, the constrained status transitions, and the stale-booking sweep.
type BookingService struct {
	Bookings  BookingStore
	Ledger    CapacityLedger
	Notifier  Notifier
	RequestID string
}

// Create reserves capacity, then persists the booking in Pending. Total is
// quantity x price-per-ton, computed once here and never recomputed.
func (s BookingService) Create(rc domain.RequestContext, serviceID int64, qty int) (models.Booking, error) {
	if qty <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "quantity", Msg: "must be positive"}
	}

	svc, err := s.Ledger.Reserve(serviceID, qty)
	if err != nil {
		return models.Booking{}, err
	}

	b := models.Booking{
		UserID:      rc.UserID,
		ServiceID:   serviceID,
		Route:       svc.Route,
		Quantity:    qty,
		Total:       int64(qty) * svc.PricePerTon,
		Status:      domain.StatusPending,
		BookingDate: utils.FormatDate(time.Now()),
	}

	id, err := s.Bookings.Create(b)
	if err != nil {
		// the debit already happened; credit it back so capacity is not leaked
		if rerr := s.Ledger.Release(serviceID, qty); rerr != nil {
			utils.LogEvent(s.RequestID, "booking", "create",
				fmt.Sprintf("rollback release failed service_id=%d qty=%d: %v", serviceID, qty, rerr))
		}
		return models.Booking{}, domain.InternalError{Msg: "failed to save booking", Err: err}
	}
	b.ID = id

	metrics.BookingsCreatedTotal.Inc()
	s.notify(rc.UserID, "Booking received",
		fmt.Sprintf("Booking #%d for %d tons on %s is pending confirmation.", id, qty, svc.Route),
		"booking", id)
	return b, nil
}

// Get returns a booking visible to the caller: owners see their own, admins
// see all.
func (s BookingService) Get(rc domain.RequestContext, bookingID int64) (models.Booking, error) {
	b, err := s.Bookings.GetByID(bookingID)
	if err != nil {
		return models.Booking{}, err
	}
	if !rc.IsAdmin() && b.UserID != rc.UserID {
		return models.Booking{}, domain.ForbiddenError{Msg: "not your booking"}
	}
	return b, nil
}

func (s BookingService) List(rc domain.RequestContext) ([]models.Booking, error) {
	if rc.IsAdmin() {
		return s.Bookings.ListAll()
	}
	return s.Bookings.ListByUser(rc.UserID)
}

// SetStatus applies an admin transition. The single user-initiated
// transition, Cancellation Requested, is delegated to RequestCancellation.
// Transitions outside the table are rejected; entering Cancelled or Declined
// releases the booking's tonnage back to the service.
func (s BookingService) SetStatus(rc domain.RequestContext, bookingID int64, next domain.BookingStatus) (models.Booking, error) {
	if !next.IsValid() {
		return models.Booking{}, domain.ValidationError{Field: "status", Msg: "unknown booking status: " + string(next)}
	}
	if next == domain.StatusCancellationRequested {
		return s.RequestCancellation(rc, bookingID)
	}
	if !rc.IsAdmin() {
		return models.Booking{}, domain.ForbiddenError{Msg: "only admins may update booking status"}
	}

	b, err := s.Bookings.GetByID(bookingID)
	if err != nil {
		return models.Booking{}, err
	}
	if !b.Status.CanTransitionTo(next) {
		return models.Booking{}, domain.ValidationError{
			Field: "status",
			Msg:   fmt.Sprintf("cannot move from %s to %s", b.Status, next),
		}
	}
	if b.Status == domain.StatusCancellationRequested && next != domain.StatusCancelled && next != b.PrevStatus {
		return models.Booking{}, domain.ValidationError{
			Field: "status",
			Msg:   fmt.Sprintf("a cancellation request resolves to %s or back to %s", domain.StatusCancelled, b.PrevStatus),
		}
	}

	if err := s.Bookings.UpdateStatus(bookingID, next, ""); err != nil {
		return models.Booking{}, err
	}

	if next.ReleasesCapacity() {
		if err := s.Ledger.Release(b.ServiceID, b.Quantity); err != nil {
			return models.Booking{}, domain.InternalError{
				Msg: fmt.Sprintf("booking #%d moved to %s but capacity release failed", bookingID, next),
				Err: err,
			}
		}
	}

	b.Status = next
	b.PrevStatus = ""
	s.notify(b.UserID, "Booking status updated",
		fmt.Sprintf("Booking #%d is now %s.", b.ID, next),
		"status", b.ID)
	return b, nil
}

// RequestCancellation lets the owning user flag a non-terminal booking for
// cancellation. The interrupted status is recorded so an admin can restore
// it.
func (s BookingService) RequestCancellation(rc domain.RequestContext, bookingID int64) (models.Booking, error) {
	b, err := s.Bookings.GetByID(bookingID)
	if err != nil {
		return models.Booking{}, err
	}
	if b.UserID != rc.UserID {
		return models.Booking{}, domain.ForbiddenError{Msg: "you may only cancel your own bookings"}
	}
	if b.Status == domain.StatusCancellationRequested {
		return b, nil
	}
	if b.Status.IsTerminal() {
		return models.Booking{}, domain.ConflictError{
			Resource: "booking",
			Msg:      fmt.Sprintf("already %s", b.Status),
		}
	}

	if err := s.Bookings.UpdateStatus(bookingID, domain.StatusCancellationRequested, b.Status); err != nil {
		return models.Booking{}, err
	}

	b.PrevStatus = b.Status
	b.Status = domain.StatusCancellationRequested
	s.notify(b.UserID, "Cancellation requested",
		fmt.Sprintf("Cancellation of booking #%d is awaiting review.", b.ID),
		"status", b.ID)
	return b, nil
}

// ExpireStale cancels unpaid Pending bookings older than ttl and releases
// their tonnage. Returns the number of bookings expired.
func (s BookingService) ExpireStale(ttl time.Duration) (int, error) {
	if ttl <= 0 {
		return 0, nil
	}
	stale, err := s.Bookings.ListStalePending(time.Now().Add(-ttl))
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, b := range stale {
		if err := s.Bookings.UpdateStatus(b.ID, domain.StatusCancelled, ""); err != nil {
			utils.LogEvent(s.RequestID, "booking", "expire",
				fmt.Sprintf("booking_id=%d cancel failed: %v", b.ID, err))
			continue
		}
		if err := s.Ledger.Release(b.ServiceID, b.Quantity); err != nil {
			utils.LogEvent(s.RequestID, "booking", "expire",
				fmt.Sprintf("booking_id=%d release failed: %v", b.ID, err))
		}
		s.notify(b.UserID, "Booking expired",
			fmt.Sprintf("Booking #%d was cancelled because payment was not completed in time.", b.ID),
			"booking", b.ID)
		expired++
	}
	if expired > 0 {
		utils.LogEvent(s.RequestID, "booking", "expire", fmt.Sprintf("expired=%d", expired))
	}
	return expired, nil
}

func (s BookingService) notify(userID int64, title, message, typ string, bookingID int64) {
	if s.Notifier == nil {
		return
	}
	s.Notifier.Notify(userID, title, message, typ, bookingID)
}
