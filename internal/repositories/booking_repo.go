package repositories

import (
	"database/sql"
	"errors"
	"time"

	intconfig "freightapi/internal/config"
	"freightapi/internal/domain"
	"freightapi/internal/domain/models"
)

type BookingRepo struct {
	DB *sql.DB
}

func (r BookingRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const bookingColumns = `id, user_id, service_id, route, quantity, total, status, prev_status, booking_date,
	order_id, currency, amount, payment_status, payment_id, signature, paid_at, created_at`

func (r BookingRepo) Create(b models.Booking) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO bookings (user_id, service_id, route, quantity, total, status, booking_date)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		b.UserID, b.ServiceID, b.Route, b.Quantity, b.Total, string(b.Status), b.BookingDate,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r BookingRepo) GetByID(id int64) (models.Booking, error) {
	if id <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "id", Msg: "must be positive"}
	}
	row := r.db().QueryRow(`SELECT `+bookingColumns+` FROM bookings WHERE id = ? LIMIT 1`, id)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, domain.NotFoundError{Resource: "booking"}
		}
		return models.Booking{}, err
	}
	return b, nil
}

func (r BookingRepo) ListByUser(userID int64) ([]models.Booking, error) {
	return r.list(`SELECT `+bookingColumns+` FROM bookings WHERE user_id = ? ORDER BY id DESC`, userID)
}

func (r BookingRepo) ListAll() ([]models.Booking, error) {
	return r.list(`SELECT ` + bookingColumns + ` FROM bookings ORDER BY id DESC`)
}

// ListStalePending returns unpaid Pending bookings created before cutoff.
func (r BookingRepo) ListStalePending(cutoff time.Time) ([]models.Booking, error) {
	return r.list(
		`SELECT `+bookingColumns+` FROM bookings WHERE status = ? AND payment_status <> ? AND created_at < ? ORDER BY id`,
		string(domain.StatusPending), models.PaymentStatusPaid, cutoff,
	)
}

func (r BookingRepo) list(query string, args ...any) ([]models.Booking, error) {
	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// UpdateStatus persists a transition. prev is recorded so a cancellation
// request can later be restored to the status it interrupted.
func (r BookingRepo) UpdateStatus(id int64, status, prev domain.BookingStatus) error {
	res, err := r.db().Exec(
		`UPDATE bookings SET status = ?, prev_status = ? WHERE id = ?`,
		string(status), string(prev), id,
	)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return domain.NotFoundError{Resource: "booking"}
	}
	return nil
}

// SavePaymentOrder records a freshly created gateway order on the booking.
func (r BookingRepo) SavePaymentOrder(id int64, orderID, currency string, amount int64) error {
	res, err := r.db().Exec(
		`UPDATE bookings SET order_id = ?, currency = ?, amount = ?, payment_status = ? WHERE id = ?`,
		orderID, currency, amount, models.PaymentStatusCreated, id,
	)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return domain.NotFoundError{Resource: "booking"}
	}
	return nil
}

// MarkPaid sets the payment fields and forces the booking to Confirmed in a
// single statement, keeping the handshake atomic at the row level. The
// update is conditional on the row still being payable, so a verification
// racing a cancellation (or a replay of an already-paid pair) can never
// flip a Cancelled or Declined booking back to Confirmed.
func (r BookingRepo) MarkPaid(id int64, paymentID, signature string, paidAt time.Time) error {
	res, err := r.db().Exec(
		`UPDATE bookings SET payment_id = ?, signature = ?, payment_status = ?, paid_at = ?, status = ?, prev_status = ?
		WHERE id = ? AND payment_status <> ? AND status NOT IN (?, ?)`,
		paymentID, signature, models.PaymentStatusPaid, paidAt, string(domain.StatusConfirmed), "", id,
		models.PaymentStatusPaid, string(domain.StatusCancelled), string(domain.StatusDeclined),
	)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		if !r.exists(id) {
			return domain.NotFoundError{Resource: "booking"}
		}
		return domain.ConflictError{Resource: "booking", Msg: "no longer payable"}
	}
	return nil
}

func (r BookingRepo) exists(id int64) bool {
	var n int
	if err := r.db().QueryRow(`SELECT COUNT(*) FROM bookings WHERE id = ?`, id).Scan(&n); err != nil {
		return false
	}
	return n > 0
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (models.Booking, error) {
	var (
		b      models.Booking
		status string
		prev   string
		paidAt sql.NullTime
	)
	err := row.Scan(
		&b.ID, &b.UserID, &b.ServiceID, &b.Route, &b.Quantity, &b.Total, &status, &prev, &b.BookingDate,
		&b.Payment.OrderID, &b.Payment.Currency, &b.Payment.Amount, &b.Payment.Status,
		&b.Payment.PaymentID, &b.Payment.Signature, &paidAt, &b.CreatedAt,
	)
	if err != nil {
		return models.Booking{}, err
	}
	b.Status = domain.BookingStatus(status)
	b.PrevStatus = domain.BookingStatus(prev)
	if paidAt.Valid {
		t := paidAt.Time
		b.Payment.PaidAt = &t
	}
	return b, nil
}
