package repositories

import (
	"database/sql"
	"errors"
	"strings"

	intconfig "freightapi/internal/config"
	"freightapi/internal/domain"
	"freightapi/internal/domain/models"
	"freightapi/internal/utils"
)

type ServiceRepo struct {
	DB *sql.DB
}

func (r ServiceRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r ServiceRepo) Create(s models.FreightService) (int64, error) {
	if s.Capacity <= 0 {
		return 0, domain.ValidationError{Field: "capacity", Msg: "must be positive"}
	}
	if s.PricePerTon <= 0 {
		return 0, domain.ValidationError{Field: "price_per_ton", Msg: "must be positive"}
	}
	s.Route = utils.NormalizeSpace(s.Route)
	if s.Route == "" {
		return 0, domain.ValidationError{Field: "route", Msg: "must not be empty"}
	}
	if s.ServiceDate != "" {
		if _, err := utils.ParseDate(s.ServiceDate); err != nil {
			return 0, domain.ValidationError{Field: "service_date", Msg: "must be YYYY-MM-DD"}
		}
	}
	if s.Available == 0 {
		s.Available = s.Capacity
	}
	if s.Available < 0 || s.Available > s.Capacity {
		return 0, domain.ValidationError{Field: "available", Msg: "must be between 0 and capacity"}
	}

	res, err := r.db().Exec(`
		INSERT INTO freight_services (route, departure, arrival, capacity, available, price_per_ton, contact, service_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		s.Route, s.Departure, s.Arrival, s.Capacity, s.Available, s.PricePerTon, s.Contact, s.ServiceDate,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r ServiceRepo) GetByID(id int64) (models.FreightService, error) {
	if id <= 0 {
		return models.FreightService{}, domain.ValidationError{Field: "id", Msg: "must be positive"}
	}
	var s models.FreightService
	err := r.db().QueryRow(`
		SELECT id, route, departure, arrival, capacity, available, price_per_ton, contact, service_date
		FROM freight_services
		WHERE id = ? LIMIT 1`, id,
	).Scan(&s.ID, &s.Route, &s.Departure, &s.Arrival, &s.Capacity, &s.Available, &s.PricePerTon, &s.Contact, &s.ServiceDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.FreightService{}, domain.NotFoundError{Resource: "service"}
		}
		return models.FreightService{}, err
	}
	return s, nil
}

// List filters by route substring and exact service date when provided.
func (r ServiceRepo) List(route, date string) ([]models.FreightService, error) {
	query := `
		SELECT id, route, departure, arrival, capacity, available, price_per_ton, contact, service_date
		FROM freight_services`
	where := []string{}
	args := []any{}
	if route = strings.TrimSpace(route); route != "" {
		where = append(where, "route LIKE ?")
		args = append(args, "%"+route+"%")
	}
	if date = strings.TrimSpace(date); date != "" {
		where = append(where, "service_date = ?")
		args = append(args, date)
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY service_date, id"

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.FreightService{}
	for rows.Next() {
		var s models.FreightService
		if err := rows.Scan(&s.ID, &s.Route, &s.Departure, &s.Arrival, &s.Capacity, &s.Available, &s.PricePerTon, &s.Contact, &s.ServiceDate); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Update overwrites fields by key presence. Available is overwritten as-is;
// admin edits are not reconciled against outstanding bookings.
func (r ServiceRepo) Update(id int64, upd models.ServiceUpdate) error {
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "must be positive"}
	}
	sets := []string{}
	args := []any{}

	add := func(cond bool, col string, val any) {
		if cond {
			sets = append(sets, col+"=?")
			args = append(args, val)
		}
	}
	add(upd.Route != nil, "route", deref(upd.Route))
	add(upd.Departure != nil, "departure", deref(upd.Departure))
	add(upd.Arrival != nil, "arrival", deref(upd.Arrival))
	add(upd.Capacity != nil, "capacity", derefInt(upd.Capacity))
	add(upd.Available != nil, "available", derefInt(upd.Available))
	add(upd.PricePerTon != nil, "price_per_ton", derefInt64(upd.PricePerTon))
	add(upd.Contact != nil, "contact", deref(upd.Contact))
	add(upd.ServiceDate != nil, "service_date", deref(upd.ServiceDate))
	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	res, err := r.db().Exec(`UPDATE freight_services SET `+strings.Join(sets, ", ")+` WHERE id=?`, args...)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		if !r.exists(id) {
			return domain.NotFoundError{Resource: "service"}
		}
	}
	return nil
}

// Delete removes the service. Bookings referencing it are orphaned; there is
// no cascade.
func (r ServiceRepo) Delete(id int64) error {
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "must be positive"}
	}
	res, err := r.db().Exec(`DELETE FROM freight_services WHERE id=?`, id)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return domain.NotFoundError{Resource: "service"}
	}
	return nil
}

// ReserveCapacity debits available tonnage with a single conditional update,
// so two concurrent reservations can never jointly overdraw a service.
func (r ServiceRepo) ReserveCapacity(id int64, qty int) error {
	if qty <= 0 {
		return domain.ValidationError{Field: "quantity", Msg: "must be positive"}
	}
	res, err := r.db().Exec(
		`UPDATE freight_services SET available = available - ? WHERE id = ? AND available >= ?`,
		qty, id, qty,
	)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		if !r.exists(id) {
			return domain.NotFoundError{Resource: "service"}
		}
		return domain.CapacityError{ServiceID: id, Requested: qty}
	}
	return nil
}

// ReleaseCapacity credits tonnage back, clamped at the service's capacity.
// A release that would exceed capacity is treated as a no-op on the excess,
// not an error.
func (r ServiceRepo) ReleaseCapacity(id int64, qty int) error {
	if qty <= 0 {
		return domain.ValidationError{Field: "quantity", Msg: "must be positive"}
	}
	res, err := r.db().Exec(
		`UPDATE freight_services SET available = LEAST(capacity, available + ?) WHERE id = ?`,
		qty, id,
	)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		// MySQL reports rows changed, not matched: a fully clamped release
		// leaves the row untouched and still succeeds.
		if !r.exists(id) {
			return domain.NotFoundError{Resource: "service"}
		}
	}
	return nil
}

func (r ServiceRepo) exists(id int64) bool {
	var n int
	if err := r.db().QueryRow(`SELECT COUNT(*) FROM freight_services WHERE id = ?`, id).Scan(&n); err != nil {
		return false
	}
	return n > 0
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

func derefInt(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}

func derefInt64(n *int64) int64 {
	if n == nil {
		return 0
	}
	return *n
}
