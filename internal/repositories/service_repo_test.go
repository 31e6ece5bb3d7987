package repositories

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"freightapi/internal/domain"
)

func TestReserveCapacityDebitsAtomically(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`UPDATE freight_services SET available = available - \? WHERE id = \? AND available >= \?`).
		WithArgs(30, int64(1), 30).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := ServiceRepo{DB: db}
	if err := repo.ReserveCapacity(1, 30); err != nil {
		t.Fatalf("reserve failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReserveCapacityInsufficient(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`UPDATE freight_services SET available = available - \?`).
		WithArgs(60, int64(1), 60).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM freight_services WHERE id = \?`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	repo := ServiceRepo{DB: db}
	err = repo.ReserveCapacity(1, 60)
	if !domain.IsCapacity(err) {
		t.Fatalf("expected capacity error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReserveCapacityMissingService(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`UPDATE freight_services SET available = available - \?`).
		WithArgs(10, int64(99), 10).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM freight_services WHERE id = \?`).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	repo := ServiceRepo{DB: db}
	err = repo.ReserveCapacity(99, 10)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestReserveCapacityRejectsNonPositiveQuantity(t *testing.T) {
	repo := ServiceRepo{}
	for _, qty := range []int{0, -5} {
		if err := repo.ReserveCapacity(1, qty); !domain.IsValidation(err) {
			t.Fatalf("quantity %d should fail validation, got %v", qty, err)
		}
	}
}

func TestReleaseCapacityClampsAtCapacity(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`UPDATE freight_services SET available = LEAST\(capacity, available \+ \?\) WHERE id = \?`).
		WithArgs(30, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := ServiceRepo{DB: db}
	if err := repo.ReleaseCapacity(1, 30); err != nil {
		t.Fatalf("release failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReleaseCapacityFullyClampedIsNoop(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	// already at capacity: zero rows changed, but the service exists
	mock.ExpectExec(`UPDATE freight_services SET available = LEAST`).
		WithArgs(5, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM freight_services WHERE id = \?`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	repo := ServiceRepo{DB: db}
	if err := repo.ReleaseCapacity(1, 5); err != nil {
		t.Fatalf("clamped release should succeed, got %v", err)
	}
}

func TestReleaseCapacityMissingService(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`UPDATE freight_services SET available = LEAST`).
		WithArgs(5, int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM freight_services WHERE id = \?`).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	repo := ServiceRepo{DB: db}
	if err := repo.ReleaseCapacity(42, 5); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
