package repositories

import (
	"database/sql"

	intconfig "freightapi/internal/config"
	"freightapi/internal/domain"
	"freightapi/internal/domain/models"
)

type NotificationRepo struct {
	DB *sql.DB
}

func (r NotificationRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r NotificationRepo) Create(n models.Notification) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO notifications (user_id, title, message, type, booking_id)
		VALUES (?, ?, ?, ?, ?)`,
		n.UserID, n.Title, n.Message, n.Type, nullableID(n.BookingID),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r NotificationRepo) ListByUser(userID int64) ([]models.Notification, error) {
	rows, err := r.db().Query(`
		SELECT id, user_id, title, message, type, COALESCE(booking_id, 0), is_read, created_at
		FROM notifications
		WHERE user_id = ?
		ORDER BY id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Notification{}
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type, &n.BookingID, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// MarkRead toggles the read flag; scoped to the owning user.
func (r NotificationRepo) MarkRead(id, userID int64) error {
	res, err := r.db().Exec(`UPDATE notifications SET is_read = 1 WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		// MySQL reports rows changed, not matched: marking an already-read
		// notification read leaves the row untouched and still succeeds.
		var n int
		if err := r.db().QueryRow(`SELECT COUNT(*) FROM notifications WHERE id = ? AND user_id = ?`, id, userID).Scan(&n); err != nil {
			return err
		}
		if n == 0 {
			return domain.NotFoundError{Resource: "notification"}
		}
	}
	return nil
}

func (r NotificationRepo) MarkAllRead(userID int64) error {
	_, err := r.db().Exec(`UPDATE notifications SET is_read = 1 WHERE user_id = ? AND is_read = 0`, userID)
	return err
}

func nullableID(id int64) any {
	if id <= 0 {
		return nil
	}
	return id
}
