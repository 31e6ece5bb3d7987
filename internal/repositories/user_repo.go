package repositories

import (
	"database/sql"
	"errors"
	"strings"

	intconfig "freightapi/internal/config"
	"freightapi/internal/domain"
	"freightapi/internal/domain/models"
)

type UserRepo struct {
	DB *sql.DB
}

func (r UserRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// Create inserts a user with an already-hashed password.
func (r UserRepo) Create(u models.User, passwordHash string) (int64, error) {
	email := strings.ToLower(strings.TrimSpace(u.Email))
	if email == "" {
		return 0, domain.ValidationError{Field: "email", Msg: "must not be empty"}
	}
	role := u.Role
	if role == "" {
		role = "user"
	}
	res, err := r.db().Exec(`
		INSERT INTO users (name, email, phone, password_hash, role, status)
		VALUES (?, ?, ?, ?, ?, 'active')`,
		strings.TrimSpace(u.Name), email, strings.TrimSpace(u.Phone), passwordHash, role,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetByEmail returns the user plus the stored password hash for login checks.
func (r UserRepo) GetByEmail(email string) (models.User, string, error) {
	var (
		u    models.User
		hash string
	)
	err := r.db().QueryRow(`
		SELECT id, name, email, phone, password_hash, role, status
		FROM users
		WHERE email = ? LIMIT 1`, strings.ToLower(strings.TrimSpace(email)),
	).Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &hash, &u.Role, &u.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, "", domain.NotFoundError{Resource: "user"}
		}
		return models.User{}, "", err
	}
	return u, hash, nil
}

func (r UserRepo) GetByID(id int64) (models.User, error) {
	var u models.User
	err := r.db().QueryRow(`
		SELECT id, name, email, phone, role, status
		FROM users
		WHERE id = ? LIMIT 1`, id,
	).Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Role, &u.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, domain.NotFoundError{Resource: "user"}
		}
		return models.User{}, err
	}
	return u, nil
}

// EmailExists is used by registration to give a clean conflict error.
func (r UserRepo) EmailExists(email string) (bool, error) {
	var n int
	err := r.db().QueryRow(`SELECT COUNT(*) FROM users WHERE email = ?`,
		strings.ToLower(strings.TrimSpace(email))).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
