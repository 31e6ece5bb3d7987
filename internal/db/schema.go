package db

import "database/sql"

// EnsureSchema creates missing tables on startup. Existing tables are left
// untouched.
func EnsureSchema(conn *sql.DB) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL,
			phone VARCHAR(100) NOT NULL DEFAULT '',
			password_hash VARCHAR(255) NOT NULL,
			role VARCHAR(50) NOT NULL DEFAULT 'user',
			status VARCHAR(50) NOT NULL DEFAULT 'active',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			UNIQUE KEY uniq_email (email)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS freight_services (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			route VARCHAR(255) NOT NULL,
			departure VARCHAR(100) NOT NULL DEFAULT '',
			arrival VARCHAR(100) NOT NULL DEFAULT '',
			capacity INT NOT NULL,
			available INT NOT NULL,
			price_per_ton BIGINT NOT NULL,
			contact VARCHAR(255) NOT NULL DEFAULT '',
			service_date VARCHAR(50) NOT NULL DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			KEY idx_route (route),
			KEY idx_service_date (service_date)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS bookings (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			user_id BIGINT NOT NULL,
			service_id BIGINT NOT NULL,
			route VARCHAR(255) NOT NULL,
			quantity INT NOT NULL,
			total BIGINT NOT NULL,
			status VARCHAR(40) NOT NULL DEFAULT 'Pending',
			prev_status VARCHAR(40) NOT NULL DEFAULT '',
			booking_date VARCHAR(50) NOT NULL DEFAULT '',
			order_id VARCHAR(100) NOT NULL DEFAULT '',
			currency VARCHAR(10) NOT NULL DEFAULT '',
			amount BIGINT NOT NULL DEFAULT 0,
			payment_status VARCHAR(20) NOT NULL DEFAULT '',
			payment_id VARCHAR(100) NOT NULL DEFAULT '',
			signature VARCHAR(255) NOT NULL DEFAULT '',
			paid_at TIMESTAMP NULL DEFAULT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			KEY idx_user (user_id),
			KEY idx_service (service_id),
			KEY idx_status (status)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS notifications (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			user_id BIGINT NOT NULL,
			title VARCHAR(255) NOT NULL,
			message TEXT NOT NULL,
			type VARCHAR(50) NOT NULL DEFAULT 'info',
			booking_id BIGINT NULL,
			is_read TINYINT(1) NOT NULL DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			KEY idx_user (user_id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
	}

	for _, stmt := range ddl {
		if _, err := conn.Exec(stmt); err != nil {
			return err
		}
	}
	return migrateBookings(conn)
}

// migrateBookings adds columns introduced after the first release so older
// databases keep working without a manual migration.
func migrateBookings(conn *sql.DB) error {
	if !HasTable(conn, "bookings") {
		return nil
	}
	upgrades := map[string]string{
		"prev_status": `ALTER TABLE bookings ADD COLUMN prev_status VARCHAR(40) NOT NULL DEFAULT ''`,
		"signature":   `ALTER TABLE bookings ADD COLUMN signature VARCHAR(255) NOT NULL DEFAULT ''`,
		"paid_at":     `ALTER TABLE bookings ADD COLUMN paid_at TIMESTAMP NULL DEFAULT NULL`,
	}
	for column, stmt := range upgrades {
		if HasColumn(conn, "bookings", column) {
			continue
		}
		if _, err := conn.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
