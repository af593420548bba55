package db

import (
	"database/sql"

	"github.com/rs/zerolog/log"
)

// Migrate bootstraps the schema. Every statement is idempotent.
func Migrate(database *sql.DB) error {
	for _, ddl := range schema {
		if _, err := database.Exec(ddl); err != nil {
			return err
		}
	}
	log.Info().Int("tables", len(schema)).Msg("schema ensured")
	return nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	email VARCHAR(255) NOT NULL,
	password_hash VARCHAR(255) NOT NULL,
	birthdate VARCHAR(20) NOT NULL DEFAULT '',
	country VARCHAR(100) NOT NULL DEFAULT '',
	role VARCHAR(20) NOT NULL DEFAULT 'customer',
	is_deactivated TINYINT(1) NOT NULL DEFAULT 0,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_users_email (email)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS rooms (
	id VARCHAR(20) PRIMARY KEY,
	type VARCHAR(30) NOT NULL,
	size_m2 INT NOT NULL,
	balcony TINYINT(1) NOT NULL DEFAULT 0,
	view VARCHAR(20) NOT NULL,
	max_guests INT NOT NULL,
	facilities JSON NULL,
	images JSON NULL,
	price_original DECIMAL(10,2) NOT NULL,
	price_currency CHAR(3) NOT NULL DEFAULT 'USD',
	UNIQUE KEY uniq_rooms_type (type),
	KEY idx_rooms_price (price_original)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS units (
	id CHAR(4) PRIMARY KEY,
	room_id VARCHAR(20) NOT NULL,
	floor INT NOT NULL,
	smoking TINYINT(1) NOT NULL DEFAULT 0,
	KEY idx_units_room (room_id),
	KEY idx_units_smoking (smoking),
	CONSTRAINT fk_units_room FOREIGN KEY (room_id) REFERENCES rooms(id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS bookings (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	guest_id BIGINT NOT NULL,
	room_id VARCHAR(20) NOT NULL,
	unit_id CHAR(4) NOT NULL,
	passport_number VARCHAR(20) NOT NULL,
	meals VARCHAR(30) NOT NULL DEFAULT 'none',
	check_in_hour INT NOT NULL DEFAULT 12,
	check_out_hour INT NOT NULL DEFAULT 11,
	time_zone VARCHAR(40) NOT NULL DEFAULT 'Africa/Cairo',
	start_at DATETIME NOT NULL,
	end_at DATETIME NOT NULL,
	paid TINYINT(1) NOT NULL DEFAULT 0,
	amount DECIMAL(10,2) NOT NULL DEFAULT 0,
	currency CHAR(3) NOT NULL DEFAULT 'USD',
	method VARCHAR(20) NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
	KEY idx_bookings_guest (guest_id),
	KEY idx_bookings_unit_end (unit_id, end_at),
	CONSTRAINT fk_bookings_unit FOREIGN KEY (unit_id) REFERENCES units(id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
}
