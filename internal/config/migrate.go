package config

import (
	"database/sql"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		role VARCHAR(20) NOT NULL DEFAULT 'VIEWER',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_users_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS vehicles (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		model VARCHAR(255) NOT NULL,
		license_plate VARCHAR(64) NOT NULL,
		type VARCHAR(16) NOT NULL,
		region VARCHAR(128) NOT NULL,
		max_capacity DOUBLE NOT NULL,
		odometer DOUBLE NOT NULL DEFAULT 0,
		status VARCHAR(16) NOT NULL DEFAULT 'Available',
		acquisition_cost DOUBLE NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_vehicles_plate (license_plate)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS drivers (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		license_type VARCHAR(64) NOT NULL,
		license_expiry DATE NOT NULL,
		safety_score INT NOT NULL DEFAULT 100,
		status VARCHAR(16) NOT NULL DEFAULT 'OffDuty',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS trips (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		vehicle_id BIGINT NOT NULL,
		driver_id BIGINT NOT NULL,
		cargo_weight DOUBLE NOT NULL,
		origin VARCHAR(255) NOT NULL,
		destination VARCHAR(255) NOT NULL,
		start_odometer DOUBLE NULL,
		end_odometer DOUBLE NULL,
		revenue DOUBLE NULL,
		status VARCHAR(16) NOT NULL DEFAULT 'Draft',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		KEY idx_trips_vehicle (vehicle_id),
		KEY idx_trips_driver (driver_id),
		KEY idx_trips_status (status),
		CONSTRAINT fk_trips_vehicle FOREIGN KEY (vehicle_id) REFERENCES vehicles(id),
		CONSTRAINT fk_trips_driver FOREIGN KEY (driver_id) REFERENCES drivers(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS maintenance_logs (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		vehicle_id BIGINT NOT NULL,
		service_type VARCHAR(128) NOT NULL DEFAULT '',
		description TEXT NOT NULL,
		cost DOUBLE NOT NULL DEFAULT 0,
		date DATE NOT NULL,
		next_service_due DATE NULL,
		status VARCHAR(16) NOT NULL DEFAULT 'Pending',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		KEY idx_maintenance_vehicle (vehicle_id),
		CONSTRAINT fk_maintenance_vehicle FOREIGN KEY (vehicle_id) REFERENCES vehicles(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS fuel_logs (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		vehicle_id BIGINT NOT NULL,
		liters DOUBLE NOT NULL,
		cost DOUBLE NOT NULL DEFAULT 0,
		date DATE NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		KEY idx_fuel_vehicle (vehicle_id),
		CONSTRAINT fk_fuel_vehicle FOREIGN KEY (vehicle_id) REFERENCES vehicles(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS expenses (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		vehicle_id BIGINT NOT NULL,
		trip_id BIGINT NULL,
		expense_type VARCHAR(16) NOT NULL,
		amount DOUBLE NOT NULL DEFAULT 0,
		date DATE NOT NULL,
		description TEXT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		KEY idx_expenses_vehicle (vehicle_id),
		KEY idx_expenses_trip (trip_id),
		CONSTRAINT fk_expenses_vehicle FOREIGN KEY (vehicle_id) REFERENCES vehicles(id),
		CONSTRAINT fk_expenses_trip FOREIGN KEY (trip_id) REFERENCES trips(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate creates the schema if missing. Statements are idempotent.
func Migrate(db *sql.DB) error {
	for _, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// SeedAdmin inserts a bootstrap ADMIN user when the users table is empty.
// Skipped unless a seed password is configured.
func SeedAdmin(db *sql.DB, env Env) error {
	if env.SeedAdminPassword == "" {
		return nil
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(env.SeedAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		INSERT INTO users (name, email, password_hash, role)
		VALUES (?, ?, ?, 'ADMIN')
	`, "Admin User", env.SeedAdminEmail, string(hash))
	return err
}
