package database

import (
	"fmt"
	"log/slog"
)

func (db *DB) RunMigrations() error {
	slog.Info("Running database migrations...")

	migrations := []string{
		createUsersTable,
		createExperiencesTable,
		createExperienceSlotsTable,
		createExperienceDatesTable,
		createBookingsTable,
		createBookingsUserIndex,
	}

	for i, migration := range migrations {
		slog.Info("Running migration", "step", i+1)
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	slog.Info("All migrations completed successfully")
	return nil
}

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
    id VARCHAR(64) PRIMARY KEY,
    name VARCHAR(255) NOT NULL,
    email VARCHAR(255) UNIQUE NOT NULL,
    password_hash VARCHAR(64) NOT NULL,
    role VARCHAR(20) NOT NULL DEFAULT 'user',
    email_opt_in BOOLEAN NOT NULL DEFAULT TRUE,
    sms_opt_in BOOLEAN NOT NULL DEFAULT FALSE,
    registered_at TIMESTAMP NOT NULL DEFAULT NOW(),

    CHECK (role IN ('user', 'admin'))
);`

const createExperiencesTable = `
CREATE TABLE IF NOT EXISTS experiences (
    id VARCHAR(64) PRIMARY KEY,
    title VARCHAR(500) NOT NULL,
    category VARCHAR(50) NOT NULL,
    image_url TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    price BIGINT NOT NULL DEFAULT 0,
    host_phone VARCHAR(32) NOT NULL,
    owner_uid VARCHAR(64),
    average_rating DOUBLE PRECISION NOT NULL DEFAULT 0,
    total_ratings INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),

    CHECK (price >= 0),
    CHECK (total_ratings >= 0),
    CHECK (category IN ('adventure', 'comedy', 'workshop', 'wellness', 'music', 'food'))
);`

const createExperienceSlotsTable = `
CREATE TABLE IF NOT EXISTS experience_slots (
    id SERIAL PRIMARY KEY,
    experience_id VARCHAR(64) NOT NULL REFERENCES experiences(id) ON DELETE CASCADE,
    time_label VARCHAR(64) NOT NULL,
    capacity INTEGER NOT NULL DEFAULT 0,
    booked INTEGER NOT NULL DEFAULT 0,

    UNIQUE(experience_id, time_label),
    CHECK (booked >= 0),
    CHECK (booked <= capacity)
);`

const createExperienceDatesTable = `
CREATE TABLE IF NOT EXISTS experience_dates (
    id SERIAL PRIMARY KEY,
    experience_id VARCHAR(64) NOT NULL REFERENCES experiences(id) ON DELETE CASCADE,
    date_label VARCHAR(64) NOT NULL,

    UNIQUE(experience_id, date_label)
);`

const createBookingsTable = `
CREATE TABLE IF NOT EXISTS bookings (
    id VARCHAR(64) PRIMARY KEY,
    experience_id VARCHAR(64) NOT NULL,
    title VARCHAR(500) NOT NULL,
    category VARCHAR(50) NOT NULL,
    time_label VARCHAR(64) NOT NULL,
    date_label VARCHAR(64) NOT NULL,
    price BIGINT NOT NULL,
    guest_name VARCHAR(255) NOT NULL,
    guest_phone VARCHAR(32) NOT NULL,
    host_phone VARCHAR(32) NOT NULL,
    user_id VARCHAR(64) NOT NULL,
    rating INTEGER,
    reminder_sent BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),

    CHECK (rating IS NULL OR (rating >= 1 AND rating <= 5))
);`

const createBookingsUserIndex = `
CREATE INDEX IF NOT EXISTS idx_bookings_user_created
    ON bookings (user_id, created_at DESC);`
