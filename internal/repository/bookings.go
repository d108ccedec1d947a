package repository

import (
	"context"
	"database/sql"
	"fmt"

	"anubhav/internal/apperrors"
	"anubhav/internal/database"
	"anubhav/internal/models"
)

type BookingRepository struct {
	db *database.DB
}

func NewBookingRepository(db *database.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// Create persists a booking and claims one seat from its slot in the same
// transaction. The slot row is locked so two guests cannot take the last
// seat at once; a full slot fails with ErrSoldOut and nothing is written.
func (r *BookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapWrite("create booking", err)
	}
	defer tx.Rollback()

	var booked, capacity int
	lockQuery := `
		SELECT booked, capacity FROM experience_slots
		WHERE experience_id = $1 AND time_label = $2
		FOR UPDATE`
	err = tx.QueryRowContext(ctx, lockQuery, booking.ExperienceID, booking.Time).Scan(&booked, &capacity)
	if err == sql.ErrNoRows {
		return fmt.Errorf("create booking: slot %q: %w", booking.Time, apperrors.ErrNotFound)
	}
	if err != nil {
		return wrapWrite("create booking", err)
	}

	if booked >= capacity {
		return fmt.Errorf("create booking: slot %q: %w", booking.Time, apperrors.ErrSoldOut)
	}

	claim := `
		UPDATE experience_slots SET booked = booked + 1
		WHERE experience_id = $1 AND time_label = $2`
	if _, err := tx.ExecContext(ctx, claim, booking.ExperienceID, booking.Time); err != nil {
		return wrapWrite("create booking", err)
	}

	insert := `
		INSERT INTO bookings (id, experience_id, title, category, time_label, date_label,
		                      price, guest_name, guest_phone, host_phone, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at`
	err = tx.QueryRowContext(ctx, insert,
		booking.ID,
		booking.ExperienceID,
		booking.Title,
		booking.Category,
		booking.Time,
		booking.Date,
		booking.Price,
		booking.GuestName,
		booking.GuestPhone,
		booking.HostPhone,
		booking.UserID,
	).Scan(&booking.CreatedAt)
	if err != nil {
		return wrapWrite("create booking", err)
	}

	if err := tx.Commit(); err != nil {
		return wrapWrite("create booking", err)
	}
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	booking := &models.Booking{}
	query := `
		SELECT id, experience_id, title, category, time_label, date_label, price,
		       guest_name, guest_phone, host_phone, user_id, rating, reminder_sent, created_at
		FROM bookings
		WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&booking.ID,
		&booking.ExperienceID,
		&booking.Title,
		&booking.Category,
		&booking.Time,
		&booking.Date,
		&booking.Price,
		&booking.GuestName,
		&booking.GuestPhone,
		&booking.HostPhone,
		&booking.UserID,
		&booking.Rating,
		&booking.ReminderSent,
		&booking.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, wrapRead("get booking", err)
	}

	return booking, nil
}

func (r *BookingRepository) GetByUserID(ctx context.Context, userID string) ([]models.Booking, error) {
	query := `
		SELECT id, experience_id, title, category, time_label, date_label, price,
		       guest_name, guest_phone, host_phone, user_id, rating, reminder_sent, created_at
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, wrapRead("list bookings", err)
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		var booking models.Booking
		err := rows.Scan(
			&booking.ID,
			&booking.ExperienceID,
			&booking.Title,
			&booking.Category,
			&booking.Time,
			&booking.Date,
			&booking.Price,
			&booking.GuestName,
			&booking.GuestPhone,
			&booking.HostPhone,
			&booking.UserID,
			&booking.Rating,
			&booking.ReminderSent,
			&booking.CreatedAt,
		)
		if err != nil {
			return nil, wrapRead("scan booking", err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapRead("list bookings", err)
	}
	return bookings, nil
}

// GetUnreminded returns bookings for dates up to and including horizonDate
// that have not had a reminder delivered yet.
func (r *BookingRepository) GetUnreminded(ctx context.Context, horizonDate string) ([]models.Booking, error) {
	query := `
		SELECT id, experience_id, title, category, time_label, date_label, price,
		       guest_name, guest_phone, host_phone, user_id, rating, reminder_sent, created_at
		FROM bookings
		WHERE reminder_sent = FALSE AND date_label <= $1
		ORDER BY date_label ASC`

	rows, err := r.db.QueryContext(ctx, query, horizonDate)
	if err != nil {
		return nil, wrapRead("list unreminded bookings", err)
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		var booking models.Booking
		err := rows.Scan(
			&booking.ID,
			&booking.ExperienceID,
			&booking.Title,
			&booking.Category,
			&booking.Time,
			&booking.Date,
			&booking.Price,
			&booking.GuestName,
			&booking.GuestPhone,
			&booking.HostPhone,
			&booking.UserID,
			&booking.Rating,
			&booking.ReminderSent,
			&booking.CreatedAt,
		)
		if err != nil {
			return nil, wrapRead("scan booking", err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapRead("list unreminded bookings", err)
	}
	return bookings, nil
}

// MarkReminderSent records a confirmed delivery from the notification gateway.
func (r *BookingRepository) MarkReminderSent(ctx context.Context, id string) error {
	query := `UPDATE bookings SET reminder_sent = TRUE WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return wrapWrite("mark reminder sent", err)
	}
	return nil
}
