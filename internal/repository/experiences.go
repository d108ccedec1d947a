package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"anubhav/internal/apperrors"
	"anubhav/internal/database"
	"anubhav/internal/models"

	"github.com/lib/pq"
)

type ExperienceRepository struct {
	db *database.DB
}

func NewExperienceRepository(db *database.DB) *ExperienceRepository {
	return &ExperienceRepository{db: db}
}

// wrapRead classifies read-path faults as unavailable so callers are forced
// to fall back instead of guessing from an empty slice.
func wrapRead(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, apperrors.ErrUnavailable, err)
}

// wrapWrite maps access-control rejections to the distinguished permission
// error; everything else propagates unchanged.
func wrapWrite(op string, err error) error {
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "42501" {
		return fmt.Errorf("%s: %w", op, apperrors.ErrPermissionDenied)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// List returns all remote experiences ordered by descending creation time,
// with slots and dates attached.
func (r *ExperienceRepository) List(ctx context.Context) ([]models.Experience, error) {
	query := `
		SELECT id, title, category, image_url, description, price, host_phone,
		       owner_uid, average_rating, total_ratings, created_at
		FROM experiences
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, wrapRead("list experiences", err)
	}
	defer rows.Close()

	var experiences []models.Experience
	for rows.Next() {
		var exp models.Experience
		var createdAt time.Time
		err := rows.Scan(
			&exp.ID,
			&exp.Title,
			&exp.Category,
			&exp.ImageURL,
			&exp.Description,
			&exp.Price,
			&exp.HostPhone,
			&exp.OwnerUID,
			&exp.AverageRating,
			&exp.TotalRatings,
			&createdAt,
		)
		if err != nil {
			return nil, wrapRead("scan experience", err)
		}
		exp.CreatedAt = &createdAt
		experiences = append(experiences, exp)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapRead("list experiences", err)
	}

	for i := range experiences {
		if err := r.loadSlotsAndDates(ctx, &experiences[i]); err != nil {
			return nil, err
		}
	}

	return experiences, nil
}

func (r *ExperienceRepository) GetByID(ctx context.Context, id string) (*models.Experience, error) {
	exp := &models.Experience{}
	var createdAt time.Time
	query := `
		SELECT id, title, category, image_url, description, price, host_phone,
		       owner_uid, average_rating, total_ratings, created_at
		FROM experiences
		WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&exp.ID,
		&exp.Title,
		&exp.Category,
		&exp.ImageURL,
		&exp.Description,
		&exp.Price,
		&exp.HostPhone,
		&exp.OwnerUID,
		&exp.AverageRating,
		&exp.TotalRatings,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, wrapRead("get experience", err)
	}

	exp.CreatedAt = &createdAt
	if err := r.loadSlotsAndDates(ctx, exp); err != nil {
		return nil, err
	}

	return exp, nil
}

func (r *ExperienceRepository) loadSlotsAndDates(ctx context.Context, exp *models.Experience) error {
	slotQuery := `
		SELECT time_label, capacity, booked
		FROM experience_slots
		WHERE experience_id = $1
		ORDER BY id`

	rows, err := r.db.QueryContext(ctx, slotQuery, exp.ID)
	if err != nil {
		return wrapRead("load slots", err)
	}
	defer rows.Close()

	for rows.Next() {
		var slot models.Slot
		if err := rows.Scan(&slot.Time, &slot.Capacity, &slot.Booked); err != nil {
			return wrapRead("scan slot", err)
		}
		exp.Slots = append(exp.Slots, slot)
	}
	if err := rows.Err(); err != nil {
		return wrapRead("load slots", err)
	}

	dateQuery := `
		SELECT date_label
		FROM experience_dates
		WHERE experience_id = $1
		ORDER BY id`

	dateRows, err := r.db.QueryContext(ctx, dateQuery, exp.ID)
	if err != nil {
		return wrapRead("load dates", err)
	}
	defer dateRows.Close()

	for dateRows.Next() {
		var date string
		if err := dateRows.Scan(&date); err != nil {
			return wrapRead("scan date", err)
		}
		exp.Dates = append(exp.Dates, date)
	}

	return dateRows.Err()
}

// Upsert writes an experience keyed by id. Owner and creation time are
// stamped once and preserved on later writes. Slots keep their booked counts
// when the time label survives the update.
func (r *ExperienceRepository) Upsert(ctx context.Context, exp *models.Experience) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapWrite("upsert experience", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO experiences (id, title, category, image_url, description, price,
		                         host_phone, owner_uid, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		ON CONFLICT (id) DO UPDATE SET
		    title = EXCLUDED.title,
		    category = EXCLUDED.category,
		    image_url = EXCLUDED.image_url,
		    description = EXCLUDED.description,
		    price = EXCLUDED.price,
		    host_phone = EXCLUDED.host_phone,
		    owner_uid = COALESCE(experiences.owner_uid, EXCLUDED.owner_uid)
		RETURNING created_at`

	var createdAt time.Time
	err = tx.QueryRowContext(ctx, query,
		exp.ID,
		exp.Title,
		exp.Category,
		exp.ImageURL,
		exp.Description,
		exp.Price,
		exp.HostPhone,
		exp.OwnerUID,
	).Scan(&createdAt)
	if err != nil {
		return wrapWrite("upsert experience", err)
	}
	exp.CreatedAt = &createdAt

	if err := r.writeSlotsAndDates(ctx, tx, exp); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return wrapWrite("upsert experience", err)
	}
	return nil
}

func (r *ExperienceRepository) writeSlotsAndDates(ctx context.Context, tx *sql.Tx, exp *models.Experience) error {
	labels := make([]string, len(exp.Slots))
	for i, slot := range exp.Slots {
		labels[i] = slot.Time
		query := `
			INSERT INTO experience_slots (experience_id, time_label, capacity)
			VALUES ($1, $2, $3)
			ON CONFLICT (experience_id, time_label) DO UPDATE SET capacity = EXCLUDED.capacity`
		if _, err := tx.ExecContext(ctx, query, exp.ID, slot.Time, slot.Capacity); err != nil {
			return wrapWrite("upsert slot", err)
		}
	}

	dropSlots := `DELETE FROM experience_slots WHERE experience_id = $1 AND NOT (time_label = ANY($2))`
	if _, err := tx.ExecContext(ctx, dropSlots, exp.ID, pq.Array(labels)); err != nil {
		return wrapWrite("prune slots", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM experience_dates WHERE experience_id = $1`, exp.ID); err != nil {
		return wrapWrite("prune dates", err)
	}
	for _, date := range exp.Dates {
		query := `INSERT INTO experience_dates (experience_id, date_label) VALUES ($1, $2)`
		if _, err := tx.ExecContext(ctx, query, exp.ID, date); err != nil {
			return wrapWrite("insert date", err)
		}
	}

	return nil
}

// EnsureExists materializes a seed-catalog entry as a remote row so slot
// accounting and rating history have something to write against. A row that
// is already present is left untouched.
func (r *ExperienceRepository) EnsureExists(ctx context.Context, exp *models.Experience) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapWrite("ensure experience", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO experiences (id, title, category, image_url, description, price,
		                         host_phone, owner_uid, average_rating, total_ratings)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO NOTHING`

	res, err := tx.ExecContext(ctx, query,
		exp.ID,
		exp.Title,
		exp.Category,
		exp.ImageURL,
		exp.Description,
		exp.Price,
		exp.HostPhone,
		exp.OwnerUID,
		exp.AverageRating,
		exp.TotalRatings,
	)
	if err != nil {
		return wrapWrite("ensure experience", err)
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return wrapWrite("ensure experience", err)
	}
	if inserted > 0 {
		if err := r.writeSlotsAndDates(ctx, tx, exp); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return wrapWrite("ensure experience", err)
	}
	return nil
}

// DeleteAny removes an experience regardless of owner. Admin console only.
func (r *ExperienceRepository) DeleteAny(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM experiences WHERE id = $1`, id); err != nil {
		return wrapWrite("delete experience", err)
	}
	return nil
}

// Delete removes an experience only when ownerID matches the recorded owner.
// Anything else, including a missing row, is a silent no-op.
func (r *ExperienceRepository) Delete(ctx context.Context, id, ownerID string) error {
	query := `DELETE FROM experiences WHERE id = $1 AND owner_uid = $2`
	if _, err := r.db.ExecContext(ctx, query, id, ownerID); err != nil {
		return wrapWrite("delete experience", err)
	}
	return nil
}

// ApplyRating attaches a rating to a booking and folds it into the
// experience's running average in one transaction. The row lock on the
// experience is what keeps concurrent raters from losing updates. When the
// experience has no remote row yet the provided seed copy is inserted first
// so static catalog history is not lost.
func (r *ExperienceRepository) ApplyRating(ctx context.Context, bookingID, experienceID string, rating int, seedCopy *models.Experience) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapWrite("apply rating", err)
	}
	defer tx.Rollback()

	var avg float64
	var count int
	lockQuery := `SELECT average_rating, total_ratings FROM experiences WHERE id = $1 FOR UPDATE`
	err = tx.QueryRowContext(ctx, lockQuery, experienceID).Scan(&avg, &count)
	if err == sql.ErrNoRows {
		if seedCopy == nil {
			return fmt.Errorf("apply rating: experience %s: %w", experienceID, apperrors.ErrNotFound)
		}
		insert := `
			INSERT INTO experiences (id, title, category, image_url, description, price,
			                         host_phone, owner_uid)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
		_, err = tx.ExecContext(ctx, insert,
			seedCopy.ID, seedCopy.Title, seedCopy.Category, seedCopy.ImageURL,
			seedCopy.Description, seedCopy.Price, seedCopy.HostPhone, seedCopy.OwnerUID)
		if err != nil {
			return wrapWrite("apply rating", err)
		}
		avg, count = 0, 0
	} else if err != nil {
		return wrapWrite("apply rating", err)
	}

	newAvg := (avg*float64(count) + float64(rating)) / float64(count+1)

	update := `UPDATE experiences SET average_rating = $1, total_ratings = $2 WHERE id = $3`
	if _, err := tx.ExecContext(ctx, update, newAvg, count+1, experienceID); err != nil {
		return wrapWrite("apply rating", err)
	}

	rate := `UPDATE bookings SET rating = $1 WHERE id = $2`
	res, err := tx.ExecContext(ctx, rate, rating, bookingID)
	if err != nil {
		return wrapWrite("apply rating", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return wrapWrite("apply rating", err)
	}
	if affected == 0 {
		return fmt.Errorf("apply rating: booking %s: %w", bookingID, apperrors.ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return wrapWrite("apply rating", err)
	}
	return nil
}
