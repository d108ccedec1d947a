package repository

import (
	"context"
	"database/sql"

	"anubhav/internal/database"
	"anubhav/internal/models"
)

type UserRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, name, email, password_hash, role, email_opt_in, sms_opt_in, registered_at
		FROM users
		WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.EmailOptIn,
		&user.SMSOptIn,
		&user.RegisteredAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, wrapRead("get user", err)
	}

	return user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, name, email, password_hash, role, email_opt_in, sms_opt_in, registered_at
		FROM users
		WHERE email = $1`

	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.EmailOptIn,
		&user.SMSOptIn,
		&user.RegisteredAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, wrapRead("get user", err)
	}

	return user, nil
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, name, email, password_hash, role, email_opt_in, sms_opt_in)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING registered_at`

	err := r.db.QueryRowContext(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.EmailOptIn,
		user.SMSOptIn,
	).Scan(&user.RegisteredAt)
	if err != nil {
		return wrapWrite("create user", err)
	}
	return nil
}

func (r *UserRepository) UpdateNotificationPrefs(ctx context.Context, id string, emailOptIn, smsOptIn bool) error {
	query := `UPDATE users SET email_opt_in = $1, sms_opt_in = $2 WHERE id = $3`
	if _, err := r.db.ExecContext(ctx, query, emailOptIn, smsOptIn, id); err != nil {
		return wrapWrite("update notification prefs", err)
	}
	return nil
}
