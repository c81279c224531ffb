package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Poojabhadane4112/MumbaiHacks/internal/model"
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByMobile(ctx context.Context, mobile string) (*model.User, error)
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdatePasskeyHash(ctx context.Context, id uuid.UUID, passkeyHash string) error
	UpdateLastLogin(ctx context.Context, id uuid.UUID) error
}

type userPostgresRepository struct {
	db DBTX
}

// NewUserPostgresRepository creates a new PostgreSQL repository for users.
func NewUserPostgresRepository(db DBTX) UserRepository {
	return &userPostgresRepository{db: db}
}

const userColumns = `id, name, email, mobile, password_hash, passkey_hash, active, last_login_at, created_at, updated_at`

func (r *userPostgresRepository) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	query := `
		INSERT INTO users (id, name, email, mobile, password_hash, passkey_hash)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING active, created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.Name, user.Email, user.Mobile, user.PasswordHash, user.PasskeyHash,
	).Scan(&user.Active, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *userPostgresRepository) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *userPostgresRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *userPostgresRepository) GetUserByMobile(ctx context.Context, mobile string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE mobile = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, mobile))
}

func (r *userPostgresRepository) UpdatePasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) error {
	query := `UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, passwordHash); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *userPostgresRepository) UpdatePasskeyHash(ctx context.Context, id uuid.UUID, passkeyHash string) error {
	query := `UPDATE users SET passkey_hash = $2, updated_at = now() WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, passkeyHash); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *userPostgresRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE users SET last_login_at = now(), updated_at = now() WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *userPostgresRepository) scanUser(row *sql.Row) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.Mobile,
		&user.PasswordHash, &user.PasskeyHash, &user.Active,
		&user.LastLoginAt, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}
