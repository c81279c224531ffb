package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Poojabhadane4112/MumbaiHacks/internal/model"
)

// PasskeyVerificationRepository defines the interface for passkey
// verification grants.
type PasskeyVerificationRepository interface {
	CreateVerification(ctx context.Context, v *model.PasskeyVerification) (*model.PasskeyVerification, error)
	GetVerificationByToken(ctx context.Context, token string) (*model.PasskeyVerification, error)
	MarkUsed(ctx context.Context, token string) error
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type passkeyVerificationPostgresRepository struct {
	db DBTX
}

// NewPasskeyVerificationPostgresRepository creates a new PostgreSQL
// repository for passkey verification grants.
func NewPasskeyVerificationPostgresRepository(db DBTX) PasskeyVerificationRepository {
	return &passkeyVerificationPostgresRepository{db: db}
}

func (r *passkeyVerificationPostgresRepository) CreateVerification(ctx context.Context, v *model.PasskeyVerification) (*model.PasskeyVerification, error) {
	query := `
		INSERT INTO passkey_verifications (email, token, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query, v.Email, v.Token, v.ExpiresAt).Scan(&v.ID, &v.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return v, nil
}

func (r *passkeyVerificationPostgresRepository) GetVerificationByToken(ctx context.Context, token string) (*model.PasskeyVerification, error) {
	query := `
		SELECT id, email, token, used, expires_at, created_at
		FROM passkey_verifications
		WHERE token = $1
	`

	v := &model.PasskeyVerification{}
	err := r.db.QueryRowContext(ctx, query, token).Scan(
		&v.ID, &v.Email, &v.Token, &v.Used, &v.ExpiresAt, &v.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return v, nil
}

func (r *passkeyVerificationPostgresRepository) MarkUsed(ctx context.Context, token string) error {
	query := `UPDATE passkey_verifications SET used = TRUE WHERE token = $1`
	if _, err := r.db.ExecContext(ctx, query, token); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *passkeyVerificationPostgresRepository) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `DELETE FROM passkey_verifications WHERE expires_at < $1`

	result, err := r.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return deleted, nil
}
