package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Poojabhadane4112/MumbaiHacks/internal/model"
)

// OTPRepository defines the interface for one-time code storage. One
// implementation serves all three channels; the channel tag selects the
// backing table.
type OTPRepository interface {
	CreateCode(ctx context.Context, channel model.Channel, code *model.OTPCode) (*model.OTPCode, error)

	// GetActiveCode returns the most recently created unused row matching
	// (identifier, token) exactly, or ErrNotFound.
	GetActiveCode(ctx context.Context, channel model.Channel, identifier, token string) (*model.OTPCode, error)

	// GetVerifiedCode returns the most recently verified used row matching
	// (identifier, token), or ErrNotFound.
	GetVerifiedCode(ctx context.Context, channel model.Channel, identifier, token string) (*model.OTPCode, error)

	// IncrementAttempts atomically increments the attempt counter of a row,
	// but only while the counter is below maxAttempts. It returns the new
	// counter value and whether the increment was applied.
	IncrementAttempts(ctx context.Context, channel model.Channel, id int64, maxAttempts int) (int, bool, error)

	// MarkVerified sets used = true and verified_at = now on a row.
	MarkVerified(ctx context.Context, channel model.Channel, id int64) error

	// InvalidateAll marks every row for the identifier as used, regardless
	// of expiry or prior state.
	InvalidateAll(ctx context.Context, channel model.Channel, identifier string) error

	// DeleteExpiredBefore removes rows whose expiry is before the cutoff and
	// returns the number of rows deleted.
	DeleteExpiredBefore(ctx context.Context, channel model.Channel, cutoff time.Time) (int64, error)
}

type otpPostgresRepository struct {
	db DBTX
}

// NewOTPPostgresRepository creates a new PostgreSQL repository for one-time
// codes across the three channel tables.
func NewOTPPostgresRepository(db DBTX) OTPRepository {
	return &otpPostgresRepository{db: db}
}

// tableFor maps the closed channel tag onto its table. Only these three
// constant names are ever interpolated into queries.
func tableFor(channel model.Channel) string {
	switch channel {
	case model.ChannelSMS:
		return "otp_codes"
	case model.ChannelEmail:
		return "email_otp_codes"
	default:
		return "custom_otp_codes"
	}
}

const otpColumns = `id, identifier, code, token, expires_at, used, attempts, verified_at, created_at`

func (r *otpPostgresRepository) CreateCode(ctx context.Context, channel model.Channel, code *model.OTPCode) (*model.OTPCode, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (identifier, code, token, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, tableFor(channel))

	err := r.db.QueryRowContext(ctx, query,
		code.Identifier, code.Code, code.Token, code.ExpiresAt,
	).Scan(&code.ID, &code.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return code, nil
}

func (r *otpPostgresRepository) GetActiveCode(ctx context.Context, channel model.Channel, identifier, token string) (*model.OTPCode, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE identifier = $1 AND token = $2 AND used = FALSE
		ORDER BY created_at DESC
		LIMIT 1
	`, otpColumns, tableFor(channel))

	return r.scanCode(r.db.QueryRowContext(ctx, query, identifier, token))
}

func (r *otpPostgresRepository) GetVerifiedCode(ctx context.Context, channel model.Channel, identifier, token string) (*model.OTPCode, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE identifier = $1 AND token = $2 AND used = TRUE AND verified_at IS NOT NULL
		ORDER BY verified_at DESC
		LIMIT 1
	`, otpColumns, tableFor(channel))

	return r.scanCode(r.db.QueryRowContext(ctx, query, identifier, token))
}

func (r *otpPostgresRepository) IncrementAttempts(ctx context.Context, channel model.Channel, id int64, maxAttempts int) (int, bool, error) {
	query := fmt.Sprintf(`
		UPDATE %s SET attempts = attempts + 1
		WHERE id = $1 AND attempts < $2
		RETURNING attempts
	`, tableFor(channel))

	var attempts int
	err := r.db.QueryRowContext(ctx, query, id, maxAttempts).Scan(&attempts)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Counter already at the cap; a concurrent attempt won the race.
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("db error: %w", err)
	}

	return attempts, true, nil
}

func (r *otpPostgresRepository) MarkVerified(ctx context.Context, channel model.Channel, id int64) error {
	query := fmt.Sprintf(`
		UPDATE %s SET used = TRUE, verified_at = now()
		WHERE id = $1
	`, tableFor(channel))

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *otpPostgresRepository) InvalidateAll(ctx context.Context, channel model.Channel, identifier string) error {
	query := fmt.Sprintf(`
		UPDATE %s SET used = TRUE
		WHERE identifier = $1
	`, tableFor(channel))

	if _, err := r.db.ExecContext(ctx, query, identifier); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *otpPostgresRepository) DeleteExpiredBefore(ctx context.Context, channel model.Channel, cutoff time.Time) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE expires_at < $1`, tableFor(channel))

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

func (r *otpPostgresRepository) scanCode(row *sql.Row) (*model.OTPCode, error) {
	code := &model.OTPCode{}
	err := row.Scan(
		&code.ID, &code.Identifier, &code.Code, &code.Token,
		&code.ExpiresAt, &code.Used, &code.Attempts,
		&code.VerifiedAt, &code.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return code, nil
}
