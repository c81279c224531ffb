package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Poojabhadane4112/MumbaiHacks/internal/model"
)

func newOTPRepoMock(t *testing.T) (OTPRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewOTPPostgresRepository(db), mock
}

func TestTableFor(t *testing.T) {
	assert.Equal(t, "otp_codes", tableFor(model.ChannelSMS))
	assert.Equal(t, "email_otp_codes", tableFor(model.ChannelEmail))
	assert.Equal(t, "custom_otp_codes", tableFor(model.ChannelCustom))
}

func TestCreateCode_PerChannelTable(t *testing.T) {
	cases := []struct {
		channel model.Channel
		table   string
	}{
		{model.ChannelSMS, "otp_codes"},
		{model.ChannelEmail, "email_otp_codes"},
		{model.ChannelCustom, "custom_otp_codes"},
	}

	for _, tc := range cases {
		t.Run(string(tc.channel), func(t *testing.T) {
			repo, mock := newOTPRepoMock(t)

			createdAt := time.Now()
			mock.ExpectQuery(`INSERT INTO `+tc.table).
				WithArgs("id-1", "123456", "token-1", sqlmock.AnyArg()).
				WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(7), createdAt))

			code, err := repo.CreateCode(context.Background(), tc.channel, &model.OTPCode{
				Identifier: "id-1",
				Code:       "123456",
				Token:      "token-1",
				ExpiresAt:  createdAt.Add(10 * time.Minute),
			})
			require.NoError(t, err)
			assert.Equal(t, int64(7), code.ID)
			assert.Equal(t, createdAt, code.CreatedAt)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGetActiveCode(t *testing.T) {
	repo, mock := newOTPRepoMock(t)

	createdAt := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "identifier", "code", "token", "expires_at", "used", "attempts", "verified_at", "created_at",
	}).AddRow(int64(3), "+15551234567", "654321", "token-1", createdAt.Add(10*time.Minute), false, 2, nil, createdAt)

	mock.ExpectQuery(`SELECT (.+) FROM otp_codes`).
		WithArgs("+15551234567", "token-1").
		WillReturnRows(rows)

	code, err := repo.GetActiveCode(context.Background(), model.ChannelSMS, "+15551234567", "token-1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), code.ID)
	assert.Equal(t, "654321", code.Code)
	assert.Equal(t, 2, code.Attempts)
	assert.False(t, code.Used)
	assert.Nil(t, code.VerifiedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetActiveCode_NotFound(t *testing.T) {
	repo, mock := newOTPRepoMock(t)

	mock.ExpectQuery(`SELECT (.+) FROM email_otp_codes`).
		WithArgs("user@example.com", "token-1").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetActiveCode(context.Background(), model.ChannelEmail, "user@example.com", "token-1")
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIncrementAttempts_Applied(t *testing.T) {
	repo, mock := newOTPRepoMock(t)

	mock.ExpectQuery(`UPDATE otp_codes SET attempts = attempts \+ 1`).
		WithArgs(int64(3), 5).
		WillReturnRows(sqlmock.NewRows([]string{"attempts"}).AddRow(4))

	attempts, applied, err := repo.IncrementAttempts(context.Background(), model.ChannelSMS, 3, 5)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, 4, attempts)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIncrementAttempts_AtCap(t *testing.T) {
	repo, mock := newOTPRepoMock(t)

	// The guarded update matches no row once the counter reached the cap.
	mock.ExpectQuery(`UPDATE otp_codes SET attempts = attempts \+ 1`).
		WithArgs(int64(3), 5).
		WillReturnError(sql.ErrNoRows)

	attempts, applied, err := repo.IncrementAttempts(context.Background(), model.ChannelSMS, 3, 5)
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Zero(t, attempts)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkVerified(t *testing.T) {
	repo, mock := newOTPRepoMock(t)

	mock.ExpectExec(`UPDATE custom_otp_codes SET used = TRUE, verified_at = now\(\)`).
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.MarkVerified(context.Background(), model.ChannelCustom, 9))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInvalidateAll(t *testing.T) {
	repo, mock := newOTPRepoMock(t)

	mock.ExpectExec(`UPDATE otp_codes SET used = TRUE`).
		WithArgs("+15551234567").
		WillReturnResult(sqlmock.NewResult(0, 3))

	require.NoError(t, repo.InvalidateAll(context.Background(), model.ChannelSMS, "+15551234567"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteExpiredBefore(t *testing.T) {
	repo, mock := newOTPRepoMock(t)

	cutoff := time.Now().Add(-24 * time.Hour)
	mock.ExpectExec(`DELETE FROM email_otp_codes WHERE expires_at < \$1`).
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 12))

	deleted, err := repo.DeleteExpiredBefore(context.Background(), model.ChannelEmail, cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(12), deleted)
	require.NoError(t, mock.ExpectationsWereMet())
}
