package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Poojabhadane4112/MumbaiHacks/internal/model"
)

func newUserRepoMock(t *testing.T) (UserRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewUserPostgresRepository(db), mock
}

func userRows(user *model.User) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "email", "mobile", "password_hash", "passkey_hash",
		"active", "last_login_at", "created_at", "updated_at",
	}).AddRow(
		user.ID, user.Name, user.Email, user.Mobile, user.PasswordHash, user.PasskeyHash,
		user.Active, user.LastLoginAt, user.CreatedAt, user.UpdatedAt,
	)
}

func TestCreateUser(t *testing.T) {
	repo, mock := newUserRepoMock(t)

	id := uuid.New()
	mobile := "+15551234567"
	createdAt := time.Now()

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(id, "Asha", "asha@example.com", mobile, "hash", nil).
		WillReturnRows(sqlmock.NewRows([]string{"active", "created_at", "updated_at"}).
			AddRow(true, createdAt, createdAt))

	user, err := repo.CreateUser(context.Background(), &model.User{
		ID:           id,
		Name:         "Asha",
		Email:        "asha@example.com",
		Mobile:       &mobile,
		PasswordHash: "hash",
	})
	require.NoError(t, err)
	assert.True(t, user.Active)
	assert.Equal(t, createdAt, user.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	repo, mock := newUserRepoMock(t)

	dup := errors.New(`pq: duplicate key value violates unique constraint "users_email_key"`)
	mock.ExpectQuery(`INSERT INTO users`).WillReturnError(dup)

	_, err := repo.CreateUser(context.Background(), &model.User{ID: uuid.New()})
	assert.ErrorIs(t, err, dup)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByEmail(t *testing.T) {
	repo, mock := newUserRepoMock(t)

	want := &model.User{
		ID:           uuid.New(),
		Name:         "Asha",
		Email:        "asha@example.com",
		PasswordHash: "hash",
		Active:       true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE email = \$1`).
		WithArgs("asha@example.com").
		WillReturnRows(userRows(want))

	user, err := repo.GetUserByEmail(context.Background(), "asha@example.com")
	require.NoError(t, err)
	assert.Equal(t, want.ID, user.ID)
	assert.Nil(t, user.Mobile)
	assert.Nil(t, user.PasskeyHash)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByMobile_NotFound(t *testing.T) {
	repo, mock := newUserRepoMock(t)

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE mobile = \$1`).
		WithArgs("+15550000000").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetUserByMobile(context.Background(), "+15550000000")
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePasswordHash(t *testing.T) {
	repo, mock := newUserRepoMock(t)

	id := uuid.New()
	mock.ExpectExec(`UPDATE users SET password_hash = \$2`).
		WithArgs(id, "new-hash").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdatePasswordHash(context.Background(), id, "new-hash"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateLastLogin(t *testing.T) {
	repo, mock := newUserRepoMock(t)

	id := uuid.New()
	mock.ExpectExec(`UPDATE users SET last_login_at = now\(\)`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateLastLogin(context.Background(), id))
	require.NoError(t, mock.ExpectationsWereMet())
}
