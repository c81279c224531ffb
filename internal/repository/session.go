package repository

import (
	"context"
	"fmt"

	"github.com/Poojabhadane4112/MumbaiHacks/internal/model"
)

// SessionRepository defines the interface for the append-only login log.
type SessionRepository interface {
	CreateSession(ctx context.Context, session *model.Session) (*model.Session, error)
}

type sessionPostgresRepository struct {
	db DBTX
}

// NewSessionPostgresRepository creates a new PostgreSQL repository for
// session log entries.
func NewSessionPostgresRepository(db DBTX) SessionRepository {
	return &sessionPostgresRepository{db: db}
}

func (r *sessionPostgresRepository) CreateSession(ctx context.Context, session *model.Session) (*model.Session, error) {
	query := `
		INSERT INTO user_sessions (user_id, ip_address, user_agent)
		VALUES ($1, $2, $3)
		RETURNING id, login_at
	`

	err := r.db.QueryRowContext(ctx, query,
		session.UserID, session.IPAddress, session.UserAgent,
	).Scan(&session.ID, &session.LoginAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return session, nil
}
