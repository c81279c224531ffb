package model

import (
	"time"

	"github.com/google/uuid"
)

// Session is an append-only log entry recorded on every successful login.
// Rows are never mutated or deleted by the application.
type Session struct {
	ID        int64
	UserID    uuid.UUID
	LoginAt   time.Time
	IPAddress *string
	UserAgent *string
}
