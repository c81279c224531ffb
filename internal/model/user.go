package model

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account in the onboarding system. Email and mobile are
// each globally unique; mobile and passkey are optional.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	Mobile       *string
	PasswordHash string
	PasskeyHash  *string
	Active       bool
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
