package model

import "time"

// PasskeyVerification is the short-lived grant created when a passkey check
// succeeds. It is consumed when the bearer completes a password reset.
type PasskeyVerification struct {
	ID        int64
	Email     string
	Token     string
	Used      bool
	ExpiresAt time.Time
	CreatedAt time.Time
}
