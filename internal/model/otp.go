package model

import "time"

// Channel selects the delivery medium for a one-time code and the table that
// backs it. This is a closed three-way tag: anything that is not sms or email
// lands in the generic custom channel.
type Channel string

const (
	ChannelSMS    Channel = "sms"
	ChannelEmail  Channel = "email"
	ChannelCustom Channel = "custom"
)

// OTPCode is one issued one-time code. At most one row is active (unused and
// unexpired) per (identifier, token) pair at lookup time; historical rows for
// the same identifier may coexist until the sweep removes them.
type OTPCode struct {
	ID         int64
	Identifier string
	Code       string
	Token      string
	ExpiresAt  time.Time
	Used       bool
	Attempts   int
	VerifiedAt *time.Time
	CreatedAt  time.Time
}
