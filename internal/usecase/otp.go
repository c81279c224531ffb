package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"math/big"
	"strings"
	"time"

	"github.com/Poojabhadane4112/MumbaiHacks/internal/model"
	"github.com/Poojabhadane4112/MumbaiHacks/internal/repository"
)

const (
	otpLength   = 6
	otpTTL      = 10 * time.Minute
	maxAttempts = 5

	// Rows whose expiry is older than this are removed by SweepExpired.
	sweepAge = 24 * time.Hour
)

// OutcomeCode classifies the result of a verification attempt. Callers branch
// on the code; verification failures are values, not errors.
type OutcomeCode string

const (
	OutcomeVerified            OutcomeCode = "VERIFIED"
	OutcomeInvalidOTP          OutcomeCode = "INVALID_OTP"
	OutcomeExpiredOTP          OutcomeCode = "EXPIRED_OTP"
	OutcomeWrongOTP            OutcomeCode = "WRONG_OTP"
	OutcomeMaxAttemptsExceeded OutcomeCode = "MAX_ATTEMPTS_EXCEEDED"
)

// Outcome is the adjudication of one verification attempt.
// RemainingAttempts is only meaningful for WRONG_OTP.
type Outcome struct {
	Code              OutcomeCode
	RemainingAttempts int
}

// IssuedOTP is the result of issuing a one-time code. The code itself is only
// handed to the notification dispatch for out-of-band delivery, never to the
// client in a response body.
type IssuedOTP struct {
	Code      string
	Token     string
	ExpiresAt time.Time
}

// OTPUsecase defines the one-time code state machine: generate, store,
// verify, expire, invalidate.
type OTPUsecase interface {
	// Issue generates and persists a fresh code for (channel, identifier).
	Issue(ctx context.Context, channel model.Channel, identifier string) (*IssuedOTP, error)

	// Verify adjudicates a claimed code against the most recent active row
	// for (identifier, token).
	Verify(ctx context.Context, channel model.Channel, identifier, claimedCode, token string) (*Outcome, error)

	// IsGrantValid reports whether a verified row exists for (identifier,
	// token) whose verification happened within maxAge.
	IsGrantValid(ctx context.Context, channel model.Channel, identifier, token string, maxAge time.Duration) (bool, error)

	// InvalidateAll marks every row for the identifier as used, preventing
	// replay of outstanding codes.
	InvalidateAll(ctx context.Context, channel model.Channel, identifier string) error

	// SweepExpired deletes rows expired more than a day ago across all three
	// channel tables and returns the number of rows removed.
	SweepExpired(ctx context.Context) (int64, error)
}

type otpUsecase struct {
	otpRepo repository.OTPRepository
	now     func() time.Time
}

// NewOTPUsecase creates a new instance of OTPUsecase.
func NewOTPUsecase(otpRepo repository.OTPRepository) OTPUsecase {
	return &otpUsecase{
		otpRepo: otpRepo,
		now:     time.Now,
	}
}

func (u *otpUsecase) Issue(ctx context.Context, channel model.Channel, identifier string) (*IssuedOTP, error) {
	code, err := generateNumericCode(otpLength)
	if err != nil {
		return nil, err
	}

	token, err := generateToken()
	if err != nil {
		return nil, err
	}

	row := &model.OTPCode{
		Identifier: identifier,
		Code:       code,
		Token:      token,
		ExpiresAt:  u.now().Add(otpTTL),
	}

	if _, err := u.otpRepo.CreateCode(ctx, channel, row); err != nil {
		return nil, err
	}

	return &IssuedOTP{
		Code:      code,
		Token:     token,
		ExpiresAt: row.ExpiresAt,
	}, nil
}

func (u *otpUsecase) Verify(ctx context.Context, channel model.Channel, identifier, claimedCode, token string) (*Outcome, error) {
	row, err := u.otpRepo.GetActiveCode(ctx, channel, identifier, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &Outcome{Code: OutcomeInvalidOTP}, nil
		}
		return nil, err
	}

	if u.now().After(row.ExpiresAt) {
		return &Outcome{Code: OutcomeExpiredOTP}, nil
	}

	// The attempts cap is checked before the code comparison: once five wrong
	// attempts are on record, the row rejects even the correct code.
	if row.Attempts >= maxAttempts {
		return &Outcome{Code: OutcomeMaxAttemptsExceeded}, nil
	}

	if row.Code != claimedCode {
		attempts, ok, err := u.otpRepo.IncrementAttempts(ctx, channel, row.ID, maxAttempts)
		if err != nil {
			return nil, err
		}
		if !ok {
			return &Outcome{Code: OutcomeMaxAttemptsExceeded}, nil
		}
		return &Outcome{
			Code:              OutcomeWrongOTP,
			RemainingAttempts: maxAttempts - attempts,
		}, nil
	}

	if err := u.otpRepo.MarkVerified(ctx, channel, row.ID); err != nil {
		return nil, err
	}

	return &Outcome{Code: OutcomeVerified}, nil
}

func (u *otpUsecase) IsGrantValid(ctx context.Context, channel model.Channel, identifier, token string, maxAge time.Duration) (bool, error) {
	row, err := u.otpRepo.GetVerifiedCode(ctx, channel, identifier, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	if row.VerifiedAt == nil {
		return false, nil
	}

	return u.now().Sub(*row.VerifiedAt) <= maxAge, nil
}

func (u *otpUsecase) InvalidateAll(ctx context.Context, channel model.Channel, identifier string) error {
	return u.otpRepo.InvalidateAll(ctx, channel, identifier)
}

func (u *otpUsecase) SweepExpired(ctx context.Context) (int64, error) {
	cutoff := u.now().Add(-sweepAge)

	var total int64
	for _, channel := range []model.Channel{model.ChannelSMS, model.ChannelEmail, model.ChannelCustom} {
		deleted, err := u.otpRepo.DeleteExpiredBefore(ctx, channel, cutoff)
		if err != nil {
			return total, err
		}
		total += deleted
	}

	return total, nil
}

// generateNumericCode draws each digit independently and uniformly from 0-9
// using a cryptographically secure source. Leading zeros are valid.
func generateNumericCode(length int) (string, error) {
	var sb strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		sb.WriteByte(byte('0' + n.Int64()))
	}
	return sb.String(), nil
}

// generateToken returns a 256-bit random hex correlation handle.
func generateToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
