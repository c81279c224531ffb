package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/Poojabhadane4112/MumbaiHacks/internal/model"
	"github.com/Poojabhadane4112/MumbaiHacks/internal/repository"
	"github.com/Poojabhadane4112/MumbaiHacks/internal/security"
)

const (
	// otpGrantWindow is how long a verified code authorizes a password reset
	// without re-entering the code.
	otpGrantWindow = 15 * time.Minute

	passkeyGrantTTL = 15 * time.Minute
)

var (
	ErrPasskeyNotSet  = errors.New("no passkey is set for this account")
	ErrInvalidPasskey = errors.New("invalid passkey")
	ErrGrantInvalid   = errors.New("verification grant is invalid or expired")
)

// CodeSender delivers a one-time code out-of-band. Delivery never reports
// failure; see the notifier package.
type CodeSender interface {
	SendCode(ctx context.Context, channel model.Channel, endpoint, code string)
}

// OTPChallenge is handed to the client after a code has been issued and
// dispatched. ExpiresIn is in seconds.
type OTPChallenge struct {
	Token     string
	ExpiresIn int
}

// PasskeyGrant is handed to the client after a successful passkey check.
// ExpiresIn is in seconds.
type PasskeyGrant struct {
	Token     string
	ExpiresIn int
}

// RecoveryUsecase defines the multi-channel password recovery flows: SMS OTP,
// email OTP and security passkey.
type RecoveryUsecase interface {
	// RequestSMSOTP issues a code for the account registered under mobile
	// and dispatches it. Returns ErrUserNotFound when no account matches.
	RequestSMSOTP(ctx context.Context, mobile string) (*OTPChallenge, error)

	// RequestEmailOTP issues a code for the account registered under email
	// and dispatches it. Returns ErrUserNotFound when no account matches.
	RequestEmailOTP(ctx context.Context, email string) (*OTPChallenge, error)

	// VerifyOTP adjudicates a claimed code. Failures come back as typed
	// outcomes, not errors.
	VerifyOTP(ctx context.Context, channel model.Channel, identifier, claimedCode, token string) (*Outcome, error)

	// VerifyPasskey checks the account passkey and, on success, creates a
	// short-lived verification grant.
	VerifyPasskey(ctx context.Context, email, passkey string) (*PasskeyGrant, error)

	// ResetPasswordWithOTP consumes a still-valid OTP grant and replaces the
	// account password. All outstanding codes for the identifier are
	// invalidated afterwards.
	ResetPasswordWithOTP(ctx context.Context, channel model.Channel, identifier, token, newPassword string) error

	// ResetPasswordWithPasskey consumes an unused, unexpired passkey grant
	// and replaces the account password.
	ResetPasswordWithPasskey(ctx context.Context, email, token, newPassword string) error

	// SetPasskey sets or replaces the account passkey.
	SetPasskey(ctx context.Context, email, passkey string) error
}

type recoveryUsecase struct {
	userRepo    repository.UserRepository
	passkeyRepo repository.PasskeyVerificationRepository
	otp         OTPUsecase
	sender      CodeSender
}

// NewRecoveryUsecase creates a new instance of RecoveryUsecase.
func NewRecoveryUsecase(
	userRepo repository.UserRepository,
	passkeyRepo repository.PasskeyVerificationRepository,
	otp OTPUsecase,
	sender CodeSender,
) RecoveryUsecase {
	return &recoveryUsecase{
		userRepo:    userRepo,
		passkeyRepo: passkeyRepo,
		otp:         otp,
		sender:      sender,
	}
}

func (u *recoveryUsecase) RequestSMSOTP(ctx context.Context, mobile string) (*OTPChallenge, error) {
	if _, err := u.userRepo.GetUserByMobile(ctx, mobile); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return u.issueAndDispatch(ctx, model.ChannelSMS, mobile)
}

func (u *recoveryUsecase) RequestEmailOTP(ctx context.Context, email string) (*OTPChallenge, error) {
	if _, err := u.userRepo.GetUserByEmail(ctx, email); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return u.issueAndDispatch(ctx, model.ChannelEmail, email)
}

func (u *recoveryUsecase) issueAndDispatch(ctx context.Context, channel model.Channel, identifier string) (*OTPChallenge, error) {
	issued, err := u.otp.Issue(ctx, channel, identifier)
	if err != nil {
		return nil, err
	}

	u.sender.SendCode(ctx, channel, identifier, issued.Code)

	return &OTPChallenge{
		Token:     issued.Token,
		ExpiresIn: int(otpTTL.Seconds()),
	}, nil
}

func (u *recoveryUsecase) VerifyOTP(ctx context.Context, channel model.Channel, identifier, claimedCode, token string) (*Outcome, error) {
	return u.otp.Verify(ctx, channel, identifier, claimedCode, token)
}

func (u *recoveryUsecase) VerifyPasskey(ctx context.Context, email, passkey string) (*PasskeyGrant, error) {
	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if user.PasskeyHash == nil {
		return nil, ErrPasskeyNotSet
	}

	if ok, err := security.VerifySecret(passkey, *user.PasskeyHash); err != nil {
		return nil, err
	} else if !ok {
		return nil, ErrInvalidPasskey
	}

	token, err := generateGrantToken()
	if err != nil {
		return nil, err
	}

	verification := &model.PasskeyVerification{
		Email:     email,
		Token:     token,
		ExpiresAt: time.Now().Add(passkeyGrantTTL),
	}

	if _, err := u.passkeyRepo.CreateVerification(ctx, verification); err != nil {
		return nil, err
	}

	return &PasskeyGrant{
		Token:     token,
		ExpiresIn: int(passkeyGrantTTL.Seconds()),
	}, nil
}

func (u *recoveryUsecase) ResetPasswordWithOTP(ctx context.Context, channel model.Channel, identifier, token, newPassword string) error {
	valid, err := u.otp.IsGrantValid(ctx, channel, identifier, token, otpGrantWindow)
	if err != nil {
		return err
	}
	if !valid {
		return ErrGrantInvalid
	}

	user, err := u.lookupByIdentifier(ctx, channel, identifier)
	if err != nil {
		return err
	}

	if err := u.updatePassword(ctx, user, newPassword); err != nil {
		return err
	}

	// Outstanding codes for the identifier must not be replayable once the
	// reset completes.
	return u.otp.InvalidateAll(ctx, channel, identifier)
}

func (u *recoveryUsecase) ResetPasswordWithPasskey(ctx context.Context, email, token, newPassword string) error {
	verification, err := u.passkeyRepo.GetVerificationByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrGrantInvalid
		}
		return err
	}

	if verification.Email != email || verification.Used || time.Now().After(verification.ExpiresAt) {
		return ErrGrantInvalid
	}

	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := u.updatePassword(ctx, user, newPassword); err != nil {
		return err
	}

	return u.passkeyRepo.MarkUsed(ctx, token)
}

func (u *recoveryUsecase) SetPasskey(ctx context.Context, email, passkey string) error {
	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	passkeyHash, err := security.HashSecret(passkey)
	if err != nil {
		return err
	}

	return u.userRepo.UpdatePasskeyHash(ctx, user.ID, passkeyHash)
}

func (u *recoveryUsecase) lookupByIdentifier(ctx context.Context, channel model.Channel, identifier string) (*model.User, error) {
	var (
		user *model.User
		err  error
	)

	if channel == model.ChannelSMS {
		user, err = u.userRepo.GetUserByMobile(ctx, identifier)
	} else {
		user, err = u.userRepo.GetUserByEmail(ctx, identifier)
	}

	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}

func (u *recoveryUsecase) updatePassword(ctx context.Context, user *model.User, newPassword string) error {
	passwordHash, err := security.HashSecret(newPassword)
	if err != nil {
		return err
	}

	return u.userRepo.UpdatePasswordHash(ctx, user.ID, passwordHash)
}

// generateGrantToken returns a 256-bit random hex token for a passkey
// verification grant.
func generateGrantToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
