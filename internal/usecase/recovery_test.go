package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Poojabhadane4112/MumbaiHacks/internal/model"
	"github.com/Poojabhadane4112/MumbaiHacks/internal/repository"
)

type sentCode struct {
	channel  model.Channel
	endpoint string
	code     string
}

// captureSender records dispatched codes instead of delivering them.
type captureSender struct {
	sent []sentCode
}

func (c *captureSender) SendCode(_ context.Context, channel model.Channel, endpoint, code string) {
	c.sent = append(c.sent, sentCode{channel: channel, endpoint: endpoint, code: code})
}

type fakePasskeyRepo struct {
	verifications map[string]*model.PasskeyVerification
	nextID        int64
}

func newFakePasskeyRepo() *fakePasskeyRepo {
	return &fakePasskeyRepo{verifications: make(map[string]*model.PasskeyVerification)}
}

func (f *fakePasskeyRepo) CreateVerification(_ context.Context, v *model.PasskeyVerification) (*model.PasskeyVerification, error) {
	f.nextID++
	v.ID = f.nextID
	v.CreatedAt = time.Now()
	f.verifications[v.Token] = v
	return v, nil
}

func (f *fakePasskeyRepo) GetVerificationByToken(_ context.Context, token string) (*model.PasskeyVerification, error) {
	if v, ok := f.verifications[token]; ok {
		return v, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakePasskeyRepo) MarkUsed(_ context.Context, token string) error {
	if v, ok := f.verifications[token]; ok {
		v.Used = true
	}
	return nil
}

func (f *fakePasskeyRepo) DeleteExpiredBefore(_ context.Context, cutoff time.Time) (int64, error) {
	var deleted int64
	for token, v := range f.verifications {
		if v.ExpiresAt.Before(cutoff) {
			delete(f.verifications, token)
			deleted++
		}
	}
	return deleted, nil
}

type recoveryFixture struct {
	usecase     RecoveryUsecase
	userRepo    *fakeUserRepo
	passkeyRepo *fakePasskeyRepo
	sender      *captureSender
	advance     func(time.Duration)
}

func newRecoveryFixture(t *testing.T) *recoveryFixture {
	t.Helper()

	now, advance := testClock()
	userRepo := newFakeUserRepo()
	passkeyRepo := newFakePasskeyRepo()
	sender := &captureSender{}

	otp := NewOTPUsecase(newFakeOTPRepo(now)).(*otpUsecase)
	otp.now = now

	return &recoveryFixture{
		usecase:     NewRecoveryUsecase(userRepo, passkeyRepo, otp, sender),
		userRepo:    userRepo,
		passkeyRepo: passkeyRepo,
		sender:      sender,
		advance:     advance,
	}
}

func (fx *recoveryFixture) seedUser(t *testing.T, email, mobile, password string) *model.User {
	t.Helper()

	cfg := testTokenConfig()
	authUC := NewAuthUsecase(fx.userRepo, &fakeSessionRepo{}, newTestJWTAuth(cfg), cfg)
	signedUp, err := authUC.Signup(context.Background(), SignupParams{
		Name:     "Asha",
		Email:    email,
		Mobile:   mobile,
		Password: password,
	})
	require.NoError(t, err)
	return fx.userRepo.users[signedUp.UserID]
}

func TestSMSRecovery_FullFlow(t *testing.T) {
	fx := newRecoveryFixture(t)
	ctx := context.Background()
	fx.seedUser(t, "asha@example.com", "+15551234567", "old-password")

	challenge, err := fx.usecase.RequestSMSOTP(ctx, "+15551234567")
	require.NoError(t, err)
	assert.Equal(t, 600, challenge.ExpiresIn)

	require.Len(t, fx.sender.sent, 1)
	assert.Equal(t, model.ChannelSMS, fx.sender.sent[0].channel)
	assert.Equal(t, "+15551234567", fx.sender.sent[0].endpoint)
	code := fx.sender.sent[0].code

	outcome, err := fx.usecase.VerifyOTP(ctx, model.ChannelSMS, "+15551234567", code, challenge.Token)
	require.NoError(t, err)
	require.Equal(t, OutcomeVerified, outcome.Code)

	err = fx.usecase.ResetPasswordWithOTP(ctx, model.ChannelSMS, "+15551234567", challenge.Token, "new-password")
	require.NoError(t, err)

	// The new password works, the old one does not.
	cfg := testTokenConfig()
	authUC := NewAuthUsecase(fx.userRepo, &fakeSessionRepo{}, newTestJWTAuth(cfg), cfg)
	_, err = authUC.Login(ctx, LoginParams{Email: "asha@example.com", Password: "new-password"}, SessionMeta{})
	require.NoError(t, err)
	_, err = authUC.Login(ctx, LoginParams{Email: "asha@example.com", Password: "old-password"}, SessionMeta{})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// The consumed grant does not authorize a second reset.
	err = fx.usecase.ResetPasswordWithOTP(ctx, model.ChannelSMS, "+15551234567", challenge.Token, "third-password")
	assert.ErrorIs(t, err, ErrGrantInvalid)
}

func TestRequestOTP_UnknownIdentifier(t *testing.T) {
	fx := newRecoveryFixture(t)
	ctx := context.Background()

	_, err := fx.usecase.RequestSMSOTP(ctx, "+15550000000")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = fx.usecase.RequestEmailOTP(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)

	assert.Empty(t, fx.sender.sent)
}

func TestEmailRecovery_DispatchesOnEmailChannel(t *testing.T) {
	fx := newRecoveryFixture(t)
	ctx := context.Background()
	fx.seedUser(t, "asha@example.com", "", "old-password")

	challenge, err := fx.usecase.RequestEmailOTP(ctx, "asha@example.com")
	require.NoError(t, err)

	require.Len(t, fx.sender.sent, 1)
	assert.Equal(t, model.ChannelEmail, fx.sender.sent[0].channel)
	assert.Equal(t, "asha@example.com", fx.sender.sent[0].endpoint)

	outcome, err := fx.usecase.VerifyOTP(ctx, model.ChannelEmail, "asha@example.com", fx.sender.sent[0].code, challenge.Token)
	require.NoError(t, err)
	assert.Equal(t, OutcomeVerified, outcome.Code)
}

func TestResetPasswordWithOTP_RequiresVerifiedGrant(t *testing.T) {
	fx := newRecoveryFixture(t)
	ctx := context.Background()
	fx.seedUser(t, "asha@example.com", "+15551234567", "old-password")

	challenge, err := fx.usecase.RequestSMSOTP(ctx, "+15551234567")
	require.NoError(t, err)

	// Issued but never verified.
	err = fx.usecase.ResetPasswordWithOTP(ctx, model.ChannelSMS, "+15551234567", challenge.Token, "new-password")
	assert.ErrorIs(t, err, ErrGrantInvalid)
}

func TestResetPasswordWithOTP_GrantWindowExpires(t *testing.T) {
	fx := newRecoveryFixture(t)
	ctx := context.Background()
	fx.seedUser(t, "asha@example.com", "+15551234567", "old-password")

	challenge, err := fx.usecase.RequestSMSOTP(ctx, "+15551234567")
	require.NoError(t, err)

	outcome, err := fx.usecase.VerifyOTP(ctx, model.ChannelSMS, "+15551234567", fx.sender.sent[0].code, challenge.Token)
	require.NoError(t, err)
	require.Equal(t, OutcomeVerified, outcome.Code)

	fx.advance(15*time.Minute + time.Second)

	err = fx.usecase.ResetPasswordWithOTP(ctx, model.ChannelSMS, "+15551234567", challenge.Token, "new-password")
	assert.ErrorIs(t, err, ErrGrantInvalid)
}

func TestPasskeyRecovery_FullFlow(t *testing.T) {
	fx := newRecoveryFixture(t)
	ctx := context.Background()
	fx.seedUser(t, "asha@example.com", "+15551234567", "old-password")

	require.NoError(t, fx.usecase.SetPasskey(ctx, "asha@example.com", "my-secret-phrase"))

	grant, err := fx.usecase.VerifyPasskey(ctx, "asha@example.com", "my-secret-phrase")
	require.NoError(t, err)
	assert.Equal(t, 900, grant.ExpiresIn)
	assert.Len(t, grant.Token, 64)

	require.NoError(t, fx.usecase.ResetPasswordWithPasskey(ctx, "asha@example.com", grant.Token, "new-password"))

	// Single use: the grant cannot be replayed.
	err = fx.usecase.ResetPasswordWithPasskey(ctx, "asha@example.com", grant.Token, "another-password")
	assert.ErrorIs(t, err, ErrGrantInvalid)
}

func TestVerifyPasskey_Failures(t *testing.T) {
	fx := newRecoveryFixture(t)
	ctx := context.Background()
	fx.seedUser(t, "asha@example.com", "", "old-password")

	_, err := fx.usecase.VerifyPasskey(ctx, "nobody@example.com", "whatever")
	assert.ErrorIs(t, err, ErrUserNotFound)

	// No passkey configured yet.
	_, err = fx.usecase.VerifyPasskey(ctx, "asha@example.com", "whatever")
	assert.ErrorIs(t, err, ErrPasskeyNotSet)

	require.NoError(t, fx.usecase.SetPasskey(ctx, "asha@example.com", "my-secret-phrase"))

	_, err = fx.usecase.VerifyPasskey(ctx, "asha@example.com", "wrong-phrase")
	assert.ErrorIs(t, err, ErrInvalidPasskey)
}

func TestResetPasswordWithPasskey_GrantChecks(t *testing.T) {
	fx := newRecoveryFixture(t)
	ctx := context.Background()
	fx.seedUser(t, "asha@example.com", "", "old-password")
	fx.seedUser(t, "other@example.com", "", "other-password")

	require.NoError(t, fx.usecase.SetPasskey(ctx, "asha@example.com", "my-secret-phrase"))

	grant, err := fx.usecase.VerifyPasskey(ctx, "asha@example.com", "my-secret-phrase")
	require.NoError(t, err)

	// A grant is bound to the email it was issued for.
	err = fx.usecase.ResetPasswordWithPasskey(ctx, "other@example.com", grant.Token, "new-password")
	assert.ErrorIs(t, err, ErrGrantInvalid)

	// Expired grants are rejected.
	fx.passkeyRepo.verifications[grant.Token].ExpiresAt = time.Now().Add(-time.Second)
	err = fx.usecase.ResetPasswordWithPasskey(ctx, "asha@example.com", grant.Token, "new-password")
	assert.ErrorIs(t, err, ErrGrantInvalid)

	// Unknown tokens are rejected.
	err = fx.usecase.ResetPasswordWithPasskey(ctx, "asha@example.com", "no-such-token", "new-password")
	assert.ErrorIs(t, err, ErrGrantInvalid)
}

func TestSetPasskey_Replaces(t *testing.T) {
	fx := newRecoveryFixture(t)
	ctx := context.Background()
	fx.seedUser(t, "asha@example.com", "", "old-password")

	require.NoError(t, fx.usecase.SetPasskey(ctx, "asha@example.com", "first-phrase"))
	require.NoError(t, fx.usecase.SetPasskey(ctx, "asha@example.com", "second-phrase"))

	_, err := fx.usecase.VerifyPasskey(ctx, "asha@example.com", "first-phrase")
	assert.ErrorIs(t, err, ErrInvalidPasskey)

	_, err = fx.usecase.VerifyPasskey(ctx, "asha@example.com", "second-phrase")
	require.NoError(t, err)

	assert.ErrorIs(t, fx.usecase.SetPasskey(ctx, "nobody@example.com", "x"), ErrUserNotFound)
}
