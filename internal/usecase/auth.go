package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Poojabhadane4112/MumbaiHacks/internal/auth"
	"github.com/Poojabhadane4112/MumbaiHacks/internal/config"
	"github.com/Poojabhadane4112/MumbaiHacks/internal/model"
	"github.com/Poojabhadane4112/MumbaiHacks/internal/repository"
	"github.com/Poojabhadane4112/MumbaiHacks/internal/security"
)

var (
	ErrEmailTaken         = errors.New("email is already registered")
	ErrMobileTaken        = errors.New("mobile number is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDeactivated = errors.New("account deactivated")
	ErrNotAuthorized      = errors.New("not authorized")
	ErrUserNotFound       = errors.New("user not found")
)

// Account is the minimal projection returned to authenticated callers.
type Account struct {
	ID    uuid.UUID
	Name  string
	Email string
}

// SignupParams defines the parameters for user registration.
type SignupParams struct {
	Name     string
	Email    string
	Mobile   string
	Password string
	Passkey  string
}

// LoginParams defines the parameters for user login.
type LoginParams struct {
	Email      string
	Password   string
	RememberMe bool
}

// SessionMeta carries the request origin recorded in the login log.
type SessionMeta struct {
	IPAddress string
	UserAgent string
}

// AuthResult is returned on successful signup or login.
type AuthResult struct {
	UserID uuid.UUID
	Name   string
	Email  string
	Token  string
}

// AuthUsecase defines the interface for signup, login and session token
// validation.
type AuthUsecase interface {
	Signup(ctx context.Context, params SignupParams) (*AuthResult, error)
	Login(ctx context.Context, params LoginParams, meta SessionMeta) (*AuthResult, error)

	// Authenticate verifies a session token and re-reads the account
	// projection. Any verification failure yields ErrNotAuthorized; a valid
	// token whose account no longer exists yields ErrUserNotFound.
	Authenticate(ctx context.Context, token string) (*Account, error)
}

type authUsecase struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	jwtAuth     auth.JWTAuthenticator
	tokenCfg    config.TokenConfig
}

// NewAuthUsecase creates a new instance of AuthUsecase.
func NewAuthUsecase(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	jwtAuth auth.JWTAuthenticator,
	tokenCfg config.TokenConfig,
) AuthUsecase {
	return &authUsecase{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		jwtAuth:     jwtAuth,
		tokenCfg:    tokenCfg,
	}
}

func (u *authUsecase) Signup(ctx context.Context, params SignupParams) (*AuthResult, error) {
	// Email is checked before mobile so that a duplicate email is reported
	// even when both could collide.
	if _, err := u.userRepo.GetUserByEmail(ctx, params.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	if params.Mobile != "" {
		if _, err := u.userRepo.GetUserByMobile(ctx, params.Mobile); err == nil {
			return nil, ErrMobileTaken
		} else if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
	}

	passwordHash, err := security.HashSecret(params.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:           uuid.New(),
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: passwordHash,
	}

	if params.Mobile != "" {
		user.Mobile = &params.Mobile
	}

	if params.Passkey != "" {
		passkeyHash, err := security.HashSecret(params.Passkey)
		if err != nil {
			return nil, err
		}
		user.PasskeyHash = &passkeyHash
	}

	if _, err := u.userRepo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	token, err := u.IssueToken(user.ID, false)
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Token:  token,
	}, nil
}

func (u *authUsecase) Login(ctx context.Context, params LoginParams, meta SessionMeta) (*AuthResult, error) {
	user, err := u.userRepo.GetUserByEmail(ctx, params.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// The active flag is checked before the password so a deactivated
	// account rejects distinctly.
	if !user.Active {
		return nil, ErrAccountDeactivated
	}

	if ok, err := security.VerifySecret(params.Password, user.PasswordHash); err != nil {
		return nil, err
	} else if !ok {
		return nil, ErrInvalidCredentials
	}

	if err := u.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		return nil, err
	}

	session := &model.Session{UserID: user.ID}
	if meta.IPAddress != "" {
		session.IPAddress = &meta.IPAddress
	}
	if meta.UserAgent != "" {
		session.UserAgent = &meta.UserAgent
	}

	if _, err := u.sessionRepo.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	token, err := u.IssueToken(user.ID, params.RememberMe)
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Token:  token,
	}, nil
}

func (u *authUsecase) Authenticate(ctx context.Context, token string) (*Account, error) {
	claims := &auth.SessionClaims{}
	if _, err := u.jwtAuth.ValidateTokenWithClaims(token, claims); err != nil {
		return nil, ErrNotAuthorized
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, ErrNotAuthorized
	}

	user, err := u.userRepo.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &Account{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}, nil
}

// IssueToken signs a session token for the user, expiring after the default
// window, or after the remember-me window when requested.
func (u *authUsecase) IssueToken(userID uuid.UUID, rememberMe bool) (string, error) {
	expiresIn := u.tokenCfg.SessionExpiresIn
	if rememberMe {
		expiresIn = u.tokenCfg.RememberMeExpiresIn
	}

	now := time.Now()
	claims := auth.SessionClaims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    u.tokenCfg.Issuer,
			Audience:  jwt.ClaimStrings{u.tokenCfg.Issuer},
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	return u.jwtAuth.GenerateToken(claims)
}
