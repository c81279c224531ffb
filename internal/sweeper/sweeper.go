// Package sweeper periodically purges long-expired OTP rows and expired
// passkey verification grants.
package sweeper

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Poojabhadane4112/MumbaiHacks/internal/repository"
	"github.com/Poojabhadane4112/MumbaiHacks/internal/usecase"
)

// Sweeper runs the periodic cleanup loop.
type Sweeper struct {
	otp         usecase.OTPUsecase
	passkeyRepo repository.PasskeyVerificationRepository
	interval    time.Duration
	logger      *zerolog.Logger
}

// New creates a new Sweeper instance.
func New(
	otp usecase.OTPUsecase,
	passkeyRepo repository.PasskeyVerificationRepository,
	interval time.Duration,
	logger *zerolog.Logger,
) *Sweeper {
	return &Sweeper{
		otp:         otp,
		passkeyRepo: passkeyRepo,
		interval:    interval,
		logger:      logger,
	}
}

// Run blocks until the context is cancelled, sweeping on every tick.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	otpDeleted, err := s.otp.SweepExpired(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("otp sweep failed")
	}

	grantsDeleted, err := s.passkeyRepo.DeleteExpiredBefore(ctx, time.Now().Add(-24*time.Hour))
	if err != nil {
		s.logger.Error().Err(err).Msg("passkey verification sweep failed")
	}

	if otpDeleted > 0 || grantsDeleted > 0 {
		s.logger.Info().
			Int64("otp_rows", otpDeleted).
			Int64("passkey_grants", grantsDeleted).
			Msg("swept expired verification rows")
	}
}
