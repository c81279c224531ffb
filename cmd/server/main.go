package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/Poojabhadane4112/MumbaiHacks/internal/auth"
	"github.com/Poojabhadane4112/MumbaiHacks/internal/config"
	"github.com/Poojabhadane4112/MumbaiHacks/internal/handler"
	"github.com/Poojabhadane4112/MumbaiHacks/internal/mailer"
	"github.com/Poojabhadane4112/MumbaiHacks/internal/notifier"
	"github.com/Poojabhadane4112/MumbaiHacks/internal/repository"
	"github.com/Poojabhadane4112/MumbaiHacks/internal/sweeper"
	"github.com/Poojabhadane4112/MumbaiHacks/internal/usecase"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := repository.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer db.Close()

	userRepo := repository.NewUserPostgresRepository(db)
	sessionRepo := repository.NewSessionPostgresRepository(db)
	otpRepo := repository.NewOTPPostgresRepository(db)
	passkeyRepo := repository.NewPasskeyVerificationPostgresRepository(db)
	profileRepo := repository.NewFinancialProfilePostgresRepository(db)

	var m *mailer.Mailer
	if cfg.SMTP.Host != "" {
		m = mailer.NewMailer(cfg.SMTP)
	}
	dispatcher := notifier.NewDispatcher(cfg.SMS, m, &logger)

	jwtAuth := auth.NewJWTAuthenticator(cfg.Token.Secret, cfg.Token.Issuer, cfg.Token.Issuer)

	otpUsecase := usecase.NewOTPUsecase(otpRepo)
	authUsecase := usecase.NewAuthUsecase(userRepo, sessionRepo, jwtAuth, cfg.Token)
	recoveryUsecase := usecase.NewRecoveryUsecase(userRepo, passkeyRepo, otpUsecase, dispatcher)
	profileUsecase := usecase.NewProfileUsecase(profileRepo)

	h := handler.NewHandler(&logger, cfg, authUsecase, recoveryUsecase, profileUsecase)

	sw := sweeper.New(otpUsecase, passkeyRepo, cfg.Sweep.Interval, &logger)
	go sw.Run(ctx)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      h.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	logger.Info().Msg("shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	logger.Info().Msg("server stopped")
}
