package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Poojabhadane4112/MumbaiHacks/internal/usecase"
)

type contextKey struct{}

var accountContextKey = contextKey{}

// AccountFromContext returns the authenticated account stored by the
// Authenticated middleware.
func AccountFromContext(ctx context.Context) (*usecase.Account, bool) {
	account, ok := ctx.Value(accountContextKey).(*usecase.Account)
	return account, ok
}

// Authenticated validates the Bearer session token and loads the account
// projection into the request context. Any verification failure yields a
// uniform 401; a valid token whose account is gone yields 404.
func (h *Handler) Authenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			h.writeError(w, http.StatusUnauthorized, "not authorized", nil)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			h.writeError(w, http.StatusUnauthorized, "not authorized", nil)
			return
		}

		account, err := h.authUsecase.Authenticate(r.Context(), parts[1])
		if err != nil {
			switch {
			case errors.Is(err, usecase.ErrNotAuthorized):
				h.writeError(w, http.StatusUnauthorized, "not authorized", nil)
			case errors.Is(err, usecase.ErrUserNotFound):
				h.writeError(w, http.StatusNotFound, "user not found", nil)
			default:
				h.writeInternalError(w, err)
			}
			return
		}

		ctx := context.WithValue(r.Context(), accountContextKey, account)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestLogger logs one line per request.
func (h *Handler) RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		h.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("remote", r.RemoteAddr).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}
