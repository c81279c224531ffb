package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Routes builds the chi router for the onboarding API.
func (h *Handler) Routes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(h.RequestLogger)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		h.writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: "ok"})
	})

	r.Post("/signup", h.Signup)
	r.Post("/signin", h.Signin)

	r.Post("/forgot-password", h.ForgotPassword)
	r.Post("/forgot-password-email", h.ForgotPasswordEmail)
	r.Post("/verify-otp", h.VerifyOTP)
	r.Post("/verify-passkey", h.VerifyPasskey)
	r.Post("/reset-password", h.ResetPassword)
	r.Post("/set-passkey", h.SetPasskey)

	r.Group(func(r chi.Router) {
		r.Use(h.Authenticated)

		r.Get("/verify", h.Verify)
		r.Post("/financial-profile", h.SubmitFinancialProfile)
		r.Get("/financial-profile", h.GetFinancialProfile)
		r.Get("/financial-profile/ai-summary", h.GetAISummary)
	})

	return r
}
