package handler

import (
	"errors"
	"net/http"

	"github.com/Poojabhadane4112/MumbaiHacks/internal/model"
	"github.com/Poojabhadane4112/MumbaiHacks/internal/usecase"
)

func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	challenge, err := h.recoveryUsecase.RequestSMSOTP(r.Context(), req.Mobile)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			h.writeError(w, http.StatusNotFound, "no account found for this mobile number", nil)
			return
		}
		h.writeInternalError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, OTPChallengeResponse{
		Success:   true,
		Message:   "verification code sent",
		OTPToken:  challenge.Token,
		ExpiresIn: challenge.ExpiresIn,
	})
}

func (h *Handler) ForgotPasswordEmail(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordEmailRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	challenge, err := h.recoveryUsecase.RequestEmailOTP(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			h.writeError(w, http.StatusNotFound, "no account found for this email", nil)
			return
		}
		h.writeInternalError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, OTPChallengeResponse{
		Success:   true,
		Message:   "verification code sent",
		OTPToken:  challenge.Token,
		ExpiresIn: challenge.ExpiresIn,
	})
}

func (h *Handler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req VerifyOTPRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	channel, identifier, ok := recoveryIdentifier(req.Mobile, req.Email)
	if !ok {
		h.writeError(w, http.StatusBadRequest, "either mobile or email is required", nil)
		return
	}

	outcome, err := h.recoveryUsecase.VerifyOTP(r.Context(), channel, identifier, req.OTP, req.OTPToken)
	if err != nil {
		h.writeInternalError(w, err)
		return
	}

	h.writeOutcome(w, outcome)
}

func (h *Handler) VerifyPasskey(w http.ResponseWriter, r *http.Request) {
	var req VerifyPasskeyRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	grant, err := h.recoveryUsecase.VerifyPasskey(r.Context(), req.Email, req.Passkey)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			h.writeError(w, http.StatusNotFound, "no account found for this email", nil)
		case errors.Is(err, usecase.ErrPasskeyNotSet):
			h.writeError(w, http.StatusBadRequest, "no passkey is set for this account", nil)
		case errors.Is(err, usecase.ErrInvalidPasskey):
			h.writeError(w, http.StatusUnauthorized, "invalid passkey", nil)
		default:
			h.writeInternalError(w, err)
		}
		return
	}

	h.writeJSON(w, http.StatusOK, VerifyPasskeyResponse{
		Success:      true,
		Message:      "passkey verified",
		PasskeyToken: grant.Token,
		ExpiresIn:    grant.ExpiresIn,
	})
}

func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	var err error
	switch {
	case req.PasskeyToken != "":
		if req.Email == "" {
			h.writeError(w, http.StatusBadRequest, "email is required for a passkey reset", nil)
			return
		}
		err = h.recoveryUsecase.ResetPasswordWithPasskey(r.Context(), req.Email, req.PasskeyToken, req.NewPassword)
	case req.OTPToken != "":
		channel, identifier, ok := recoveryIdentifier(req.Mobile, req.Email)
		if !ok {
			h.writeError(w, http.StatusBadRequest, "either mobile or email is required", nil)
			return
		}
		err = h.recoveryUsecase.ResetPasswordWithOTP(r.Context(), channel, identifier, req.OTPToken, req.NewPassword)
	default:
		h.writeError(w, http.StatusBadRequest, "either otpToken or passkeyToken is required", nil)
		return
	}

	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			h.writeError(w, http.StatusNotFound, "no account found for this identifier", nil)
		case errors.Is(err, usecase.ErrGrantInvalid):
			h.writeError(w, http.StatusBadRequest, "verification grant is invalid or expired", nil)
		default:
			h.writeInternalError(w, err)
		}
		return
	}

	h.writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: "password has been reset"})
}

func (h *Handler) SetPasskey(w http.ResponseWriter, r *http.Request) {
	var req SetPasskeyRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.recoveryUsecase.SetPasskey(r.Context(), req.Email, req.Passkey); err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			h.writeError(w, http.StatusNotFound, "no account found for this email", nil)
			return
		}
		h.writeInternalError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: "passkey has been set"})
}

// writeOutcome maps a verification outcome onto the HTTP envelope. Callers
// branch on the code field.
func (h *Handler) writeOutcome(w http.ResponseWriter, outcome *usecase.Outcome) {
	switch outcome.Code {
	case usecase.OutcomeVerified:
		h.writeJSON(w, http.StatusOK, VerifyOTPResponse{
			Success: true,
			Message: "code verified",
			Code:    string(outcome.Code),
		})
	case usecase.OutcomeWrongOTP:
		remaining := outcome.RemainingAttempts
		h.writeJSON(w, http.StatusBadRequest, VerifyOTPResponse{
			Success:           false,
			Message:           "incorrect code",
			Code:              string(outcome.Code),
			RemainingAttempts: &remaining,
		})
	case usecase.OutcomeExpiredOTP:
		h.writeJSON(w, http.StatusBadRequest, VerifyOTPResponse{
			Success: false,
			Message: "code has expired",
			Code:    string(outcome.Code),
		})
	case usecase.OutcomeMaxAttemptsExceeded:
		h.writeJSON(w, http.StatusBadRequest, VerifyOTPResponse{
			Success: false,
			Message: "too many incorrect attempts",
			Code:    string(outcome.Code),
		})
	default:
		h.writeJSON(w, http.StatusBadRequest, VerifyOTPResponse{
			Success: false,
			Message: "invalid or unknown code",
			Code:    string(usecase.OutcomeInvalidOTP),
		})
	}
}

// recoveryIdentifier picks the OTP channel and identifier from a payload that
// may carry a mobile number or an email address.
func recoveryIdentifier(mobile, email string) (model.Channel, string, bool) {
	switch {
	case mobile != "":
		return model.ChannelSMS, mobile, true
	case email != "":
		return model.ChannelEmail, email, true
	default:
		return "", "", false
	}
}
