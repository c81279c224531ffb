package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Poojabhadane4112/MumbaiHacks/internal/usecase"
)

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.authUsecase.Signup(r.Context(), usecase.SignupParams{
		Name:     req.Name,
		Email:    req.Email,
		Mobile:   req.Mobile,
		Password: req.Password,
		Passkey:  req.Passkey,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEmailTaken):
			h.writeError(w, http.StatusBadRequest, fmt.Sprintf("email %s is already registered", req.Email), nil)
		case errors.Is(err, usecase.ErrMobileTaken):
			h.writeError(w, http.StatusBadRequest, fmt.Sprintf("mobile number %s is already registered", req.Mobile), nil)
		default:
			h.writeInternalError(w, err)
		}
		return
	}

	h.writeJSON(w, http.StatusCreated, SignupResponse{
		Success: true,
		UserID:  result.UserID.String(),
		Token:   result.Token,
	})
}

func (h *Handler) Signin(w http.ResponseWriter, r *http.Request) {
	var req SigninRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.authUsecase.Login(r.Context(), usecase.LoginParams{
		Email:      req.Email,
		Password:   req.Password,
		RememberMe: req.RememberMe,
	}, usecase.SessionMeta{
		IPAddress: r.RemoteAddr,
		UserAgent: r.UserAgent(),
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrAccountDeactivated):
			h.writeError(w, http.StatusForbidden, "account deactivated", nil)
		case errors.Is(err, usecase.ErrInvalidCredentials):
			h.writeError(w, http.StatusUnauthorized, "invalid email or password", nil)
		default:
			h.writeInternalError(w, err)
		}
		return
	}

	h.writeJSON(w, http.StatusOK, SigninResponse{
		Success: true,
		UserID:  result.UserID.String(),
		Name:    result.Name,
		Email:   result.Email,
		Token:   result.Token,
	})
}

func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	account, ok := AccountFromContext(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "not authorized", nil)
		return
	}

	h.writeJSON(w, http.StatusOK, AccountResponse{
		Success: true,
		UserID:  account.ID.String(),
		Name:    account.Name,
		Email:   account.Email,
	})
}
