// Package handler wires the onboarding API onto HTTP.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/rs/zerolog"

	"github.com/Poojabhadane4112/MumbaiHacks/internal/config"
	"github.com/Poojabhadane4112/MumbaiHacks/internal/usecase"
)

// Handler holds the HTTP handlers for every endpoint.
type Handler struct {
	logger     *zerolog.Logger
	cfg        *config.Config
	validate   *validator.Validate
	translator ut.Translator

	authUsecase     usecase.AuthUsecase
	recoveryUsecase usecase.RecoveryUsecase
	profileUsecase  usecase.ProfileUsecase
}

// NewHandler creates a new Handler instance.
func NewHandler(
	logger *zerolog.Logger,
	cfg *config.Config,
	authUsecase usecase.AuthUsecase,
	recoveryUsecase usecase.RecoveryUsecase,
	profileUsecase usecase.ProfileUsecase,
) *Handler {
	validate := validator.New(validator.WithRequiredStructEnabled())

	english := en.New()
	uni := ut.New(english, english)
	translator, _ := uni.GetTranslator("en")
	if err := entranslations.RegisterDefaultTranslations(validate, translator); err != nil {
		logger.Fatal().Err(err).Msg("failed to register validator translations")
	}

	return &Handler{
		logger:          logger,
		cfg:             cfg,
		validate:        validate,
		translator:      translator,
		authUsecase:     authUsecase,
		recoveryUsecase: recoveryUsecase,
		profileUsecase:  profileUsecase,
	}
}

// decodeAndValidate decodes the JSON body into dst and runs payload
// validation. On failure it writes the 400 response itself and returns false.
func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body", err)
		return false
	}

	if err := h.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if ok := asValidationErrors(err, &verrs); ok && len(verrs) > 0 {
			h.writeError(w, http.StatusBadRequest, verrs[0].Translate(h.translator), nil)
			return false
		}
		h.writeError(w, http.StatusBadRequest, "invalid request", err)
		return false
	}

	return true
}
