package handlers

import (
	"errors"
	"net/http"

	configRepo "reservodojo/database/repository/configs"
	"reservodojo/models"
	"reservodojo/services/scenario"
	"reservodojo/services/trainer"
	"reservodojo/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// writeServiceError maps service errors onto HTTP responses.
func writeServiceError(c *gin.Context, err error) {
	var cfgErr *scenario.ConfigError
	var valErr *trainer.ValidationError

	switch {
	case errors.As(err, &valErr):
		utils.JSONValidationError(c, "Trainer config is invalid", valErr.Errors)
	case errors.As(err, &cfgErr):
		utils.JSONError(c, http.StatusUnprocessableEntity, "Trainer config cannot produce a scenario", cfgErr.Error())
	case errors.Is(err, trainer.ErrTaskNotFound),
		errors.Is(err, trainer.ErrDraftNotFound),
		errors.Is(err, configRepo.ErrConfigNotFound):
		utils.JSONError(c, http.StatusNotFound, "Not found", err.Error())
	case errors.Is(err, trainer.ErrBookingNumberRequired),
		errors.Is(err, trainer.ErrBookingNumberTooShort),
		errors.Is(err, trainer.ErrUnknownFormat),
		errors.Is(err, models.ErrInvalidReviewStatus):
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
	default:
		getLogger(c).Error("Request failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "")
	}
}
