package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/restsoft-app/restsoft-pos/backend"
	"github.com/restsoft-app/restsoft-pos/services"
	"github.com/restsoft-app/restsoft-pos/utils"
)

// respondServiceError maps the service sentinels onto HTTP statuses so
// every controller reports failures the same way.
func respondServiceError(c *gin.Context, err error) {
	var blocked *services.ResizeBlockedError
	if errors.As(err, &blocked) {
		c.JSON(http.StatusConflict, gin.H{
			"status":          false,
			"message":         blocked.Error(),
			"affected_tables": blocked.Affected,
		})
		return
	}

	var sub *backend.SubmissionError
	if errors.As(err, &sub) {
		utils.RespondError(c, http.StatusBadGateway, err)
		return
	}
	var netErr *backend.NetworkError
	if errors.As(err, &netErr) {
		utils.RespondError(c, http.StatusBadGateway, err)
		return
	}

	switch {
	case errors.Is(err, services.ErrValidation):
		utils.RespondError(c, http.StatusBadRequest, err)
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.RespondError(c, http.StatusUnauthorized, err)
	case errors.Is(err, services.ErrDuplicateEmail):
		utils.RespondError(c, http.StatusConflict, err)
	case errors.Is(err, services.ErrBadState):
		utils.RespondError(c, http.StatusConflict, err)
	case errors.Is(err, backend.ErrNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	default:
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}
