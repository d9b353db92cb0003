package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/feral-file/ff-minter/internal/api/shared/dto"
	apierrors "github.com/feral-file/ff-minter/internal/api/shared/errors"
	"github.com/feral-file/ff-minter/internal/logger"
)

// respondBadRequest responds with a bad request error
func respondBadRequest(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusBadRequest, apierrors.NewBadRequestError(message, details...))
}

// respondValidationError responds with a validation error
func respondValidationError(c *gin.Context, details string) {
	c.JSON(http.StatusBadRequest, apierrors.NewValidationError(details))
}

// respondRelayError responds with the flat {"error": "..."} body of the upload routes
func respondRelayError(c *gin.Context, status int, message string) {
	c.JSON(status, dto.RelayErrorResponse{Error: message})
}

// respondAPIError maps an executor error onto a status code, logging anything unexpected
func respondAPIError(c *gin.Context, err error, message string, fields ...zap.Field) {
	var apiErr *apierrors.APIError
	if !errors.As(err, &apiErr) {
		logger.ErrorCtx(c.Request.Context(), err, fields...)
		c.JSON(http.StatusInternalServerError, apierrors.NewInternalError(message))
		return
	}

	status := http.StatusInternalServerError
	switch apiErr.Code {
	case apierrors.ErrCodeBadRequest, apierrors.ErrCodeValidationFailed:
		status = http.StatusBadRequest
	case apierrors.ErrCodeUnauthorized:
		status = http.StatusUnauthorized
	case apierrors.ErrCodeConflict:
		status = http.StatusConflict
	case apierrors.ErrCodeServiceError:
		status = http.StatusServiceUnavailable
		logger.WarnCtx(c.Request.Context(), message, append(fields, zap.String("details", apiErr.Details))...)
	}

	c.JSON(status, apiErr)
}
