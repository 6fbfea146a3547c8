package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"support-desk/internal/apperrors"
	"support-desk/internal/logger"
)

const (
	msgLoanNotFound     = "Loan not found"
	msgValidationFailed = "Validation failed"
	msgInvalidBody      = "Invalid request body"
	msgUpdateFailed     = "Failed to update loan status"
	msgInternal         = "Internal server error"
	msgApproved         = "Loan approved successfully"
)

type ErrorResponse struct {
	Message string                 `json:"message"`
	Errors  []apperrors.FieldError `json:"errors,omitempty"`
}

// respondError maps usecase errors onto status codes. Anything unexpected is
// logged and rendered as an opaque 500 carrying internalMsg.
func respondError(c echo.Context, log *zap.Logger, err error, internalMsg string) error {
	var ve *apperrors.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: msgValidationFailed, Errors: ve.Fields})
	case errors.Is(err, apperrors.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Message: msgLoanNotFound})
	}

	log.Error("request failed",
		zap.String("request_id", logger.GetRequestID(c.Request().Context())),
		zap.String("method", c.Request().Method),
		zap.String("path", c.Request().URL.Path),
		zap.Error(err),
	)
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Message: internalMsg})
}
