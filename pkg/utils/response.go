package utils

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "admin-request-engine/pkg/errors"
	"admin-request-engine/pkg/middleware"
)

type HTTPResponse struct {
	Status  bool        `json:"status"`
	Body    interface{} `json:"body,omitempty"`
	Message string      `json:"message"`
}

func SuccessResponse(ctx echo.Context, body interface{}, message string, code int) error {
	return ctx.JSON(code, &HTTPResponse{Status: true, Body: body, Message: message})
}

// ErrorResponse переводит доменные ошибки в HTTP-коды.
// Все, что не распознано, уходит клиенту как 500 без деталей.
func ErrorResponse(c echo.Context, err error, logger *zap.Logger) error {
	logger = middleware.LoggerFromContext(c.Request().Context(), logger)

	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		if httpErr.Err != nil {
			logger.Error("HTTP Error",
				zap.Int("code", httpErr.Code),
				zap.String("message", httpErr.Message),
				zap.Error(httpErr.Err),
			)
		}
		return c.JSON(httpErr.Code, &HTTPResponse{Status: false, Message: httpErr.Message, Body: httpErr.Details})
	}

	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		return c.JSON(http.StatusBadRequest, &HTTPResponse{
			Status:  false,
			Message: validationErr.Error(),
			Body:    validationErr.Fields,
		})
	}

	var transitionErr *apperrors.InvalidTransitionError
	if errors.As(err, &transitionErr) {
		return c.JSON(http.StatusConflict, &HTTPResponse{
			Status:  false,
			Message: transitionErr.Error(),
			Body:    map[string]string{"from": transitionErr.From, "to": transitionErr.To},
		})
	}

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return c.JSON(http.StatusNotFound, &HTTPResponse{Status: false, Message: apperrors.ErrNotFound.Error()})
	case errors.Is(err, apperrors.ErrConcurrentModification):
		return c.JSON(http.StatusConflict, &HTTPResponse{Status: false, Message: apperrors.ErrConcurrentModification.Error()})
	case errors.Is(err, apperrors.ErrBadRequest), errors.Is(err, apperrors.ErrValidation):
		return c.JSON(http.StatusBadRequest, &HTTPResponse{Status: false, Message: err.Error()})
	}

	logger.Error("Unexpected Error", zap.Error(err))
	return c.JSON(http.StatusInternalServerError, &HTTPResponse{
		Status:  false,
		Message: "Внутренняя ошибка сервера",
	})
}
