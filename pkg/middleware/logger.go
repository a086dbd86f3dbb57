package middleware

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"admin-request-engine/pkg/contextkeys"
)

const RequestIDHeader = "X-Request-ID"

// InjectLogger выдает каждому HTTP-запросу request id, кладет в контекст
// логгер с этим id и пишет строку лога по завершении.
func InjectLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			requestID := c.Request().Header.Get(RequestIDHeader)
			if _, err := uuid.Parse(requestID); err != nil {
				requestID = uuid.NewString()
			}
			c.Response().Header().Set(RequestIDHeader, requestID)

			reqLogger := logger.With(zap.String("httpRequestId", requestID))
			c.Set("logger", reqLogger)

			ctx := context.WithValue(c.Request().Context(), contextkeys.RequestIDKey, requestID)
			ctx = context.WithValue(ctx, contextkeys.LoggerKey, reqLogger)
			c.SetRequest(c.Request().WithContext(ctx))

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			reqLogger.Info("HTTP",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("latency", time.Since(start)),
			)
			return nil
		}
	}
}

// LoggerFromContext возвращает логгер запроса или fallback.
func LoggerFromContext(ctx context.Context, fallback *zap.Logger) *zap.Logger {
	if l, ok := ctx.Value(contextkeys.LoggerKey).(*zap.Logger); ok && l != nil {
		return l
	}
	return fallback
}
