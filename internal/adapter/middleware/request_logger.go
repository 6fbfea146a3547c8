package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"support-desk/internal/logger"
	"support-desk/internal/metrics"
	"support-desk/pkg/id"
)

// RequestLogger tags each request with an id (taken from X-Request-ID when
// the client sends one), puts a request-scoped logger in its context and
// writes one line per request. m may be nil.
func RequestLogger(log *zap.Logger, m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			reqID := req.Header.Get(echo.HeaderXRequestID)
			if reqID == "" || len(reqID) > 64 {
				reqID = id.New()
			}
			c.Response().Header().Set(echo.HeaderXRequestID, reqID)

			ctx, reqLog := logger.WithRequestID(req.Context(), log, reqID)
			c.SetRequest(req.WithContext(ctx))

			if err := next(c); err != nil {
				c.Error(err)
			}

			latency := time.Since(start)
			status := c.Response().Status
			m.ObserveRequest(req.Method, c.Path(), status, latency)

			fields := []zap.Field{
				zap.String("method", req.Method),
				zap.String("path", req.URL.Path),
				zap.String("route", c.Path()),
				zap.Int("status", status),
				zap.Duration("latency", latency),
				zap.String("remote_ip", c.RealIP()),
			}
			switch {
			case status >= 500:
				reqLog.Error("request", fields...)
			case status >= 400:
				reqLog.Warn("request", fields...)
			default:
				reqLog.Info("request", fields...)
			}
			return nil
		}
	}
}
