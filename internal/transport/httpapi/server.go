// Package httpapi exposes the borrower directory, the provider adapters and
// the conversation orchestrator over HTTP.
package httpapi

import (
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"collections-agent/internal/ctxutil"
)

// HeaderCorrelationID is echoed on every response.
const HeaderCorrelationID = "X-Correlation-Id"

// NewServer creates and configures the echo server with all routes.
func NewServer(h *Handler, logger *slog.Logger) *echo.Echo {
	if logger == nil {
		logger = slog.Default()
	}
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(correlationID())
	e.Use(requestLogger(logger))

	h.RegisterRoutes(e)
	return e
}

func correlationID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			id := strings.TrimSpace(req.Header.Get(HeaderCorrelationID))
			if id == "" {
				id = uuid.NewString()
			}
			c.Response().Header().Set(HeaderCorrelationID, id)
			c.SetRequest(req.WithContext(ctxutil.WithCorrelationID(req.Context(), id)))
			return next(c)
		}
	}
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency_ms", v.Latency.Milliseconds(),
				"correlation_id", ctxutil.CorrelationID(c.Request().Context()),
			}
			if v.Error != nil {
				logger.Error("request failed", append(attrs, "err", v.Error)...)
				return nil
			}
			logger.Info("request", attrs...)
			return nil
		},
	})
}
