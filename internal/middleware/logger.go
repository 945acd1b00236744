package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"github.com/iliyamo/raffle-ticket-sales/internal/metrics"
)

// RequestLogger logs one line per request and records the HTTP metrics.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			route := c.Path()
			if route == "" {
				route = "unknown"
			}
			done := metrics.TimeHTTPRequest(route, c.Request().Method)

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			status := c.Response().Status
			done(strconv.Itoa(status))

			entry := log.WithFields(log.Fields{
				"method":      c.Request().Method,
				"path":        c.Request().URL.Path,
				"route":       route,
				"status":      status,
				"duration_ms": time.Since(start).Milliseconds(),
				"remote_addr": c.RealIP(),
				"user":        Subject(c),
			})
			switch {
			case status >= 500:
				entry.Error("HTTP request")
			case status >= 400:
				entry.Warn("HTTP request")
			default:
				entry.Info("HTTP request")
			}
			return nil
		}
	}
}
