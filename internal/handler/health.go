package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Health is the liveness probe.  It returns a plain "ok".
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// ReadyHandler reports whether the dependencies answer.  Redis is optional:
// a nil client reports "disabled" and never fails the probe.
type ReadyHandler struct {
	DB    Pinger
	Redis *redis.Client
}

// Ready handles GET /readyz.
func (h *ReadyHandler) Ready(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	checks := echo.Map{"database": "ok", "redis": "disabled"}
	if err := h.DB.PingContext(ctx); err != nil {
		log.WithError(err).Warn("readiness: database ping failed")
		checks["database"] = "down"
		status = http.StatusServiceUnavailable
	}
	if h.Redis != nil {
		checks["redis"] = "ok"
		if err := h.Redis.Ping(ctx).Err(); err != nil {
			log.WithError(err).Warn("readiness: redis ping failed")
			checks["redis"] = "down"
		}
	}
	return c.JSON(status, checks)
}
