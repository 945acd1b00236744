package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iliyamo/raffle-ticket-sales/internal/handler"
	"github.com/iliyamo/raffle-ticket-sales/internal/view"
)

// RegisterRoutes registers the probes and the embedded static assets.
func RegisterRoutes(e *echo.Echo, ready *handler.ReadyHandler) {
	e.GET("/healthz", handler.Health)
	e.GET("/readyz", ready.Ready)
	e.StaticFS("/static", view.Static())
}

// RegisterMetrics exposes the Prometheus registry at /metrics.
func RegisterMetrics(e *echo.Echo) {
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// RegisterOffline registers the service worker and the web manifest.  Both
// live at the root so the worker may control the whole site.
func RegisterOffline(e *echo.Echo, h *handler.OfflineHandler) {
	e.GET("/service-worker.js", h.ServiceWorker)
	e.GET("/manifest.webmanifest", h.WebManifest)
}

func redirectToList(c echo.Context) error {
	return c.Redirect(http.StatusFound, "/rifas")
}
