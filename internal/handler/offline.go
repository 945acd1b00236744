package handler

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"github.com/iliyamo/raffle-ticket-sales/internal/offline"
)

// OfflineHandler serves the service worker script and the web manifest.
type OfflineHandler struct {
	Policy   offline.Policy
	Manifest offline.Manifest
}

// ServiceWorker handles GET /service-worker.js.  The script is scoped to
// the whole site and must be revalidated on every load so a new cache
// generation is picked up.
func (h *OfflineHandler) ServiceWorker(c echo.Context) error {
	js, err := offline.Script(h.Policy)
	if err != nil {
		log.WithError(err).Error("render service worker failed")
		return c.String(http.StatusInternalServerError, "service worker unavailable")
	}
	hdr := c.Response().Header()
	hdr.Set("Service-Worker-Allowed", "/")
	hdr.Set("Cache-Control", "no-cache")
	return c.Blob(http.StatusOK, "application/javascript; charset=utf-8", js)
}

// WebManifest handles GET /manifest.webmanifest.
func (h *OfflineHandler) WebManifest(c echo.Context) error {
	b, err := json.Marshal(h.Manifest)
	if err != nil {
		return c.String(http.StatusInternalServerError, "manifest unavailable")
	}
	return c.Blob(http.StatusOK, "application/manifest+json", b)
}
