// Package handler exposes the HTTP handlers of the raffle page server: the
// public pages, the selection endpoints, the purchase relay, the admin card
// export and the offline worker assets.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"github.com/iliyamo/raffle-ticket-sales/internal/metrics"
	"github.com/iliyamo/raffle-ticket-sales/internal/model"
	"github.com/iliyamo/raffle-ticket-sales/internal/repository"
	"github.com/iliyamo/raffle-ticket-sales/internal/selection"
	"github.com/iliyamo/raffle-ticket-sales/internal/view"
)

// CatalogReader is the read-only view of the backend tables.
type CatalogReader interface {
	ListRaffles(ctx context.Context) ([]model.Raffle, error)
	GetRaffle(ctx context.Context, id uint64) (*model.Raffle, error)
	ListSales(ctx context.Context, raffleID uint64) ([]model.Sale, error)
}

// httpError carries a status and a message safe to show.
type httpError struct {
	status int
	msg    string
}

func (e *httpError) Error() string { return e.msg }

func parseID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, &httpError{http.StatusBadRequest, "invalid id"}
	}
	return id, nil
}

// loadRaffle reads the raffle of the :id param and its sales.
func loadRaffle(c echo.Context, catalog CatalogReader) (*model.Raffle, []model.Sale, error) {
	id, err := parseID(c)
	if err != nil {
		return nil, nil, err
	}
	ctx := c.Request().Context()
	raffle, err := catalog.GetRaffle(ctx, id)
	if errors.Is(err, repository.ErrRaffleNotFound) {
		return nil, nil, &httpError{http.StatusNotFound, "rifa no encontrada"}
	}
	if err != nil {
		log.WithFields(log.Fields{"raffle_id": id, "error": err}).Error("get raffle failed")
		return nil, nil, &httpError{http.StatusInternalServerError, "database error"}
	}
	sales, err := catalog.ListSales(ctx, id)
	if err != nil {
		log.WithFields(log.Fields{"raffle_id": id, "error": err}).Error("list sales failed")
		return nil, nil, &httpError{http.StatusInternalServerError, "database error"}
	}
	return raffle, sales, nil
}

func statusOf(err error) (int, string) {
	var he *httpError
	if errors.As(err, &he) {
		return he.status, he.msg
	}
	return http.StatusInternalServerError, "internal error"
}

// jsonError writes {"error": msg} with the status of err.
func jsonError(c echo.Context, err error) error {
	status, msg := statusOf(err)
	return c.JSON(status, echo.Map{"error": msg})
}

// pageError renders the error page with the status of err.
func pageError(c echo.Context, err error) error {
	status, msg := statusOf(err)
	return c.Render(status, view.PageError, view.ErrorPage{Status: status, Message: msg})
}

// priceHook reports price fallbacks of one raffle.
func priceHook(raffleID uint64) selection.FallbackHook {
	return func(reason, raw string) {
		metrics.RecordPriceFallback(reason)
		log.WithFields(log.Fields{"raffle_id": raffleID, "reason": reason, "raw": raw}).Warn("raffle price unusable, using default")
	}
}

func formatPrice(p float64) string { return strconv.FormatFloat(p, 'f', -1, 64) }

func trimForm(c echo.Context, name string) string { return strings.TrimSpace(c.FormValue(name)) }
