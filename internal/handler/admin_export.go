package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/raffle-ticket-sales/internal/export"
	"github.com/iliyamo/raffle-ticket-sales/internal/selection"
	"github.com/iliyamo/raffle-ticket-sales/internal/view"
)

// CardExporter captures one card asynchronously.
type CardExporter interface {
	Export(ctx context.Context, t export.Target, done func(export.Result))
}

// ExportHandler serves the admin card export.
type ExportHandler struct {
	Raffles  *RaffleHandler
	Exporter CardExporter
}

// ExportCard handles GET /v1/admin/raffles/:id/cards/:phone/export.  The
// PNG comes back as an attachment; the WhatsApp link goes in X-Share-URL.
func (h *ExportHandler) ExportCard(c echo.Context) error {
	raffle, sales, err := loadRaffle(c, h.Raffles.Catalog)
	if err != nil {
		return jsonError(c, err)
	}
	price := selection.ResolvePrice(formatPrice(raffle.Price), h.Raffles.DefaultPrice, priceHook(raffle.ID))
	cards := view.BuildCards(view.GroupSales(sales), view.CardOptions{
		Raffle:  *raffle,
		Price:   price,
		Money:   h.Raffles.Money,
		Linker:  h.Raffles.Linker,
		Actions: h.Raffles.Actions,
	})
	card, ok := view.FindCard(cards, c.Param("phone"))
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "card not found"})
	}

	ctx := c.Request().Context()
	results := make(chan export.Result, 1)
	h.Exporter.Export(ctx, card, func(r export.Result) { results <- r })

	var res export.Result
	select {
	case res = <-results:
	case <-ctx.Done():
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "export canceled"})
	}
	if res.Err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "export failed"})
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", res.FileName))
	c.Response().Header().Set("X-Share-URL", res.ShareURL)
	return c.Blob(http.StatusOK, "image/png", res.PNG)
}
