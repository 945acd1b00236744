package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/raffle-ticket-sales/internal/selection"
	"github.com/iliyamo/raffle-ticket-sales/internal/view"
)

// ToggleForm handles POST /rifas/:id/seleccion, the no-script path of the
// grid: the clicked button posts its number with the carried selection and
// the page is rendered again with the number flipped.
func (h *RaffleHandler) ToggleForm(c echo.Context) error {
	raffle, sales, err := loadRaffle(c, h.Catalog)
	if err != nil {
		return pageError(c, err)
	}
	price := selection.ResolvePrice(trimForm(c, "raffle_price"), h.DefaultPrice, priceHook(raffle.ID))
	page, _ := h.detail(c, raffle, sales, price, c.FormValue("selected_numbers"), trimForm(c, "number"), c.FormValue("q"))
	return c.Render(http.StatusOK, view.PageDetail, page)
}

type toggleRequest struct {
	Selected    string `json:"selected_numbers"`
	Number      string `json:"number"`
	RafflePrice string `json:"raffle_price"`
}

type toggleResponse struct {
	Selection []string               `json:"selection"`
	Toggled   bool                   `json:"toggled"`
	Display   selection.DisplayState `json:"display"`
	Mobile    selection.DisplayState `json:"mobile"`
}

// ToggleJSON handles POST /v1/raffles/:id/selection/toggle.  The response
// carries both panel states so a client can check they agree.
func (h *RaffleHandler) ToggleJSON(c echo.Context) error {
	var req toggleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payload"})
	}
	raffle, sales, err := loadRaffle(c, h.Catalog)
	if err != nil {
		return jsonError(c, err)
	}
	raw := req.RafflePrice
	if raw == "" {
		raw = formatPrice(raffle.Price)
	}
	price := selection.ResolvePrice(raw, h.DefaultPrice, priceHook(raffle.ID))
	page, toggled := h.detail(c, raffle, sales, price, req.Selected, req.Number, "")
	return c.JSON(http.StatusOK, toggleResponse{
		Selection: page.Desktop.Numbers,
		Toggled:   toggled,
		Display:   page.Desktop,
		Mobile:    page.Mobile,
	})
}

type cardItem struct {
	Name     string   `json:"name"`
	Phone    string   `json:"phone"`
	Numbers  []string `json:"numbers"`
	Total    string   `json:"total"`
	Canceled bool     `json:"canceled"`
	ShareURL string   `json:"share_url"`
}

// Cards handles GET /v1/raffles/:id/cards?q=, returning the buyer cards the
// query leaves visible.
func (h *RaffleHandler) Cards(c echo.Context) error {
	raffle, sales, err := loadRaffle(c, h.Catalog)
	if err != nil {
		return jsonError(c, err)
	}
	price := selection.ResolvePrice(formatPrice(raffle.Price), h.DefaultPrice, priceHook(raffle.ID))
	cards := view.BuildCards(view.GroupSales(sales), view.CardOptions{
		Raffle: *raffle, Price: price, Money: h.Money, Linker: h.Linker, Actions: h.Actions,
	})
	res := view.FilterCards(cards, c.QueryParam("q"))

	items := make([]cardItem, 0, res.VisibleCount)
	for _, card := range cards {
		if !card.Visible {
			continue
		}
		items = append(items, cardItem{
			Name:     card.Name,
			Phone:    card.Phone,
			Numbers:  card.Numbers,
			Total:    card.Total,
			Canceled: card.Canceled,
			ShareURL: card.ShareURL,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items":      items,
		"count_text": res.CountText,
		"visible":    res.VisibleCount,
		"total":      res.Total,
		"no_results": res.NoResults,
	})
}
