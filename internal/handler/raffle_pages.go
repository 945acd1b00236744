package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"github.com/iliyamo/raffle-ticket-sales/internal/deeplink"
	"github.com/iliyamo/raffle-ticket-sales/internal/metrics"
	"github.com/iliyamo/raffle-ticket-sales/internal/middleware"
	"github.com/iliyamo/raffle-ticket-sales/internal/model"
	"github.com/iliyamo/raffle-ticket-sales/internal/selection"
	"github.com/iliyamo/raffle-ticket-sales/internal/view"
)

// RaffleHandler renders the public raffle pages and drives the selection.
type RaffleHandler struct {
	Catalog      CatalogReader
	Money        selection.MoneyFormatter
	Linker       deeplink.Linker
	Actions      view.Actions
	DefaultPrice float64
}

// flashes maps the estado query value set by redirects to a message.
var flashes = map[string]view.Flash{
	"enviado":    {Kind: "success", Message: "¡Solicitud enviada! Sus números se confirmarán en breve."},
	"parcial":    {Kind: "warning", Message: "Solicitud enviada. Algunos números ya estaban vendidos y se omitieron."},
	"vendidos":   {Kind: "danger", Message: "Los números seleccionados ya no están disponibles."},
	"incompleto": {Kind: "danger", Message: "Todos los campos de cliente y contraseña son obligatorios."},
	"error":      {Kind: "danger", Message: "No se pudo enviar la solicitud. Intente de nuevo."},
}

func flashFor(code string) *view.Flash {
	if f, ok := flashes[code]; ok {
		return &f
	}
	return nil
}

// ListRaffles renders GET /rifas.
func (h *RaffleHandler) ListRaffles(c echo.Context) error {
	raffles, err := h.Catalog.ListRaffles(c.Request().Context())
	if err != nil {
		log.WithError(err).Error("list raffles failed")
		return pageError(c, &httpError{http.StatusInternalServerError, "database error"})
	}
	page := view.BuildList(raffles, middleware.IsAdmin(c), h.Money, h.Actions)
	page.Flash = flashFor(c.QueryParam("estado"))
	return c.Render(http.StatusOK, view.PageList, page)
}

// Detail renders GET /rifas/:id.  ?sel carries the selection between
// requests and ?q the card filter.
func (h *RaffleHandler) Detail(c echo.Context) error {
	raffle, sales, err := loadRaffle(c, h.Catalog)
	if err != nil {
		return pageError(c, err)
	}
	price := selection.ResolvePrice(formatPrice(raffle.Price), h.DefaultPrice, priceHook(raffle.ID))
	page, _ := h.detail(c, raffle, sales, price, c.QueryParam("sel"), "", c.QueryParam("q"))
	page.Flash = flashFor(c.QueryParam("estado"))
	return c.Render(http.StatusOK, view.PageDetail, page)
}

// detail restores the carried selection, applies an optional toggle and
// builds the page.  toggled reports whether the toggle changed anything.
func (h *RaffleHandler) detail(c echo.Context, raffle *model.Raffle, sales []model.Sale, price float64, sel, number, query string) (view.DetailPage, bool) {
	sold := view.IndexSales(sales)
	accepted, rejected := selection.ParseSelectionList(sel, view.GridSize)
	if len(rejected) > 0 {
		log.WithFields(log.Fields{"raffle_id": raffle.ID, "rejected": rejected}).Debug("ignored invalid carried numbers")
	}

	desktop, mobile := selection.NewMirror("desktop"), selection.NewMirror("mobile")
	ctrl := selection.NewController(price, h.Money, desktop, mobile)
	ctrl.Restore(accepted, sold.Has)

	toggled := false
	if number != "" {
		if n, ok := gridNumber(number); ok {
			toggled = ctrl.Toggle(n, sold.Has(n))
		} else {
			log.WithFields(log.Fields{"raffle_id": raffle.ID, "number": number}).Debug("toggle outside the grid ignored")
		}
		metrics.RecordToggle(toggled)
	}

	return view.BuildDetail(view.DetailInput{
		Raffle:  *raffle,
		Sales:   sales,
		Price:   price,
		Ctrl:    ctrl,
		Desktop: desktop,
		Mobile:  mobile,
		Query:   query,
		Admin:   middleware.IsAdmin(c),
		Money:   h.Money,
		Linker:  h.Linker,
		Actions: h.Actions,
	}), toggled
}

// gridNumber pads a clicked number to its two-digit label.  ok is false
// unless raw names exactly one ticket of the grid.
func gridNumber(raw string) (string, bool) {
	acc, rejected := selection.ParseSelectionList(raw, view.GridSize)
	if len(acc) != 1 || len(rejected) > 0 {
		return "", false
	}
	return acc[0], true
}

// Modal renders GET /rifas/:id/modal/:kind as an HTML fragment.  Card
// modals take ?phone and an optional ?ids subset.
func (h *RaffleHandler) Modal(c echo.Context) error {
	raffle, sales, err := loadRaffle(c, h.Catalog)
	if err != nil {
		return pageError(c, err)
	}
	admin := middleware.IsAdmin(c)
	kind := c.Param("kind")
	m := view.Modal{Kind: kind}

	switch kind {
	case view.ModalWinner, view.ModalDeleteRaffle:
		if !admin {
			return pageError(c, &httpError{http.StatusForbidden, "acceso denegado"})
		}
		if kind == view.ModalWinner {
			w := view.NewWinnerModal(h.Actions, raffle.ID, raffle.Name, raffle.HasWinners())
			m.Winner = &w
		} else {
			d := view.NewDeleteRaffleModal(h.Actions, raffle.ID, raffle.Name)
			m.DeleteRaffle = &d
		}
	case view.ModalDelete, view.ModalCancel, view.ModalEdit:
		if kind == view.ModalCancel && !admin {
			return pageError(c, &httpError{http.StatusForbidden, "acceso denegado"})
		}
		price := selection.ResolvePrice(formatPrice(raffle.Price), h.DefaultPrice, priceHook(raffle.ID))
		cards := view.BuildCards(view.GroupSales(sales), view.CardOptions{
			Raffle: *raffle, Price: price, Money: h.Money, Linker: h.Linker, Actions: h.Actions,
		})
		card, ok := view.FindCard(cards, c.QueryParam("phone"))
		if !ok {
			return pageError(c, &httpError{http.StatusNotFound, "selección no encontrada"})
		}
		ids := card.RestrictIDs(c.QueryParam("ids"))
		switch kind {
		case view.ModalDelete:
			d := view.NewDeleteModal(h.Actions, raffle.ID, ids, card.Name, card.NumbersText)
			m.Delete = &d
		case view.ModalCancel:
			cm := view.NewCancelModal(h.Actions, raffle.ID, ids, card.Name, card.Canceled)
			m.Cancel = &cm
		default:
			e := view.NewEditModal(h.Actions, raffle.ID, ids, card.NumbersText, card.Name, card.Phone)
			m.Edit = &e
		}
	default:
		return pageError(c, &httpError{http.StatusNotFound, "modal desconocido"})
	}
	return c.Render(http.StatusOK, view.PageModal, m)
}
