package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"github.com/iliyamo/raffle-ticket-sales/internal/metrics"
	"github.com/iliyamo/raffle-ticket-sales/internal/model"
	"github.com/iliyamo/raffle-ticket-sales/internal/queue"
	"github.com/iliyamo/raffle-ticket-sales/internal/selection"
	"github.com/iliyamo/raffle-ticket-sales/internal/utils"
	"github.com/iliyamo/raffle-ticket-sales/internal/view"
)

// SubmissionPublisher hands a purchase request to the backend.
type SubmissionPublisher interface {
	PublishSelectionSubmitted(ctx context.Context, ev queue.SelectionSubmittedEvent) error
}

const (
	paymentUnspecified = "No especificado"
	paymentSinpe       = "Sinpe"
)

var (
	errIncomplete = errors.New("todos los campos de cliente y contraseña son obligatorios")
	errAllSold    = errors.New("los números seleccionados ya no están disponibles")
	errPublish    = errors.New("no se pudo enviar la solicitud")
)

// PurchaseHandler relays purchase requests.  It never writes to the
// database: the backend consuming the queue decides the sale.
type PurchaseHandler struct {
	Catalog      CatalogReader
	Publisher    SubmissionPublisher
	Money        selection.MoneyFormatter
	DefaultPrice float64
	BcryptCost   int
	Now          func() time.Time
}

type purchaseRequest struct {
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	Password      string `json:"selection_password"`
	Numbers       string `json:"selected_numbers"`
	PaymentMethod string `json:"payment_method"`
	SinpeName     string `json:"sinpe_name"`
	SinpePhone    string `json:"sinpe_phone"`
}

type purchaseOutcome struct {
	Accepted []string `json:"accepted"`
	Skipped  []string `json:"skipped"`
	Rejected []string `json:"rejected,omitempty"`
	Total    string   `json:"total"`
}

// submit validates req against the current sales and publishes it.  On
// errAllSold the outcome still reports the skipped numbers.
func (h *PurchaseHandler) submit(c echo.Context, raffle *model.Raffle, sales []model.Sale, req purchaseRequest) (purchaseOutcome, error) {
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.CustomerPhone = strings.TrimSpace(req.CustomerPhone)
	if req.CustomerName == "" || req.CustomerPhone == "" || req.Password == "" || strings.TrimSpace(req.Numbers) == "" {
		metrics.RecordPurchase("invalid")
		return purchaseOutcome{}, errIncomplete
	}

	requested, rejected := selection.ParseSelectionList(req.Numbers, view.GridSize)
	sold := view.IndexSales(sales)
	var out purchaseOutcome
	out.Rejected = rejected
	for _, n := range requested {
		if sold.Has(n) {
			out.Skipped = append(out.Skipped, n)
			continue
		}
		out.Accepted = append(out.Accepted, n)
	}
	if len(out.Accepted) == 0 {
		metrics.RecordPurchase("all_sold")
		return out, errAllSold
	}

	price := selection.ResolvePrice(formatPrice(raffle.Price), h.DefaultPrice, priceHook(raffle.ID))
	st := selection.Compute(out.Accepted, price, h.Money)
	out.Total = st.TotalText

	hash, err := utils.HashPassword(req.Password, h.BcryptCost)
	if err != nil {
		log.WithError(err).Error("hash selection password failed")
		metrics.RecordPurchase("failed")
		return out, errPublish
	}

	ev := queue.SelectionSubmittedEvent{
		RaffleID:      raffle.ID,
		RaffleNumber:  raffle.Number,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		PasswordHash:  hash,
		Numbers:       out.Accepted,
		Skipped:       out.Skipped,
		PaymentMethod: paymentUnspecified,
		UnitPrice:     price,
		Total:         st.TotalText,
		SubmittedAt:   h.now().UTC().Format(time.RFC3339),
		RequestID:     c.Response().Header().Get(echo.HeaderXRequestID),
	}
	if req.PaymentMethod != "" {
		ev.PaymentMethod = req.PaymentMethod
	}
	if ev.PaymentMethod == paymentSinpe {
		ev.SinpeName = strings.TrimSpace(req.SinpeName)
		ev.SinpePhone = strings.TrimSpace(req.SinpePhone)
	}

	if err := h.Publisher.PublishSelectionSubmitted(c.Request().Context(), ev); err != nil {
		metrics.RecordPurchase("failed")
		return out, errPublish
	}

	status := "accepted"
	if len(out.Skipped) > 0 {
		status = "partial"
	}
	metrics.RecordPurchase(status)
	log.WithFields(log.Fields{
		"raffle_id": raffle.ID,
		"accepted":  len(out.Accepted),
		"skipped":   len(out.Skipped),
	}).Info("purchase request relayed")
	return out, nil
}

func (h *PurchaseHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// PurchaseForm handles POST /rifas/:id/comprar and redirects back to the
// detail page with a status message.
func (h *PurchaseHandler) PurchaseForm(c echo.Context) error {
	raffle, sales, err := loadRaffle(c, h.Catalog)
	if err != nil {
		return pageError(c, err)
	}
	req := purchaseRequest{
		CustomerName:  c.FormValue("customer_name"),
		CustomerPhone: c.FormValue("customer_phone"),
		Password:      c.FormValue("selection_password"),
		Numbers:       c.FormValue("selected_numbers"),
		PaymentMethod: trimForm(c, "payment_method"),
		SinpeName:     c.FormValue("sinpe_name"),
		SinpePhone:    c.FormValue("sinpe_phone"),
	}
	out, err := h.submit(c, raffle, sales, req)

	code := "enviado"
	switch {
	case errors.Is(err, errIncomplete):
		code = "incompleto"
	case errors.Is(err, errAllSold):
		code = "vendidos"
	case err != nil:
		code = "error"
	case len(out.Skipped) > 0:
		code = "parcial"
	}
	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/rifas/%d?estado=%s", raffle.ID, code))
}

// PurchaseJSON handles POST /v1/raffles/:id/purchase.
func (h *PurchaseHandler) PurchaseJSON(c echo.Context) error {
	var req purchaseRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payload"})
	}
	raffle, sales, err := loadRaffle(c, h.Catalog)
	if err != nil {
		return jsonError(c, err)
	}
	out, err := h.submit(c, raffle, sales, req)
	switch {
	case errors.Is(err, errIncomplete):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, errAllSold):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error(), "skipped": out.Skipped})
	case err != nil:
		return c.JSON(http.StatusBadGateway, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusAccepted, out)
}
