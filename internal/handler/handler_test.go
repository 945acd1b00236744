package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/raffle-ticket-sales/internal/deeplink"
	"github.com/iliyamo/raffle-ticket-sales/internal/model"
	"github.com/iliyamo/raffle-ticket-sales/internal/repository"
	"github.com/iliyamo/raffle-ticket-sales/internal/selection"
	"github.com/iliyamo/raffle-ticket-sales/internal/view"
)

type fakeCatalog struct {
	raffles []model.Raffle
	sales   map[uint64][]model.Sale
	err     error
}

func (f *fakeCatalog) ListRaffles(context.Context) ([]model.Raffle, error) {
	return f.raffles, f.err
}

func (f *fakeCatalog) GetRaffle(_ context.Context, id uint64) (*model.Raffle, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.raffles {
		if f.raffles[i].ID == id {
			r := f.raffles[i]
			return &r, nil
		}
	}
	return nil, repository.ErrRaffleNotFound
}

func (f *fakeCatalog) ListSales(_ context.Context, raffleID uint64) ([]model.Sale, error) {
	return f.sales[raffleID], nil
}

// recordingRenderer keeps the last template name and model.
type recordingRenderer struct {
	name string
	data interface{}
}

func (r *recordingRenderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	r.name, r.data = name, data
	_, err := io.WriteString(w, name)
	return err
}

func testCatalog() *fakeCatalog {
	return &fakeCatalog{
		raffles: []model.Raffle{{ID: 1, Number: "R-7", Name: "Moto", Price: 1500}},
		sales: map[uint64][]model.Sale{1: {
			{ID: 10, RaffleID: 1, Number: "07", CustomerName: "Ana Mora", CustomerPhone: "88887777"},
			{ID: 11, RaffleID: 1, Number: "03", CustomerName: "Ana Mora", CustomerPhone: "88887777"},
			{ID: 12, RaffleID: 1, Number: "42", CustomerName: "Luis", CustomerPhone: "70001111", Canceled: true},
		}},
	}
}

func testRaffleHandler(cat CatalogReader) *RaffleHandler {
	return &RaffleHandler{
		Catalog:      cat,
		Money:        selection.DefaultMoney(),
		Linker:       deeplink.NewLinker(""),
		Actions:      view.Actions{},
		DefaultPrice: selection.DefaultPrice,
	}
}

// serve runs h on a fresh echo context bound to path params.
func serve(t *testing.T, h echo.HandlerFunc, req *http.Request, params map[string]string, setup func(echo.Context)) (*httptest.ResponseRecorder, *recordingRenderer) {
	t.Helper()
	e := echo.New()
	rr := &recordingRenderer{}
	e.Renderer = rr
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	var names, values []string
	for k, v := range params {
		names = append(names, k)
		values = append(values, v)
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	if setup != nil {
		setup(c)
	}
	require.NoError(t, h(c))
	return rec, rr
}

func formRequest(method, target string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func asAdmin(c echo.Context) { c.Set("role", "SUPERUSER") }

func decodeJSON(t *testing.T, body []byte, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(body, v))
}

// jsonField returns the raw JSON of one top-level field.
func jsonField(t *testing.T, body []byte, name string) string {
	t.Helper()
	var m map[string]json.RawMessage
	decodeJSON(t, body, &m)
	return string(m[name])
}
