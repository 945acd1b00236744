package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/raffle-ticket-sales/internal/view"
)

func TestDetailRestoresCarriedSelection(t *testing.T) {
	h := testRaffleHandler(testCatalog())
	req := httptest.NewRequest(http.MethodGet, "/rifas/1?sel=5,07,3x&q=ana", nil)
	rec, rr := serve(t, h.Detail, req, map[string]string{"id": "1"}, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, view.PageDetail, rr.name)
	page := rr.data.(view.DetailPage)
	assert.Equal(t, []string{"05"}, page.Desktop.Numbers, "sold and malformed numbers are dropped")
	assert.Equal(t, page.Desktop, page.Mobile)
	assert.Equal(t, "1500.00", page.PriceRaw)
	assert.Len(t, page.Buttons, view.GridSize)
	assert.Equal(t, 97, page.Available)
	assert.Equal(t, "1 / 2 mostrados", page.Filter.CountText)
	assert.Nil(t, page.Flash)
	assert.False(t, page.Admin)
}

func TestDetailFlashAndAdmin(t *testing.T) {
	h := testRaffleHandler(testCatalog())
	req := httptest.NewRequest(http.MethodGet, "/rifas/1?estado=parcial", nil)
	_, rr := serve(t, h.Detail, req, map[string]string{"id": "1"}, asAdmin)

	page := rr.data.(view.DetailPage)
	require.NotNil(t, page.Flash)
	assert.Equal(t, "warning", page.Flash.Kind)
	assert.True(t, page.Admin)
}

func TestDetailErrors(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		cat    *fakeCatalog
		status int
	}{
		{"bad id", "abc", testCatalog(), http.StatusBadRequest},
		{"zero id", "0", testCatalog(), http.StatusBadRequest},
		{"unknown raffle", "9", testCatalog(), http.StatusNotFound},
		{"database down", "1", &fakeCatalog{err: errors.New("boom")}, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := testRaffleHandler(tt.cat)
			req := httptest.NewRequest(http.MethodGet, "/rifas/"+tt.id, nil)
			rec, rr := serve(t, h.Detail, req, map[string]string{"id": tt.id}, nil)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, view.PageError, rr.name)
			assert.Equal(t, tt.status, rr.data.(view.ErrorPage).Status)
		})
	}
}

func TestToggleForm(t *testing.T) {
	tests := []struct {
		name     string
		selected string
		number   string
		want     []string
		human    string
	}{
		{"adds", "05", "1", []string{"01", "05"}, "01, 05"},
		{"removes", "01,05", "05", []string{"01"}, "01"},
		{"sold is ignored", "05", "07", []string{"05"}, "05"},
		{"no number keeps selection", "05", "", []string{"05"}, "05"},
		{"out of range is ignored", "05", "150", []string{"05"}, "05"},
		{"not a number is ignored", "05", "abc", []string{"05"}, "05"},
		{"negative is ignored", "05", "-1", []string{"05"}, "05"},
		{"several numbers are ignored", "05", "1,2", []string{"05"}, "05"},
		{"empties", "05", "5", nil, "Ninguno"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := testRaffleHandler(testCatalog())
			form := url.Values{
				"selected_numbers": {tt.selected},
				"number":           {tt.number},
				"raffle_price":     {"abc"},
			}
			rec, rr := serve(t, h.ToggleForm, formRequest(http.MethodPost, "/rifas/1/seleccion", form), map[string]string{"id": "1"}, nil)

			require.Equal(t, http.StatusOK, rec.Code)
			page := rr.data.(view.DetailPage)
			if tt.want == nil {
				assert.Empty(t, page.Desktop.Numbers)
			} else {
				assert.Equal(t, tt.want, page.Desktop.Numbers)
			}
			assert.Equal(t, tt.human, page.Mobile.HumanList)
			assert.Equal(t, "1000.00", page.PriceRaw, "unparsable price falls back")
		})
	}
}

func TestToggleJSON(t *testing.T) {
	h := testRaffleHandler(testCatalog())
	req := jsonRequest(http.MethodPost, "/v1/raffles/1/selection/toggle", `{"selected_numbers":"05","number":"12"}`)
	rec, _ := serve(t, h.ToggleJSON, req, map[string]string{"id": "1"}, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `["05","12"]`, jsonField(t, rec.Body.Bytes(), "selection"))
	assert.Contains(t, rec.Body.String(), `"toggled":true`)
	assert.Contains(t, rec.Body.String(), `"total_text":"₡3,000.00"`)
}

func TestToggleJSONOutsideGrid(t *testing.T) {
	for _, number := range []string{"150", "abc", "-1", "100"} {
		t.Run(number, func(t *testing.T) {
			h := testRaffleHandler(testCatalog())
			body := `{"selected_numbers":"05","number":"` + number + `"}`
			req := jsonRequest(http.MethodPost, "/v1/raffles/1/selection/toggle", body)
			rec, _ := serve(t, h.ToggleJSON, req, map[string]string{"id": "1"}, nil)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, `["05"]`, jsonField(t, rec.Body.Bytes(), "selection"))
			assert.Contains(t, rec.Body.String(), `"toggled":false`)
			assert.Contains(t, rec.Body.String(), `"total_text":"₡1,500.00"`)
		})
	}
}

func TestGridNumber(t *testing.T) {
	tests := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"7", "07", true},
		{" 42 ", "42", true},
		{"00", "00", true},
		{"99", "99", true},
		{"100", "", false},
		{"-1", "", false},
		{"x", "", false},
		{"1,2", "", false},
		{"3,x", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := gridNumber(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCardsJSON(t *testing.T) {
	tests := []struct {
		query   string
		count   string
		visible int
	}{
		{"", "2 / 2 mostrados", 2},
		{"ANA", "1 / 2 mostrados", 1},
		{"42", "1 / 2 mostrados", 1},
		{"zzz", "0 / 2 mostrados", 0},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			h := testRaffleHandler(testCatalog())
			req := httptest.NewRequest(http.MethodGet, "/v1/raffles/1/cards?q="+url.QueryEscape(tt.query), nil)
			rec, _ := serve(t, h.Cards, req, map[string]string{"id": "1"}, nil)

			require.Equal(t, http.StatusOK, rec.Code)
			var body struct {
				Items     []cardItem `json:"items"`
				CountText string     `json:"count_text"`
				NoResults bool       `json:"no_results"`
			}
			decodeJSON(t, rec.Body.Bytes(), &body)
			assert.Len(t, body.Items, tt.visible)
			assert.Equal(t, tt.count, body.CountText)
			assert.Equal(t, tt.visible == 0, body.NoResults)
		})
	}
}

func TestModal(t *testing.T) {
	tests := []struct {
		name   string
		kind   string
		query  string
		admin  bool
		status int
		check  func(t *testing.T, m view.Modal)
	}{
		{"delete restricted ids", view.ModalDelete, "phone=88887777&ids=[11]", false, http.StatusOK, func(t *testing.T, m view.Modal) {
			require.NotNil(t, m.Delete)
			assert.Equal(t, "11", m.Delete.IDs)
			assert.Equal(t, "03, 07", m.Delete.NumbersText)
		}},
		{"edit", view.ModalEdit, "phone=88887777", false, http.StatusOK, func(t *testing.T, m view.Modal) {
			require.NotNil(t, m.Edit)
			assert.Equal(t, "Ana Mora", m.Edit.Name)
			assert.Empty(t, m.Edit.Password)
		}},
		{"cancel needs admin", view.ModalCancel, "phone=88887777", false, http.StatusForbidden, nil},
		{"cancel", view.ModalCancel, "phone=88887777", true, http.StatusOK, func(t *testing.T, m view.Modal) {
			require.NotNil(t, m.Cancel)
			assert.False(t, m.Cancel.Disabled)
		}},
		{"cancel already cancelled", view.ModalCancel, "phone=70001111", true, http.StatusOK, func(t *testing.T, m view.Modal) {
			require.NotNil(t, m.Cancel)
			assert.True(t, m.Cancel.Disabled)
		}},
		{"winner", view.ModalWinner, "", true, http.StatusOK, func(t *testing.T, m view.Modal) {
			require.NotNil(t, m.Winner)
			assert.Equal(t, "Moto", m.Winner.RaffleName)
		}},
		{"delete raffle needs admin", view.ModalDeleteRaffle, "", false, http.StatusForbidden, nil},
		{"unknown phone", view.ModalDelete, "phone=1", false, http.StatusNotFound, nil},
		{"unknown kind", "zoom", "", true, http.StatusNotFound, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := testRaffleHandler(testCatalog())
			req := httptest.NewRequest(http.MethodGet, "/rifas/1/modal/"+tt.kind+"?"+tt.query, nil)
			var setup func(echo.Context)
			if tt.admin {
				setup = asAdmin
			}
			rec, rr := serve(t, h.Modal, req, map[string]string{"id": "1", "kind": tt.kind}, setup)
			require.Equal(t, tt.status, rec.Code)
			if tt.check != nil {
				require.Equal(t, view.PageModal, rr.name)
				tt.check(t, rr.data.(view.Modal))
			}
		})
	}
}

func TestListRaffles(t *testing.T) {
	h := testRaffleHandler(testCatalog())
	req := httptest.NewRequest(http.MethodGet, "/rifas?estado=enviado", nil)
	rec, rr := serve(t, h.ListRaffles, req, nil, asAdmin)

	require.Equal(t, http.StatusOK, rec.Code)
	page := rr.data.(view.ListPage)
	require.Len(t, page.Raffles, 1)
	assert.Equal(t, "₡1,500.00", page.Raffles[0].PriceText)
	assert.True(t, page.Admin)
	require.NotNil(t, page.Flash)
	assert.Equal(t, "success", page.Flash.Kind)
}
