package view

import (
	"strconv"

	"github.com/iliyamo/raffle-ticket-sales/internal/deeplink"
	"github.com/iliyamo/raffle-ticket-sales/internal/model"
	"github.com/iliyamo/raffle-ticket-sales/internal/selection"
)

// Flash is a one-line status shown at the top of a page.
type Flash struct {
	Kind    string // success, warning, danger
	Message string
}

// DetailPage is the model of the raffle detail template.
type DetailPage struct {
	Raffle    model.Raffle
	PriceRaw  string
	PriceText string
	Available int

	// Desktop and Mobile are the two surfaces of the selection panel.
	Desktop selection.DisplayState
	Mobile  selection.DisplayState

	Buttons []selection.Button
	Cards   []Card
	Filter  selection.FilterResult
	Query   string

	Admin   bool
	Flash   *Flash
	Winner  WinnerModal
	Actions Actions
}

// DetailInput collects what BuildDetail needs.  Ctrl must already hold the
// visitor's selection and render into Desktop and Mobile.
type DetailInput struct {
	Raffle  model.Raffle
	Sales   []model.Sale
	Price   float64
	Ctrl    *selection.Controller
	Desktop *selection.Mirror
	Mobile  *selection.Mirror
	Query   string
	Admin   bool
	Money   selection.MoneyFormatter
	Linker  deeplink.Linker
	Actions Actions
}

// BuildDetail assembles the detail page.  It renders the controller once so
// both panels carry the same state.
func BuildDetail(in DetailInput) DetailPage {
	sold := IndexSales(in.Sales)
	in.Ctrl.Render(in.Price)

	cards := BuildCards(GroupSales(in.Sales), CardOptions{
		Raffle:  in.Raffle,
		Price:   in.Price,
		Money:   in.Money,
		Linker:  in.Linker,
		Actions: in.Actions,
	})
	res := FilterCards(cards, in.Query)

	return DetailPage{
		Raffle:    in.Raffle,
		PriceRaw:  strconv.FormatFloat(in.Price, 'f', 2, 64),
		PriceText: in.Money.Format(in.Price),
		Available: sold.Available(),
		Desktop:   in.Desktop.State(),
		Mobile:    in.Mobile.State(),
		Buttons:   BuildGrid(sold, in.Ctrl),
		Cards:     cards,
		Filter:    res,
		Query:     in.Query,
		Admin:     in.Admin,
		Winner:    NewWinnerModal(in.Actions, in.Raffle.ID, in.Raffle.Name, in.Raffle.HasWinners()),
		Actions:   in.Actions,
	}
}

// RaffleItem is one raffle of the list page.
type RaffleItem struct {
	model.Raffle
	PriceText    string
	DateText     string
	Winner       WinnerModal
	DeleteRaffle DeleteRaffleModal
}

// ListPage is the model of the raffle list template.
type ListPage struct {
	Raffles []RaffleItem
	Admin   bool
	Flash   *Flash
}

// BuildList assembles the raffle list page.
func BuildList(raffles []model.Raffle, admin bool, money selection.MoneyFormatter, a Actions) ListPage {
	items := make([]RaffleItem, 0, len(raffles))
	for _, r := range raffles {
		items = append(items, RaffleItem{
			Raffle:       r,
			PriceText:    money.Format(r.Price),
			DateText:     r.Date.Format("02/01/2006"),
			Winner:       NewWinnerModal(a, r.ID, r.Name, r.HasWinners()),
			DeleteRaffle: NewDeleteRaffleModal(a, r.ID, r.Name),
		})
	}
	return ListPage{Raffles: items, Admin: admin}
}

// ErrorPage is rendered for HTML requests that fail.
type ErrorPage struct {
	Status  int
	Message string
	Flash   *Flash
}
