// Package view turns catalog rows and the selection state into the models
// the HTML templates render: the ticket grid, the buyer cards and the modal
// forms.
package view

import (
	"fmt"

	"github.com/iliyamo/raffle-ticket-sales/internal/model"
	"github.com/iliyamo/raffle-ticket-sales/internal/selection"
)

// GridSize is the count of numbers of every raffle: 00 to 99.
const GridSize = 100

// NumberLabel formats n as a grid identifier.
func NumberLabel(n int) string { return fmt.Sprintf("%02d", n) }

// SoldIndex maps a number to the sale that holds it.
type SoldIndex map[string]model.Sale

// IndexSales indexes sales by number.  A number appears at most once per
// raffle; the last row wins if the table says otherwise.
func IndexSales(sales []model.Sale) SoldIndex {
	idx := make(SoldIndex, len(sales))
	for _, s := range sales {
		idx[s.Number] = s
	}
	return idx
}

// Has reports whether number is sold, cancelled or not.
func (s SoldIndex) Has(number string) bool {
	_, ok := s[number]
	return ok
}

// Available counts the numbers of the grid nobody holds.
func (s SoldIndex) Available() int {
	n := GridSize
	for i := 0; i < GridSize; i++ {
		if s.Has(NumberLabel(i)) {
			n--
		}
	}
	return n
}

// BuildGrid returns the GridSize buttons styled against ctrl.
func BuildGrid(sold SoldIndex, ctrl *selection.Controller) []selection.Button {
	buttons := make([]selection.Button, GridSize)
	for i := range buttons {
		n := NumberLabel(i)
		sale, ok := sold[n]
		buttons[i] = selection.Button{Number: n, Sold: ok, Cancelled: ok && sale.Canceled}
		ctrl.StyleButton(&buttons[i])
	}
	return buttons
}
