// Package selection implements the ticket-selection state of a raffle page:
// the set of numbers a visitor picked, the totals derived from it, the
// button styling rules and the search filter over sold tickets.
package selection

import (
	"sync"

	log "github.com/sirupsen/logrus"
)

// Controller owns the selection of one page view and mirrors it into every
// registered surface. It never fails: unknown numbers, sold numbers and
// missing surfaces are tolerated.
type Controller struct {
	mu       sync.Mutex
	set      *Set
	price    float64
	money    MoneyFormatter
	surfaces []Surface
}

// NewController returns a controller with an empty selection. price is the
// per-ticket amount resolved once for the page.
func NewController(price float64, money MoneyFormatter, surfaces ...Surface) *Controller {
	return &Controller{
		set:      NewSet(),
		price:    price,
		money:    money,
		surfaces: surfaces,
	}
}

// Restore seeds the selection from a previously rendered machine list.
// Sold numbers, blanks and duplicates are dropped. It does not render.
func (c *Controller) Restore(numbers []string, isSold func(string) bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, n := range numbers {
		if n == "" || (isSold != nil && isSold(n)) {
			continue
		}
		c.set.Add(n)
	}
}

// Toggle flips number in the selection and re-renders every surface. Sold
// numbers and empty identifiers leave the selection untouched. The result
// reports whether the selection changed.
func (c *Controller) Toggle(number string, sold bool) bool {
	if number == "" || sold {
		log.WithFields(log.Fields{"number": number, "sold": sold}).Debug("selection: toggle ignored")
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.set.Toggle(number)
	c.renderLocked(c.price)
	return true
}

// Selected reports whether number is in the selection.
func (c *Controller) Selected(number string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.set.Has(number)
}

// Snapshot returns the selection sorted numerically.
func (c *Controller) Snapshot() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.set.Sorted()
}

// Render recomputes the display state at price and writes it to all
// surfaces within one critical section, so no reader observes two mirrors
// with different selections.
func (c *Controller) Render(price float64) DisplayState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.renderLocked(price)
}

func (c *Controller) renderLocked(price float64) DisplayState {
	st := Compute(c.set.Sorted(), price, c.money)
	for i, s := range c.surfaces {
		if s == nil {
			log.WithField("surface", i).Debug("selection: surface absent, skipped")
			continue
		}
		s.Show(st)
	}
	return st
}

// StyleButton styles b from the current selection and the server flags
// carried by b.
func (c *Controller) StyleButton(b *Button) {
	if b == nil {
		return
	}
	StyleButton(b, c.Selected(b.Number), b.Sold)
}
