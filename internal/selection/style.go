package selection

import "strings"

// ButtonState is the visual partition of a ticket button.
type ButtonState int

const (
	StateAvailable ButtonState = iota
	StateSelected
	StateSold
	StateCancelled
)

func (s ButtonState) String() string {
	switch s {
	case StateSelected:
		return "selected"
	case StateSold:
		return "sold"
	case StateCancelled:
		return "cancelled"
	}
	return "available"
}

var (
	availableClasses = []string{"bg-pastel-green", "text-green-800", "hover:bg-green-300", "border-green-300", "border"}
	selectedClasses  = []string{"bg-pastel-blue", "text-blue-800", "hover:bg-blue-300", "border-blue-300", "border"}
	soldClasses      = []string{"bg-pastel-red", "text-red-800", "border-red-700", "cursor-not-allowed"}
	cancelledClasses = []string{"bg-green-500", "text-white", "cursor-not-allowed"}
)

// Button is one number of the grid. Number, Sold and Cancelled come from the
// server; State, Disabled and Classes are owned by StyleButton.
type Button struct {
	Number    string
	Sold      bool
	Cancelled bool

	State    ButtonState
	Disabled bool
	Classes  []string
}

// Class joins the CSS classes for templates.
func (b Button) Class() string { return strings.Join(b.Classes, " ") }

// StyleButton applies the visual state of b. Precedence is
// cancelled > sold > selected > available. A cancelled button is never
// restyled, and a sold button can never become selected or available.
func StyleButton(b *Button, selected, sold bool) {
	if b == nil {
		return
	}
	if b.State == StateCancelled {
		return
	}
	if b.Cancelled {
		b.State, b.Disabled, b.Classes = StateCancelled, true, clone(cancelledClasses)
		return
	}
	if sold || b.Sold || b.State == StateSold {
		b.Sold = true
		b.State, b.Disabled, b.Classes = StateSold, true, clone(soldClasses)
		return
	}
	if selected {
		b.State, b.Disabled, b.Classes = StateSelected, false, clone(selectedClasses)
		return
	}
	b.State, b.Disabled, b.Classes = StateAvailable, false, clone(availableClasses)
}

func clone(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
