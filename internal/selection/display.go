package selection

import (
	"fmt"
	"strings"
)

// NoneLabel is shown in place of the number list while nothing is selected.
const NoneLabel = "Ninguno"

const (
	promptLabel   = "Seleccione Números"
	floatingLabel = "Seleccionar Números"
)

// DisplayState is everything the page shows about the current selection.
// It is derived, never stored: Compute rebuilds it from the selection and
// the price on every change.
type DisplayState struct {
	Numbers         []string `json:"numbers"`
	HumanList       string   `json:"human_list"`
	MachineList     string   `json:"machine_list"`
	Count           int      `json:"count"`
	Total           float64  `json:"total"`
	TotalText       string   `json:"total_text"`
	TotalLabel      string   `json:"total_label"`
	PurchaseEnabled bool     `json:"purchase_enabled"`
	PurchaseLabel   string   `json:"purchase_label"`
	FloatingLabel   string   `json:"floating_label"`
}

// Compute derives the display state for numbers at the given unit price.
// numbers may arrive in any order; the result is always sorted.
func Compute(numbers []string, price float64, money MoneyFormatter) DisplayState {
	sorted := make([]string, 0, len(numbers))
	sorted = append(sorted, numbers...)
	SortNumbers(sorted)

	count := len(sorted)
	total := float64(count) * price
	st := DisplayState{
		Numbers:     sorted,
		HumanList:   NoneLabel,
		MachineList: strings.Join(sorted, ","),
		Count:       count,
		Total:       total,
		TotalText:   money.Format(total),
	}
	if count == 0 {
		st.PurchaseLabel = promptLabel
		st.FloatingLabel = floatingLabel
		return st
	}
	st.HumanList = strings.Join(sorted, ", ")
	st.TotalLabel = fmt.Sprintf("(Total: %s)", st.TotalText)
	st.PurchaseEnabled = true
	st.PurchaseLabel = fmt.Sprintf("Comprar %d Núm. %s", count, st.TotalText)
	st.FloatingLabel = st.PurchaseLabel
	return st
}
