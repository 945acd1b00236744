package selection

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// Card holds the searchable attributes of one buyer's result card.
type Card struct {
	Name    string
	Phone   string
	Numbers string // comma-joined numbers, e.g. "01,05,12"
}

// FilterResult describes which cards a query leaves visible.
type FilterResult struct {
	Query        string
	Visible      []bool
	VisibleCount int
	Total        int
	NoResults    bool
	CountText    string
}

// Filter matches query case-insensitively against the name, the phone and
// the number list of every card. The number list is compared with the query
// stripped down to letters and digits, so "#05" finds "01,05,12". An empty
// query shows every card.
func Filter(cards []Card, query string) FilterResult {
	fold := cases.Fold()
	q := strings.TrimSpace(fold.String(query))
	numQ := normalizeQuery(q)

	res := FilterResult{
		Query:   q,
		Visible: make([]bool, len(cards)),
		Total:   len(cards),
	}
	for i, card := range cards {
		match := q == ""
		if !match {
			match = strings.Contains(fold.String(card.Name), q) ||
				strings.Contains(fold.String(card.Phone), q) ||
				(numQ != "" && strings.Contains(fold.String(card.Numbers), numQ))
		}
		if match {
			res.Visible[i] = true
			res.VisibleCount++
		}
	}
	res.NoResults = res.VisibleCount == 0 && q != ""
	res.CountText = fmt.Sprintf("%d / %d mostrados", res.VisibleCount, res.Total)
	return res
}

func normalizeQuery(q string) string {
	var b strings.Builder
	for _, r := range q {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
