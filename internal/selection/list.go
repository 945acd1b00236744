package selection

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseSelectionList reads the comma-separated purchase field. Every entry
// is trimmed and zero-padded to two digits; blanks are ignored, duplicates
// collapse, and entries that are not integers in [0, limit) are returned in
// rejected. A limit of zero or less disables the upper bound. accepted is
// sorted numerically.
func ParseSelectionList(raw string, limit int) (accepted, rejected []string) {
	seen := make(map[string]struct{})
	for _, part := range strings.Split(raw, ",") {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || (limit > 0 && n >= limit) {
			rejected = append(rejected, p)
			continue
		}
		id := fmt.Sprintf("%02d", n)
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		accepted = append(accepted, id)
	}
	SortNumbers(accepted)
	return accepted, rejected
}

// SplitList splits a machine list ("1,5,12") into identifiers without
// reformatting them. Blanks are dropped.
func SplitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
