package selection

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// Set holds the ticket numbers a visitor intends to buy during one page view.
// Entries are unique by value; insertion order is kept but every reader gets
// the numeric order through Sorted.
type Set struct {
	order []string
	index map[string]struct{}
}

// NewSet returns an empty selection set.
func NewSet() *Set {
	return &Set{index: make(map[string]struct{})}
}

// Has reports whether number is selected.
func (s *Set) Has(number string) bool {
	_, ok := s.index[number]
	return ok
}

// Len returns the number of selected tickets.
func (s *Set) Len() int { return len(s.order) }

// Add inserts number and reports whether it was absent.
func (s *Set) Add(number string) bool {
	if number == "" || s.Has(number) {
		return false
	}
	s.index[number] = struct{}{}
	s.order = append(s.order, number)
	return true
}

// Remove deletes number and reports whether it was present.
func (s *Set) Remove(number string) bool {
	if !s.Has(number) {
		return false
	}
	delete(s.index, number)
	s.order = slices.DeleteFunc(s.order, func(n string) bool { return n == number })
	return true
}

// Toggle flips the membership of number. It returns true when the number is
// selected after the call.
func (s *Set) Toggle(number string) bool {
	if s.Remove(number) {
		return false
	}
	return s.Add(number)
}

// Sorted returns a copy of the selection in ascending numeric order.
func (s *Set) Sorted() []string {
	out := slices.Clone(s.order)
	SortNumbers(out)
	return out
}

// SortNumbers orders ticket identifiers numerically ("2" before "10").
// Identifiers that are not integers sort after the numeric ones.
func SortNumbers(numbers []string) {
	slices.SortStableFunc(numbers, compareNumbers)
}

func compareNumbers(a, b string) int {
	na, errA := strconv.Atoi(strings.TrimSpace(a))
	nb, errB := strconv.Atoi(strings.TrimSpace(b))
	switch {
	case errA == nil && errB == nil:
		if na != nb {
			return cmp.Compare(na, nb)
		}
		return strings.Compare(a, b)
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	}
	return strings.Compare(a, b)
}
