// Package report filters loaded records and derives the per-year frequency
// series and filter metadata for the analysis view.
package report

import (
	"slices"
	"sort"

	"github.com/lagunalabs/sucesos/internal/domain"
)

// Filter selects records by category and year. Within each dimension the
// selection is an OR (membership); across dimensions it is an AND. A nil
// slice means "no constraint"; a non-nil empty slice matches nothing, which
// is how a user deselecting every category sees an empty table rather than
// an error.
type Filter struct {
	Categories []string
	Years      []int
}

// Apply returns the subset of events matching the filter, fields untouched.
func Apply(events []domain.Event, f Filter) []domain.Event {
	matched := make([]domain.Event, 0, len(events))
	for i := range events {
		e := events[i]
		if f.Categories != nil && !slices.Contains(f.Categories, e.Category) {
			continue
		}
		if f.Years != nil && !slices.Contains(f.Years, e.Year()) {
			continue
		}
		matched = append(matched, e)
	}
	return matched
}

// SortByDateDesc orders events newest first, for the browse table.
func SortByDateDesc(events []domain.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.After(events[j].Date)
	})
}

// Categories returns the distinct categories present, sorted.
func Categories(events []domain.Event) []string {
	seen := make(map[string]struct{})
	for i := range events {
		seen[events[i].Category] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Years returns the distinct calendar years present, sorted ascending.
func Years(events []domain.Event) []int {
	seen := make(map[int]struct{})
	for i := range events {
		seen[events[i].Year()] = struct{}{}
	}
	out := make([]int, 0, len(seen))
	for y := range seen {
		out = append(out, y)
	}
	sort.Ints(out)
	return out
}
