// Package listview derives a filtered, paginated page from an in-memory
// collection. The questions table gets this from the backend; the users
// table (whose contract has no filter parameters) derives it here. Both
// follow the same rules: case-insensitive substring search, case-insensitive
// categorical matches, AND semantics across active filters.
package listview

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Spec describes how filter inputs read a row of type T.
type Spec[T any] struct {
	// Text lists the fields the free-text search matches against.
	Text func(T) []string
	// Tags maps a filter name to a tag-set accessor; a row matches when the
	// set contains the selected value.
	Tags map[string]func(T) []string
	// Fields maps a filter name to a direct-field accessor matched exactly.
	Fields map[string]func(T) string
}

// Query is the ephemeral filter selection owned by a list view.
type Query struct {
	Search   string
	Selected map[string]string
	Offset   int
	Limit    int
}

// Page is the derived view: one page of rows plus the filtered total that
// drives the paginator.
type Page[T any] struct {
	Rows  []T `json:"rows"`
	Total int `json:"total"`
}

// Derive recomputes the page from scratch. It holds no state between calls,
// so re-running the same query over the same rows always yields the same
// result.
func (s Spec[T]) Derive(rows []T, q Query) Page[T] {
	filtered := make([]T, 0, len(rows))
	search := fold(q.Search)

	for _, row := range rows {
		if !s.matches(row, search, q.Selected) {
			continue
		}
		filtered = append(filtered, row)
	}

	total := len(filtered)
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}
	end := total
	if q.Limit > 0 && offset+q.Limit < end {
		end = offset + q.Limit
	}

	return Page[T]{Rows: filtered[offset:end], Total: total}
}

func (s Spec[T]) matches(row T, search string, selected map[string]string) bool {
	if search != "" {
		if s.Text == nil || !anyContains(s.Text(row), search) {
			return false
		}
	}

	for name, value := range selected {
		if value == "" {
			continue
		}
		if accessor, ok := s.Tags[name]; ok {
			if !anyEquals(accessor(row), value) {
				return false
			}
			continue
		}
		if accessor, ok := s.Fields[name]; ok {
			if !strings.EqualFold(accessor(row), value) {
				return false
			}
			continue
		}
		// Unknown filter names never match anything; a typo should surface
		// as an empty table, not as an ignored filter.
		return false
	}
	return true
}

func anyContains(fields []string, search string) bool {
	for _, f := range fields {
		if strings.Contains(fold(f), search) {
			return true
		}
	}
	return false
}

func anyEquals(tags []string, value string) bool {
	for _, t := range tags {
		if strings.EqualFold(t, value) {
			return true
		}
	}
	return false
}

// fold normalizes to NFC before lowercasing so composed and decomposed
// input compare equal.
func fold(s string) string {
	return strings.ToLower(norm.NFC.String(s))
}
