// Package filter narrows record lists for display: a free-text query, facet
// selections and an optional inclusive date range. Filtering never mutates
// the input and preserves order.
package filter

import (
	"strings"

	"bizdash/internal/core"
)

// All is the facet value that matches every record.
const All = "all"

// Apply returns the records for which pred holds, in their original order.
func Apply[T any](list []T, pred func(T) bool) []T {
	out := make([]T, 0, len(list))
	for _, rec := range list {
		if pred(rec) {
			out = append(out, rec)
		}
	}
	return out
}

// Text reports whether query occurs, case-insensitively, in any of fields.
// An empty query matches everything.
func Text(query string, fields ...string) bool {
	q := strings.ToLower(query)
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// Facet reports whether value satisfies the selected option. Empty and "all"
// match everything.
func Facet(selected, value string) bool {
	if selected == "" || strings.EqualFold(selected, All) {
		return true
	}
	return selected == value
}

// DateRange bounds dates inclusively. An unset bound is open.
type DateRange struct {
	From core.Date
	To   core.Date
}

// Contains compares ISO strings, which order the same way the dates do.
func (r DateRange) Contains(d core.Date) bool {
	s := d.String()
	if !r.From.IsZero() && s < r.From.String() {
		return false
	}
	if !r.To.IsZero() && s > r.To.String() {
		return false
	}
	return true
}

// IsOpen reports whether neither bound is set.
func (r DateRange) IsOpen() bool {
	return r.From.IsZero() && r.To.IsZero()
}
