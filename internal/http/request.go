package http

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"bizdash/internal/core"
	"bizdash/internal/filter"
)

// query reads list filters from the URL. Bad dates are collected so the
// handler can reject them together.
type query struct {
	values  url.Values
	invalid []string
}

func newQuery(r *http.Request) *query {
	return &query{values: r.URL.Query()}
}

func (q *query) str(key string) string {
	return sanitizeInput(q.values.Get(key))
}

func (q *query) date(key string) core.Date {
	v := strings.TrimSpace(q.values.Get(key))
	if v == "" {
		return core.Date{}
	}
	d, err := core.ParseDate(v)
	if err != nil {
		q.invalid = append(q.invalid, key)
		return core.Date{}
	}
	return d
}

func (q *query) dates() filter.DateRange {
	return filter.DateRange{From: q.date("from"), To: q.date("to")}
}

func (q *query) number(key string, def int) int {
	v := strings.TrimSpace(q.values.Get(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		q.invalid = append(q.invalid, key)
		return def
	}
	return n
}

func (q *query) err() error {
	if len(q.invalid) == 0 {
		return nil
	}
	return &core.ValidationError{Invalid: q.invalid}
}

// sanitizeInput removes control characters except tab, newline and carriage
// return, and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
