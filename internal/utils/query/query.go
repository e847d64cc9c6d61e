// Package query parses untrusted string-typed URL query parameters into
// typed values with explicit defaults. A parameter that is missing,
// malformed, or out of range falls back to its default — parse failures
// never propagate sentinel values downstream.
package query

import (
	"net/url"
	"strconv"

	"github.com/aanand-mishra/library-api/internal/types"
)

// PositiveInt returns the named parameter as a positive integer, or def
// when the parameter is absent, non-numeric, or < 1.
func PositiveInt(values url.Values, key string, def int) int {
	v := values.Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return def
	}
	return n
}

// String returns the named parameter, or def when it is absent.
func String(values url.Values, key, def string) string {
	if v := values.Get(key); v != "" {
		return v
	}
	return def
}

// OptString returns the named parameter, or nil when it is absent.
// Used for exact-match filters where "absent" means "do not filter".
func OptString(values url.Values, key string) *string {
	if v := values.Get(key); v != "" {
		return &v
	}
	return nil
}

// OptBool returns the named parameter coerced to a boolean: the literal
// "true" is true, any other present value is false, absent is nil.
func OptBool(values url.Values, key string) *bool {
	v := values.Get(key)
	if v == "" {
		return nil
	}
	b := v == "true"
	return &b
}

// OptFloat returns the named parameter as a float, or nil when it is
// absent or non-numeric.
func OptFloat(values url.Values, key string) *float64 {
	v := values.Get(key)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}
	return &f
}

// Options parses the pagination and sorting parameters shared by every
// list endpoint. Defaults: page=1, limit=10, sortBy="createdAt",
// sortOrder="desc". Anything other than sortOrder=asc sorts descending.
func Options(values url.Values) types.ListOptions {
	sortOrder := "desc"
	if values.Get("sortOrder") == "asc" {
		sortOrder = "asc"
	}

	return types.ListOptions{
		Page:      PositiveInt(values, "page", 1),
		Limit:     PositiveInt(values, "limit", 10),
		SortBy:    String(values, "sortBy", "createdAt"),
		SortOrder: sortOrder,
		Search:    values.Get("search"),
	}
}
