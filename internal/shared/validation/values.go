// Package validation implements the declarative rule engine used by the
// ticket lifecycle operations. A named rule set is evaluated against an
// input map in one pass; every violated rule is collected into a
// field-keyed error structure rather than failing fast.
package validation

import (
	"strconv"
	"strings"
)

// Values is the raw input a rule set is evaluated against. For edits all
// fields are optional; a rule marked present-only is skipped when its
// field is absent from the map.
type Values map[string]any

// Has reports whether the field is present in the input.
func (v Values) Has(field string) bool {
	_, ok := v[field]
	return ok
}

// String returns the field coerced to a string.
func (v Values) String(field string) string {
	raw, ok := v[field]
	if !ok || raw == nil {
		return ""
	}
	if s, ok := raw.(string); ok {
		return s
	}
	return ""
}

// Uint returns the field coerced to an unsigned integer. The second
// return is false when the field is absent, nil, or not numeric.
func (v Values) Uint(field string) (uint, bool) {
	raw, ok := v[field]
	if !ok || raw == nil {
		return 0, false
	}
	switch n := raw.(type) {
	case uint:
		return n, true
	case int:
		if n < 0 {
			return 0, false
		}
		return uint(n), true
	case int64:
		if n < 0 {
			return 0, false
		}
		return uint(n), true
	case uint64:
		return uint(n), true
	case float64:
		if n < 0 {
			return 0, false
		}
		return uint(n), true
	case string:
		parsed, err := strconv.ParseUint(n, 10, 64)
		if err != nil {
			return 0, false
		}
		return uint(parsed), true
	default:
		return 0, false
	}
}

// UintPtr returns a pointer to the coerced value, or nil when absent.
// A present-but-nil field yields a nil pointer with ok=true, which edit
// paths use to express "clear this assignment".
func (v Values) UintPtr(field string) (*uint, bool) {
	raw, present := v[field]
	if !present {
		return nil, false
	}
	if raw == nil {
		return nil, true
	}
	n, ok := v.Uint(field)
	if !ok {
		return nil, false
	}
	return &n, true
}

// Empty reports whether the field is absent, nil, or a blank string.
func (v Values) Empty(field string) bool {
	raw, ok := v[field]
	if !ok || raw == nil {
		return true
	}
	if s, ok := raw.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}
