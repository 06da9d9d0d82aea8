package errors

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// FieldErrors maps an input field name to the list of rule violations
// recorded against it. Rule evaluation is not fail-fast: a single
// validation pass reports every violated rule so callers can present
// all problems at once.
type FieldErrors map[string][]string

// Add records a violation against a field.
func (f FieldErrors) Add(field, reason string) {
	f[field] = append(f[field], reason)
}

// Merge folds another set of field errors into this one.
func (f FieldErrors) Merge(other FieldErrors) {
	for field, reasons := range other {
		f[field] = append(f[field], reasons...)
	}
}

// Has reports whether the field has at least one recorded violation.
func (f FieldErrors) Has(field string) bool {
	return len(f[field]) > 0
}

// ValidationErrors is the structured, field-keyed validation failure
// returned by lifecycle operations. It satisfies error and is
// extractable with errors.As.
type ValidationErrors struct {
	Fields FieldErrors `json:"fields"`
}

// Error implements the error interface with a deterministic summary.
func (e *ValidationErrors) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}

	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(e.Fields[field], "; ")))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// StatusCode returns the HTTP status code for this error.
func (e *ValidationErrors) StatusCode() int {
	return http.StatusBadRequest
}

// NewFieldErrors creates a ValidationErrors from a populated field map.
func NewFieldErrors(fields FieldErrors) *ValidationErrors {
	return &ValidationErrors{Fields: fields}
}

// NewSingleFieldError creates a ValidationErrors for one field/reason pair.
func NewSingleFieldError(field, reason string) *ValidationErrors {
	fields := FieldErrors{}
	fields.Add(field, reason)
	return &ValidationErrors{Fields: fields}
}

// GetValidationErrors extracts ValidationErrors from an error chain.
func GetValidationErrors(err error) *ValidationErrors {
	var verrs *ValidationErrors
	if errors.As(err, &verrs) {
		return verrs
	}
	return nil
}
