// Package validate holds the field-level constraint checks for every entity.
// The checks are independent of the HTTP layer so the same validation runs
// whether an operation is invoked over the API or directly in tests.
package validate

import (
	"fmt"
	"sort"
	"strings"

	"fleet-maintenance-backend/internal/model"
)

// Errors maps field names to human-readable constraint violations. A nil or
// empty Errors means the input passed.
type Errors map[string]string

// Error renders the violations in field order.
func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Any reports whether at least one constraint was violated.
func (e Errors) Any() bool {
	return len(e) > 0
}

// OrNil returns the collected violations as an error, or nil if none.
func (e Errors) OrNil() error {
	if e.Any() {
		return e
	}
	return nil
}

// New returns an empty violation set ready to collect checks.
func New() Errors {
	return Errors{}
}

// Required records a violation when the string value is empty.
func (e Errors) Required(field, value string) {
	if strings.TrimSpace(value) == "" {
		e[field] = "is required"
	}
}

// NonNegative records a violation when the value is below zero.
func (e Errors) NonNegative(field string, value int) {
	if value < 0 {
		e[field] = "must be non-negative"
	}
}

// NonNegativeFloat records a violation when the value is below zero.
func (e Errors) NonNegativeFloat(field string, value float64) {
	if value < 0 {
		e[field] = "must be non-negative"
	}
}

// Min records a violation when value is below min.
func (e Errors) Min(field string, value, min int) {
	if value < min {
		e[field] = fmt.Sprintf("must be at least %d", min)
	}
}

// Mileage enforces the pairing invariant: both values non-negative and the
// due mileage not behind the current one.
func (e Errors) Mileage(current, due int) {
	e.NonNegative("current_mileage", current)
	e.NonNegative("due_mileage", due)
	if due >= 0 && current >= 0 && due < current {
		e["due_mileage"] = "must be greater than or equal to current_mileage"
	}
}

// Date parses a calendar date, recording a violation on bad format. The
// returned Date is only meaningful when ok is true.
func (e Errors) Date(field, value string) (model.Date, bool) {
	d, err := model.ParseDate(value)
	if err != nil {
		e[field] = "invalid date format, expected YYYY-MM-DD"
		return model.Date{}, false
	}
	return d, true
}

// OneOf records a violation when value is not among the allowed set.
func (e Errors) OneOf(field, value string, allowed []string) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	e[field] = "must be one of: " + strings.Join(allowed, ", ")
}

// Email applies a minimal shape check on an email address.
func (e Errors) Email(field, value string) {
	if !strings.Contains(value, "@") || !strings.Contains(value, ".") {
		e[field] = "invalid email format"
	}
}

// StatusValues returns the allowed lifecycle statuses as strings.
func StatusValues() []string {
	out := make([]string, len(model.Statuses))
	for i, s := range model.Statuses {
		out[i] = string(s)
	}
	return out
}

// PriorityValues returns the allowed priorities as strings.
func PriorityValues() []string {
	out := make([]string, len(model.Priorities))
	for i, p := range model.Priorities {
		out[i] = string(p)
	}
	return out
}
