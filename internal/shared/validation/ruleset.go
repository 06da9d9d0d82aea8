package validation

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"opendesk/internal/shared/errors"
)

// CheckFunc evaluates one rule against a field value. A non-nil error's
// message is recorded as the violation reason. The full input map is
// provided for cross-field rules.
type CheckFunc func(ctx context.Context, value any, all Values) error

type rule struct {
	field       string
	presentOnly bool
	check       CheckFunc
}

// RuleSet is a named, ordered collection of per-field rules. Validate
// runs every applicable rule and returns all collected violations.
type RuleSet struct {
	name  string
	rules []rule
}

// NewRuleSet creates an empty rule set with the given name.
func NewRuleSet(name string) *RuleSet {
	return &RuleSet{name: name}
}

// Name returns the rule set name.
func (rs *RuleSet) Name() string {
	return rs.name
}

// Require registers a rule failing when the field is absent or blank.
func (rs *RuleSet) Require(field, message string) *RuleSet {
	rs.rules = append(rs.rules, rule{
		field: field,
		check: func(ctx context.Context, value any, all Values) error {
			if all.Empty(field) {
				return fmt.Errorf("%s", message)
			}
			return nil
		},
	})
	return rs
}

// Check registers a rule that always runs.
func (rs *RuleSet) Check(field string, check CheckFunc) *RuleSet {
	rs.rules = append(rs.rules, rule{field: field, check: check})
	return rs
}

// CheckPresent registers a rule that runs only when the field is present
// in the input. Edit paths use this for partial updates.
func (rs *RuleSet) CheckPresent(field string, check CheckFunc) *RuleSet {
	rs.rules = append(rs.rules, rule{field: field, presentOnly: true, check: check})
	return rs
}

// Validate evaluates every applicable rule against the input and returns
// the collected violations. An empty result means the input is valid.
func (rs *RuleSet) Validate(ctx context.Context, input Values) errors.FieldErrors {
	collected := errors.FieldErrors{}

	for _, r := range rs.rules {
		if r.presentOnly && !input.Has(r.field) {
			continue
		}
		if err := r.check(ctx, input[r.field], input); err != nil {
			collected.Add(r.field, err.Error())
		}
	}

	return collected
}

// validate is the shared validator instance backing format checks.
var validate = validator.New()

// Email returns a check failing when the value is not a valid email
// address. Blank values pass; pair with Require when the address is the
// sole identifying contact.
func Email(message string) CheckFunc {
	return func(ctx context.Context, value any, all Values) error {
		s, _ := value.(string)
		if s == "" {
			return nil
		}
		if err := validate.Var(s, "email"); err != nil {
			return fmt.Errorf("%s", message)
		}
		return nil
	}
}

// OneOf returns a check failing when the value is not in the allowed set.
func OneOf(message string, allowed ...string) CheckFunc {
	set := make(map[string]bool, len(allowed))
	for _, a := range allowed {
		set[a] = true
	}
	return func(ctx context.Context, value any, all Values) error {
		s, _ := value.(string)
		if s == "" {
			return nil
		}
		if !set[s] {
			return fmt.Errorf("%s", message)
		}
		return nil
	}
}

// Exists returns a check failing when the referenced entity cannot be
// found. The lookup receives the value coerced to an unsigned ID; nil
// and absent values pass.
func Exists(message string, lookup func(ctx context.Context, id uint) (bool, error)) CheckFunc {
	return func(ctx context.Context, value any, all Values) error {
		if value == nil {
			return nil
		}
		id, ok := Values{"id": value}.Uint("id")
		if !ok || id == 0 {
			return fmt.Errorf("%s", message)
		}
		found, err := lookup(ctx, id)
		if err != nil {
			return fmt.Errorf("%s", message)
		}
		if !found {
			return fmt.Errorf("%s", message)
		}
		return nil
	}
}

// MaxLen returns a check failing when a string value exceeds the limit.
func MaxLen(limit int, message string) CheckFunc {
	return func(ctx context.Context, value any, all Values) error {
		s, _ := value.(string)
		if len(s) > limit {
			return fmt.Errorf("%s", message)
		}
		return nil
	}
}
