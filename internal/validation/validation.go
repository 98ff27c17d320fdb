// Package validation checks raw submitted fields against declarative rule
// sets. Every field is checked and all failures are reported together, one
// message per field.
package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrValidationFailed = errors.New("validation failed")

// Fields is a raw submission: JSON-decoded values or form strings.
type Fields map[string]any

// Errors maps a field name to its human readable message.
type Errors map[string]string

// Error carries per-field messages and matches ErrValidationFailed.
type Error struct {
	Fields Errors
}

func (e *Error) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return fmt.Sprintf("%s: %s", ErrValidationFailed.Error(), strings.Join(parts, "; "))
}

func (e *Error) Is(target error) bool {
	return target == ErrValidationFailed
}

// FieldRules binds an ordered list of rules to one field.
type FieldRules struct {
	Field string
	Rules []Rule
}

// RuleSet is ordered so that reports are deterministic.
type RuleSet []FieldRules

func Field(name string, rules ...Rule) FieldRules {
	return FieldRules{Field: name, Rules: rules}
}

// Names returns the fields covered by the rule set, in declaration order.
func (rs RuleSet) Names() []string {
	names := make([]string, 0, len(rs))
	for _, fr := range rs {
		names = append(names, fr.Field)
	}
	return names
}

// Validate never mutates input. Rules for a field stop at the first failure.
func Validate(rules RuleSet, input Fields) Errors {
	errs := Errors{}
	for _, fr := range rules {
		value, present := input[fr.Field]
		if present && isEmpty(value) {
			present = false
		}
		for _, rule := range fr.Rules {
			if !present && !rule.implicit {
				continue
			}
			if msg := rule.check(fr.Field, value); msg != "" {
				errs[fr.Field] = msg
				break
			}
		}
	}
	return errs
}

// Check is Validate returning an *Error, or nil when the input passes.
func Check(rules RuleSet, input Fields) error {
	if errs := Validate(rules, input); len(errs) > 0 {
		return &Error{Fields: errs}
	}
	return nil
}

// FromError extracts field messages from err, if it is a validation error.
func FromError(err error) (Errors, bool) {
	var verr *Error
	if errors.As(err, &verr) {
		return verr.Fields, true
	}
	return nil, false
}

func isEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case []any:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	}
	return false
}

func label(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}
