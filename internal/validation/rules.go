package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Rule reports a message for a failing value, or "" when it passes. Rules
// other than Required are skipped for absent values.
type Rule struct {
	implicit bool
	check    func(field string, value any) string
}

var Required = Rule{
	implicit: true,
	check: func(field string, value any) string {
		switch v := value.(type) {
		case nil:
			return message(field, "required", "")
		case string:
			return run(field, strings.TrimSpace(v), "required")
		case []any:
			return requiredLen(field, len(v))
		case map[string]any:
			return requiredLen(field, len(v))
		}
		return ""
	},
}

var String = Rule{
	check: func(field string, value any) string {
		if _, ok := value.(string); !ok {
			return fmt.Sprintf("The %s field must be a string.", label(field))
		}
		return ""
	},
}

var Integer = Rule{
	check: func(field string, value any) string {
		if _, ok := ToInt(value); !ok {
			return fmt.Sprintf("The %s field must be an integer.", label(field))
		}
		return ""
	},
}

// Max limits string length in characters, measured on the trimmed value
// that gets stored.
func Max(n int) Rule {
	tag := "max=" + strconv.Itoa(n)
	return Rule{check: func(field string, value any) string {
		s, ok := value.(string)
		if !ok {
			return ""
		}
		return run(field, strings.TrimSpace(s), tag)
	}}
}

// Min is a lower bound on integer values.
func Min(n int64) Rule {
	tag := "min=" + strconv.FormatInt(n, 10)
	return Rule{check: func(field string, value any) string {
		v, ok := ToInt(value)
		if !ok {
			return ""
		}
		return run(field, v, tag)
	}}
}

func In(allowed ...string) Rule {
	tag := "oneof=" + strings.Join(allowed, " ")
	return Rule{check: func(field string, value any) string {
		s, ok := value.(string)
		if !ok {
			return message(field, "oneof", "")
		}
		return run(field, s, tag)
	}}
}

// run checks value against a validator tag and renders the first failure.
func run(field string, value any, tag string) string {
	err := validate.Var(value, tag)
	if err == nil {
		return ""
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return message(field, verrs[0].Tag(), verrs[0].Param())
	}
	return fmt.Sprintf("The %s field is invalid.", label(field))
}

func requiredLen(field string, n int) string {
	if n == 0 {
		return message(field, "required", "")
	}
	return ""
}

func message(field, tag, param string) string {
	name := label(field)
	switch tag {
	case "required":
		return fmt.Sprintf("The %s field is required.", name)
	case "max":
		return fmt.Sprintf("The %s field must not be greater than %s characters.", name, param)
	case "min":
		return fmt.Sprintf("The %s field must be at least %s.", name, param)
	case "oneof":
		return fmt.Sprintf("The selected %s is invalid.", name)
	}
	return fmt.Sprintf("The %s field is invalid.", name)
}

// ToInt accepts Go integers, whole JSON numbers and base-10 strings.
func ToInt(value any) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		if uint64(v) > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) || v > math.MaxInt64 || v < math.MinInt64 {
			return 0, false
		}
		return int64(v), true
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		return n, err == nil
	}
	return 0, false
}

// StringValue returns the trimmed string at name; callers use it only on
// input that already passed validation.
func StringValue(input Fields, name string) string {
	s, _ := input[name].(string)
	return strings.TrimSpace(s)
}

// IntValue returns the integer at name, 0 when absent or malformed.
func IntValue(input Fields, name string) int {
	n, _ := ToInt(input[name])
	return int(n)
}
