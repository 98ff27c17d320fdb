package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validGame() Fields {
	return Fields{"name": "Chess", "studio": "Indie", "genre": "Strategy", "review": "positive"}
}

func TestGameRulesAcceptValidInput(t *testing.T) {
	assert.Empty(t, Validate(GameRules, validGame()))
}

func TestGameRulesReportOnlyTheEmptyName(t *testing.T) {
	in := validGame()
	in["name"] = ""

	errs := Validate(GameRules, in)
	assert.Equal(t, Errors{"name": "The name field is required."}, errs)
}

func TestAllViolationsReportedTogether(t *testing.T) {
	errs := Validate(GameRules, Fields{"genre": "Puzzle", "review": "meh"})
	assert.Equal(t, Errors{
		"name":   "The name field is required.",
		"studio": "The studio field is required.",
		"review": "The selected review is invalid.",
	}, errs)
}

func TestWhitespaceOnlyCountsAsMissing(t *testing.T) {
	in := validGame()
	in["studio"] = "   "
	assert.Contains(t, Validate(GameRules, in), "studio")
}

func TestMaxLengthCountsCharacters(t *testing.T) {
	in := validGame()
	in["genre"] = strings.Repeat("é", 255)
	assert.Empty(t, Validate(GameRules, in))

	in["genre"] = strings.Repeat("a", 256)
	assert.Equal(t, "The genre field must not be greater than 255 characters.", Validate(GameRules, in)["genre"])
}

func TestNonStringReportedAsValidationError(t *testing.T) {
	in := validGame()
	in["name"] = 42
	assert.Equal(t, "The name field must be a string.", Validate(GameRules, in)["name"])
}

func TestMayorAge(t *testing.T) {
	base := func(age any) Fields {
		return Fields{"name": "Jane", "age": age, "address": "1 Main St", "city": "Springfield"}
	}

	tests := []struct {
		age  any
		want string
	}{
		{age: -1, want: "The age field must be at least 0."},
		{age: float64(-1), want: "The age field must be at least 0."},
		{age: "abc", want: "The age field must be an integer."},
		{age: 3.5, want: "The age field must be an integer."},
		{age: true, want: "The age field must be an integer."},
		{age: "", want: "The age field is required."},
		{age: nil, want: "The age field is required."},
		{age: 0, want: ""},
		{age: "57", want: ""},
		{age: float64(61), want: ""},
		{age: json.Number("40"), want: ""},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v", tt.age), func(t *testing.T) {
			errs := Validate(MayorRules, base(tt.age))
			assert.Equal(t, tt.want, errs["age"])
			assert.Len(t, errs, map[bool]int{true: 0, false: 1}[tt.want == ""])
		})
	}
}

func TestValidateDoesNotMutateInput(t *testing.T) {
	in := Fields{"message": "  hi  ", "extra": "ignored"}
	Validate(ChirpRules, in)
	assert.Equal(t, Fields{"message": "  hi  ", "extra": "ignored"}, in)
}

func TestCheckReturnsTypedError(t *testing.T) {
	err := Check(ChirpRules, Fields{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidationFailed))

	fields, ok := FromError(fmt.Errorf("wrapped: %w", err))
	require.True(t, ok)
	assert.Equal(t, Errors{"message": "The message field is required."}, fields)
	assert.Equal(t, "validation failed: message: The message field is required.", err.Error())

	assert.NoError(t, Check(ChirpRules, Fields{"message": "hello"}))
}

func TestValueHelpers(t *testing.T) {
	in := Fields{"name": "  Jane ", "age": "33"}
	assert.Equal(t, "Jane", StringValue(in, "name"))
	assert.Equal(t, 33, IntValue(in, "age"))
	assert.Equal(t, "", StringValue(in, "missing"))
	assert.Equal(t, []string{"name", "age", "address", "city"}, MayorRules.Names())
}

func TestMaxMeasuresTrimmedValue(t *testing.T) {
	in := validGame()
	in["genre"] = "  " + strings.Repeat("a", 255) + "  "
	assert.Empty(t, Validate(GameRules, in))
	assert.Equal(t, strings.Repeat("a", 255), StringValue(in, "genre"))
}

func TestRuleMessages(t *testing.T) {
	tests := []struct {
		name  string
		rule  Rule
		value any
		want  string
	}{
		{name: "required blank", rule: Required, value: " \t", want: "The first name field is required."},
		{name: "required zero int", rule: Required, value: 0, want: ""},
		{name: "required empty list", rule: Required, value: []any{}, want: "The first name field is required."},
		{name: "max", rule: Max(3), value: "abcd", want: "The first name field must not be greater than 3 characters."},
		{name: "max fits", rule: Max(3), value: "abc", want: ""},
		{name: "min", rule: Min(18), value: "17", want: "The first name field must be at least 18."},
		{name: "min fits", rule: Min(18), value: int64(18), want: ""},
		{name: "in", rule: In("a", "b"), value: "c", want: "The selected first name is invalid."},
		{name: "in non-string", rule: In("a", "b"), value: 1, want: "The selected first name is invalid."},
		{name: "in match", rule: In("a", "b"), value: "b", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.rule.check("first_name", tt.value)
			if tt.want == "" {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
