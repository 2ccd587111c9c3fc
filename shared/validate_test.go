package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUsernameRule(t *testing.T) {
	rule := UsernameRule{}

	tests := []struct {
		name     string
		username string
		valid    bool
	}{
		{"valid with digits and special", "Abcdef1234!@", true},
		{"valid without digits", "Abcdefghijk!", true},
		{"valid at max length", "Abcdefghij1234567!@?", true},
		{"too short", "short1!", false},
		{"eleven chars", "Abcdefghij!", false},
		{"twenty one chars", "Abcdefghij12345678!@?", false},
		{"no special", "NoSpecialChar123", false},
		{"no uppercase", "abcdef1234!@", false},
		{"no lowercase", "ABCDEF1234!@", false},
		{"whitespace", "Abcdef 1234!@", false},
		{"unicode letter", "Abcdéf1234!@", false},
		{"empty", "", false},
		{"every special char counts", "Abcdefghijk?", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, rule.Validate(tt.username))
		})
	}

	assert.NotEmpty(t, rule.Message())
}

func TestBasicRules(t *testing.T) {
	assert.False(t, RequiredRule{}.Validate(""))
	assert.False(t, RequiredRule{}.Validate("   "))
	assert.True(t, RequiredRule{}.Validate("x"))

	assert.True(t, EmailRule{}.Validate("user@example.com"))
	assert.False(t, EmailRule{}.Validate("not-an-email"))
	assert.False(t, EmailRule{}.Validate("user@"))

	assert.True(t, MinLenRule{Min: 8}.Validate("12345678"))
	assert.False(t, MinLenRule{Min: 8}.Validate("1234567"))

	assert.True(t, MaxLenRule{Max: 3}.Validate("abc"))
	assert.False(t, MaxLenRule{Max: 3}.Validate("abcd"))
}

func TestValidatorAccumulatesFieldErrors(t *testing.T) {
	var v Validator
	v.Check("username", "", RequiredRule{}, UsernameRule{})
	v.Check("email", "nope", EmailRule{})
	v.Check("name", "fine", RequiredRule{})

	err := v.Err()
	assert.Error(t, err)

	apiErr, ok := err.(*ApiError)
	assert.True(t, ok)
	assert.Equal(t, ApiErrorKindValidation, apiErr.Kind)
	assert.Len(t, apiErr.Fields["username"], 2)
	assert.Len(t, apiErr.Fields["email"], 1)
	assert.NotContains(t, apiErr.Fields, "name")
}

func TestValidatorNoErrors(t *testing.T) {
	var v Validator
	v.Check("name", "fine", RequiredRule{})
	assert.NoError(t, v.Err())

	var empty Validator
	assert.NoError(t, empty.Err())
}
