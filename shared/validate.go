package shared

import (
	"fmt"
	"regexp"
	"strings"
)

// Rule is the composable validation capability: anything that can judge a
// candidate value and explain a rejection can join the input-validation
// pipeline.
type Rule interface {
	Validate(value string) bool
	Message() string
}

const usernameSpecialChars = "!@#$%^&*()_+-=[]{};':\"\\|,.<>/?"

// UsernameRule enforces the account name policy: 12-20 characters, at least
// one uppercase letter, one lowercase letter and one special character, and
// nothing outside ASCII letters, digits and the special set.
type UsernameRule struct{}

func (UsernameRule) Validate(value string) bool {
	if len(value) < 12 || len(value) > 20 {
		return false
	}

	var hasUpper, hasLower, hasSpecial bool
	for _, r := range value {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
		case strings.ContainsRune(usernameSpecialChars, r):
			hasSpecial = true
		default:
			return false
		}
	}

	return hasUpper && hasLower && hasSpecial
}

func (UsernameRule) Message() string {
	return "username must be 12 to 20 characters and include an uppercase letter, a lowercase letter, and a special character"
}

type RequiredRule struct{}

func (RequiredRule) Validate(value string) bool {
	return strings.TrimSpace(value) != ""
}

func (RequiredRule) Message() string {
	return "this field is required"
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

type EmailRule struct{}

func (EmailRule) Validate(value string) bool {
	return emailRegex.MatchString(value)
}

func (EmailRule) Message() string {
	return "must be a valid email address"
}

type MinLenRule struct {
	Min int
}

func (r MinLenRule) Validate(value string) bool {
	return len(value) >= r.Min
}

func (r MinLenRule) Message() string {
	return fmt.Sprintf("must be at least %d characters", r.Min)
}

type MaxLenRule struct {
	Max int
}

func (r MaxLenRule) Validate(value string) bool {
	return len(value) <= r.Max
}

func (r MaxLenRule) Message() string {
	return fmt.Sprintf("must be at most %d characters", r.Max)
}

// Validator accumulates per-field rule failures and folds them into a single
// validation ApiError.
type Validator struct {
	fields map[string][]string
}

func (v *Validator) Check(field, value string, rules ...Rule) {
	for _, rule := range rules {
		if !rule.Validate(value) {
			if v.fields == nil {
				v.fields = map[string][]string{}
			}
			v.fields[field] = append(v.fields[field], rule.Message())
		}
	}
}

func (v *Validator) AddError(field, message string) {
	if v.fields == nil {
		v.fields = map[string][]string{}
	}
	v.fields[field] = append(v.fields[field], message)
}

// Err returns the accumulated validation failure, or nil if every rule passed.
func (v *Validator) Err() error {
	if len(v.fields) == 0 {
		return nil
	}
	return &ApiError{
		Kind:   ApiErrorKindValidation,
		Msg:    "invalid input",
		Fields: v.fields,
	}
}
