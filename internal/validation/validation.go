// Package validation checks the free-text fields of the business form.
package validation

import (
	"errors"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// Result is the outcome of validating one field.
type Result int

const (
	Valid Result = iota
	Empty
	TooShort
	TooLong
	InvalidCharacters
)

const (
	MinLength = 2
	MaxLength = 50

	// fieldRules is evaluated left to right and stops at the first failure,
	// which gives the rule precedence Empty > TooShort > TooLong > InvalidCharacters.
	fieldRules = "notblank,min=2,max=50,businesstext"
)

var allowedText = regexp.MustCompile(`^[A-Za-z0-9 &',.\-]*$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("businesstext", func(fl validator.FieldLevel) bool {
		return allowedText.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// Validate maps raw field text to a Result. It is pure and safe for
// concurrent use.
func Validate(value string) Result {
	err := validate.Var(value, fieldRules)
	if err == nil {
		return Valid
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		// Only reachable on a programming error in fieldRules.
		return InvalidCharacters
	}

	switch verrs[0].Tag() {
	case "notblank":
		return Empty
	case "min":
		return TooShort
	case "max":
		return TooLong
	default:
		return InvalidCharacters
	}
}

// Message returns the inline message shown under a field, "" when valid.
func (r Result) Message() string {
	switch r {
	case Empty:
		return "This field is required"
	case TooShort:
		return "Must be at least 2 characters"
	case TooLong:
		return "Must be less than 50 characters"
	case InvalidCharacters:
		return "Contains invalid characters"
	default:
		return ""
	}
}

func (r Result) OK() bool {
	return r == Valid
}

func (r Result) String() string {
	switch r {
	case Valid:
		return "valid"
	case Empty:
		return "empty"
	case TooShort:
		return "too_short"
	case TooLong:
		return "too_long"
	case InvalidCharacters:
		return "invalid_characters"
	default:
		return "unknown"
	}
}
