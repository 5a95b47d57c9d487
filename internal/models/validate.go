package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(fmt.Sprintf("models: register notblank: %v", err))
	}
	if err := v.RegisterValidation("maxbytes", maxBytes); err != nil {
		panic(fmt.Sprintf("models: register maxbytes: %v", err))
	}
	return v
}

// maxBytes bounds a string's encoded length, unlike max which counts runes.
// bcrypt only accepts 72 bytes of input.
func maxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= limit
}

// FieldError describes the first failed rule of a request.
type FieldError struct {
	Field string
	Rule  string
	Param string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%v: %s", ErrInvalidInput, e.describe())
}

func (e *FieldError) Unwrap() error { return ErrInvalidInput }

// Message is the client-facing text.
func (e *FieldError) Message() string {
	if e.Rule == "required" {
		return "Please enter all fields"
	}
	d := e.describe()
	return strings.ToUpper(d[:1]) + d[1:]
}

func (e *FieldError) describe() string {
	switch e.Rule {
	case "required":
		return e.Field + " is required"
	case "max":
		return e.Field + " must be at most " + e.Param + " characters"
	case "maxbytes":
		return e.Field + " must be at most " + e.Param + " bytes"
	default:
		return e.Field + " is invalid"
	}
}

// Validate checks the struct's validate tags. Failures are *FieldError
// values wrapping ErrInvalidInput.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	fe := verrs[0]
	rule := fe.Tag()
	if rule == "notblank" {
		rule = "required"
	}
	return &FieldError{Field: strings.ToLower(fe.Field()), Rule: rule, Param: fe.Param()}
}
