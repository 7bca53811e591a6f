package invoice

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ErrValidation matches every *ValidationError.
var ErrValidation = errors.New("validation failed")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})
	_ = v.RegisterValidation("money", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		if err != nil {
			return false
		}
		return checkRate(d) == nil
	})
	return v
}

// FieldError names one rejected field.
type FieldError struct {
	Field  string
	Reason string
}

// ValidationError lists every field that stopped an invoice from being generated.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Reason)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Add appends a field failure.
func (e *ValidationError) Add(field, reason string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Reason: reason})
}

// OrNil returns e when it holds failures and nil otherwise.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// Validate checks that r is complete enough to be numbered and rendered.
func (r Record) Validate() error {
	verr := &ValidationError{}
	if r.Date.IsZero() {
		verr.Add("Date", "required")
	}
	if err := validate.Struct(r); err != nil {
		var ve validator.ValidationErrors
		if !errors.As(err, &ve) {
			return err
		}
		for _, fe := range ve {
			verr.Add(fieldPath(fe.Namespace()), reason(fe))
		}
	}
	return verr.OrNil()
}

func fieldPath(ns string) string {
	return strings.TrimPrefix(ns, "Record.")
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "min":
		return "needs at least " + fe.Param() + " entry"
	case "money":
		return "must be a non-negative amount with at most two decimals"
	case "email":
		return "not a valid email address"
	default:
		return fe.Tag()
	}
}
