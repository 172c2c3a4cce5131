// Package validation plugs go-playground/validator into echo and turns its
// errors into short, client-facing messages.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mountaintravels/admin-dashboard/internal/model"
)

// Validator implements echo.Validator.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	// Date is validated as the time it wraps so that "required" means non-zero.
	v.RegisterCustomTypeFunc(func(f reflect.Value) any {
		if d, ok := f.Interface().(model.Date); ok {
			return d.Time
		}
		return nil
	}, model.Date{})
	_ = v.RegisterValidation("enum", func(fl validator.FieldLevel) bool {
		e, ok := fl.Field().Interface().(model.Enum)
		return !ok || e.Valid()
	})
	return &Validator{v: v}
}

func (cv *Validator) Validate(i any) error {
	if err := cv.v.Struct(i); err != nil {
		return &Error{err: err}
	}
	return nil
}

// Error wraps validator.ValidationErrors with a readable message.
type Error struct {
	err error
}

func (e *Error) Unwrap() error { return e.err }

func (e *Error) Error() string {
	var fields validator.ValidationErrors
	if !errors.As(e.err, &fields) {
		return e.err.Error()
	}
	msgs := make([]string, 0, len(fields))
	for _, fe := range fields {
		msgs = append(msgs, describe(fe))
	}
	return strings.Join(msgs, "; ")
}

// Fields lists the json paths that failed, e.g. "itineraries[0].title".
func (e *Error) Fields() []string {
	var fields validator.ValidationErrors
	if !errors.As(e.err, &fields) {
		return nil
	}
	out := make([]string, 0, len(fields))
	for _, fe := range fields {
		out = append(out, fieldPath(fe))
	}
	return out
}

func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func describe(fe validator.FieldError) string {
	field := fieldPath(fe)
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "enum":
		return fmt.Sprintf("%s has invalid value %q", field, fmt.Sprint(fe.Value()))
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "len":
		return fmt.Sprintf("%s must be %s characters", field, fe.Param())
	}
	return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
}
