// Package validation checks service inputs with go-playground/validator and
// reports the first failure as an *Error with a user-facing message.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"clinicbook/backend/internal/domain"
)

type Error struct {
	msg string
}

func (e *Error) Error() string {
	return e.msg
}

func New(msg string) error {
	return &Error{msg: msg}
}

var (
	validate     = newValidator()
	phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ()-]{6,19}$`)
)

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("field"), ",")
		if name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("service", func(fl validator.FieldLevel) bool {
		return domain.IsKnownService(fl.Field().String())
	})
	_ = v.RegisterValidation("timeslot", func(fl validator.FieldLevel) bool {
		return domain.IsKnownTimeSlot(fl.Field().String())
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("datekey", func(fl validator.FieldLevel) bool {
		return domain.IsDateKey(fl.Field().String())
	})
	return v
}

// Struct validates s and returns nil or an *Error for the first failing field.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	return &Error{msg: message(fieldErrs[0])}
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "url", "http_url":
		return field + " must be a valid URL"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "datekey":
		return field + " must be a date in YYYY-MM-DD format"
	case "service":
		return "unknown " + field
	case "timeslot":
		return "unknown " + field
	case "phone":
		return field + " must be a valid phone number"
	default:
		return field + " is invalid"
	}
}

// TrimStrings trims surrounding whitespace from every string field of the
// struct pointed to by ptr.
func TrimStrings(ptr any) {
	v := reflect.ValueOf(ptr)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return
	}
	v = v.Elem()
	for i := 0; i < v.NumField(); i++ {
		f := v.Field(i)
		if f.Kind() == reflect.String && f.CanSet() {
			f.SetString(strings.TrimSpace(f.String()))
		}
	}
}
