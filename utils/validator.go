package utils

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"gamerental/models"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// One validator for the whole process; it caches struct metadata, so the
// per-entity tag rules are parsed once.
var validate = newValidator()

var digitsOnly = regexp.MustCompile(`^[0-9]+$`)

func newValidator() *validator.Validate {
	v := validator.New()

	// Report JSON field names, not Go field names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	// Numeric tags (gt, min, required) on decimals compare the float value.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	// A zero date fails "required".
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(models.Date); ok {
			return d.String()
		}
		return nil
	}, models.Date{})

	// "numeric" accepts signs and decimal points; phone and cpf are plain
	// digit strings.
	_ = v.RegisterValidation("digits", func(fl validator.FieldLevel) bool {
		return digitsOnly.MatchString(fl.Field().String())
	})

	// Postgres rounds extra decimals away on insert.
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		in := sl.Current().Interface().(models.GameInput)
		if !models.FitsMoneyScale(in.PricePerDay) {
			sl.ReportError(in.PricePerDay, "pricePerDay", "PricePerDay", "money", "")
		}
	}, models.GameInput{})

	return v
}

// ValidateStruct validates a struct against its validate tags
func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// ValidationMessages turns a validation error into human-readable messages,
// one per failing field. Non-validation errors yield their own message.
func ValidationMessages(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}
	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatValidationError(e))
	}
	return messages
}

func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "digits", "numeric":
		return e.Field() + " must contain only digits"
	case "len":
		return e.Field() + " must be exactly " + e.Param() + " characters"
	case "uri":
		return e.Field() + " must be a valid URI"
	case "min":
		return e.Field() + " must be at least " + e.Param() + " characters"
	case "max":
		return e.Field() + " must be at most " + e.Param() + " characters"
	case "money":
		return e.Field() + " must have at most 2 decimal places"
	case "gt":
		return e.Field() + " must be greater than " + e.Param()
	case "gte":
		return e.Field() + " must be greater than or equal to " + e.Param()
	case "lte":
		return e.Field() + " must be less than or equal to " + e.Param()
	default:
		return e.Field() + " is invalid"
	}
}
