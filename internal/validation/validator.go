package validation

import (
	"reflect"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// ISODateLayout is the only date form accepted for expenses.
const ISODateLayout = "2006-01-02"

// Validator wraps the go-playground validator with the expense rules registered
type Validator struct {
	validate *validator.Validate
}

var (
	instance *Validator
	once     sync.Once
)

// GetValidator returns the shared validator instance
func GetValidator() *Validator {
	once.Do(func() {
		instance = NewValidator()
	})
	return instance
}

// NewValidator creates a validator with the custom expense rules
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	_ = v.RegisterValidation("iso_date", validateISODate)
	_ = v.RegisterValidation("non_negative", validateNonNegative)

	return &Validator{validate: v}
}

// Struct validates a struct using its `validate` tags.
// A failure is returned as validator.ValidationErrors.
func (v *Validator) Struct(s any) error {
	return v.validate.Struct(s)
}

// Var validates a single value against a tag expression such as "iso_date".
func (v *Validator) Var(field any, tag string) error {
	return v.validate.Var(field, tag)
}

// validateISODate accepts exactly YYYY-MM-DD naming a real calendar day
func validateISODate(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) != len(ISODateLayout) {
		return false
	}
	_, err := time.Parse(ISODateLayout, s)
	return err == nil
}

func validateNonNegative(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fl.Field().Int() >= 0
	case reflect.Float32, reflect.Float64:
		return fl.Field().Float() >= 0
	default:
		return false
	}
}
