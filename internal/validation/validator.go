// package validation provides helper functions for request data validation.
// It uses the go-playground/validator library and includes custom validation rules.
package validation

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/YusovID/service-dispatch/internal/domain"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func init() {
	// Report fields by their JSON names so messages match the request body.
	validate.RegisterTagNameFunc(fieldName)

	rules := map[string]validator.Func{
		"card_number":   validateCardNumber,
		"cvv":           validateCVV,
		"decimal":       validateDecimal,
		"service_group": validateServiceGroup,
		"rating":        validateRating,
	}

	for tag, fn := range rules {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("failed to register custom validation %q: %v", tag, err))
		}
	}
}

func fieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return fld.Name
	}

	return name
}

// StripCardNumber removes the separators a card form inserts between digit groups.
func StripCardNumber(number string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return -1
		}

		return r
	}, number)
}

// validateCardNumber accepts exactly 16 digits once separators are removed.
// No checksum is applied.
func validateCardNumber(fl validator.FieldLevel) bool {
	n := StripCardNumber(fl.Field().String())
	if n == "" {
		return true
	}

	if len(n) != 16 {
		return false
	}

	for _, r := range n {
		if !unicode.IsDigit(r) {
			return false
		}
	}

	return true
}

func validateCVV(fl validator.FieldLevel) bool {
	v := fl.Field().String()

	return v == "" || len([]rune(v)) == 3
}

// validateDecimal accepts a money amount the payments table can store.
func validateDecimal(fl validator.FieldLevel) bool {
	v := strings.TrimSpace(fl.Field().String())
	if v == "" {
		return true
	}

	_, err := domain.ParseAmount(v)

	return err == nil
}

func validateServiceGroup(fl validator.FieldLevel) bool {
	v := fl.Field().String()

	return v == "" || domain.ServiceGroup(v).Valid()
}

// validateRating accepts the 1..5 a star picker emits. Zero, the picker's
// untouched default, is rejected by the accompanying required tag.
func validateRating(fl validator.FieldLevel) bool {
	v := fl.Field().Int()

	return v == 0 || (v >= 1 && v <= 5)
}

// ValidationError is a custom error type that holds a slice of validation error messages.
type ValidationError struct {
	Errors []string
}

func (v *ValidationError) Error() string {
	return strings.Join(v.Errors, ", ")
}

// ValidateStruct performs validation on a given struct based on its validation tags.
// If validation fails, it returns a *ValidationError with user-friendly messages.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("validation: %w", err)
	}

	root := reflect.TypeOf(s)
	messages := make([]string, 0, len(verrs))

	for _, fe := range verrs {
		messages = append(messages, message(root, fe))
	}

	return &ValidationError{Errors: messages}
}

func message(root reflect.Type, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("field '%s' is required", fe.Field())
	case "card_number":
		return fmt.Sprintf("field '%s' must contain 16 digits", fe.Field())
	case "cvv":
		return fmt.Sprintf("field '%s' must be 3 characters", fe.Field())
	case "decimal":
		return fmt.Sprintf("field '%s' must be a non-negative amount with at most 2 decimal places, up to %s",
			fe.Field(), domain.MaxAmount.StringFixed(2))
	case "service_group":
		return fmt.Sprintf("field '%s' must be one of home_office, vehicle, tender", fe.Field())
	case "rating":
		return fmt.Sprintf("field '%s' must be between 1 and 5", fe.Field())
	case "email":
		return fmt.Sprintf("field '%s' must be a valid email address", fe.Field())
	case "min", "max":
		return fmt.Sprintf("field '%s' must be %s %s", fe.Field(), boundWord(fe.Tag()), fe.Param())
	case "eqfield":
		return fmt.Sprintf("field '%s' must match '%s'", fe.Field(), siblingName(root, fe))
	default:
		return fmt.Sprintf("field '%s' failed on the '%s' tag", fe.Field(), fe.Tag())
	}
}

// siblingName reports the field an eqfield param points at under the same
// name fe.Field() uses. It falls back to the raw param.
func siblingName(root reflect.Type, fe validator.FieldError) string {
	t := root
	parts := strings.Split(fe.StructNamespace(), ".")
	if len(parts) < 2 {
		return fe.Param()
	}

	for _, part := range parts[1 : len(parts)-1] {
		t = elem(t)
		if t.Kind() != reflect.Struct {
			return fe.Param()
		}

		f, ok := t.FieldByName(strings.SplitN(part, "[", 2)[0])
		if !ok {
			return fe.Param()
		}

		t = f.Type
	}

	t = elem(t)
	if t.Kind() != reflect.Struct {
		return fe.Param()
	}

	f, ok := t.FieldByName(fe.Param())
	if !ok {
		return fe.Param()
	}

	return fieldName(f)
}

func elem(t reflect.Type) reflect.Type {
	for t != nil {
		switch t.Kind() {
		case reflect.Pointer, reflect.Slice, reflect.Array, reflect.Map:
			t = t.Elem()
		default:
			return t
		}
	}

	return t
}

func boundWord(tag string) string {
	if tag == "min" {
		return "at least"
	}

	return "at most"
}
