package apperror

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	employeeCodePattern = regexp.MustCompile(`^[A-Z0-9]{3,10}$`)
	phonePattern        = regexp.MustCompile(`^\+?[1-9]\d{0,15}$`)
	personNamePattern   = regexp.MustCompile(`^[\p{L}\s\-']+$`)
	phoneSeparators     = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")

	validate = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Field names follow the json tag so messages match the API field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("employee_code", func(fl validator.FieldLevel) bool {
		return employeeCodePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(phoneSeparators.Replace(fl.Field().String()))
	})
	_ = v.RegisterValidation("person_name", func(fl validator.FieldLevel) bool {
		return personNamePattern.MatchString(fl.Field().String())
	})

	return v
}

// ValidateStruct runs the struct tag validation and maps the first failure to
// a user-facing AppError.
func ValidateStruct(s any) error {
	if err := validate.Struct(s); err != nil {
		return MapValidationError(err)
	}
	return nil
}

// ValidateVar validates a single value against a tag expression.
func ValidateVar(field string, value any, tag string) error {
	if err := validate.Var(value, tag); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) && len(errs) > 0 {
			return messageFor(formatFieldName(field), errs[0])
		}
		return InvalidField(formatFieldName(field))
	}
	return nil
}

// FieldLabel is the user-facing name of an API field, e.g. "Hire Date".
func FieldLabel(field string) string {
	return formatFieldName(field)
}

// formatFieldName turns "hireDate" or "hire_date" into "Hire Date".
func formatFieldName(s string) string {
	var b strings.Builder
	for i, r := range s {
		switch {
		case r == '_':
			b.WriteRune(' ')
		case i > 0 && unicode.IsUpper(r):
			b.WriteRune(' ')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}

	caser := cases.Title(language.English)
	return caser.String(b.String())
}

func MapValidationError(err error) error {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		e := errs[0]
		return messageFor(formatFieldName(e.Field()), e)
	}

	return ErrInvalidInput
}

func messageFor(field string, e validator.FieldError) *AppError {
	switch e.Tag() {
	case "required":
		return RequiredField(field)
	case "email":
		return Validationf("%s must be a valid email address", field)
	case "employee_code":
		return Validationf("%s must be 3-10 characters long and contain only uppercase letters and numbers", field)
	case "phone":
		return Validationf("%s must be a valid phone number", field)
	case "person_name":
		return Validationf("%s can only contain letters, spaces, hyphens, and apostrophes", field)
	case "min", "gte":
		if e.Kind() == reflect.String {
			return Validationf("%s must be at least %s characters long", field, e.Param())
		}
		if e.Kind() == reflect.Slice {
			return Validationf("%s must contain at least %s items", field, e.Param())
		}
		return Validationf("%s must be at least %s", field, e.Param())
	case "max", "lte":
		if e.Kind() == reflect.String {
			return Validationf("%s must be at most %s characters long", field, e.Param())
		}
		if e.Kind() == reflect.Slice {
			return Validationf("%s must contain at most %s items", field, e.Param())
		}
		return Validationf("%s must be at most %s", field, e.Param())
	case "oneof":
		return Validationf("%s must be one of: %s", field, e.Param())
	default:
		return InvalidField(field)
	}
}
