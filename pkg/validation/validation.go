// Package validation checks untrusted command input against struct tags
// and reports failures field by field.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Errors maps JSON field names to human-readable failure messages.
// The zero value is ready to use; a nil or empty Errors reports no failures.
type Errors map[string]string

// Error renders the failures sorted by field name.
func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, len(fields))
	for i, field := range fields {
		parts[i] = fmt.Sprintf("%s: %s", field, e[field])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add records msg for field unless the field already has a message.
func (e Errors) Add(field, msg string) {
	if _, ok := e[field]; !ok {
		e[field] = msg
	}
}

// Err returns e as an error, or nil when no failures were recorded.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// Messages overrides the default message for a "field.tag" pair,
// e.g. "title.max" → "Title too long".
type Messages map[string]string

// Validator wraps a configured validator.Validate. It is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator that reports fields by their JSON names.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return &Validator{validate: v}
}

// Struct validates s and returns Errors describing each failing field.
// Errors other than field validation failures are returned unchanged.
func (v *Validator) Struct(s any, msgs Messages) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	errs := Errors{}
	for _, fe := range fieldErrs {
		field := fe.Field()
		if msg, ok := msgs[field+"."+fe.Tag()]; ok {
			errs.Add(field, msg)
			continue
		}
		errs.Add(field, defaultMessage(field, fe))
	}
	return errs
}

func defaultMessage(field string, fe validator.FieldError) string {
	label := Label(field)
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "max":
		return label + " too long"
	case "min":
		return label + " too short"
	case "uuid", "uuid4":
		return "Invalid " + strings.ToLower(label)
	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}

// Label converts a JSON field name such as "page_size" into "Page size".
func Label(field string) string {
	if field == "" {
		return field
	}
	field = strings.ReplaceAll(field, "_", " ")
	return strings.ToUpper(field[:1]) + field[1:]
}
