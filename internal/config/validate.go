package config

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	labNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, key := range []string{"mapstructure", "yaml"} {
				name, _, _ := strings.Cut(f.Tag.Get(key), ",")
				if name != "" && name != "-" {
					return name
				}
			}
			return ""
		})

		_ = v.RegisterValidation("lab_name", func(fl validator.FieldLevel) bool {
			return labNamePattern.MatchString(fl.Field().String())
		})

		validateInst = v
	})

	return validateInst
}

// ValidationError describes a single invalid configuration field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// convertValidationError turns validator output into a joined list of
// ValidationError values keyed by namespaced field.
func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ValidationError{Field: "config", Message: err.Error()}
	}

	out := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, &ValidationError{
			Field:   fieldName(fe),
			Message: messageFor(fe),
		})
	}
	return errors.Join(out...)
}

func fieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		ns = ns[i+1:]
	}
	return strings.ToLower(ns)
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "url", "http_url":
		return "must be a valid URL"
	case "min":
		return "must have at least " + fe.Param() + " entries"
	case "unique":
		return "contains duplicate " + strings.ToLower(fe.Param()) + " values"
	case "lab_name":
		return "must be lowercase alphanumeric with '-' or '_'"
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "failed '" + fe.Tag() + "' validation"
	}
}
