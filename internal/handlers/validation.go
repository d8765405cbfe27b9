package handlers

import (
	"fmt"
	"strings"

	"pena/internal/models"

	"github.com/go-playground/validator/v10"
)

// formatValidationErrors renders every field violation into one ordered
// report. validator/v10 evaluates all fields, so a payload with two bad
// fields yields two entries, not one.
func formatValidationErrors(err error) []models.ValidationError {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []models.ValidationError{{Field: "payload", Message: err.Error()}}
	}

	report := make([]models.ValidationError, 0, len(validationErrors))
	for _, e := range validationErrors {
		field := lowerFirst(e.Field())
		report = append(report, models.ValidationError{
			Field:   field,
			Message: messageFor(field, e),
		})
	}
	return report
}

func messageFor(field string, e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters long", field, e.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s cannot exceed %s characters", field, e.Param())
		}
		return fmt.Sprintf("%s cannot exceed %s", field, e.Param())
	case "email":
		return "please enter a valid email"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(e.Param(), " ", ", "))
	case "uuid":
		return fmt.Sprintf("%s must be a valid ID", field)
	default:
		return fmt.Sprintf("%s failed on the '%s' rule", field, e.Tag())
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
