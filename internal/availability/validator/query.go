package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"tably/pkg/logger"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// AvailabilityQuery is the parsed query string of the single-day endpoint.
type AvailabilityQuery struct {
	Date        string `validate:"required,datetime=2006-01-02"`
	PartySize   int    `validate:"required,min=1,max=200"`
	BookingType string `validate:"omitempty,max=50"`
}

// RangeQuery is the parsed query string of the date-range endpoint.
type RangeQuery struct {
	StartDate   string `validate:"required,datetime=2006-01-02"`
	EndDate     string `validate:"required,datetime=2006-01-02"`
	PartySize   int    `validate:"required,min=1,max=200"`
	BookingType string `validate:"omitempty,max=50"`
}

// NextSlotQuery is the parsed query string of the next-available endpoint.
type NextSlotQuery struct {
	PartySize     int    `validate:"required,min=1,max=200"`
	BookingType   string `validate:"omitempty,max=50"`
	PreferredTime string `validate:"omitempty,datetime=15:04"`
}

type QueryValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewQueryValidator(log *logger.Logger) *QueryValidator {
	return &QueryValidator{
		validate: validator.New(),
		logger:   log,
	}
}

func (v *QueryValidator) Validate(query any) error {
	if err := v.validate.Struct(query); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *QueryValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "datetime":
			if err.Param() == "15:04" {
				message = fmt.Sprintf("%s must be in HH:MM 24-hour format", err.Field())
			} else {
				message = fmt.Sprintf("%s must be in YYYY-MM-DD format", err.Field())
			}
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
