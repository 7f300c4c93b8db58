package utils

import (
	"regexp"

	"main/model"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

var hhmmPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

func InitValidator() {
	Validate = validator.New()
	RegisterCustomValidators(Validate)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterCustomValidators(v)
	}
}

func RegisterCustomValidators(v *validator.Validate) {
	v.RegisterValidation("duedate", ValidateDueDateRule)
	v.RegisterValidation("priority", ValidatePriorityRule)
	v.RegisterValidation("recurrence", ValidateRecurrenceRule)
	v.RegisterValidation("hhmm", ValidateHHMMRule)
}

// ValidateDueDateRule accepts the empty string or a parseable
// "dd/mm/yyyy HH:mm" value.
func ValidateDueDateRule(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	_, err := model.ParseDueDate(s)
	return err == nil
}

func ValidatePriorityRule(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s == "" || model.ValidPriority(model.Priority(s))
}

func ValidateRecurrenceRule(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s == "" || model.ValidRecurrence(model.Recurrence(s))
}

func ValidateHHMMRule(fl validator.FieldLevel) bool {
	return hhmmPattern.MatchString(fl.Field().String())
}
