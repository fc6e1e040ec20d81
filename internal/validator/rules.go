package validator

import (
	"github.com/go-playground/validator/v10"

	"eventstaff_backend/internal/logger"
	"eventstaff_backend/internal/models"
)

func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			logger.Fatal("failed to register validation tag", "tag", tag, "error", err)
		}
	}

	mustRegister("is-user-type", validateUserType)
	mustRegister("is-role-gender", validateRoleGender)
	mustRegister("is-event-status", validateEventStatus)
}

// Empty values pass; "required" covers them.

func validateUserType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.UserType(value).Valid()
}

func validateRoleGender(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "", models.GenderAny, models.GenderMale, models.GenderFemale:
		return true
	default:
		return false
	}
}

func validateEventStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.EventStatus(value).Valid()
}
