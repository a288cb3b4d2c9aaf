// Package validator registers custom validation functions with Gin's
// binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		// Budget windows and report windows share the same period values.
		_ = v.RegisterValidation("budget_period", validatePeriod)
		_ = v.RegisterValidation("report_period", validatePeriod)
	}
}

func validatePeriod(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "week", "month":
		return true
	}
	return false
}
