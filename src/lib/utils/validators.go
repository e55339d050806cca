package utils

import (
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/stormkit-io/fnmanagement/src/lib/slog"
)

var validate *validator.Validate
var validateOnce sync.Once

type ValidationErrors = validator.ValidationErrors

// Validator returns the shared validator instance with the custom
// validations registered.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()

		customValidations := map[string]validator.Func{"notblank": validateNotBlank}

		for tagName, vf := range customValidations {
			if err := validate.RegisterValidation(tagName, vf); err != nil {
				slog.Errorf("could not initialize validator %s", tagName)
			}
		}
	})

	return validate
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return !IsBlank(fl.Field().String())
}
