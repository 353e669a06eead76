package validator

import (
	"log"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Accepts an optional leading + and country code 1, then 9-15 digits.
var phoneRegexp = regexp.MustCompile(`^\+?1?\d{9,15}$`)

// registerCustomRules registers the application's validation tags.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Failing to register a rule is a startup misconfiguration.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("phone", func(fl validator.FieldLevel) bool {
		return phoneRegexp.MatchString(fl.Field().String())
	})
}
