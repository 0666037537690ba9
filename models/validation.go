package models

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// handleRe is the slug grammar: lowercase alphanumeric runs separated by
// single hyphens, no leading or trailing hyphen.
var handleRe = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Validator wraps go-playground/validator with the custom storefront
// validators and satisfies echo.Validator.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()
	v.RegisterValidation("handle", validateHandle)
	v.RegisterValidation("invpolicy", validateInventoryPolicy)
	return &Validator{validate: v}
}

// Validate implements echo.Validator.
func (v *Validator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

func validateHandle(fl validator.FieldLevel) bool {
	return handleRe.MatchString(fl.Field().String())
}

func validateInventoryPolicy(fl validator.FieldLevel) bool {
	p := InventoryPolicy(fl.Field().String())
	return p == InventoryPolicyDeny || p == InventoryPolicyContinue
}
