package handlers

import (
	"fmt"
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var currencyCodePattern = regexp.MustCompile(`^[A-Za-z]{3}$`)

// isCurrencyCode accepts three letter codes in either case; services upper-case them.
func isCurrencyCode(fl validator.FieldLevel) bool {
	return currencyCodePattern.MatchString(fl.Field().String())
}

// registerValidators adds the custom binding tags used by the DTOs.
func registerValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding validator engine %T", binding.Validator.Engine())
	}
	if err := v.RegisterValidation("currency_code", isCurrencyCode); err != nil {
		return fmt.Errorf("failed to register currency_code validator: %w", err)
	}
	return nil
}
