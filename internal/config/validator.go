package config

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/kyaoi/markread/internal/viewer"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

// validatorInstance returns the shared validator used across the config
// package.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		validateInst = validator.New(validator.WithRequiredStructEnabled())
		_ = validateInst.RegisterValidation("theme", func(fl validator.FieldLevel) bool {
			_, err := viewer.ParseTheme(fl.Field().String())
			return err == nil
		})
	})
	return validateInst
}

func validate(v any) error {
	if err := validatorInstance().Struct(v); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
