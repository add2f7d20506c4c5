package config

import (
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/alexisbeaulieu97/quill/internal/domain/appearance"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	storageKeyPattern = regexp.MustCompile(`^[A-Za-z0-9._:-]+$`)
)

// validatorInstance configures and returns the shared validator instance used across the config package.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("yaml"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		_ = v.RegisterValidation("theme_selection", func(fl validator.FieldLevel) bool {
			return appearance.Selection(fl.Field().String()).Valid()
		})

		_ = v.RegisterValidation("appearance", func(fl validator.FieldLevel) bool {
			return appearance.Preference(fl.Field().String()).Valid()
		})

		_ = v.RegisterValidation("storage_key", func(fl validator.FieldLevel) bool {
			return storageKeyPattern.MatchString(fl.Field().String())
		})

		validateInst = v
	})

	return validateInst
}

// GetValidator returns a configured validator instance for use outside the config package.
func GetValidator() *validator.Validate {
	return validatorInstance()
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	return convertValidationError(validatorInstance().Struct(cfg))
}
