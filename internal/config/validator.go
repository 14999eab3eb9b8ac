package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2/styles"
	"github.com/go-playground/validator/v10"
)

// Validate checks cfg against its field rules and returns every violation
// joined into one error.
func Validate(cfg *Config) error {
	validate := validator.New()

	_ = validate.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "debug", "info", "warn", "error":
			return true
		default:
			return false
		}
	})

	_ = validate.RegisterValidation("reportformat", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "text", "txt", "markdown", "md", "html", "htm", "json", "yaml", "yml":
			return true
		default:
			return false
		}
	})

	_ = validate.RegisterValidation("chromastyle", func(fl validator.FieldLevel) bool {
		name := fl.Field().String()
		for registered := range styles.Registry {
			if strings.EqualFold(registered, name) {
				return true
			}
		}
		return false
	})

	_ = validate.RegisterValidation("existingdir", func(fl validator.FieldLevel) bool {
		info, err := os.Stat(fl.Field().String())
		return err == nil && info.IsDir()
	})

	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validating config: %w", err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("%s must be at least %s (got %v)", field, fe.Param(), fe.Value())
	case "max":
		return fmt.Sprintf("%s must be at most %s (got %v)", field, fe.Param(), fe.Value())
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "existingdir":
		return fmt.Sprintf("%s %q is not a directory", field, fe.Value())
	default:
		return fmt.Sprintf("%s has invalid value %q", field, fe.Value())
	}
}
