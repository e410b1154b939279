// Package config holds the runtime settings of a table manager session
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	domainerrors "github.com/mesabjorn/anything-db/internal/domain/errors"
)

const (
	DefaultLogLevel    = "warn"
	DefaultPreviewRows = 10
)

// Config is populated from command line flags and environment variables
type Config struct {
	DBPath      string `validate:"required"`
	LogLevel    string `validate:"oneof=debug info warn error"`
	SeqURL      string `validate:"omitempty,url"`
	PreviewRows int    `validate:"gte=1,lte=100000"`
}

// Default returns a configuration for path with every other field at its default
func Default(path string) Config {
	return Config{
		DBPath:      path,
		LogLevel:    DefaultLogLevel,
		PreviewRows: DefaultPreviewRows,
	}
}

var validate = validator.New()

// Validate normalizes the configuration and checks it.
// The first failing field is returned as a *errors.ValidationError.
func (c *Config) Validate() error {
	c.DBPath = strings.TrimSpace(c.DBPath)
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.SeqURL = strings.TrimSpace(c.SeqURL)

	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	fe := fieldErrs[0]
	return &domainerrors.ValidationError{
		Field:   fe.Field(),
		Value:   fmt.Sprint(fe.Value()),
		Message: describe(fe),
	}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return fmt.Sprintf("must be one of %s", fe.Param())
	case "url":
		return fmt.Sprintf("'%v' is not a valid URL", fe.Value())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}
