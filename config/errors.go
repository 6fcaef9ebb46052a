package config

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// ConfigurationError is returned for invalid or incomplete settings.
// No query is issued once it occurred.
type ConfigurationError struct {
	Err error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s", e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// NewConfigurationError creates a ConfigurationError with formatted message
func NewConfigurationError(format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Err: fmt.Errorf(format, args...)}
}

// IsConfigurationError returns true if err or one of the wrapped errors is a ConfigurationError
func IsConfigurationError(err error) bool {
	var cfgErr *ConfigurationError

	return errors.As(err, &cfgErr)
}

// collect wraps all collected validation errors into one ConfigurationError
func collect(errs *multierror.Error) error {
	if errs.ErrorOrNil() == nil {
		return nil
	}

	errs.ErrorFormat = func(es []error) string {
		if len(es) == 1 {
			return es[0].Error()
		}

		msg := fmt.Sprintf("%d errors occurred:", len(es))
		for _, e := range es {
			msg += "\n\t* " + e.Error()
		}

		return msg
	}

	return &ConfigurationError{Err: errs}
}
