package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate performs comprehensive validation of the configuration.
// Invalid configuration fails here, at load time, never during
// analysis.
func Validate(c *Config) error {
	var errs ValidationErrors

	if c.Version < 1 || c.Version > Version {
		errs = append(errs, ValidationError{
			Field:   "version",
			Message: fmt.Sprintf("unsupported version %d (current: %d)", c.Version, Version),
		})
	}

	if err := c.Behavior.Validate(); err != nil {
		errs = append(errs, ValidationError{Field: "behavior", Message: err.Error()})
	}
	if err := c.Structure.Validate(); err != nil {
		errs = append(errs, ValidationError{Field: "structure", Message: err.Error()})
	}
	if err := c.Rules.Validate(); err != nil {
		errs = append(errs, ValidationError{Field: "rules", Message: err.Error()})
	}
	if err := c.Logging.Validate(); err != nil {
		errs = append(errs, ValidationError{Field: "logging", Message: err.Error()})
	}
	if c.History.Enabled && c.History.Path == "" {
		errs = append(errs, ValidationError{Field: "history.path", Message: "required when history is enabled"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
