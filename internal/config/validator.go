package config

import (
	"fmt"
	"strings"
	"time"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("config validation: %s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors collects multiple validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// HasErrors returns true if there are any validation errors.
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// Validator validates configuration.
type Validator struct {
	errors ValidationErrors
}

// NewValidator creates a new validator.
func NewValidator() *Validator {
	return &Validator{
		errors: make(ValidationErrors, 0),
	}
}

// Validate validates the entire configuration.
func (v *Validator) Validate(cfg *Config) error {
	v.validateLog(&cfg.Log)
	v.validateDispatch(&cfg.Dispatch)
	v.validateTools(&cfg.Tools)

	if len(v.errors) > 0 {
		return v.errors
	}
	return nil
}

func (v *Validator) validateLog(cfg *LogConfig) {
	switch cfg.Level {
	case "debug", "info", "warn", "error":
	default:
		v.addError("log.level", cfg.Level, "must be one of: debug, info, warn, error")
	}

	switch cfg.Format {
	case "auto", "text", "json":
	default:
		v.addError("log.format", cfg.Format, "must be one of: auto, text, json")
	}
}

func (v *Validator) validateDispatch(cfg *DispatchConfig) {
	d, err := time.ParseDuration(cfg.Timeout)
	if err != nil {
		v.addError("dispatch.timeout", cfg.Timeout, "must be a duration like 10s or 1m")
		return
	}
	if d <= 0 {
		v.addError("dispatch.timeout", cfg.Timeout, "must be positive")
	}
}

func (v *Validator) validateTools(cfg *ToolsConfig) {
	if cfg.Jstack == "" {
		v.addError("tools.jstack", cfg.Jstack, "must not be empty")
	}
	if cfg.Jmap == "" {
		v.addError("tools.jmap", cfg.Jmap, "must not be empty")
	}
	if cfg.Pstack == "" {
		v.addError("tools.pstack", cfg.Pstack, "must not be empty")
	}
}

func (v *Validator) addError(field string, value interface{}, message string) {
	v.errors = append(v.errors, ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	})
}
