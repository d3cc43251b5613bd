package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Tag     string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	switch e.Tag {
	case "required":
		return fmt.Sprintf("%s is required", e.Field)
	case "gte":
		return fmt.Sprintf("%s is below its minimum", e.Field)
	case "lte":
		return fmt.Sprintf("%s is above its maximum", e.Field)
	case "min":
		return fmt.Sprintf("%s has too few entries", e.Field)
	default:
		return fmt.Sprintf("%s failed validation", e.Field)
	}
}

// ValidationErrors represents multiple validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var messages []string
	for _, err := range e {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
}

// Validator provides configuration validation.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new configuration validator.
func NewValidator() (*Validator, error) {
	return &Validator{validate: validator.New()}, nil
}

// ValidateRunConfig validates a full run configuration.
func (v *Validator) ValidateRunConfig(cfg *RunConfig) error {
	if cfg == nil {
		return ValidationErrors{{Field: "config", Message: "config is nil"}}
	}

	if err := v.validateStruct(&cfg.Optimizer); err != nil {
		return err
	}

	if cfg.Optimizer.EliteCount >= cfg.Optimizer.PopulationSize {
		return ValidationErrors{{
			Field:   "optimizer.elite_count",
			Message: "elite_count must be smaller than population_size",
		}}
	}

	if cfg.Constraints != nil {
		if err := cfg.Constraints.Validate(); err != nil {
			return ValidationErrors{{Field: "constraints", Message: err.Error()}}
		}
	}
	if cfg.Weights != nil {
		if err := v.validateStruct(cfg.Weights); err != nil {
			return err
		}
	}
	return nil
}

// ValidateOptimizerConfig validates just the optimizer section.
func (v *Validator) ValidateOptimizerConfig(cfg *OptimizerConfig) error {
	if cfg == nil {
		return ValidationErrors{{Field: "optimizer", Message: "config is nil"}}
	}
	if err := v.validateStruct(cfg); err != nil {
		return err
	}
	if cfg.EliteCount >= cfg.PopulationSize {
		return ValidationErrors{{
			Field:   "elite_count",
			Message: "elite_count must be smaller than population_size",
		}}
	}
	return nil
}

func (v *Validator) validateStruct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return ValidationErrors{{Field: "config", Message: err.Error()}}
	}

	var errs ValidationErrors
	for _, fe := range fieldErrors {
		errs = append(errs, ValidationError{
			Field: fe.Namespace(),
			Tag:   fe.Tag(),
			Value: fe.Value(),
		})
	}
	return errs
}
