// Package validation provides validation rules for strategy form data and
// request parameters. Violations are advisory and reported at the API
// boundary; the codec itself stays total and never rejects input.
package validation

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/wj-stack/NetFlow/internal/catalog"
	"github.com/wj-stack/NetFlow/internal/strategy"
)

const (
	// MaxDescriptionLength is the maximum length for strategy descriptions
	MaxDescriptionLength = 500
	// MaxConditions is the maximum number of match conditions per strategy
	MaxConditions = 32
)

// ValidationResult holds the result of validation
type ValidationResult struct {
	Valid  bool
	Errors map[string]string
}

// NewValidationResult creates a new validation result
func NewValidationResult() *ValidationResult {
	return &ValidationResult{
		Valid:  true,
		Errors: make(map[string]string),
	}
}

// AddError adds a field error and marks the result as invalid
func (v *ValidationResult) AddError(field, message string) {
	v.Valid = false
	v.Errors[field] = message
}

// Merge combines another validation result into this one
func (v *ValidationResult) Merge(other *ValidationResult) {
	if other == nil {
		return
	}
	for field, message := range other.Errors {
		v.AddError(field, message)
	}
}

// ValidateForm validates a strategy form before it is encoded and saved.
func ValidateForm(form strategy.FormState) *ValidationResult {
	result := NewValidationResult()

	result.Merge(ValidateDescription(form.Desc))
	result.Merge(ValidateStrategyType(form.StrategyType))
	result.Merge(ValidateDuration(form.Duration))
	result.Merge(ValidateConditions(form.Conditions))

	return result
}

// ValidateDescription checks the required description field.
func ValidateDescription(desc string) *ValidationResult {
	result := NewValidationResult()

	if strings.TrimSpace(desc) == "" {
		result.AddError("desc", "Description is required")
		return result
	}
	if utf8.RuneCountInString(desc) > MaxDescriptionLength {
		result.AddError("desc", "Description must not exceed 500 characters")
	}
	return result
}

// ValidateStrategyType checks the strategy kind against the catalog.
func ValidateStrategyType(strategyType string) *ValidationResult {
	result := NewValidationResult()

	if strategyType == "" {
		result.AddError("strategyType", "Strategy type is required")
		return result
	}
	if !catalog.KnownStrategyKind(strategyType) {
		result.AddError("strategyType", fmt.Sprintf("Unknown strategy type %q", strategyType))
	}
	return result
}

// ValidateDuration checks that a non-empty duration is numeric. An empty
// duration is valid and means "no expiry".
func ValidateDuration(duration string) *ValidationResult {
	result := NewValidationResult()

	trimmed := strings.TrimSpace(duration)
	if trimmed == "" {
		return result
	}
	if _, err := strconv.ParseFloat(trimmed, 64); err != nil {
		result.AddError("duration", "Duration must be a number of seconds")
	}
	return result
}

// ValidateConditions checks every condition's operator against the
// catalog's legal set for its field.
func ValidateConditions(conditions []strategy.Condition) *ValidationResult {
	result := NewValidationResult()

	if len(conditions) > MaxConditions {
		result.AddError("conditions", fmt.Sprintf("At most %d conditions are allowed", MaxConditions))
		return result
	}

	for i, c := range conditions {
		field := fmt.Sprintf("conditions[%d]", i)
		if c.Field == "" {
			result.AddError(field, "Condition field is required")
			continue
		}
		if !operatorLegal(c.Field, catalog.Operator(c.Operator)) {
			result.AddError(field, fmt.Sprintf("Operator %q is not legal for field %q", c.Operator, c.Field))
		}
	}
	return result
}

func operatorLegal(field string, op catalog.Operator) bool {
	for _, legal := range catalog.Operators(field) {
		if legal == op {
			return true
		}
	}
	return false
}
