// Package validation checks prompt data before generation.
//
// Required fields produce errors that block generation. Length and
// content hints produce warnings that are surfaced but do not block.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/fredhopp/flip-flop-prompter/internal/errors"
	"github.com/fredhopp/flip-flop-prompter/internal/models"
)

// FieldRule defines validation rules for a single prompt field.
type FieldRule struct {
	Label     string
	Required  bool
	MinLength int
	MaxLength int
	Hint      func(value string) string
}

// ValidationResult represents the outcome of validating a prompt state.
type ValidationResult struct {
	Valid    bool                `json:"valid"`
	Errors   []ValidationError   `json:"errors,omitempty"`
	Warnings []ValidationWarning `json:"warnings,omitempty"`
}

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationWarning represents a field validation warning.
type ValidationWarning struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var subjectWords = []string{"man", "woman", "person", "people", "child", "boy", "girl", "creature", "character", "animal"}

var cameraTerms = []string{"lens", "mm", "arri", "alexa", "red", "canon", "sony", "shot", "camera"}

var timePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d+am`),
	regexp.MustCompile(`\d+pm`),
	regexp.MustCompile(`\d+:\d+`),
	regexp.MustCompile(`morning|afternoon|evening|night|dawn|dusk|sunrise|sunset|noon|midnight`),
}

// fieldRules maps field names to their validation rules.
var fieldRules = map[string]FieldRule{
	models.FieldEnvironment: {
		Label:     "Environment",
		Required:  true,
		MinLength: 3,
		MaxLength: 200,
	},
	models.FieldWeather: {
		Label:     "Weather",
		MinLength: 3,
		MaxLength: 100,
	},
	models.FieldDateTime: {
		Label:     "Time of day",
		MinLength: 2,
		MaxLength: 50,
		Hint: func(value string) string {
			lower := strings.ToLower(value)
			for _, pattern := range timePatterns {
				if pattern.MatchString(lower) {
					return ""
				}
			}
			return "Time of day should include a time reference"
		},
	},
	models.FieldSubjects: {
		Label:     "Subjects",
		Required:  true,
		MinLength: 5,
		MaxLength: 300,
		Hint: func(value string) string {
			lower := strings.ToLower(value)
			for _, word := range subjectWords {
				if strings.Contains(lower, word) {
					return ""
				}
			}
			return "Subject description should include people or characters"
		},
	},
	models.FieldPoseAction: {
		Label:     "Subject pose and action",
		Required:  true,
		MinLength: 10,
		MaxLength: 500,
	},
	models.FieldCamera: {
		Label:     "Camera",
		MinLength: 5,
		MaxLength: 200,
		Hint: func(value string) string {
			lower := strings.ToLower(value)
			for _, term := range cameraTerms {
				if strings.Contains(lower, term) {
					return ""
				}
			}
			return "Camera description should include technical specifications"
		},
	},
	models.FieldFramingAction: {
		Label:     "Camera framing and action",
		MinLength: 5,
		MaxLength: 300,
	},
	models.FieldGrading: {
		Label:     "Grading",
		MinLength: 5,
		MaxLength: 200,
	},
}

// ValidatePromptState checks every field of a prompt state. Tags count
// toward required-field presence since they realize into text.
func ValidatePromptState(state *models.PromptState) *ValidationResult {
	result := &ValidationResult{Valid: true}

	for _, field := range models.FieldNames() {
		rule, ok := fieldRules[field]
		if !ok {
			continue
		}
		value := strings.TrimSpace(state.FieldValues[field])
		hasTags := len(state.FieldTags[field]) > 0

		if rule.Required && value == "" && !hasTags {
			result.Valid = false
			result.Errors = append(result.Errors, ValidationError{
				Field:   field,
				Code:    "REQUIRED_FIELD_MISSING",
				Message: fmt.Sprintf("%s is required", rule.Label),
			})
			continue
		}
		if value == "" {
			continue
		}

		if rule.MinLength > 0 && len(value) < rule.MinLength {
			result.Warnings = append(result.Warnings, ValidationWarning{
				Field:   field,
				Message: fmt.Sprintf("%s should be at least %d characters", rule.Label, rule.MinLength),
			})
		}
		if rule.MaxLength > 0 && len(value) > rule.MaxLength {
			result.Warnings = append(result.Warnings, ValidationWarning{
				Field:   field,
				Message: fmt.Sprintf("%s should be less than %d characters", rule.Label, rule.MaxLength),
			})
		}
		if rule.Hint != nil {
			if msg := rule.Hint(value); msg != "" {
				result.Warnings = append(result.Warnings, ValidationWarning{
					Field:   field,
					Message: msg,
				})
			}
		}
	}

	return result
}

// ValidateTargetModel checks that the target model is supported.
func ValidateTargetModel(name string, supported []string) *ValidationResult {
	result := &ValidationResult{Valid: true}
	if name == "" {
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{
			Field:   "target_model",
			Code:    "REQUIRED_FIELD_MISSING",
			Message: "Model name is required",
		})
		return result
	}
	lower := strings.ToLower(name)
	for _, model := range supported {
		if lower == model {
			return result
		}
	}
	result.Valid = false
	result.Errors = append(result.Errors, ValidationError{
		Field:   "target_model",
		Code:    "INVALID_OPTION",
		Message: fmt.Sprintf("Invalid model name. Must be one of: %s", strings.Join(supported, ", ")),
	})
	return result
}

// ValidateBatch checks batch generation parameters.
func ValidateBatch(batchSize int, seed int64) *ValidationResult {
	result := &ValidationResult{Valid: true}
	if batchSize < 1 {
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{
			Field:   "batch_size",
			Code:    "INVALID_VALUE",
			Message: "Batch size must be at least 1",
		})
	}
	if batchSize > 100 {
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{
			Field:   "batch_size",
			Code:    "INVALID_VALUE",
			Message: "Batch size must be at most 100",
		})
	}
	if seed < 0 {
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{
			Field:   "seed",
			Code:    "INVALID_SEED",
			Message: "Seed must not be negative",
		})
	}
	if seed > models.MaxSeed {
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{
			Field:   "seed",
			Code:    "INVALID_SEED",
			Message: fmt.Sprintf("Seed must be at most %d", models.MaxSeed),
		})
	}
	return result
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// SanitizeText collapses whitespace and truncates overly long input.
func SanitizeText(text string, maxLength int) string {
	if text == "" {
		return ""
	}
	text = whitespaceRe.ReplaceAllString(strings.TrimSpace(text), " ")
	if maxLength > 0 && len(text) > maxLength {
		text = text[:maxLength] + "..."
	}
	return text
}

// Merge combines another result into this one.
func (result *ValidationResult) Merge(other *ValidationResult) {
	if other == nil {
		return
	}
	if !other.Valid {
		result.Valid = false
	}
	result.Errors = append(result.Errors, other.Errors...)
	result.Warnings = append(result.Warnings, other.Warnings...)
}

// ToAppError converts validation failures to AppError format.
func (result *ValidationResult) ToAppError() *errors.AppError {
	if result.Valid {
		return nil
	}

	if len(result.Errors) == 0 {
		return errors.ValidationError("Validation failed")
	}

	firstError := result.Errors[0]
	appErr := errors.ValidationError(firstError.Message)

	var details []string
	for _, validationErr := range result.Errors {
		details = append(details, fmt.Sprintf("%s: %s", validationErr.Field, validationErr.Message))
	}
	appErr.WithDetails(strings.Join(details, "; "))
	appErr.WithContext("validation_errors", result.Errors)
	if len(result.Warnings) > 0 {
		appErr.WithContext("validation_warnings", result.Warnings)
	}

	return appErr
}
