package validation

import (
	"strings"
	"testing"

	"github.com/fredhopp/flip-flop-prompter/internal/models"
)

func validState() *models.PromptState {
	state := models.NewPromptState()
	state.FieldValues[models.FieldEnvironment] = "dense redwood forest"
	state.FieldValues[models.FieldSubjects] = "a woman in a red coat"
	state.FieldValues[models.FieldPoseAction] = "walking slowly along the trail"
	return state
}

func TestValidStatePasses(t *testing.T) {
	result := ValidatePromptState(validState())
	if !result.Valid {
		t.Fatalf("expected valid state, got errors: %v", result.Errors)
	}
	if len(result.Errors) != 0 {
		t.Errorf("expected no errors, got %v", result.Errors)
	}
}

func TestMissingRequiredFields(t *testing.T) {
	result := ValidatePromptState(models.NewPromptState())
	if result.Valid {
		t.Fatal("empty state should not validate")
	}
	if len(result.Errors) != 3 {
		t.Fatalf("expected 3 required-field errors, got %v", result.Errors)
	}
	fields := make(map[string]bool)
	for _, err := range result.Errors {
		fields[err.Field] = true
		if err.Code != "REQUIRED_FIELD_MISSING" {
			t.Errorf("unexpected error code %q", err.Code)
		}
	}
	for _, field := range []string{models.FieldEnvironment, models.FieldSubjects, models.FieldPoseAction} {
		if !fields[field] {
			t.Errorf("expected required-field error for %s", field)
		}
	}
}

func TestTagsSatisfyRequiredFields(t *testing.T) {
	state := validState()
	state.FieldValues[models.FieldEnvironment] = ""
	state.FieldTags[models.FieldEnvironment] = state.FieldTags[models.FieldEnvironment].Add(models.Tag{
		Text: "[random Location]",
		Kind: models.TagCategory,
		Path: []string{"Location"},
	})

	result := ValidatePromptState(state)
	if !result.Valid {
		t.Fatalf("tagged field should satisfy requirement, got errors: %v", result.Errors)
	}
}

func TestLengthWarningsDoNotBlock(t *testing.T) {
	state := validState()
	state.FieldValues[models.FieldWeather] = "fo"
	state.FieldValues[models.FieldGrading] = strings.Repeat("moody teal and orange ", 20)

	result := ValidatePromptState(state)
	if !result.Valid {
		t.Fatalf("length issues should be warnings, got errors: %v", result.Errors)
	}
	if len(result.Warnings) < 2 {
		t.Errorf("expected length warnings for weather and grading, got %v", result.Warnings)
	}
}

func TestContentHints(t *testing.T) {
	state := validState()
	state.FieldValues[models.FieldSubjects] = "an empty chair by the window"
	state.FieldValues[models.FieldCamera] = "handheld and shaky style"
	state.FieldValues[models.FieldDateTime] = "sometime"

	result := ValidatePromptState(state)
	if !result.Valid {
		t.Fatalf("hints should be warnings, got errors: %v", result.Errors)
	}

	var hints []string
	for _, w := range result.Warnings {
		hints = append(hints, w.Message)
	}
	joined := strings.Join(hints, "; ")
	for _, want := range []string{"people or characters", "technical specifications", "time reference"} {
		if !strings.Contains(joined, want) {
			t.Errorf("expected hint containing %q, got %v", want, hints)
		}
	}
}

func TestHintAccepts(t *testing.T) {
	state := validState()
	state.FieldValues[models.FieldCamera] = "ARRI Alexa, 35mm lens"
	state.FieldValues[models.FieldDateTime] = "golden hour before sunset"

	result := ValidatePromptState(state)
	for _, w := range result.Warnings {
		if w.Field == models.FieldCamera || w.Field == models.FieldDateTime {
			t.Errorf("unexpected warning for %s: %s", w.Field, w.Message)
		}
	}
}

func TestValidateTargetModel(t *testing.T) {
	supported := []string{"flux", "hailuo", "seedream", "veo", "wan"}

	if result := ValidateTargetModel("VEO", supported); !result.Valid {
		t.Errorf("model matching should be case-insensitive: %v", result.Errors)
	}
	if result := ValidateTargetModel("", supported); result.Valid {
		t.Error("empty model name should fail")
	}
	if result := ValidateTargetModel("dalle", supported); result.Valid {
		t.Error("unsupported model should fail")
	}
}

func TestValidateBatch(t *testing.T) {
	if result := ValidateBatch(1, 0); !result.Valid {
		t.Errorf("minimal batch should pass: %v", result.Errors)
	}
	if result := ValidateBatch(0, 42); result.Valid {
		t.Error("batch size 0 should fail")
	}
	if result := ValidateBatch(101, 42); result.Valid {
		t.Error("batch size above 100 should fail")
	}
	if result := ValidateBatch(5, -1); result.Valid {
		t.Error("negative seed should fail")
	}
	if result := ValidateBatch(5, models.MaxSeed+1); result.Valid {
		t.Error("seed above max should fail")
	}
}

func TestSanitizeText(t *testing.T) {
	got := SanitizeText("  a   foggy\n\tmorning  ", 0)
	if got != "a foggy morning" {
		t.Errorf("expected collapsed whitespace, got %q", got)
	}

	long := SanitizeText(strings.Repeat("x", 50), 10)
	if long != strings.Repeat("x", 10)+"..." {
		t.Errorf("expected truncated text, got %q", long)
	}

	if SanitizeText("", 100) != "" {
		t.Error("empty input should stay empty")
	}
}

func TestToAppError(t *testing.T) {
	result := ValidatePromptState(models.NewPromptState())
	appErr := result.ToAppError()
	if appErr == nil {
		t.Fatal("invalid result should convert to an error")
	}
	if appErr.Details == "" {
		t.Error("expected per-field details")
	}

	if ValidatePromptState(validState()).ToAppError() != nil {
		t.Error("valid result should convert to nil")
	}
}
