package llm

import (
	"strings"
	"testing"

	"github.com/fredhopp/flip-flop-prompter/internal/models"
	"github.com/fredhopp/flip-flop-prompter/internal/snippets"
)

func TestSystemPromptDefaultGuide(t *testing.T) {
	req := Request{TargetModel: "veo", ContentRating: snippets.RatingPG}
	got := systemPrompt(req)

	if !strings.Contains(got, "Google Veo") {
		t.Errorf("expected Veo guide, got %q", got[:60])
	}
	if !strings.Contains(got, "CONTENT RATING: PG") {
		t.Errorf("missing PG rating instructions")
	}
	if !strings.Contains(got, "ONLY the refined prompt") {
		t.Errorf("missing answer-only directive")
	}
}

func TestSystemPromptUnknownModelFallsBack(t *testing.T) {
	req := Request{TargetModel: "somefuturemodel", ContentRating: snippets.RatingNSFW}
	got := systemPrompt(req)

	if !strings.Contains(got, "expert prompt engineer for AI text-to-video generation") {
		t.Errorf("expected generic guide, got %q", got[:80])
	}
	if !strings.Contains(got, "CONTENT RATING: NSFW") {
		t.Errorf("missing NSFW rating instructions")
	}
}

func TestSystemPromptCustomInstructions(t *testing.T) {
	req := Request{
		Fields: map[string]string{
			models.FieldSubjects: "a red fox",
		},
		Instructions:  "Noir Style|Rewrite {subjects} as a noir scene.",
		TargetModel:   "flux",
		ContentRating: snippets.RatingPG,
	}
	got := systemPrompt(req)

	if !strings.Contains(got, "Rewrite a red fox as a noir scene.") {
		t.Errorf("placeholder substitution failed: %q", got)
	}
	if strings.Contains(got, "Noir Style|") {
		t.Errorf("instruction name survived the tag split: %q", got)
	}
	if strings.Contains(got, "FLUX GUIDELINES") {
		t.Errorf("custom instructions must replace the built-in guide")
	}
	if !strings.Contains(got, "CONTENT RATING: PG") {
		t.Errorf("rating note missing from custom instructions")
	}
}

func TestUserPromptAssembly(t *testing.T) {
	fields := map[string]string{
		models.FieldEnvironment:   "abandoned lighthouse",
		models.FieldWeather:       "thick fog",
		models.FieldSubjects:      "an old keeper",
		models.FieldPoseAction:    "climbing the spiral stairs",
		models.FieldCamera:        "35mm, low angle",
		models.FieldFramingAction: "slow dolly in",
		models.FieldGrading:       "desaturated teal",
	}
	got := userPrompt(fields, "wan")

	for _, want := range []string{
		"Environment: abandoned lighthouse",
		"Weather: thick fog",
		"Subjects: an old keeper",
		"Action: climbing the spiral stairs",
		"Camera: 35mm, low angle",
		"Camera Movement: slow dolly in",
		"Style: desaturated teal",
		"optimized for WAN",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("user prompt missing %q", want)
		}
	}
}

func TestUserPromptSkipsEmptyFields(t *testing.T) {
	got := userPrompt(map[string]string{models.FieldSubjects: "a cat"}, "veo")

	if strings.Contains(got, "Environment:") || strings.Contains(got, "Scene:") {
		t.Errorf("empty scene fields should be omitted: %q", got)
	}
	if !strings.Contains(got, "Subjects: a cat") {
		t.Errorf("subjects missing: %q", got)
	}
}
