package llm

import (
	"strings"
	"testing"
)

func TestCleanStripsThinkBlocks(t *testing.T) {
	raw := "<think>\nThe user wants a cinematic prompt.\n</think>\nA lone rider crosses the dunes at dusk."
	got := Clean(raw)
	if got != "A lone rider crosses the dunes at dusk." {
		t.Errorf("Clean() = %q", got)
	}
}

func TestCleanStripsMarkdownEmphasis(t *testing.T) {
	raw := "A **golden** sunset over an *endless* ocean with __dramatic__ clouds."
	got := Clean(raw)
	want := "A golden sunset over an endless ocean with dramatic clouds."
	if got != want {
		t.Errorf("Clean() = %q, want %q", got, want)
	}
}

func TestCleanNormalizesSmartPunctuation(t *testing.T) {
	raw := "The rider’s cloak – weathered leather – catches “golden” light."
	got := Clean(raw)
	if strings.ContainsAny(got, "’–“”") {
		t.Errorf("smart punctuation survived: %q", got)
	}
	if !strings.Contains(got, "rider's cloak") {
		t.Errorf("apostrophe not normalized: %q", got)
	}
}

func TestCleanStripsIntroBoilerplate(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"heres-refined", "Here's a refined prompt: A misty forest at dawn."},
		{"okay-heres", "Okay, here's a refined prompt for VEO:\n\nPrompt: A misty forest at dawn."},
		{"bare-label", "Prompt: A misty forest at dawn."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Clean(tc.raw)
			if !strings.Contains(got, "misty forest at dawn") {
				t.Errorf("Clean(%q) lost the prompt body: %q", tc.raw, got)
			}
			if strings.Contains(got, "refined prompt") || strings.HasPrefix(got, "Prompt:") {
				t.Errorf("intro boilerplate survived: %q", got)
			}
		})
	}
}

func TestCleanCutsTrailingBreakdown(t *testing.T) {
	raw := "A neon-lit alley in the rain, cinematic.\n\nBreakdown:\n- neon for mood\n- rain for texture"
	got := Clean(raw)
	if strings.Contains(got, "Breakdown") || strings.Contains(got, "neon for mood") {
		t.Errorf("trailing breakdown survived: %q", got)
	}
	if !strings.Contains(got, "neon-lit alley") {
		t.Errorf("prompt body lost: %q", got)
	}
}

func TestCleanCutsAfterSeparator(t *testing.T) {
	raw := "A quiet harbor at midnight.\n---\nWhy this works: the contrast between..."
	got := Clean(raw)
	if got != "A quiet harbor at midnight." {
		t.Errorf("Clean() = %q", got)
	}
}

func TestCleanTakesFirstOption(t *testing.T) {
	raw := "Option 1 (Mood first): A storm gathers over the cliffs.\nOption 2 (Action first): Waves crash as lightning splits the sky."
	got := Clean(raw)
	if !strings.Contains(got, "storm gathers over the cliffs") {
		t.Errorf("first option lost: %q", got)
	}
	if strings.Contains(got, "Waves crash") || strings.Contains(got, "Option") {
		t.Errorf("second option or label survived: %q", got)
	}
}

func TestCleanUnwrapsQuotedAnswer(t *testing.T) {
	raw := `"A field of sunflowers under a cobalt sky."`
	got := Clean(raw)
	if got != "A field of sunflowers under a cobalt sky." {
		t.Errorf("Clean() = %q", got)
	}
}

func TestCleanEmptyInput(t *testing.T) {
	if got := Clean("   \n  "); got != "" {
		t.Errorf("Clean(whitespace) = %q, want empty", got)
	}
}
