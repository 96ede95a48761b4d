package ui

import (
	"testing"

	"github.com/fredhopp/flip-flop-prompter/internal/models"
	"github.com/fredhopp/flip-flop-prompter/internal/snippets"
)

func TestFormFocusCycling(t *testing.T) {
	form := NewPromptForm()

	if form.Focused() != 0 {
		t.Fatalf("expected first input focused, got %d", form.Focused())
	}
	if form.FocusedField() != models.FieldEnvironment {
		t.Errorf("expected environment focused, got %q", form.FocusedField())
	}

	for i := 0; i < form.Count(); i++ {
		form.Next()
	}
	if form.Focused() != 0 {
		t.Errorf("expected focus to wrap to 0, got %d", form.Focused())
	}

	form.Prev()
	if form.Focused() != form.Count()-1 {
		t.Errorf("expected focus to wrap to last input, got %d", form.Focused())
	}
}

func TestFormSyncFrom(t *testing.T) {
	form := NewPromptForm()

	state := models.NewPromptState()
	state.FieldValues[models.FieldWeather] = "light drizzle"
	state.Seed = 7777

	form.SyncFrom(state)

	if got := form.FieldValue(models.FieldWeather); got != "light drizzle" {
		t.Errorf("weather = %q, want %q", got, "light drizzle")
	}
	seed, ok, err := form.SeedValue()
	if err != nil || !ok {
		t.Fatalf("SeedValue() = %v, %v, %v", seed, ok, err)
	}
	if seed != 7777 {
		t.Errorf("seed = %d, want 7777", seed)
	}
}

func TestFormBatchDefaults(t *testing.T) {
	form := NewPromptForm()

	batch, err := form.BatchValue()
	if err != nil {
		t.Fatalf("BatchValue() error: %v", err)
	}
	if batch != 1 {
		t.Errorf("batch = %d, want 1", batch)
	}
}

func TestNextSeedMode(t *testing.T) {
	order := []models.SeedMode{
		models.SeedFixed,
		models.SeedIncrement,
		models.SeedDecrement,
		models.SeedRandomize,
	}
	for i, mode := range order {
		want := order[(i+1)%len(order)]
		if got := nextSeedMode(mode); got != want {
			t.Errorf("nextSeedMode(%s) = %s, want %s", mode, got, want)
		}
	}
}

func TestNextInList(t *testing.T) {
	options := []string{"flux", "seedream", "veo"}
	if got := nextInList(options, "seedream"); got != "veo" {
		t.Errorf("got %q, want veo", got)
	}
	if got := nextInList(options, "veo"); got != "flux" {
		t.Errorf("got %q, want flux (wrap)", got)
	}
	if got := nextInList(options, "unknown"); got != "flux" {
		t.Errorf("got %q, want flux (fallback)", got)
	}
}

func TestRatingCycle(t *testing.T) {
	if got := nextRating([]string{"PG"}); got != snippets.RatingNSFW {
		t.Errorf("after PG got %s, want NSFW", got)
	}
	if got := nextRating([]string{"PG", "NSFW"}); got != snippets.RatingHentai {
		t.Errorf("after NSFW got %s, want Hentai", got)
	}
	if got := nextRating([]string{"PG", "NSFW", "Hentai"}); got != snippets.RatingPG {
		t.Errorf("after Hentai got %s, want PG", got)
	}

	names := ratingNames(snippets.RatingNSFW)
	if len(names) != 2 || names[0] != "PG" || names[1] != "NSFW" {
		t.Errorf("ratingNames(NSFW) = %v", names)
	}
}
