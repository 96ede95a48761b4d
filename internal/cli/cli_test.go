package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fredhopp/flip-flop-prompter/internal/models"
	"github.com/fredhopp/flip-flop-prompter/internal/service"
)

func newTestCLI(t *testing.T) *CLI {
	t.Helper()
	dir, err := os.MkdirTemp("", "flipflop-cli-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })
	t.Setenv("FLIPFLOP_PROMPT_DIR", dir)

	cfgData, _ := json.Marshal(map[string]any{
		"refiner_base_url": "http://127.0.0.1:1",
	})
	if err := os.WriteFile(filepath.Join(dir, "config.json"), cfgData, 0644); err != nil {
		t.Fatalf("failed to seed config: %v", err)
	}

	svc, err := service.NewService()
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}
	t.Cleanup(svc.Close)
	return NewCLI(svc)
}

func TestApplyFlagsSetsFields(t *testing.T) {
	c := newTestCLI(t)

	flags, err := c.applyFlags([]string{
		"-e", "hotel lobby",
		"--subjects", "a man in a gray suit",
		"--seed", "1234",
		"--batch", "4",
		"--seed-mode", "increment",
		"--model", "flux",
	})
	if err != nil {
		t.Fatalf("applyFlags failed: %v", err)
	}

	state := c.service.Current()
	if state.FieldValues[models.FieldEnvironment] != "hotel lobby" {
		t.Errorf("environment not applied: %q", state.FieldValues[models.FieldEnvironment])
	}
	if state.FieldValues[models.FieldSubjects] != "a man in a gray suit" {
		t.Errorf("subjects not applied: %q", state.FieldValues[models.FieldSubjects])
	}
	if state.Seed != 1234 {
		t.Errorf("seed not applied: %d", state.Seed)
	}
	if state.TargetModel != "flux" {
		t.Errorf("target model not applied: %q", state.TargetModel)
	}
	if flags.batchSize != 4 {
		t.Errorf("batch size not parsed: %d", flags.batchSize)
	}
	if flags.seedMode != models.SeedIncrement {
		t.Errorf("seed mode not parsed: %q", flags.seedMode)
	}
}

func TestApplyFlagsRejectsUnknown(t *testing.T) {
	c := newTestCLI(t)
	if _, err := c.applyFlags([]string{"--bogus"}); err == nil {
		t.Error("unknown flag should be rejected")
	}
	if _, err := c.applyFlags([]string{"--seed"}); err == nil {
		t.Error("flag without value should be rejected")
	}
	if _, err := c.applyFlags([]string{"--seed", "abc"}); err == nil {
		t.Error("non-numeric seed should be rejected")
	}
}

func TestAddTagSpec(t *testing.T) {
	c := newTestCLI(t)

	if err := c.addTagSpec("environment=Location"); err != nil {
		t.Fatalf("category tag spec failed: %v", err)
	}
	if err := c.addTagSpec("subjects=Human/Profession"); err != nil {
		t.Fatalf("subcategory tag spec failed: %v", err)
	}

	state := c.service.Current()
	if len(state.FieldTags[models.FieldEnvironment]) != 1 {
		t.Error("category tag not attached")
	}
	tags := state.FieldTags[models.FieldSubjects]
	if len(tags) != 1 || tags[0].Kind != models.TagSubcategory {
		t.Errorf("subcategory tag not attached: %v", tags)
	}

	if err := c.addTagSpec("no-equals-sign"); err == nil {
		t.Error("malformed spec should be rejected")
	}
	if err := c.addTagSpec("environment=a/b/c"); err == nil {
		t.Error("overly deep spec should be rejected")
	}
}

func TestRatingChain(t *testing.T) {
	if chain := ratingChain("PG"); len(chain) != 1 {
		t.Errorf("PG should expand to itself, got %v", chain)
	}
	chain := ratingChain("Hentai")
	if len(chain) != 3 {
		t.Errorf("Hentai should include all lower ratings, got %v", chain)
	}
}

func TestExecuteUnknownCommand(t *testing.T) {
	c := newTestCLI(t)
	if err := c.ExecuteCommand([]string{"frobnicate"}); err == nil {
		t.Error("unknown command should fail")
	}
}
