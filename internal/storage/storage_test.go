package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fredhopp/flip-flop-prompter/internal/models"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	dir, err := os.MkdirTemp("", "storage-test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	s, err := NewStorage(dir)
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	if err := s.InitLibrary(); err != nil {
		t.Fatalf("failed to init library: %v", err)
	}
	return s
}

func sampleState() *models.PromptState {
	st := models.NewPromptState()
	st.FieldValues[models.FieldEnvironment] = "a flooded atrium"
	st.FieldTags[models.FieldEnvironment] = models.TagList{
		models.NewCategoryTag("Location"),
	}
	st.Seed = 4242
	st.Filters = []string{"PG"}
	st.TargetModel = "veo"
	st.Generated = "A flooded atrium glitters under broken skylights."
	return st
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestStorage(t)
	st := sampleState()

	if err := s.SaveState(st); err != nil {
		t.Fatalf("SaveState() error: %v", err)
	}

	loaded, err := s.LoadState(st.ID)
	if err != nil {
		t.Fatalf("LoadState() error: %v", err)
	}

	if loaded.ID != st.ID {
		t.Errorf("ID = %q, want %q", loaded.ID, st.ID)
	}
	if loaded.FieldValues[models.FieldEnvironment] != "a flooded atrium" {
		t.Errorf("field value lost: %v", loaded.FieldValues)
	}
	tags := loaded.FieldTags[models.FieldEnvironment]
	if len(tags) != 1 || !tags[0].Equal(models.NewCategoryTag("Location")) {
		t.Errorf("tags lost: %v", tags)
	}
	if loaded.Seed != 4242 || loaded.TargetModel != "veo" {
		t.Errorf("metadata lost: seed=%d model=%q", loaded.Seed, loaded.TargetModel)
	}
	if loaded.Generated != st.Generated {
		t.Errorf("generated body = %q, want %q", loaded.Generated, st.Generated)
	}
}

func TestStateFileFormat(t *testing.T) {
	s := newTestStorage(t)
	st := sampleState()
	if err := s.SaveState(st); err != nil {
		t.Fatalf("SaveState() error: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(s.GetBaseDir(), "states", st.ID+".md"))
	if err != nil {
		t.Fatalf("failed to read state file: %v", err)
	}
	content := string(raw)

	if !strings.HasPrefix(content, "---\n") {
		t.Error("file should start with a frontmatter delimiter")
	}
	if !strings.Contains(content, "seed: 4242") {
		t.Error("frontmatter should carry the seed")
	}
	if !strings.Contains(content, st.Generated) {
		t.Error("body should carry the generated text")
	}
}

func TestLoadMissingState(t *testing.T) {
	s := newTestStorage(t)
	if _, err := s.LoadState("nonexistent"); err == nil {
		t.Fatal("loading a missing state should fail")
	}
}

func TestDeleteState(t *testing.T) {
	s := newTestStorage(t)
	st := sampleState()
	if err := s.SaveState(st); err != nil {
		t.Fatalf("SaveState() error: %v", err)
	}

	if err := s.DeleteState(st.ID); err != nil {
		t.Fatalf("DeleteState() error: %v", err)
	}
	if _, err := s.LoadState(st.ID); err == nil {
		t.Error("state should be gone after delete")
	}
	if err := s.DeleteState(st.ID); err == nil {
		t.Error("deleting a missing state should fail")
	}
}

func TestListStatesNewestFirst(t *testing.T) {
	s := newTestStorage(t)

	old := sampleState()
	old.CreatedAt = time.Now().Add(-time.Hour)
	if err := s.SaveState(old); err != nil {
		t.Fatalf("SaveState() error: %v", err)
	}

	recent := sampleState()
	recent.CreatedAt = time.Now()
	if err := s.SaveState(recent); err != nil {
		t.Fatalf("SaveState() error: %v", err)
	}

	states, err := s.ListStates()
	if err != nil {
		t.Fatalf("ListStates() error: %v", err)
	}
	if len(states) != 2 {
		t.Fatalf("len = %d, want 2", len(states))
	}
	if states[0].ID != recent.ID {
		t.Errorf("newest state should be first, got %q", states[0].ID)
	}
}

func TestListStatesUsesCache(t *testing.T) {
	s := newTestStorage(t)
	st := sampleState()
	if err := s.SaveState(st); err != nil {
		t.Fatalf("SaveState() error: %v", err)
	}

	// First listing populates the cache, second is served from it.
	if _, err := s.ListStates(); err != nil {
		t.Fatalf("ListStates() error: %v", err)
	}
	states, err := s.ListStates()
	if err != nil {
		t.Fatalf("ListStates() error: %v", err)
	}
	if len(states) != 1 {
		t.Fatalf("len = %d, want 1", len(states))
	}
	if states[0].Generated != st.Generated {
		t.Errorf("cached listing lost generated text: %q", states[0].Generated)
	}

	// Cache file should exist on disk.
	cacheFile := filepath.Join(s.GetBaseDir(), ".flip-flop-prompter", "cache", "metadata.json")
	if _, err := os.Stat(cacheFile); err != nil {
		t.Errorf("metadata cache not written: %v", err)
	}
}

func TestEmptyListStates(t *testing.T) {
	s := newTestStorage(t)
	states, err := s.ListStates()
	if err != nil {
		t.Fatalf("ListStates() error: %v", err)
	}
	if len(states) != 0 {
		t.Errorf("fresh storage should list no states, got %d", len(states))
	}
}
