package models

import (
	"strings"
	"testing"
)

func TestNewPromptStateHasAllFields(t *testing.T) {
	s := NewPromptState()
	if s.ID == "" {
		t.Error("state should get an ID")
	}
	for _, name := range FieldNames() {
		if _, ok := s.FieldValues[name]; !ok {
			t.Errorf("FieldValues missing %q", name)
		}
		if _, ok := s.FieldTags[name]; !ok {
			t.Errorf("FieldTags missing %q", name)
		}
	}
	if !s.Empty() {
		t.Error("fresh state should be empty")
	}
}

func TestCloneRoundTrip(t *testing.T) {
	s := NewPromptState()
	s.FieldValues[FieldSubjects] = "two dancers"
	s.FieldTags[FieldEnvironment] = TagList{
		NewCategoryTag("Location"),
		NewLiteralTag("under neon light"),
	}
	s.Seed = 1234
	s.Filters = []string{"PG", "NSFW"}
	s.TargetModel = "veo"
	s.Generated = "refined text"

	c := s.Clone()

	if c.FieldValues[FieldSubjects] != "two dancers" {
		t.Error("field values not carried over")
	}
	if len(c.FieldTags[FieldEnvironment]) != 2 {
		t.Error("field tags not carried over")
	}
	if c.Seed != 1234 || c.TargetModel != "veo" || c.Generated != "refined text" {
		t.Error("scalar fields not carried over")
	}

	// Deep copy: mutations must not leak back.
	c.FieldValues[FieldSubjects] = "changed"
	c.FieldTags[FieldEnvironment][0].Text = "changed"
	c.Filters[0] = "changed"

	if s.FieldValues[FieldSubjects] != "two dancers" {
		t.Error("clone shares FieldValues with the original")
	}
	if s.FieldTags[FieldEnvironment][0].Text != "Location" {
		t.Error("clone shares FieldTags with the original")
	}
	if s.Filters[0] != "PG" {
		t.Error("clone shares Filters with the original")
	}
}

func TestEmpty(t *testing.T) {
	s := NewPromptState()
	if !s.Empty() {
		t.Fatal("fresh state should be empty")
	}
	s.FieldValues[FieldCamera] = "35mm"
	if s.Empty() {
		t.Error("state with a field value is not empty")
	}

	s2 := NewPromptState()
	s2.FieldTags[FieldCamera] = TagList{NewLiteralTag("35mm")}
	if s2.Empty() {
		t.Error("state with a tag is not empty")
	}
}

func TestHasFilter(t *testing.T) {
	s := NewPromptState()
	s.Filters = []string{"PG", "NSFW"}
	if !s.HasFilter("NSFW") {
		t.Error("HasFilter(NSFW) = false")
	}
	if s.HasFilter("Hentai") {
		t.Error("HasFilter(Hentai) = true")
	}
}

func TestSummaryTruncates(t *testing.T) {
	s := NewPromptState()
	s.FieldValues[FieldSubjects] = strings.Repeat("x", 200)
	got := s.Summary()
	if len(got) > 80 {
		t.Errorf("summary too long: %d chars", len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated summary should end with ellipsis: %q", got)
	}
}

func TestFieldNamesStableOrder(t *testing.T) {
	names := FieldNames()
	want := []string{
		FieldEnvironment, FieldWeather, FieldDateTime, FieldSubjects,
		FieldPoseAction, FieldCamera, FieldFramingAction, FieldGrading,
	}
	if len(names) != len(want) {
		t.Fatalf("FieldNames() len = %d, want %d", len(names), len(want))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("FieldNames()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}
