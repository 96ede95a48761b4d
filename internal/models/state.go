package models

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Field names, in canonical display order. Every PromptState carries a value
// and a tag list for each of these.
const (
	FieldEnvironment   = "environment"
	FieldWeather       = "weather"
	FieldDateTime      = "date_time"
	FieldSubjects      = "subjects"
	FieldPoseAction    = "pose_action"
	FieldCamera        = "camera"
	FieldFramingAction = "framing_action"
	FieldGrading       = "grading"
)

// FieldNames returns the canonical field order used for realization and
// display.
func FieldNames() []string {
	return []string{
		FieldEnvironment,
		FieldWeather,
		FieldDateTime,
		FieldSubjects,
		FieldPoseAction,
		FieldCamera,
		FieldFramingAction,
		FieldGrading,
	}
}

// FieldLabels maps field names to human-readable labels.
var FieldLabels = map[string]string{
	FieldEnvironment:   "Environment",
	FieldWeather:       "Weather",
	FieldDateTime:      "Date & Time",
	FieldSubjects:      "Subjects",
	FieldPoseAction:    "Pose & Action",
	FieldCamera:        "Camera",
	FieldFramingAction: "Framing & Action",
	FieldGrading:       "Color Grading & Mood",
}

// PromptState is a snapshot of all prompt fields plus generation metadata.
// Once committed to history it is immutable by convention; anything that
// needs to diverge from a stored state works on a Clone.
type PromptState struct {
	ID string `yaml:"id" json:"id"`

	FieldValues map[string]string  `yaml:"field_values" json:"field_values"`
	FieldTags   map[string]TagList `yaml:"field_tags" json:"field_tags"`

	Seed    int64    `yaml:"seed" json:"seed"`
	Filters []string `yaml:"filters" json:"filters"`

	RefinerModel string `yaml:"refiner_model,omitempty" json:"refiner_model,omitempty"`
	TargetModel  string `yaml:"target_model" json:"target_model"`

	// Instructions is free-form guidance forwarded to the refiner verbatim.
	Instructions string `yaml:"instructions,omitempty" json:"instructions,omitempty"`

	// Generated holds the refiner output; empty until a generation lands.
	Generated string `yaml:"-" json:"generated,omitempty"`

	CreatedAt time.Time `yaml:"created_at" json:"created_at"`
	UpdatedAt time.Time `yaml:"updated_at" json:"updated_at"`
}

// NewPromptState creates an empty state with all known fields present.
func NewPromptState() *PromptState {
	now := time.Now()
	s := &PromptState{
		ID:          uuid.NewString(),
		FieldValues: make(map[string]string, len(FieldNames())),
		FieldTags:   make(map[string]TagList, len(FieldNames())),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, name := range FieldNames() {
		s.FieldValues[name] = ""
		s.FieldTags[name] = nil
	}
	return s
}

// Clone returns a deep copy with the same ID and timestamps.
func (s *PromptState) Clone() *PromptState {
	c := *s
	c.FieldValues = make(map[string]string, len(s.FieldValues))
	for k, v := range s.FieldValues {
		c.FieldValues[k] = v
	}
	c.FieldTags = make(map[string]TagList, len(s.FieldTags))
	for k, v := range s.FieldTags {
		c.FieldTags[k] = v.Clone()
	}
	c.Filters = append([]string(nil), s.Filters...)
	return &c
}

// Empty reports whether every field value and tag list is empty.
func (s *PromptState) Empty() bool {
	for _, v := range s.FieldValues {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	for _, tags := range s.FieldTags {
		if len(tags) > 0 {
			return false
		}
	}
	return true
}

// HasFilter reports whether the named filter is active, order-insensitive.
func (s *PromptState) HasFilter(name string) bool {
	for _, f := range s.Filters {
		if f == name {
			return true
		}
	}
	return false
}

// Summary builds a short one-line preview of the state for list display.
func (s *PromptState) Summary() string {
	var parts []string
	for _, name := range FieldNames() {
		if v := strings.TrimSpace(s.FieldValues[name]); v != "" {
			parts = append(parts, v)
		}
	}
	line := strings.Join(parts, " | ")
	const maxLen = 80
	if len(line) > maxLen {
		line = line[:maxLen-3] + "..."
	}
	return line
}

// Implement list.Item for the bubbles list component.

// Title satisfies list.Item; a generated state shows its output head.
func (s *PromptState) Title() string {
	if g := strings.TrimSpace(s.Generated); g != "" {
		if len(g) > 60 {
			return g[:57] + "..."
		}
		return g
	}
	if sum := s.Summary(); sum != "" {
		return sum
	}
	return "(empty)"
}

// Description satisfies list.Item.
func (s *PromptState) Description() string {
	var parts []string
	parts = append(parts, s.CreatedAt.Format("2006-01-02 15:04:05"))
	if s.TargetModel != "" {
		parts = append(parts, "model: "+s.TargetModel)
	}
	parts = append(parts, "seed: "+strconv.FormatInt(s.Seed, 10))
	return strings.Join(parts, " • ")
}

// FilterValue satisfies list.Item.
func (s *PromptState) FilterValue() string {
	return s.Summary() + " " + s.Generated
}
