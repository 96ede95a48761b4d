// Package adapters formats realized field text for specific generation
// models without going through a language model. It exists as the
// fallback path when no refiner is reachable, so generation still
// produces something usable offline.
package adapters

import (
	"sort"
	"strings"

	"github.com/fredhopp/flip-flop-prompter/internal/models"
)

// Adapter formats per-field text into a prompt for one target model.
type Adapter struct {
	// Name is the target model identifier, e.g. "veo".
	Name string
	// Description is a short human-readable summary.
	Description string
	// Features lists what the target model responds well to.
	Features []string

	format func(fields map[string]string) string
}

// Format assembles the fields into a model-specific prompt string.
func (a *Adapter) Format(fields map[string]string) string {
	return a.format(fields)
}

var registry = map[string]*Adapter{
	"seedream": {
		Name:        "seedream",
		Description: "Seedream 3.0 text-to-video model",
		Features:    []string{"basic_prompt", "camera_specs", "lighting", "style", "cinematic", "professional"},
		format:      formatSeedream,
	},
	"veo": {
		Name:        "veo",
		Description: "Google Veo text-to-video model",
		Features:    []string{"basic_prompt", "camera_specs", "lighting", "style", "natural_language"},
		format:      formatVeo,
	},
	"flux": {
		Name:        "flux",
		Description: "Stability AI Flux text-to-video model",
		Features:    []string{"basic_prompt", "camera_specs", "lighting", "style", "artistic", "creative"},
		format:      formatFlux,
	},
	"wan": {
		Name:        "wan",
		Description: "Wan text-to-video model",
		Features:    []string{"basic_prompt", "camera_specs", "lighting", "style", "realistic", "natural"},
		format:      formatWan,
	},
	"hailuo": {
		Name:        "hailuo",
		Description: "Hailuo text-to-video model",
		Features:    []string{"basic_prompt", "camera_specs", "lighting", "style", "versatile", "detailed"},
		format:      formatHailuo,
	},
}

// ForModel returns the adapter for the given model name. Unknown
// models fall back to the seedream adapter.
func ForModel(name string) *Adapter {
	if a, ok := registry[strings.ToLower(name)]; ok {
		return a
	}
	return registry["seedream"]
}

// SupportedModels lists the known target model names, sorted.
func SupportedModels() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Seedream responds to labeled, comma-joined components with quality
// modifiers appended.
func formatSeedream(f map[string]string) string {
	var parts []string
	appendLabeled(&parts, "Scene", f[models.FieldEnvironment])
	appendLabeled(&parts, "Atmosphere", f[models.FieldWeather])
	appendLabeled(&parts, "Time", f[models.FieldDateTime])
	appendLabeled(&parts, "Characters", f[models.FieldSubjects])
	appendLabeled(&parts, "Action", f[models.FieldPoseAction])
	appendLabeled(&parts, "Technical", f[models.FieldCamera])
	appendLabeled(&parts, "Camera Movement", f[models.FieldFramingAction])
	appendLabeled(&parts, "Visual Style", f[models.FieldGrading])
	parts = append(parts, "High quality, cinematic, professional lighting")
	return strings.Join(parts, ", ")
}

// Veo prefers flowing natural-language sentences.
func formatVeo(f map[string]string) string {
	var parts []string

	var scene []string
	if v := f[models.FieldEnvironment]; v != "" {
		scene = append(scene, v)
	}
	if v := f[models.FieldWeather]; v != "" {
		scene = append(scene, "with "+v)
	}
	if v := f[models.FieldDateTime]; v != "" {
		scene = append(scene, "at "+v)
	}
	if len(scene) > 0 {
		parts = append(parts, strings.Join(scene, " "))
	}

	subjects, action := f[models.FieldSubjects], f[models.FieldPoseAction]
	switch {
	case subjects != "" && action != "":
		parts = append(parts, subjects+" "+action)
	case subjects != "":
		parts = append(parts, subjects)
	case action != "":
		parts = append(parts, action)
	}

	if v := f[models.FieldCamera]; v != "" {
		parts = append(parts, "Shot with "+v)
	}
	if v := f[models.FieldFramingAction]; v != "" {
		parts = append(parts, v)
	}
	if v := f[models.FieldGrading]; v != "" {
		parts = append(parts, v)
	}

	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, ". ") + "."
}

// Flux takes artistic direction phrased as connected clauses.
func formatFlux(f map[string]string) string {
	var parts []string
	if v := f[models.FieldEnvironment]; v != "" {
		parts = append(parts, "Set in "+v)
	}
	if v := f[models.FieldWeather]; v != "" {
		parts = append(parts, "with "+v+" lighting")
	}
	if v := f[models.FieldDateTime]; v != "" {
		parts = append(parts, "during "+v)
	}
	if v := f[models.FieldSubjects]; v != "" {
		parts = append(parts, "featuring "+v)
	}
	if v := f[models.FieldPoseAction]; v != "" {
		parts = append(parts, "where "+v)
	}
	if v := f[models.FieldCamera]; v != "" {
		parts = append(parts, "captured on "+v)
	}
	if v := f[models.FieldFramingAction]; v != "" {
		parts = append(parts, "with "+v)
	}
	if v := f[models.FieldGrading]; v != "" {
		parts = append(parts, "styled with "+v)
	}
	parts = append(parts, "artistic, creative, visually stunning")
	return strings.Join(parts, ", ")
}

// Wan works best with pipe-separated labeled segments.
func formatWan(f map[string]string) string {
	var parts []string
	appendLabeled(&parts, "Location", f[models.FieldEnvironment])
	appendLabeled(&parts, "Conditions", f[models.FieldWeather])
	appendLabeled(&parts, "Time", f[models.FieldDateTime])
	appendLabeled(&parts, "People", f[models.FieldSubjects])
	appendLabeled(&parts, "Activity", f[models.FieldPoseAction])
	appendLabeled(&parts, "Equipment", f[models.FieldCamera])
	appendLabeled(&parts, "Movement", f[models.FieldFramingAction])
	appendLabeled(&parts, "Look", f[models.FieldGrading])
	parts = append(parts, "realistic, natural, high quality")
	return strings.Join(parts, " | ")
}

// Hailuo groups scene, action and technical specs into sections.
func formatHailuo(f map[string]string) string {
	var parts []string

	var scene []string
	if v := f[models.FieldEnvironment]; v != "" {
		scene = append(scene, v)
	}
	if v := f[models.FieldWeather]; v != "" {
		scene = append(scene, v)
	}
	if v := f[models.FieldDateTime]; v != "" {
		scene = append(scene, "at "+v)
	}
	if len(scene) > 0 {
		parts = append(parts, "Scene: "+strings.Join(scene, ", "))
	}

	subjects, action := f[models.FieldSubjects], f[models.FieldPoseAction]
	switch {
	case subjects != "" && action != "":
		parts = append(parts, "Action: "+subjects+" "+action)
	case subjects != "":
		parts = append(parts, "Subjects: "+subjects)
	case action != "":
		parts = append(parts, "Action: "+action)
	}

	var tech []string
	if v := f[models.FieldCamera]; v != "" {
		tech = append(tech, v)
	}
	if v := f[models.FieldFramingAction]; v != "" {
		tech = append(tech, v)
	}
	if len(tech) > 0 {
		parts = append(parts, "Technical: "+strings.Join(tech, ", "))
	}

	if v := f[models.FieldGrading]; v != "" {
		parts = append(parts, "Style: "+v)
	}
	parts = append(parts, "high quality, detailed, professional")
	return strings.Join(parts, " | ")
}

func appendLabeled(parts *[]string, label, value string) {
	if value != "" {
		*parts = append(*parts, label+": "+value)
	}
}
