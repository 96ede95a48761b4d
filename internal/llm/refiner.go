// Package llm integrates local language models for prompt refinement.
//
// A Refiner takes the realized per-field text, an optional custom
// instruction, and a target generation model, and returns a single
// flowing prompt optimized for that model. The only bundled provider
// talks to a local Ollama server.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/fredhopp/flip-flop-prompter/internal/models"
	"github.com/fredhopp/flip-flop-prompter/internal/snippets"
)

// Request carries everything a refinement call needs.
type Request struct {
	// Fields holds realized text keyed by field name.
	Fields map[string]string
	// Instructions is an optional custom system instruction. It may be
	// in "name|content" form and may contain {field_name} placeholders.
	Instructions string
	// Model is the refiner model to run, e.g. "gemma3:4b".
	Model string
	// TargetModel is the generation model the prompt is written for.
	TargetModel string
	// ContentRating gates the tone of the system prompt.
	ContentRating snippets.Rating
}

// Refiner turns structured field text into one polished prompt.
type Refiner interface {
	// Refine performs one refinement call. The context bounds the
	// request; cancellation and deadline expiry surface as errors.
	Refine(ctx context.Context, req Request) (string, error)
	// Available reports whether the provider can serve requests.
	Available(ctx context.Context) bool
	// Models lists the model names the provider can run.
	Models(ctx context.Context) ([]string, error)
}

// systemPrompt builds the system message for a refinement call. Custom
// instructions replace the built-in model guide entirely; the content
// rating note is appended either way.
func systemPrompt(req Request) string {
	instructions := strings.TrimSpace(req.Instructions)
	if instructions != "" {
		content := instructions
		// Instruction tags are stored as "name|content".
		if idx := strings.Index(content, "|"); idx >= 0 {
			content = content[idx+1:]
		}
		content = substituteFields(content, req.Fields)
		return content + ratingNote(req.ContentRating)
	}
	return modelGuide(req.TargetModel, req.ContentRating)
}

// substituteFields replaces {field_name} placeholders with field text.
func substituteFields(instruction string, fields map[string]string) string {
	pairs := make([]string, 0, len(models.FieldNames())*2)
	for _, name := range models.FieldNames() {
		pairs = append(pairs, "{"+name+"}", fields[name])
	}
	return strings.NewReplacer(pairs...).Replace(instruction)
}

func ratingNote(rating snippets.Rating) string {
	switch rating {
	case snippets.RatingNSFW:
		return "\n\nCONTENT RATING: NSFW - This prompt may contain adult content, nudity, or mature themes."
	case snippets.RatingHentai:
		return "\n\nCONTENT RATING: HENTAI - This prompt is for explicit adult content and hentai-style art."
	default:
		return "\n\nCONTENT RATING: PG - Keep content family-friendly and appropriate for all audiences."
	}
}

func ratingInstructions(rating snippets.Rating) string {
	switch rating {
	case snippets.RatingNSFW:
		return `CONTENT RATING: NSFW
- This prompt may contain adult content, nudity, or mature themes
- Use appropriate language and descriptions for adult content
- Maintain artistic and professional quality`
	case snippets.RatingHentai:
		return `CONTENT RATING: HENTAI
- This prompt is for explicit adult content and hentai-style art
- Use explicit language and detailed descriptions for adult content
- Focus on artistic quality and detailed anatomy`
	default:
		return `CONTENT RATING: PG
- Keep content family-friendly and appropriate for all audiences
- Avoid explicit language or adult content
- Focus on artistic and cinematic quality`
	}
}

const answerOnly = "IMPORTANT: Respond with ONLY the refined prompt. Do not include any introductory text, explanations, or meta-commentary. Start directly with the prompt content."

// modelGuide returns the built-in system prompt for a target model.
func modelGuide(targetModel string, rating snippets.Rating) string {
	content := ratingInstructions(rating)

	switch strings.ToLower(targetModel) {
	case "seedream":
		return fmt.Sprintf(`You are an expert prompt engineer specializing in Seedream 3.0 text-to-video generation.

%s

SEEDREAM 3.0 GUIDELINES:
- Use detailed, cinematic descriptions
- Include specific camera movements and angles
- Emphasize lighting and atmospheric details
- Focus on character actions and interactions
- Use technical film terminology
- Keep prompts concise but descriptive
- Include quality modifiers like "high quality", "cinematic", "professional lighting"

%s

FORMAT: Natural, flowing description with technical details integrated naturally.`, content, answerOnly)
	case "veo":
		return fmt.Sprintf(`You are an expert prompt engineer specializing in Google Veo text-to-video generation.

%s

VEO GUIDELINES:
- Use natural, conversational language
- Focus on scene composition and storytelling
- Include emotional context and atmosphere
- Be specific about character details and actions
- Use descriptive but accessible language
- Emphasize visual quality and realism

%s

FORMAT: Flowing narrative style with natural transitions.`, content, answerOnly)
	case "flux":
		return fmt.Sprintf(`You are an expert prompt engineer specializing in Stability AI Flux text-to-video generation.

%s

FLUX GUIDELINES:
- Emphasize artistic and creative elements
- Use stylized and expressive language
- Focus on visual aesthetics and mood
- Include artistic direction and style references
- Be creative with descriptions and metaphors
- Emphasize unique visual qualities

%s

FORMAT: Artistic, expressive descriptions with creative flair.`, content, answerOnly)
	case "wan":
		return fmt.Sprintf(`You are an expert prompt engineer specializing in Wan text-to-video generation.

%s

WAN GUIDELINES:
- Focus on realistic and natural scenes
- Emphasize human interactions and emotions
- Use detailed, precise descriptions
- Include environmental and atmospheric details
- Focus on authenticity and believability
- Use clear, straightforward language

%s

FORMAT: Realistic, detailed descriptions with natural flow.`, content, answerOnly)
	case "hailuo":
		return fmt.Sprintf(`You are an expert prompt engineer specializing in Hailuo text-to-video generation.

%s

HAILUO GUIDELINES:
- Use comprehensive, detailed descriptions
- Include multiple visual elements and layers
- Emphasize technical precision and quality
- Focus on versatility and adaptability
- Use structured but natural language
- Include quality and style specifications

%s

FORMAT: Comprehensive, detailed descriptions with technical precision.`, content, answerOnly)
	default:
		return fmt.Sprintf(`You are an expert prompt engineer for AI text-to-video generation.

%s

%s

Create natural, cohesive prompts that flow well and are optimized for the target model.`, content, answerOnly)
	}
}

// userPrompt assembles the raw field text into the user message.
func userPrompt(fields map[string]string, targetModel string) string {
	var parts []string

	var scene []string
	if v := fields[models.FieldEnvironment]; v != "" {
		scene = append(scene, "Environment: "+v)
	}
	if v := fields[models.FieldWeather]; v != "" {
		scene = append(scene, "Weather: "+v)
	}
	if v := fields[models.FieldDateTime]; v != "" {
		scene = append(scene, "Time: "+v)
	}
	if len(scene) > 0 {
		parts = append(parts, "Scene: "+strings.Join(scene, ", "))
	}

	if v := fields[models.FieldSubjects]; v != "" {
		parts = append(parts, "Subjects: "+v)
	}
	if v := fields[models.FieldPoseAction]; v != "" {
		parts = append(parts, "Action: "+v)
	}
	if v := fields[models.FieldCamera]; v != "" {
		parts = append(parts, "Camera: "+v)
	}
	if v := fields[models.FieldFramingAction]; v != "" {
		parts = append(parts, "Camera Movement: "+v)
	}
	if v := fields[models.FieldGrading]; v != "" {
		parts = append(parts, "Style: "+v)
	}

	raw := strings.Join(parts, "\n")
	target := strings.ToUpper(targetModel)

	return fmt.Sprintf(`Please refine this raw prompt data into a cohesive, natural prompt optimized for %s:

RAW PROMPT DATA:
%s

Create a single, flowing prompt that incorporates all the elements naturally and is optimized for %s.
Make it sound natural and professional, not like a list of components.`, target, raw, target)
}
