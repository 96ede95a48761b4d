package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fredhopp/flip-flop-prompter/internal/models"
)

// Extra inputs that follow the prompt fields in the focus cycle.
const (
	seedInput = iota
	batchInput
	instructionsInput
	extraInputCount
)

// fieldPlaceholders gives each prompt field an example value.
var fieldPlaceholders = map[string]string{
	models.FieldEnvironment:   "interior, hotel lobby",
	models.FieldWeather:       "sunny with a few clouds",
	models.FieldDateTime:      "7am",
	models.FieldSubjects:      "a 20yo man, a woman in her 40s",
	models.FieldPoseAction:    "The man stands looking at the woman",
	models.FieldCamera:        "shot on a 22mm lens on Arri Alexa",
	models.FieldFramingAction: "camera dollies in",
	models.FieldGrading:       "Fuji Xperia film look",
}

// PromptForm manages the field inputs of the editor view. The first
// len(fieldNames) inputs are prompt fields; seed, batch size and
// refiner instructions follow.
type PromptForm struct {
	fieldNames []string
	inputs     []textinput.Model
	focused    int
}

// NewPromptForm creates the editor form with every input blurred
// except the first field.
func NewPromptForm() *PromptForm {
	fieldNames := models.FieldNames()
	inputs := make([]textinput.Model, len(fieldNames)+extraInputCount)

	for i, name := range fieldNames {
		input := textinput.New()
		input.Placeholder = fieldPlaceholders[name]
		input.CharLimit = 500
		input.Width = 60
		inputs[i] = input
	}

	seed := textinput.New()
	seed.Placeholder = "random"
	seed.CharLimit = 6
	seed.Width = 10
	inputs[len(fieldNames)+seedInput] = seed

	batch := textinput.New()
	batch.SetValue("1")
	batch.CharLimit = 3
	batch.Width = 5
	inputs[len(fieldNames)+batchInput] = batch

	instructions := textinput.New()
	instructions.Placeholder = "custom refiner instructions (optional)"
	instructions.CharLimit = 500
	instructions.Width = 60
	inputs[len(fieldNames)+instructionsInput] = instructions

	form := &PromptForm{
		fieldNames: fieldNames,
		inputs:     inputs,
	}
	form.inputs[0].Focus()
	return form
}

// Count returns the number of focusable inputs.
func (f *PromptForm) Count() int {
	return len(f.inputs)
}

// Focused returns the focused input index.
func (f *PromptForm) Focused() int {
	return f.focused
}

// FocusedField returns the prompt field name under focus, or "" when
// a non-field input is focused.
func (f *PromptForm) FocusedField() string {
	if f.focused < len(f.fieldNames) {
		return f.fieldNames[f.focused]
	}
	return ""
}

// Next moves focus forward, wrapping at the end.
func (f *PromptForm) Next() {
	f.setFocus((f.focused + 1) % len(f.inputs))
}

// Prev moves focus backward, wrapping at the start.
func (f *PromptForm) Prev() {
	f.setFocus((f.focused - 1 + len(f.inputs)) % len(f.inputs))
}

func (f *PromptForm) setFocus(i int) {
	f.inputs[f.focused].Blur()
	f.focused = i
	f.inputs[f.focused].Focus()
}

// Update forwards input events to the focused input.
func (f *PromptForm) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focused], cmd = f.inputs[f.focused].Update(msg)
	return cmd
}

// FieldValue returns the text of a prompt field input.
func (f *PromptForm) FieldValue(field string) string {
	for i, name := range f.fieldNames {
		if name == field {
			return f.inputs[i].Value()
		}
	}
	return ""
}

// SeedValue parses the seed input; empty means "keep the current seed".
func (f *PromptForm) SeedValue() (int64, bool, error) {
	raw := strings.TrimSpace(f.inputs[len(f.fieldNames)+seedInput].Value())
	if raw == "" {
		return 0, false, nil
	}
	seed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("invalid seed: %s", raw)
	}
	return seed, true, nil
}

// BatchValue parses the batch size input, defaulting to 1.
func (f *PromptForm) BatchValue() (int, error) {
	raw := strings.TrimSpace(f.inputs[len(f.fieldNames)+batchInput].Value())
	if raw == "" {
		return 1, nil
	}
	size, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid batch size: %s", raw)
	}
	return size, nil
}

// InstructionsValue returns the refiner instructions input.
func (f *PromptForm) InstructionsValue() string {
	return f.inputs[len(f.fieldNames)+instructionsInput].Value()
}

// SyncFrom overwrites every input from a prompt state. Used when the
// history cursor moves or a saved state loads.
func (f *PromptForm) SyncFrom(state *models.PromptState) {
	for i, name := range f.fieldNames {
		f.inputs[i].SetValue(state.FieldValues[name])
	}
	f.inputs[len(f.fieldNames)+seedInput].SetValue(strconv.FormatInt(state.Seed, 10))
	f.inputs[len(f.fieldNames)+instructionsInput].SetValue(state.Instructions)
}

// View renders the form. tagLine supplies the rendered tag chips for a
// field, empty when the field has no tags.
func (f *PromptForm) View(tagLine func(field string) string) string {
	var b strings.Builder

	for i, name := range f.fieldNames {
		label := models.FieldLabels[name]
		if i == f.focused {
			b.WriteString(StyleFocusedLabel.Render(label))
		} else {
			b.WriteString(StyleFormLabel.Render(label))
		}
		b.WriteString("\n")
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n")
		if chips := tagLine(name); chips != "" {
			b.WriteString(chips)
			b.WriteString("\n")
		}
	}

	seedIdx := len(f.fieldNames) + seedInput
	batchIdx := len(f.fieldNames) + batchInput
	instrIdx := len(f.fieldNames) + instructionsInput

	seedLabel := "Seed"
	if f.focused == seedIdx {
		b.WriteString(StyleFocusedLabel.Render(seedLabel))
	} else {
		b.WriteString(StyleFormLabel.Render(seedLabel))
	}
	b.WriteString("  ")
	b.WriteString(f.inputs[seedIdx].View())

	batchLabel := "Batch"
	b.WriteString("   ")
	if f.focused == batchIdx {
		b.WriteString(StyleFocusedLabel.Render(batchLabel))
	} else {
		b.WriteString(StyleFormLabel.Render(batchLabel))
	}
	b.WriteString("  ")
	b.WriteString(f.inputs[batchIdx].View())
	b.WriteString("\n")

	instrLabel := "Instructions"
	if f.focused == instrIdx {
		b.WriteString(StyleFocusedLabel.Render(instrLabel))
	} else {
		b.WriteString(StyleFormLabel.Render(instrLabel))
	}
	b.WriteString("\n")
	b.WriteString(f.inputs[instrIdx].View())
	b.WriteString("\n")

	return b.String()
}
