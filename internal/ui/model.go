package ui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	apperrors "github.com/fredhopp/flip-flop-prompter/internal/errors"
	"github.com/fredhopp/flip-flop-prompter/internal/generator"
	"github.com/fredhopp/flip-flop-prompter/internal/models"
	"github.com/fredhopp/flip-flop-prompter/internal/service"
	"github.com/fredhopp/flip-flop-prompter/internal/snippets"
)

// createGlamourRenderer creates a glamour renderer with improved
// contrast handling.
func createGlamourRenderer(wordWrap int) (*glamour.TermRenderer, error) {
	if style := os.Getenv("GLAMOUR_STYLE"); style != "" {
		return glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(wordWrap),
		)
	}

	profile := termenv.ColorProfile()

	var styleOption glamour.TermRendererOption
	if lipgloss.HasDarkBackground() {
		styleOption = glamour.WithStandardStyle("dark")
	} else {
		styleOption = glamour.WithStandardStyle("light")
	}
	if profile != termenv.TrueColor && profile != termenv.ANSI256 {
		styleOption = glamour.WithAutoStyle()
	}

	return glamour.NewTermRenderer(
		styleOption,
		glamour.WithColorProfile(profile),
		glamour.WithWordWrap(wordWrap),
	)
}

// ViewMode represents the current view in the TUI.
type ViewMode int

const (
	ViewEditor ViewMode = iota
	ViewHistory
	ViewStates
	ViewTagPicker
)

// Messages for async operations.
type generateDoneMsg struct {
	results  []generator.Result
	failures []generator.Failure
	err      error
}

type statesLoadedMsg struct {
	states []*models.PromptState
	err    error
}

type statusTickMsg struct{}

// KeyMap defines the editor keybindings.
type KeyMap struct {
	NextField   key.Binding
	PrevField   key.Binding
	Generate    key.Binding
	RandomSeed  key.Binding
	CycleSeed   key.Binding
	CycleModel  key.Binding
	CycleRating key.Binding
	AddTag      key.Binding
	DropTag     key.Binding
	Back        key.Binding
	Forward     key.Binding
	History     key.Binding
	Save        key.Binding
	States      key.Binding
	Copy        key.Binding
	New         key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the standard keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field")),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev field")),
		Generate: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("ctrl+g", "generate")),
		RandomSeed: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "random seed")),
		CycleSeed: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("ctrl+e", "seed mode")),
		CycleModel: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "target model")),
		CycleRating: key.NewBinding(
			key.WithKeys("ctrl+f"),
			key.WithHelp("ctrl+f", "content rating")),
		AddTag: key.NewBinding(
			key.WithKeys("ctrl+a"),
			key.WithHelp("ctrl+a", "add tag")),
		DropTag: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "drop last tag")),
		Back: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "older")),
		Forward: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "newer")),
		History: key.NewBinding(
			key.WithKeys("ctrl+h"),
			key.WithHelp("ctrl+h", "history")),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save state")),
		States: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "saved states")),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy")),
		New: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "new")),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "help")),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc", "quit")),
	}
}

// ShortHelp satisfies help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextField, k.Generate, k.AddTag, k.Back, k.Forward, k.Help, k.Quit}
}

// FullHelp satisfies help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextField, k.PrevField, k.AddTag, k.DropTag},
		{k.Generate, k.RandomSeed, k.CycleSeed, k.CycleModel, k.CycleRating},
		{k.Back, k.Forward, k.History, k.Save, k.States},
		{k.Copy, k.New, k.Help, k.Quit},
	}
}

// tagOption is one entry in the tag picker list.
type tagOption struct {
	label string
	kind  string
	tag   models.Tag
}

func (o tagOption) Title() string       { return o.label }
func (o tagOption) Description() string { return o.kind }
func (o tagOption) FilterValue() string { return o.label }

// Model represents the TUI application state.
type Model struct {
	service  *service.Service
	viewMode ViewMode

	form            *PromptForm
	preview         viewport.Model
	historyList     list.Model
	statesList      list.Model
	tagPicker       list.Model
	help            help.Model
	keys            KeyMap
	glamourRenderer *glamour.TermRenderer
	errHandler      *apperrors.TUIErrorHandler

	seedMode    models.SeedMode
	tagField    string
	width       int
	height      int
	generating  bool
	batch       *service.BatchRun
	showHelp    bool
	statusMsg   string
	statusType  string
	statusUntil time.Time
}

// NewModel creates the TUI application model.
func NewModel(svc *service.Service) (*Model, error) {
	initializeColors()

	renderer, err := createGlamourRenderer(80)
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	historyList := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	historyList.Title = "History (newest first)"
	historyList.SetShowHelp(false)

	statesList := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	statesList.Title = "Saved states"
	statesList.SetShowHelp(false)

	tagPicker := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	tagPicker.SetShowHelp(false)

	m := &Model{
		service:         svc,
		form:            NewPromptForm(),
		preview:         viewport.New(80, 12),
		historyList:     historyList,
		statesList:      statesList,
		tagPicker:       tagPicker,
		help:            help.New(),
		keys:            DefaultKeyMap(),
		glamourRenderer: renderer,
		errHandler:      apperrors.NewTUIErrorHandler(svc.Config().Settings.Debug),
		seedMode:        models.SeedFixed,
	}
	m.form.SyncFrom(svc.Current())
	m.refreshPreview()
	return m, nil
}

// Init starts the status ticker.
func (m *Model) Init() tea.Cmd {
	return statusTick()
}

func statusTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return statusTickMsg{}
	})
}

// setStatus shows a transient status line.
func (m *Model) setStatus(text, statusType string) {
	m.statusMsg = text
	m.statusType = statusType
	m.statusUntil = time.Now().Add(4 * time.Second)
}

// setError shows an error on the status line, styled by severity.
func (m *Model) setError(err error) {
	m.setStatus(m.errHandler.FormatError(err), m.errHandler.StatusType(err))
}

// Update handles all TUI events.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.preview.Width = msg.Width - 4
		m.preview.Height = max(6, msg.Height/3)
		listHeight := msg.Height - 6
		m.historyList.SetSize(msg.Width-4, listHeight)
		m.statesList.SetSize(msg.Width-4, listHeight)
		m.tagPicker.SetSize(msg.Width-4, listHeight)
		if renderer, err := createGlamourRenderer(msg.Width - 8); err == nil {
			m.glamourRenderer = renderer
		}
		m.refreshPreview()
		return m, nil

	case statusTickMsg:
		if m.statusMsg != "" && time.Now().After(m.statusUntil) {
			m.statusMsg = ""
		}
		return m, statusTick()

	case generateDoneMsg:
		m.generating = false
		if m.batch != nil {
			m.service.FinishBatch(m.batch, msg.results)
			m.batch = nil
		}
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		succeeded := len(msg.results) - len(msg.failures)
		if succeeded == 0 {
			m.setStatus("All iterations failed", "error")
		} else if len(msg.failures) > 0 {
			m.setStatus(fmt.Sprintf("Generated %d of %d prompts", succeeded, len(msg.results)), "warning")
		} else if len(msg.results) > 1 {
			m.setStatus(fmt.Sprintf("Generated %d prompts", len(msg.results)), "success")
		} else {
			m.setStatus("Prompt generated", "success")
		}
		m.form.SyncFrom(m.service.Current())
		m.refreshPreview()
		return m, nil

	case statesLoadedMsg:
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		items := make([]list.Item, len(msg.states))
		for i, s := range msg.states {
			items[i] = s
		}
		m.statesList.SetItems(items)
		m.viewMode = ViewStates
		return m, nil

	case tea.KeyMsg:
		switch m.viewMode {
		case ViewEditor:
			return m.updateEditor(msg)
		case ViewHistory:
			return m.updateHistory(msg)
		case ViewStates:
			return m.updateStates(msg)
		case ViewTagPicker:
			return m.updateTagPicker(msg)
		}
	}

	return m, nil
}

func (m *Model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keys

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil

	case key.Matches(msg, keys.NextField):
		m.syncFocusedField()
		m.form.Next()
		return m, nil

	case key.Matches(msg, keys.PrevField):
		m.syncFocusedField()
		m.form.Prev()
		return m, nil

	case key.Matches(msg, keys.Generate):
		if m.generating {
			m.setStatus("Generation already in progress", "warning")
			return m, nil
		}
		return m.startGeneration()

	case key.Matches(msg, keys.RandomSeed):
		seed := m.service.RandomizeSeed()
		m.form.SyncFrom(m.service.Current())
		m.setStatus(fmt.Sprintf("Seed: %d", seed), "info")
		m.refreshPreview()
		return m, nil

	case key.Matches(msg, keys.CycleSeed):
		m.seedMode = nextSeedMode(m.seedMode)
		m.setStatus("Seed mode: "+string(m.seedMode), "info")
		return m, nil

	case key.Matches(msg, keys.CycleModel):
		current := m.service.Current().TargetModel
		next := nextInList(m.service.SupportedTargetModels(), current)
		if err := m.service.SetTargetModel(next); err != nil {
			m.setError(err)
			return m, nil
		}
		m.setStatus("Target model: "+next, "info")
		m.refreshPreview()
		return m, nil

	case key.Matches(msg, keys.CycleRating):
		rating := nextRating(m.service.Current().Filters)
		m.service.SetFilters(ratingNames(rating))
		m.setStatus("Content rating: "+string(rating), "info")
		m.refreshPreview()
		return m, nil

	case key.Matches(msg, keys.AddTag):
		return m.openTagPicker()

	case key.Matches(msg, keys.DropTag):
		m.dropLastTag()
		return m, nil

	case key.Matches(msg, keys.Back):
		if state, err := m.service.Back(); err != nil {
			m.setError(err)
		} else {
			m.form.SyncFrom(state)
			m.setStatus(m.positionLabel(), "info")
			m.refreshPreview()
		}
		return m, nil

	case key.Matches(msg, keys.Forward):
		if state, err := m.service.Forward(); err != nil {
			m.setError(err)
		} else {
			m.form.SyncFrom(state)
			m.setStatus(m.positionLabel(), "info")
			m.refreshPreview()
		}
		return m, nil

	case key.Matches(msg, keys.History):
		entries := m.service.HistoryEntries()
		items := make([]list.Item, len(entries))
		for i, e := range entries {
			items[i] = e
		}
		m.historyList.SetItems(items)
		m.viewMode = ViewHistory
		return m, nil

	case key.Matches(msg, keys.Save):
		m.syncFocusedField()
		id, err := m.service.SaveCurrentState()
		if err != nil {
			m.setError(err)
		} else {
			m.setStatus("Saved state "+id, "success")
		}
		return m, nil

	case key.Matches(msg, keys.States):
		return m, m.loadStatesCmd()

	case key.Matches(msg, keys.Copy):
		status, err := m.service.CopyGenerated()
		if err != nil {
			m.setError(err)
		} else {
			m.setStatus(status, "success")
		}
		return m, nil

	case key.Matches(msg, keys.New):
		state := m.service.NewState()
		m.form.SyncFrom(state)
		m.setStatus("New prompt", "info")
		m.refreshPreview()
		return m, nil
	}

	cmd := m.form.Update(msg)
	m.syncFocusedField()
	return m, cmd
}

// syncFocusedField pushes the focused input's text into the service
// when it changed, which also handles the jump out of history viewing.
func (m *Model) syncFocusedField() {
	field := m.form.FocusedField()
	if field == "" {
		return
	}
	value := m.form.FieldValue(field)
	if value == m.service.Current().FieldValues[field] {
		return
	}
	if err := m.service.SetField(field, value); err != nil {
		m.setError(err)
		return
	}
	m.refreshPreview()
}

// startGeneration reads the seed and batch inputs and launches a batch.
func (m *Model) startGeneration() (tea.Model, tea.Cmd) {
	m.syncFocusedField()

	if seed, ok, err := m.form.SeedValue(); err != nil {
		m.setError(err)
		return m, nil
	} else if ok {
		if err := m.service.SetSeed(seed); err != nil {
			m.setError(err)
			return m, nil
		}
	}
	batchSize, err := m.form.BatchValue()
	if err != nil {
		m.setError(err)
		return m, nil
	}
	m.service.SetInstructions(m.form.InstructionsValue())

	if result := m.service.Validate(); !result.Valid {
		m.setStatus(result.Errors[0].Message, "error")
		return m, nil
	}

	opts := service.GenerateOptions{BatchSize: batchSize, SeedMode: m.seedMode}
	run, err := m.service.StartBatch(opts)
	if err != nil {
		m.setError(err)
		return m, nil
	}
	m.batch = run
	m.generating = true
	m.setStatus("Generating...", "info")
	// Only the worker phase leaves the update loop; the commit happens
	// back on it when generateDoneMsg arrives.
	return m, func() tea.Msg {
		results, failures, err := m.service.RunBatch(context.Background(), run)
		return generateDoneMsg{results: results, failures: failures, err: err}
	}
}

func (m *Model) openTagPicker() (tea.Model, tea.Cmd) {
	field := m.form.FocusedField()
	if field == "" {
		m.setStatus("Focus a prompt field to add a tag", "warning")
		return m, nil
	}

	filters := currentRatings(m.service.Current().Filters)
	lib := m.service.Library()

	var items []list.Item
	for _, category := range lib.Categories(field, filters) {
		items = append(items, tagOption{
			label: fmt.Sprintf("[random %s]", category),
			kind:  "category",
			tag:   models.NewCategoryTag(category),
		})
		for _, sub := range lib.Subcategories(field, category, filters) {
			items = append(items, tagOption{
				label: fmt.Sprintf("[random %s/%s]", category, sub),
				kind:  "subcategory",
				tag:   models.NewSubcategoryTag(category, sub),
			})
		}
	}
	if len(items) == 0 {
		m.setStatus("No snippet categories for this field under the active rating", "warning")
		return m, nil
	}

	m.tagField = field
	m.tagPicker.Title = "Add tag to " + models.FieldLabels[field]
	m.tagPicker.SetItems(items)
	m.viewMode = ViewTagPicker
	return m, nil
}

func (m *Model) dropLastTag() {
	field := m.form.FocusedField()
	if field == "" {
		return
	}
	tags := m.service.Current().FieldTags[field]
	if len(tags) == 0 {
		m.setStatus("No tags on this field", "warning")
		return
	}
	last := tags[len(tags)-1]
	if err := m.service.RemoveTag(field, last); err != nil {
		m.setError(err)
		return
	}
	m.setStatus("Removed "+last.Text, "info")
	m.refreshPreview()
}

func (m *Model) updateHistory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.viewMode = ViewEditor
		return m, nil
	case "enter":
		position := m.historyList.Index() + 1
		state, err := m.service.JumpTo(position)
		if err != nil {
			m.setError(err)
			return m, nil
		}
		m.form.SyncFrom(state)
		m.viewMode = ViewEditor
		m.setStatus(m.positionLabel(), "info")
		m.refreshPreview()
		return m, nil
	case "x":
		position := m.historyList.Index() + 1
		if _, err := m.service.JumpTo(position); err != nil {
			m.setError(err)
			return m, nil
		}
		state, err := m.service.DeleteHistoryEntry()
		if err != nil {
			m.setError(err)
			return m, nil
		}
		if state != nil {
			m.form.SyncFrom(state)
		}
		entries := m.service.HistoryEntries()
		items := make([]list.Item, len(entries))
		for i, e := range entries {
			items[i] = e
		}
		m.historyList.SetItems(items)
		m.setStatus("Entry deleted", "info")
		m.refreshPreview()
		return m, nil
	case "C":
		if err := m.service.ClearHistory(); err != nil {
			m.setError(err)
			return m, nil
		}
		m.historyList.SetItems(nil)
		m.form.SyncFrom(m.service.Current())
		m.viewMode = ViewEditor
		m.setStatus("History cleared", "info")
		m.refreshPreview()
		return m, nil
	}

	var cmd tea.Cmd
	m.historyList, cmd = m.historyList.Update(msg)
	return m, cmd
}

func (m *Model) loadStatesCmd() tea.Cmd {
	return func() tea.Msg {
		states, err := m.service.ListStates()
		return statesLoadedMsg{states: states, err: err}
	}
}

func (m *Model) updateStates(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.viewMode = ViewEditor
		return m, nil
	case "enter":
		selected, ok := m.statesList.SelectedItem().(*models.PromptState)
		if !ok {
			return m, nil
		}
		state, err := m.service.LoadState(selected.ID)
		if err != nil {
			m.setError(err)
			return m, nil
		}
		m.form.SyncFrom(state)
		m.viewMode = ViewEditor
		m.setStatus("Loaded state "+state.ID, "success")
		m.refreshPreview()
		return m, nil
	case "x":
		selected, ok := m.statesList.SelectedItem().(*models.PromptState)
		if !ok {
			return m, nil
		}
		if err := m.service.DeleteState(selected.ID); err != nil {
			m.setError(err)
			return m, nil
		}
		m.setStatus("Deleted state "+selected.ID, "info")
		return m, m.loadStatesCmd()
	}

	var cmd tea.Cmd
	m.statesList, cmd = m.statesList.Update(msg)
	return m, cmd
}

func (m *Model) updateTagPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.viewMode = ViewEditor
		return m, nil
	case "enter":
		option, ok := m.tagPicker.SelectedItem().(tagOption)
		if !ok {
			return m, nil
		}
		if err := m.service.AddTag(m.tagField, option.tag); err != nil {
			m.setError(err)
			return m, nil
		}
		m.viewMode = ViewEditor
		m.setStatus("Added "+option.label, "success")
		m.refreshPreview()
		return m, nil
	}

	var cmd tea.Cmd
	m.tagPicker, cmd = m.tagPicker.Update(msg)
	return m, cmd
}

// refreshPreview rebuilds the preview pane from the current state.
func (m *Model) refreshPreview() {
	state := m.service.Current()

	var b strings.Builder
	b.WriteString("## Preview\n\n")
	preview := m.service.Preview()
	if preview == "" {
		b.WriteString("*empty prompt*\n")
	} else {
		b.WriteString(preview)
		b.WriteString("\n")
	}
	if g := strings.TrimSpace(state.Generated); g != "" {
		b.WriteString("\n## Generated\n\n")
		b.WriteString(g)
		b.WriteString("\n")
	}

	rendered, err := m.glamourRenderer.Render(b.String())
	if err != nil {
		rendered = b.String()
	}
	m.preview.SetContent(rendered)
}

// positionLabel describes the history cursor for the status line.
func (m *Model) positionLabel() string {
	position := m.service.HistoryPosition()
	if position == 0 {
		return "Live prompt"
	}
	return fmt.Sprintf("History %d of %d", position, m.service.HistoryLen())
}

// tagChips renders a field's tags, marking the ones with no content
// under the active filters.
func (m *Model) tagChips(field string) string {
	tags := m.service.Current().FieldTags[field]
	if len(tags) == 0 {
		return ""
	}
	missing := m.service.MissingTags(field)

	var parts []string
	for i, tag := range tags {
		label := tag.Text
		if i < len(missing) && missing[i] {
			parts = append(parts, StyleTagMissing.Render(label+" !"))
		} else {
			parts = append(parts, StyleTagChip.Render(label))
		}
	}
	return strings.Join(parts, "")
}

// View renders the TUI.
func (m *Model) View() string {
	var b strings.Builder

	header := StyleTitle.Render("Flip Flop Prompter")
	meta := StyleMetadata.Render(fmt.Sprintf("model: %s • rating: %s • seed mode: %s • %s",
		m.service.Current().TargetModel,
		strings.Join(m.service.Current().Filters, "+"),
		m.seedMode,
		m.positionLabel()))
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Left, header, meta))
	b.WriteString("\n\n")

	switch m.viewMode {
	case ViewHistory:
		b.WriteString(m.historyList.View())
	case ViewStates:
		b.WriteString(m.statesList.View())
	case ViewTagPicker:
		b.WriteString(CenterModal(m.tagPicker.View(), m.width, m.height-6))
	default:
		b.WriteString(m.form.View(m.tagChips))
		b.WriteString("\n")
		b.WriteString(StylePreviewPane.Render(m.preview.View()))
	}
	b.WriteString("\n")

	if m.generating {
		b.WriteString(StyleStatusBusy.Render("Generating..."))
	} else if m.statusMsg != "" {
		b.WriteString(CreateStatus(m.statusMsg, m.statusType))
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

// ---- small helpers ----

func nextSeedMode(mode models.SeedMode) models.SeedMode {
	switch mode {
	case models.SeedFixed:
		return models.SeedIncrement
	case models.SeedIncrement:
		return models.SeedDecrement
	case models.SeedDecrement:
		return models.SeedRandomize
	default:
		return models.SeedFixed
	}
}

func nextInList(options []string, current string) string {
	for i, option := range options {
		if option == current {
			return options[(i+1)%len(options)]
		}
	}
	if len(options) > 0 {
		return options[0]
	}
	return current
}

// nextRating cycles PG -> NSFW -> Hentai by the highest active rating.
func nextRating(filters []string) snippets.Rating {
	highest := snippets.RatingPG
	for _, name := range filters {
		switch snippets.ParseRating(name) {
		case snippets.RatingHentai:
			highest = snippets.RatingHentai
		case snippets.RatingNSFW:
			if highest == snippets.RatingPG {
				highest = snippets.RatingNSFW
			}
		}
	}
	switch highest {
	case snippets.RatingPG:
		return snippets.RatingNSFW
	case snippets.RatingNSFW:
		return snippets.RatingHentai
	default:
		return snippets.RatingPG
	}
}

// ratingNames expands a rating to the filter set including everything
// below it.
func ratingNames(rating snippets.Rating) []string {
	allowed := rating.Allowed()
	names := make([]string, len(allowed))
	for i, r := range allowed {
		names[i] = string(r)
	}
	return names
}

func currentRatings(filters []string) []snippets.Rating {
	ratings := make([]snippets.Rating, 0, len(filters))
	for _, name := range filters {
		ratings = append(ratings, snippets.ParseRating(name))
	}
	return ratings
}
