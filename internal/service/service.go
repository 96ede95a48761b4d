// Package service provides the business logic layer shared by the CLI
// and TUI frontends. It owns the live prompt state, the history store,
// the snippet library, and the generation coordinator.
package service

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fredhopp/flip-flop-prompter/internal/adapters"
	"github.com/fredhopp/flip-flop-prompter/internal/clipboard"
	"github.com/fredhopp/flip-flop-prompter/internal/config"
	apperrors "github.com/fredhopp/flip-flop-prompter/internal/errors"
	"github.com/fredhopp/flip-flop-prompter/internal/generator"
	"github.com/fredhopp/flip-flop-prompter/internal/history"
	"github.com/fredhopp/flip-flop-prompter/internal/llm"
	"github.com/fredhopp/flip-flop-prompter/internal/logger"
	"github.com/fredhopp/flip-flop-prompter/internal/models"
	"github.com/fredhopp/flip-flop-prompter/internal/renderer"
	"github.com/fredhopp/flip-flop-prompter/internal/snippets"
	"github.com/fredhopp/flip-flop-prompter/internal/storage"
	"github.com/fredhopp/flip-flop-prompter/internal/validation"
)

// Service coordinates prompt editing, realization, generation and
// persistence. The current state is what the UI edits; committed
// generations live in the history store.
type Service struct {
	storage     *storage.Storage
	library     *snippets.Library
	history     *history.Store
	coordinator *generator.Coordinator
	refiner     llm.Refiner
	cfg         *config.Config
	log         *logger.Logger

	current *models.PromptState

	// busy spans a batch from StartBatch until FinishBatch has
	// committed, so navigation stays blocked through the commit.
	busy atomic.Bool
}

// NewService creates a fully wired service instance.
func NewService() (*Service, error) {
	store, err := storage.NewStorage("")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	if err := store.InitLibrary(); err != nil {
		return nil, fmt.Errorf("failed to initialize library: %w", err)
	}

	cfg, err := config.New(store.GetBaseDir())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize configuration: %w", err)
	}

	log := logger.Nop()
	if cfg.Settings.Debug {
		log, err = logger.New(store.GetBaseDir(), true)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize logging: %w", err)
		}
	}

	library, err := snippets.NewLibrary(store.SnippetsDir())
	if err != nil {
		return nil, fmt.Errorf("failed to load snippet library: %w", err)
	}

	ollama := llm.NewOllamaClient(cfg.Settings.RefinerBaseURL, log)
	refiner := &fallbackRefiner{primary: ollama, log: log}

	svc := &Service{
		storage:     store,
		library:     library,
		history:     history.NewStoreWithCap(cfg.Settings.HistorySize),
		coordinator: generator.NewCoordinator(library, refiner, log),
		refiner:     refiner,
		cfg:         cfg,
		log:         log,
	}
	svc.resetCurrent()
	return svc, nil
}

// resetCurrent installs a fresh state seeded from configuration.
func (s *Service) resetCurrent() {
	state := models.NewPromptState()
	state.Seed = models.RandomSeed()
	state.Filters = append([]string(nil), s.cfg.Settings.Filters...)
	state.TargetModel = s.cfg.Settings.TargetModel
	state.RefinerModel = s.cfg.Settings.RefinerModel
	s.current = state
	s.history.SetCurrent(state)
}

// Config exposes the settings manager.
func (s *Service) Config() *config.Config {
	return s.cfg
}

// Library exposes the snippet library.
func (s *Service) Library() *snippets.Library {
	return s.library
}

// Logger exposes the area logger.
func (s *Service) Logger() *logger.Logger {
	return s.log
}

// Close flushes logs.
func (s *Service) Close() {
	s.log.Sync()
}

// ---- current state ----

// Current returns the state under the history cursor. Callers must not
// mutate it directly; edits go through the setter methods so history
// bookkeeping stays correct.
func (s *Service) Current() *models.PromptState {
	return s.current
}

// liveEdit records an edit to the current state. Editing while viewing
// a history entry carries the edited content back to the live slot.
func (s *Service) liveEdit() {
	s.current.UpdatedAt = time.Now()
	if s.history.Viewing() {
		s.log.Debug(logger.AreaHistory, "edit while viewing, returning to live slot",
			"position", s.history.Position())
	}
	s.history.OnLiveEdit(s.current)
}

// SetField sets a field's free text.
func (s *Service) SetField(field, value string) error {
	if _, ok := s.current.FieldValues[field]; !ok {
		return apperrors.ValidationError(fmt.Sprintf("Unknown field: %s", field))
	}
	s.current.FieldValues[field] = value
	s.liveEdit()
	return nil
}

// AddTag appends a tag to a field.
func (s *Service) AddTag(field string, tag models.Tag) error {
	if _, ok := s.current.FieldTags[field]; !ok {
		return apperrors.ValidationError(fmt.Sprintf("Unknown field: %s", field))
	}
	if !tag.Valid() {
		return apperrors.NewAppError(apperrors.ErrCodeInvalidInput, "Invalid tag")
	}
	if s.current.FieldTags[field].Contains(tag) {
		return nil
	}
	s.current.FieldTags[field] = s.current.FieldTags[field].Add(tag)
	s.liveEdit()
	return nil
}

// RemoveTag removes a tag from a field.
func (s *Service) RemoveTag(field string, tag models.Tag) error {
	if _, ok := s.current.FieldTags[field]; !ok {
		return apperrors.ValidationError(fmt.Sprintf("Unknown field: %s", field))
	}
	s.current.FieldTags[field] = s.current.FieldTags[field].Remove(tag)
	s.liveEdit()
	return nil
}

// SetSeed sets the base seed.
func (s *Service) SetSeed(seed int64) error {
	if seed < 0 || seed > models.MaxSeed {
		return apperrors.NewAppError(apperrors.ErrCodeInvalidSeed,
			fmt.Sprintf("Seed must be between 0 and %d", models.MaxSeed))
	}
	s.current.Seed = seed
	s.liveEdit()
	return nil
}

// RandomizeSeed draws a new random base seed and returns it.
func (s *Service) RandomizeSeed() int64 {
	s.current.Seed = models.RandomSeed()
	s.liveEdit()
	return s.current.Seed
}

// SetFilters replaces the active content rating filters.
func (s *Service) SetFilters(names []string) {
	s.current.Filters = append([]string(nil), names...)
	s.liveEdit()
}

// SetTargetModel sets the generation model prompts are formatted for.
func (s *Service) SetTargetModel(name string) error {
	if result := validation.ValidateTargetModel(name, adapters.SupportedModels()); !result.Valid {
		return result.ToAppError()
	}
	s.current.TargetModel = strings.ToLower(name)
	s.liveEdit()
	return nil
}

// SetRefinerModel sets the language model used for refinement.
func (s *Service) SetRefinerModel(name string) {
	s.current.RefinerModel = name
	s.liveEdit()
}

// SetInstructions sets the custom refiner instructions.
func (s *Service) SetInstructions(text string) {
	s.current.Instructions = text
	s.liveEdit()
}

// ratingFilters resolves the current filter names to ratings.
func (s *Service) ratingFilters() []snippets.Rating {
	return parseRatings(s.current.Filters)
}

func parseRatings(names []string) []snippets.Rating {
	if len(names) == 0 {
		return nil
	}
	ratings := make([]snippets.Rating, 0, len(names))
	for _, name := range names {
		ratings = append(ratings, snippets.ParseRating(name))
	}
	return ratings
}

// ---- realization and preview ----

// RealizeFields resolves every field's tags and text at the current
// seed without calling the refiner.
func (s *Service) RealizeFields() map[string]string {
	filters := s.ratingFilters()
	fields := make(map[string]string, len(models.FieldNames()))
	for _, name := range models.FieldNames() {
		fields[name] = renderer.Realize(s.library, name,
			s.current.FieldTags[name], s.current.FieldValues[name], s.current.Seed, filters)
	}
	return fields
}

// Preview formats the realized fields for the target model without
// refinement. This is the instant feedback path.
func (s *Service) Preview() string {
	adapter := adapters.ForModel(s.current.TargetModel)
	return adapter.Format(s.RealizeFields())
}

// MissingTags reports, per tag of a field, whether its lookup comes up
// empty under the active filters.
func (s *Service) MissingTags(field string) []bool {
	return renderer.MissingTags(s.library, field, s.current.FieldTags[field], s.ratingFilters())
}

// Validate checks the current state against the field rules.
func (s *Service) Validate() *validation.ValidationResult {
	result := validation.ValidatePromptState(s.current)
	result.Merge(validation.ValidateTargetModel(s.current.TargetModel, adapters.SupportedModels()))
	return result
}

// ---- generation ----

// GenerateOptions control a batch run.
type GenerateOptions struct {
	BatchSize int
	SeedMode  models.SeedMode
}

// maxFieldTextLength bounds a field's free text when it enters a batch.
const maxFieldTextLength = 500

// BatchRun carries one batch's frozen inputs from StartBatch through
// RunBatch to FinishBatch. The workers only ever see the snapshot, so
// the live state stays editable while a batch runs.
type BatchRun struct {
	snapshot *models.PromptState
	req      generator.Request
}

// StartBatch validates the current state, marks the service busy and
// freezes a snapshot of the editable state for the batch. Every
// successful StartBatch must be paired with a FinishBatch, even when
// RunBatch fails, so the busy flag clears.
func (s *Service) StartBatch(opts GenerateOptions) (*BatchRun, error) {
	if opts.BatchSize < 1 {
		opts.BatchSize = 1
	}
	if opts.SeedMode == "" {
		opts.SeedMode = models.SeedFixed
	}
	if result := validation.ValidateBatch(opts.BatchSize, s.current.Seed); !result.Valid {
		return nil, result.ToAppError()
	}
	if result := s.Validate(); !result.Valid {
		return nil, result.ToAppError()
	}
	if !s.busy.CompareAndSwap(false, true) {
		return nil, apperrors.BusyError()
	}

	snapshot := s.current.Clone()
	for _, name := range models.FieldNames() {
		snapshot.FieldValues[name] = validation.SanitizeText(snapshot.FieldValues[name], maxFieldTextLength)
	}

	return &BatchRun{
		snapshot: snapshot,
		req: generator.Request{
			FieldValues:  snapshot.FieldValues,
			FieldTags:    snapshot.FieldTags,
			BatchSize:    opts.BatchSize,
			SeedMode:     opts.SeedMode,
			BaseSeed:     snapshot.Seed,
			Filters:      parseRatings(snapshot.Filters),
			RefinerModel: snapshot.RefinerModel,
			TargetModel:  snapshot.TargetModel,
			Instructions: snapshot.Instructions,
		},
	}, nil
}

// RunBatch executes the batch workers against the frozen snapshot. It
// touches no service state, so it is the only generation phase that may
// run off the orchestrating goroutine.
func (s *Service) RunBatch(ctx context.Context, run *BatchRun) ([]generator.Result, []generator.Failure, error) {
	return s.coordinator.Generate(ctx, run.req)
}

// FinishBatch commits the successful iterations to history in iteration
// order and releases the busy flag. It must be called on the same
// goroutine that edits state and navigates history.
func (s *Service) FinishBatch(run *BatchRun, results []generator.Result) {
	defer s.busy.Store(false)

	// Commit in iteration order so the newest history entry is the
	// last iteration of the batch.
	var first *generator.Result
	for i := range results {
		r := &results[i]
		if r.Err != nil {
			continue
		}
		if first == nil {
			first = r
		}
		committed := run.snapshot.Clone()
		committed.Seed = r.Seed
		committed.Generated = r.Text
		committed.CreatedAt = time.Now()
		committed.UpdatedAt = committed.CreatedAt
		s.history.Commit(committed)
	}
	if first == nil {
		return
	}

	s.current.Generated = first.Text
	s.current.UpdatedAt = time.Now()
	s.history.SetCurrent(s.current)

	if s.cfg.Settings.AutoCopy {
		if !clipboard.Available() {
			s.log.Warn(logger.AreaGeneral, "auto copy skipped, no clipboard tool found")
		} else if err := clipboard.Copy(first.Text); err != nil {
			s.log.Warn(logger.AreaGeneral, "auto copy failed", "error", err.Error())
		}
	}
}

// Generate runs a whole batch synchronously. Interactive callers use
// the StartBatch/RunBatch/FinishBatch split instead, so that only the
// worker phase leaves the orchestrating goroutine.
func (s *Service) Generate(ctx context.Context, opts GenerateOptions) ([]generator.Result, []generator.Failure, error) {
	run, err := s.StartBatch(opts)
	if err != nil {
		return nil, nil, err
	}
	results, failures, err := s.RunBatch(ctx, run)
	if err != nil {
		s.FinishBatch(run, nil)
		return nil, nil, err
	}
	s.FinishBatch(run, results)
	return results, failures, nil
}

// Busy reports whether a batch is in flight, including the commit
// phase after the workers finish.
func (s *Service) Busy() bool {
	return s.busy.Load() || s.coordinator.Busy()
}

// ---- history navigation ----

// guardNavigation rejects navigation while a batch is running.
func (s *Service) guardNavigation() error {
	if s.busy.Load() {
		return apperrors.BusyError()
	}
	return nil
}

// Back steps to the next older history entry.
func (s *Service) Back() (*models.PromptState, error) {
	if err := s.guardNavigation(); err != nil {
		return nil, err
	}
	state := s.history.Back()
	if state == nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeHistoryBounds,
			"Already at the oldest entry")
	}
	s.current = state
	return state, nil
}

// Forward steps toward the live slot.
func (s *Service) Forward() (*models.PromptState, error) {
	if err := s.guardNavigation(); err != nil {
		return nil, err
	}
	state := s.history.Forward()
	if state == nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeHistoryBounds,
			"Already at the live slot")
	}
	s.current = state
	return state, nil
}

// JumpTo moves the cursor to an absolute position, clamped to range.
// Position 0 is the live slot.
func (s *Service) JumpTo(position int) (*models.PromptState, error) {
	if err := s.guardNavigation(); err != nil {
		return nil, err
	}
	state := s.history.Jump(position)
	if state == nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeHistoryEmpty,
			"History is empty")
	}
	s.current = state
	return state, nil
}

// DeleteHistoryEntry removes the entry under the cursor. Deleting the
// live slot is a no-op.
func (s *Service) DeleteHistoryEntry() (*models.PromptState, error) {
	if err := s.guardNavigation(); err != nil {
		return nil, err
	}
	if !s.history.Viewing() {
		return nil, apperrors.NewAppError(apperrors.ErrCodeHistoryBounds,
			"The live slot cannot be deleted")
	}
	state := s.history.DeleteCurrent()
	if state != nil {
		s.current = state
	}
	return state, nil
}

// ClearHistory drops all committed entries and returns to the live slot.
func (s *Service) ClearHistory() error {
	if err := s.guardNavigation(); err != nil {
		return err
	}
	s.history.Clear()
	state := s.history.Current()
	if state != nil {
		s.current = state
	}
	return nil
}

// HistoryEntries returns the committed entries, newest first.
func (s *Service) HistoryEntries() []*models.PromptState {
	return s.history.Entries()
}

// HistoryPosition returns the cursor position; 0 is the live slot.
func (s *Service) HistoryPosition() int {
	return s.history.Position()
}

// HistoryLen returns the number of committed entries.
func (s *Service) HistoryLen() int {
	return s.history.Len()
}

// Viewing reports whether the cursor is on a committed entry.
func (s *Service) Viewing() bool {
	return s.history.Viewing()
}

// ---- persistence ----

// SaveCurrentState writes the state under the cursor to disk.
func (s *Service) SaveCurrentState() (string, error) {
	if err := s.storage.SaveState(s.current); err != nil {
		return "", err
	}
	if err := s.cfg.TouchRecentState(s.current.ID); err != nil {
		s.log.Warn(logger.AreaStorage, "failed to record recent state", "error", err.Error())
	}
	return s.current.ID, nil
}

// LoadState loads a saved state into the live slot.
func (s *Service) LoadState(id string) (*models.PromptState, error) {
	state, err := s.storage.LoadState(id)
	if err != nil {
		return nil, err
	}
	s.current = state
	s.history.OnLiveEdit(state)
	if err := s.cfg.TouchRecentState(id); err != nil {
		s.log.Warn(logger.AreaStorage, "failed to record recent state", "error", err.Error())
	}
	return state, nil
}

// ListStates returns all saved states, newest first.
func (s *Service) ListStates() ([]*models.PromptState, error) {
	return s.storage.ListStates()
}

// DeleteState removes a saved state from disk.
func (s *Service) DeleteState(id string) error {
	return s.storage.DeleteState(id)
}

// NewState discards the live slot and starts fresh. History entries
// are untouched.
func (s *Service) NewState() *models.PromptState {
	s.resetCurrent()
	return s.current
}

// ---- clipboard ----

// CopyGenerated copies the current generated prompt to the clipboard.
func (s *Service) CopyGenerated() (string, error) {
	text := strings.TrimSpace(s.current.Generated)
	if text == "" {
		return "", apperrors.ValidationError("Nothing generated yet")
	}
	return clipboard.CopyWithFallback(text)
}

// ---- refiner ----

// RefinerAvailable probes the refiner backend.
func (s *Service) RefinerAvailable(ctx context.Context) bool {
	return s.refiner.Available(ctx)
}

// RefinerModels lists the models the refiner backend offers.
func (s *Service) RefinerModels(ctx context.Context) ([]string, error) {
	return s.refiner.Models(ctx)
}

// SupportedTargetModels lists the generation models with adapters.
func (s *Service) SupportedTargetModels() []string {
	return adapters.SupportedModels()
}

// ---- offline fallback ----

// fallbackRefiner delegates to the LLM backend when it is reachable
// and otherwise formats the realized fields with the target model's
// adapter, so generation keeps working offline.
type fallbackRefiner struct {
	primary llm.Refiner
	log     *logger.Logger
}

func (f *fallbackRefiner) Refine(ctx context.Context, req llm.Request) (string, error) {
	if f.primary.Available(ctx) {
		return f.primary.Refine(ctx, req)
	}
	f.log.Info(logger.AreaOllama, "refiner unreachable, using adapter formatting",
		"targetModel", req.TargetModel)
	adapter := adapters.ForModel(req.TargetModel)
	text := adapter.Format(req.Fields)
	if text == "" {
		return "", apperrors.ValidationError("No prompt content to format")
	}
	return text, nil
}

func (f *fallbackRefiner) Available(ctx context.Context) bool {
	return f.primary.Available(ctx)
}

func (f *fallbackRefiner) Models(ctx context.Context) ([]string, error) {
	return f.primary.Models(ctx)
}
