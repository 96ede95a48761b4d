// Package history implements the generation history store and its
// navigation state machine.
//
// Entries are ordered newest first. Position 0 addresses the live,
// not-yet-committed prompt; positions 1..N address committed entries
// (1 = most recent). Navigating into history never mutates entries,
// and editing a field while viewing an entry jumps back to the live
// slot instead of overwriting the entry being viewed.
package history

import (
	"github.com/fredhopp/flip-flop-prompter/internal/models"
)

// DefaultMaxEntries caps how many committed entries are retained.
// The oldest entry is evicted when the cap is exceeded.
const DefaultMaxEntries = 100

// Store holds committed prompt states plus the navigation cursor.
// It is not safe for concurrent use; callers serialize access.
type Store struct {
	entries      []*models.PromptState
	position     int
	currentCache *models.PromptState
	maxEntries   int
}

// NewStore returns an empty history store with the default entry cap.
func NewStore() *Store {
	return NewStoreWithCap(DefaultMaxEntries)
}

// NewStoreWithCap returns an empty store retaining at most maxEntries
// committed entries. A cap below 1 falls back to the default.
func NewStoreWithCap(maxEntries int) *Store {
	if maxEntries < 1 {
		maxEntries = DefaultMaxEntries
	}
	return &Store{
		entries:    make([]*models.PromptState, 0),
		maxEntries: maxEntries,
	}
}

// Len returns the number of committed entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// Position returns the current cursor position (0 = live slot).
func (s *Store) Position() int {
	return s.position
}

// Viewing reports whether the cursor is on a committed entry.
func (s *Store) Viewing() bool {
	return s.position > 0
}

// Entries returns the committed entries newest first. The slice is a
// copy but the states are shared; callers must not mutate them.
func (s *Store) Entries() []*models.PromptState {
	out := make([]*models.PromptState, len(s.entries))
	copy(out, s.entries)
	return out
}

// Commit inserts state at the front of the history so it becomes the
// entry at position 1. The cursor does not move: committed batch
// results accumulate while the user stays on the live slot. The
// oldest entry is evicted when the cap is exceeded.
func (s *Store) Commit(state *models.PromptState) {
	if state == nil {
		return
	}
	s.entries = append([]*models.PromptState{state.Clone()}, s.entries...)
	if len(s.entries) > s.maxEntries {
		s.entries = s.entries[:s.maxEntries]
		if s.position > len(s.entries) {
			s.position = len(s.entries)
		}
	}
}

// SetCurrent records the live snapshot used to restore position 0.
func (s *Store) SetCurrent(state *models.PromptState) {
	if state == nil {
		s.currentCache = nil
		return
	}
	s.currentCache = state.Clone()
}

// Current returns the cached live snapshot, or nil if none was set.
func (s *Store) Current() *models.PromptState {
	if s.currentCache == nil {
		return nil
	}
	return s.currentCache.Clone()
}

// Back moves one step deeper into history and returns the state to
// restore into the live fields. Restoration is a pure load: entries
// store already-resolved text, not unresolved tags. Returns nil when
// already at the oldest entry.
func (s *Store) Back() *models.PromptState {
	if s.position >= len(s.entries) {
		return nil
	}
	s.position++
	return s.entries[s.position-1].Clone()
}

// Forward moves one step toward the live slot. When the cursor lands
// on position 0 the cached live snapshot is returned instead of a
// committed entry. Returns nil when already at the live slot.
func (s *Store) Forward() *models.PromptState {
	if s.position <= 0 {
		return nil
	}
	s.position--
	return s.stateAtPosition()
}

// Jump moves the cursor to position k, clamped to [0, N], and returns
// the state to restore. Jumping to the current position is a no-op
// that still returns the state there.
func (s *Store) Jump(k int) *models.PromptState {
	if k < 0 {
		k = 0
	}
	if k > len(s.entries) {
		k = len(s.entries)
	}
	s.position = k
	return s.stateAtPosition()
}

// DeleteCurrent removes the entry under the cursor. Valid only while
// viewing history; a call from the live slot is a no-op. The cursor
// clamps to the new entry count and the state now under it is
// returned.
func (s *Store) DeleteCurrent() *models.PromptState {
	if s.position <= 0 || s.position > len(s.entries) {
		return nil
	}
	idx := s.position - 1
	s.entries = append(s.entries[:idx], s.entries[idx+1:]...)
	if s.position > len(s.entries) {
		s.position = len(s.entries)
	}
	return s.stateAtPosition()
}

// Clear removes all committed entries and returns the cursor to the
// live slot. The cached live snapshot survives.
func (s *Store) Clear() {
	s.entries = s.entries[:0]
	s.position = 0
}

// OnLiveEdit handles a field change made while viewing history. The
// edited snapshot becomes the new uncommitted baseline: it is cached
// as the live state and the cursor jumps to position 0, leaving every
// committed entry untouched. A call while already on the live slot
// only refreshes the cache.
func (s *Store) OnLiveEdit(edited *models.PromptState) {
	s.SetCurrent(edited)
	s.position = 0
}

func (s *Store) stateAtPosition() *models.PromptState {
	if s.position == 0 {
		return s.Current()
	}
	return s.entries[s.position-1].Clone()
}
