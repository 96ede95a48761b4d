package history

import (
	"fmt"
	"testing"

	"github.com/fredhopp/flip-flop-prompter/internal/models"
)

func stateWithSubjects(text string) *models.PromptState {
	st := models.NewPromptState()
	st.FieldValues[models.FieldSubjects] = text
	return st
}

func TestCommitOrdering(t *testing.T) {
	s := NewStore()

	s.Commit(stateWithSubjects("first"))
	s.Commit(stateWithSubjects("second"))
	s.Commit(stateWithSubjects("third"))

	if s.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", s.Len())
	}
	if s.Position() != 0 {
		t.Errorf("commit must not move the cursor, position = %d", s.Position())
	}

	entries := s.Entries()
	if got := entries[0].FieldValues[models.FieldSubjects]; got != "third" {
		t.Errorf("newest entry should be first, got %q", got)
	}
	if got := entries[2].FieldValues[models.FieldSubjects]; got != "first" {
		t.Errorf("oldest entry should be last, got %q", got)
	}
}

func TestCommitClonesState(t *testing.T) {
	s := NewStore()
	st := stateWithSubjects("original")
	s.Commit(st)

	st.FieldValues[models.FieldSubjects] = "mutated"

	if got := s.Entries()[0].FieldValues[models.FieldSubjects]; got != "original" {
		t.Errorf("committed entry shares memory with caller state: %q", got)
	}
}

func TestBackForward(t *testing.T) {
	s := NewStore()
	s.SetCurrent(stateWithSubjects("live"))
	s.Commit(stateWithSubjects("older"))
	s.Commit(stateWithSubjects("newer"))

	st := s.Back()
	if st == nil || st.FieldValues[models.FieldSubjects] != "newer" {
		t.Fatalf("back from live should land on newest entry, got %v", st)
	}
	if s.Position() != 1 {
		t.Errorf("position = %d, want 1", s.Position())
	}

	st = s.Back()
	if st == nil || st.FieldValues[models.FieldSubjects] != "older" {
		t.Fatalf("second back should land on oldest entry, got %v", st)
	}

	if st := s.Back(); st != nil {
		t.Errorf("back past the oldest entry should return nil, got %v", st)
	}
	if s.Position() != 2 {
		t.Errorf("failed back must not move the cursor, position = %d", s.Position())
	}

	st = s.Forward()
	if st == nil || st.FieldValues[models.FieldSubjects] != "newer" {
		t.Fatalf("forward should land on newest entry, got %v", st)
	}

	st = s.Forward()
	if st == nil || st.FieldValues[models.FieldSubjects] != "live" {
		t.Fatalf("forward to position 0 should restore the cached live state, got %v", st)
	}
	if s.Position() != 0 {
		t.Errorf("position = %d, want 0", s.Position())
	}

	if st := s.Forward(); st != nil {
		t.Errorf("forward from live slot should return nil, got %v", st)
	}
}

func TestJumpClamps(t *testing.T) {
	s := NewStore()
	s.SetCurrent(stateWithSubjects("live"))
	s.Commit(stateWithSubjects("a"))
	s.Commit(stateWithSubjects("b"))

	st := s.Jump(99)
	if s.Position() != 2 {
		t.Errorf("jump beyond N should clamp to N, position = %d", s.Position())
	}
	if st == nil || st.FieldValues[models.FieldSubjects] != "a" {
		t.Errorf("clamped jump should land on oldest entry, got %v", st)
	}

	st = s.Jump(-5)
	if s.Position() != 0 {
		t.Errorf("negative jump should clamp to 0, position = %d", s.Position())
	}
	if st == nil || st.FieldValues[models.FieldSubjects] != "live" {
		t.Errorf("jump to 0 should restore the live cache, got %v", st)
	}
}

func TestSmartJumpOnLiveEdit(t *testing.T) {
	s := NewStore()
	s.Commit(stateWithSubjects("a"))
	s.Commit(stateWithSubjects("b"))

	s.Jump(2)
	if s.Position() != 2 {
		t.Fatalf("setup: position = %d, want 2", s.Position())
	}

	edited := stateWithSubjects("edited while viewing")
	s.OnLiveEdit(edited)

	if s.Position() != 0 {
		t.Errorf("live edit while viewing must jump to position 0, got %d", s.Position())
	}
	if s.Len() != 2 {
		t.Errorf("live edit must not touch entries, len = %d", s.Len())
	}
	if got := s.Entries()[1].FieldValues[models.FieldSubjects]; got != "a" {
		t.Errorf("viewed entry was overwritten: %q", got)
	}
	cur := s.Current()
	if cur == nil || cur.FieldValues[models.FieldSubjects] != "edited while viewing" {
		t.Errorf("edit should become the new live baseline, got %v", cur)
	}
}

func TestDeleteCurrent(t *testing.T) {
	s := NewStore()
	s.Commit(stateWithSubjects("a"))
	s.Commit(stateWithSubjects("b"))
	s.Commit(stateWithSubjects("c"))

	// Deleting from the live slot is a no-op.
	if st := s.DeleteCurrent(); st != nil {
		t.Errorf("delete at position 0 should be a no-op, got %v", st)
	}
	if s.Len() != 3 {
		t.Fatalf("len = %d, want 3", s.Len())
	}

	s.Jump(3) // oldest
	st := s.DeleteCurrent()
	if s.Len() != 2 {
		t.Fatalf("len = %d, want 2", s.Len())
	}
	if s.Position() != 2 {
		t.Errorf("cursor should clamp to new N, position = %d", s.Position())
	}
	if st == nil || st.FieldValues[models.FieldSubjects] != "b" {
		t.Errorf("after deleting the oldest, cursor should show next oldest, got %v", st)
	}
}

func TestClear(t *testing.T) {
	s := NewStore()
	s.SetCurrent(stateWithSubjects("live"))
	s.Commit(stateWithSubjects("a"))
	s.Jump(1)

	s.Clear()

	if s.Len() != 0 {
		t.Errorf("len = %d, want 0", s.Len())
	}
	if s.Position() != 0 {
		t.Errorf("position = %d, want 0", s.Position())
	}
	if cur := s.Current(); cur == nil {
		t.Errorf("clear should keep the live cache")
	}

	// Clear on empty history is a no-op.
	s.Clear()
	if s.Len() != 0 || s.Position() != 0 {
		t.Errorf("clear on empty store changed state")
	}
}

func TestEntryCap(t *testing.T) {
	s := NewStoreWithCap(5)
	for i := 0; i < 8; i++ {
		s.Commit(stateWithSubjects(fmt.Sprintf("entry-%d", i)))
	}

	if s.Len() != 5 {
		t.Fatalf("len = %d, want 5", s.Len())
	}
	entries := s.Entries()
	if got := entries[0].FieldValues[models.FieldSubjects]; got != "entry-7" {
		t.Errorf("newest entry should survive eviction, got %q", got)
	}
	if got := entries[4].FieldValues[models.FieldSubjects]; got != "entry-3" {
		t.Errorf("oldest retained entry = %q, want entry-3", got)
	}
}
