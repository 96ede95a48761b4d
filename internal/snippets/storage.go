package snippets

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// loadUserSets reads every <field>.json under the snippets directory.
// A missing directory is created; an unreadable file fails the load so the
// caller can surface it rather than silently losing user content.
func (l *Library) loadUserSets() error {
	if err := os.MkdirAll(l.dir, 0755); err != nil {
		return fmt.Errorf("failed to create snippets directory: %w", err)
	}
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return fmt.Errorf("failed to read snippets directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		field := strings.TrimSuffix(entry.Name(), ".json")
		path := filepath.Join(l.dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read snippet file %s: %w", entry.Name(), err)
		}
		var set FieldSet
		if err := json.Unmarshal(data, &set); err != nil {
			return fmt.Errorf("failed to parse snippet file %s: %w", entry.Name(), err)
		}
		if set.Categories == nil {
			set.Categories = make(map[string]Category)
		}
		if set.Rating == "" {
			set.Rating = string(RatingPG)
		}
		l.user[field] = set
	}
	return nil
}

// saveFieldSet writes one field's user set to its JSON file. Caller holds
// the write lock.
func (l *Library) saveFieldSet(field string) error {
	if l.dir == "" {
		return nil
	}
	set, ok := l.user[field]
	if !ok {
		return nil
	}
	data, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snippets for %s: %w", field, err)
	}
	path := filepath.Join(l.dir, field+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write snippet file: %w", err)
	}
	return nil
}

// AddSnippet inserts an item into a user category, creating the field set
// and category as needed, and persists the field's file. Re-adding an
// existing item is a no-op.
func (l *Library) AddSnippet(field, category, item string, rating Rating) error {
	item = strings.TrimSpace(item)
	if item == "" {
		return fmt.Errorf("empty snippet")
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	set, ok := l.user[field]
	if !ok {
		set = FieldSet{Rating: string(rating), Categories: make(map[string]Category)}
	}
	c := set.Categories[category]
	for _, existing := range c.Items {
		if existing == item {
			return nil
		}
	}
	c.Items = append(c.Items, item)
	set.Categories[category] = c
	l.user[field] = set
	return l.saveFieldSet(field)
}

// RemoveSnippet deletes an item from a user category and persists.
// Unknown items are a no-op.
func (l *Library) RemoveSnippet(field, category, item string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	set, ok := l.user[field]
	if !ok {
		return nil
	}
	c, ok := set.Categories[category]
	if !ok {
		return nil
	}
	for i, existing := range c.Items {
		if existing == item {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			set.Categories[category] = c
			l.user[field] = set
			return l.saveFieldSet(field)
		}
	}
	return nil
}

// Export writes every user set to a single JSON file.
func (l *Library) Export(path string) error {
	l.mu.RLock()
	data, err := json.MarshalIndent(l.user, "", "  ")
	l.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to marshal snippets: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write snippets export: %w", err)
	}
	return nil
}

// Import merges field sets from a JSON export, replacing any user set of
// the same field, and persists each imported field.
func (l *Library) Import(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read snippets import: %w", err)
	}
	var imported map[string]FieldSet
	if err := json.Unmarshal(data, &imported); err != nil {
		return fmt.Errorf("failed to parse snippets import: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	for field, set := range imported {
		if set.Categories == nil {
			set.Categories = make(map[string]Category)
		}
		if set.Rating == "" {
			set.Rating = string(RatingPG)
		}
		l.user[field] = set
		if err := l.saveFieldSet(field); err != nil {
			return err
		}
	}
	return nil
}
