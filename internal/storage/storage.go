// Package storage persists prompt states as markdown files with YAML
// frontmatter. The frontmatter carries the structured state (field
// values, tags, seed, filters, models); the markdown body is the
// generated prompt text, so saved files stay readable and diffable.
package storage

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/fredhopp/flip-flop-prompter/internal/models"
)

// Storage handles all file system operations for saved prompt states.
type Storage struct {
	rootPath string
	cache    *MetadataCache
}

// NewStorage creates a storage instance rooted at rootPath. An empty
// path resolves to ~/.flip-flop-prompter, overridable through
// FLIPFLOP_PROMPT_DIR.
func NewStorage(rootPath string) (*Storage, error) {
	if rootPath == "" {
		if env := os.Getenv("FLIPFLOP_PROMPT_DIR"); env != "" {
			rootPath = env
		} else {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return nil, err
			}
			rootPath = filepath.Join(homeDir, ".flip-flop-prompter")
		}
	}

	cache := NewMetadataCache(rootPath)
	if err := cache.Load(); err != nil {
		// Cache is an optimization, not a requirement.
		fmt.Fprintf(os.Stderr, "Warning: failed to load metadata cache: %v\n", err)
	}

	return &Storage{
		rootPath: rootPath,
		cache:    cache,
	}, nil
}

// InitLibrary creates the on-disk directory layout.
func (s *Storage) InitLibrary() error {
	dirs := []string{
		s.rootPath,
		filepath.Join(s.rootPath, "states"),
		filepath.Join(s.rootPath, "snippets"),
		filepath.Join(s.rootPath, "logs"),
		filepath.Join(s.rootPath, ".flip-flop-prompter"),
		filepath.Join(s.rootPath, ".flip-flop-prompter", "cache"),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// GetBaseDir returns the root path of the storage.
func (s *Storage) GetBaseDir() string {
	return s.rootPath
}

// SnippetsDir returns the directory holding user snippet sets.
func (s *Storage) SnippetsDir() string {
	return filepath.Join(s.rootPath, "snippets")
}

// statePath maps a state ID to its file under states/.
func (s *Storage) statePath(id string) string {
	return filepath.Join("states", id+".md")
}

// SaveState writes a prompt state to its markdown file.
func (s *Storage) SaveState(state *models.PromptState) error {
	if state == nil || state.ID == "" {
		return fmt.Errorf("state has no ID")
	}
	relPath := s.statePath(state.ID)
	fullPath := filepath.Join(s.rootPath, relPath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	content, err := serializeState(state)
	if err != nil {
		return fmt.Errorf("failed to serialize state: %w", err)
	}

	if err := os.WriteFile(fullPath, content, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}

	if info, err := os.Stat(fullPath); err == nil {
		s.cache.Set(relPath, fullPath, info, state)
		if err := s.cache.Save(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to save metadata cache: %v\n", err)
		}
	}

	return nil
}

// LoadState reads a prompt state by ID.
func (s *Storage) LoadState(id string) (*models.PromptState, error) {
	return s.loadStateFile(s.statePath(id))
}

func (s *Storage) loadStateFile(relPath string) (*models.PromptState, error) {
	fullPath := filepath.Join(s.rootPath, relPath)

	content, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	state, err := parseStateFile(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse state: %w", err)
	}

	return state, nil
}

// DeleteState removes a saved state file.
func (s *Storage) DeleteState(id string) error {
	fullPath := filepath.Join(s.rootPath, s.statePath(id))

	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		return fmt.Errorf("state file does not exist: %s", fullPath)
	}
	if err := os.Remove(fullPath); err != nil {
		return fmt.Errorf("failed to delete state file: %w", err)
	}
	return nil
}

// ListStates returns all saved states, newest first, using the
// metadata cache to skip re-parsing unchanged files.
func (s *Storage) ListStates() ([]*models.PromptState, error) {
	statesDir := filepath.Join(s.rootPath, "states")
	if _, err := os.Stat(statesDir); os.IsNotExist(err) {
		return []*models.PromptState{}, nil
	}

	var states []*models.PromptState
	existingFiles := make(map[string]bool)
	cacheModified := false

	err := filepath.Walk(statesDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(path, ".md") {
			return nil
		}

		relPath, _ := filepath.Rel(s.rootPath, path)
		existingFiles[relPath] = true

		if cached, valid := s.cache.Get(relPath, info); valid {
			states = append(states, cached.ToState())
			return nil
		}

		state, err := s.loadStateFile(relPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to load state %s: %v\n", relPath, err)
			return nil
		}

		s.cache.Set(relPath, path, info, state)
		cacheModified = true
		states = append(states, state)
		return nil
	})

	s.cache.Cleanup(existingFiles)
	if cacheModified {
		if err := s.cache.Save(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to save metadata cache: %v\n", err)
		}
	}

	sort.Slice(states, func(i, j int) bool {
		return states[i].CreatedAt.After(states[j].CreatedAt)
	})

	return states, err
}

// Helper functions

func parseStateFile(content []byte) (*models.PromptState, error) {
	scanner := bufio.NewScanner(bytes.NewReader(content))

	if !scanner.Scan() || scanner.Text() != "---" {
		return nil, fmt.Errorf("missing frontmatter delimiter")
	}

	var frontmatterLines []string
	for scanner.Scan() {
		line := scanner.Text()
		if line == "---" {
			break
		}
		frontmatterLines = append(frontmatterLines, line)
	}

	frontmatter := strings.Join(frontmatterLines, "\n")
	var state models.PromptState
	if err := yaml.Unmarshal([]byte(frontmatter), &state); err != nil {
		return nil, fmt.Errorf("failed to parse frontmatter: %w", err)
	}

	var bodyLines []string
	for scanner.Scan() {
		bodyLines = append(bodyLines, scanner.Text())
	}
	state.Generated = strings.TrimLeft(strings.Join(bodyLines, "\n"), " \t\n")

	return &state, nil
}

func serializeState(state *models.PromptState) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("---\n")

	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(state); err != nil {
		return nil, fmt.Errorf("failed to encode frontmatter: %w", err)
	}

	buf.WriteString("---\n")

	if state.Generated != "" {
		buf.WriteString("\n")
		buf.WriteString(state.Generated)
		if !strings.HasSuffix(state.Generated, "\n") {
			buf.WriteString("\n")
		}
	}

	return buf.Bytes(), nil
}
