package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fredhopp/flip-flop-prompter/internal/models"
)

// StateMetadata is the cached summary of one saved prompt state. It
// carries everything list views need so unchanged files are never
// re-parsed.
type StateMetadata struct {
	ID          string    `json:"id"`
	FieldValues map[string]string `json:"field_values"`
	Seed        int64     `json:"seed"`
	Filters     []string  `json:"filters"`
	TargetModel string    `json:"target_model"`
	Generated   string    `json:"generated,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	FilePath    string    `json:"file_path"`
	ModTime     time.Time `json:"mod_time"`
	FileHash    string    `json:"file_hash"`
}

// MetadataCache handles caching of saved-state metadata.
type MetadataCache struct {
	cacheDir  string
	cacheFile string
	metadata  map[string]*StateMetadata
	mu        sync.RWMutex // Protects metadata map from concurrent access
}

// NewMetadataCache creates a new metadata cache under baseDir.
func NewMetadataCache(baseDir string) *MetadataCache {
	cacheDir := filepath.Join(baseDir, ".flip-flop-prompter", "cache")
	return &MetadataCache{
		cacheDir:  cacheDir,
		cacheFile: filepath.Join(cacheDir, "metadata.json"),
		metadata:  make(map[string]*StateMetadata),
	}
}

// Load loads the metadata cache from disk.
func (c *MetadataCache) Load() error {
	if err := os.MkdirAll(c.cacheDir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	if _, err := os.Stat(c.cacheFile); os.IsNotExist(err) {
		return nil // No cache file exists yet
	}

	data, err := os.ReadFile(c.cacheFile)
	if err != nil {
		return fmt.Errorf("failed to read cache file: %w", err)
	}

	c.mu.Lock()
	if err := json.Unmarshal(data, &c.metadata); err != nil {
		// If cache is corrupted, start fresh
		c.metadata = make(map[string]*StateMetadata)
	}
	c.mu.Unlock()

	return nil
}

// Save saves the metadata cache to disk.
func (c *MetadataCache) Save() error {
	c.mu.RLock()
	data, err := json.MarshalIndent(c.metadata, "", "  ")
	c.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to marshal cache: %w", err)
	}

	if err := os.WriteFile(c.cacheFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}

	return nil
}

// Get retrieves metadata for a file when the cache entry is still valid.
func (c *MetadataCache) Get(filePath string, fileInfo os.FileInfo) (*StateMetadata, bool) {
	c.mu.RLock()
	cached, exists := c.metadata[filePath]
	c.mu.RUnlock()
	if !exists {
		return nil, false
	}

	if !fileInfo.ModTime().Equal(cached.ModTime) {
		return nil, false
	}

	return cached, true
}

// Set stores metadata in the cache.
func (c *MetadataCache) Set(relPath string, fullPath string, fileInfo os.FileInfo, state *models.PromptState) {
	fileHash := ""
	if data, err := os.ReadFile(fullPath); err == nil {
		hash := sha256.Sum256(data)
		fileHash = hex.EncodeToString(hash[:])
	}

	values := make(map[string]string, len(state.FieldValues))
	for k, v := range state.FieldValues {
		values[k] = v
	}

	c.mu.Lock()
	c.metadata[relPath] = &StateMetadata{
		ID:          state.ID,
		FieldValues: values,
		Seed:        state.Seed,
		Filters:     append([]string(nil), state.Filters...),
		TargetModel: state.TargetModel,
		Generated:   state.Generated,
		CreatedAt:   state.CreatedAt,
		UpdatedAt:   state.UpdatedAt,
		FilePath:    relPath,
		ModTime:     fileInfo.ModTime(),
		FileHash:    fileHash,
	}
	c.mu.Unlock()
}

// ToState converts cached metadata back to a prompt state. Tags are
// not cached; a full load goes through Storage.LoadState.
func (m *StateMetadata) ToState() *models.PromptState {
	values := make(map[string]string, len(m.FieldValues))
	for k, v := range m.FieldValues {
		values[k] = v
	}
	return &models.PromptState{
		ID:          m.ID,
		FieldValues: values,
		FieldTags:   make(map[string]models.TagList),
		Seed:        m.Seed,
		Filters:     append([]string(nil), m.Filters...),
		TargetModel: m.TargetModel,
		Generated:   m.Generated,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// Cleanup removes cache entries for files that no longer exist.
func (c *MetadataCache) Cleanup(existingFiles map[string]bool) {
	c.mu.Lock()
	for filePath := range c.metadata {
		if !existingFiles[filePath] {
			delete(c.metadata, filePath)
		}
	}
	c.mu.Unlock()
}
