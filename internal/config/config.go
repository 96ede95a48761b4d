// Package config manages persisted application settings.
//
// Settings live in a single JSON file under the data directory
// (~/.flip-flop-prompter by default, FLIPFLOP_PROMPT_DIR overrides).
// Unknown or missing values fall back to defaults, so older config
// files keep working after upgrades.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Settings holds every user-tunable option.
type Settings struct {
	// TargetModel is the generation model prompts are written for.
	TargetModel string `json:"target_model"`

	// RefinerBaseURL is the Ollama endpoint.
	RefinerBaseURL string `json:"refiner_base_url"`
	// RefinerModel is the default language model for refinement.
	RefinerModel string `json:"refiner_model,omitempty"`

	// Filters is the active content-rating filter set.
	Filters []string `json:"filters"`

	// HistorySize caps how many history entries are retained.
	HistorySize int `json:"history_size"`

	// AutoCopy copies each generated prompt to the clipboard.
	AutoCopy bool `json:"auto_copy"`

	// Debug enables file logging.
	Debug bool `json:"debug"`

	// RecentStates tracks recently saved/loaded state IDs, newest first.
	RecentStates []string `json:"recent_states,omitempty"`

	// UpdatedAt records the last save.
	UpdatedAt time.Time `json:"updated_at"`
}

// maxRecentStates caps the recent-states list.
const maxRecentStates = 10

// Defaults returns the settings used when no config file exists.
func Defaults() Settings {
	return Settings{
		TargetModel:    "seedream",
		RefinerBaseURL: "http://localhost:11434",
		Filters:        []string{"PG"},
		HistorySize:    100,
		AutoCopy:       false,
		Debug:          false,
	}
}

// Config manages the settings file.
type Config struct {
	Settings   Settings
	configPath string
}

// New creates a config manager rooted at baseDir. An empty baseDir
// resolves the same way storage does: FLIPFLOP_PROMPT_DIR, then the
// home directory. Existing settings are loaded immediately.
func New(baseDir string) (*Config, error) {
	if baseDir == "" {
		if env := os.Getenv("FLIPFLOP_PROMPT_DIR"); env != "" {
			baseDir = env
		} else {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("failed to get home directory: %w", err)
			}
			baseDir = filepath.Join(homeDir, ".flip-flop-prompter")
		}
	}

	configPath := filepath.Join(baseDir, "config.json")
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	c := &Config{
		Settings:   Defaults(),
		configPath: configPath,
	}

	if err := c.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	return c, nil
}

// Load reads settings from disk, merging over the defaults so fields
// absent from the file keep their default values.
func (c *Config) Load() error {
	data, err := os.ReadFile(c.configPath)
	if err != nil {
		return err
	}

	loaded := Defaults()
	if err := json.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to parse configuration: %w", err)
	}
	if loaded.HistorySize < 1 {
		loaded.HistorySize = Defaults().HistorySize
	}
	if len(loaded.Filters) == 0 {
		loaded.Filters = Defaults().Filters
	}
	if loaded.RefinerBaseURL == "" {
		loaded.RefinerBaseURL = Defaults().RefinerBaseURL
	}
	c.Settings = loaded
	return nil
}

// Save writes the settings to disk.
func (c *Config) Save() error {
	c.Settings.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(c.Settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}
	return os.WriteFile(c.configPath, data, 0644)
}

// TouchRecentState moves a state ID to the front of the recent list
// and persists. The list is deduplicated and capped.
func (c *Config) TouchRecentState(id string) error {
	if id == "" {
		return nil
	}
	recent := []string{id}
	for _, existing := range c.Settings.RecentStates {
		if existing != id {
			recent = append(recent, existing)
		}
	}
	if len(recent) > maxRecentStates {
		recent = recent[:maxRecentStates]
	}
	c.Settings.RecentStates = recent
	return c.Save()
}
