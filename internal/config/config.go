// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for redraft.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/redraft/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete redraft configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	// Local (Ollama) configuration
	Local LocalConfig `toml:"local" json:"local"`

	// Correction pipeline configuration
	Correction CorrectionConfig `toml:"correction" json:"correction"`

	// UI configuration
	UI UIConfig `toml:"ui" json:"ui"`

	// History persistence configuration
	History HistoryConfig `toml:"history" json:"history"`
}

// LocalConfig contains local Ollama configuration.
type LocalConfig struct {
	// OllamaURL is the URL of the Ollama server
	OllamaURL string `toml:"ollama_url" json:"ollama_url"`
	// OllamaModel is the model used for correction checks
	OllamaModel string `toml:"ollama_model" json:"ollama_model"`
}

// CorrectionConfig contains correction checker configuration.
type CorrectionConfig struct {
	// Enabled turns the correction pipeline on or off
	Enabled bool `toml:"enabled" json:"enabled"`
	// QuietMs is the debounce quiet period in milliseconds.
	// Valid range 150-5000; values outside are clamped.
	QuietMs int `toml:"quiet_ms" json:"quiet_ms"`
	// MinChars is the minimum typed length worth checking (clamped to 1-20)
	MinChars int `toml:"min_chars" json:"min_chars"`
	// RatePerSec caps issued checks per second (clamped to 0.1-10)
	RatePerSec float64 `toml:"rate_per_sec" json:"rate_per_sec"`
}

// UIConfig contains UI preferences.
type UIConfig struct {
	// Animations enables bubble entrance springs and banner slide-in
	Animations bool `toml:"animations" json:"animations"`
	// ShowTimestamps shows per-message timestamps
	ShowTimestamps bool `toml:"show_timestamps" json:"show_timestamps"`
	// CompactMode reduces bubble padding
	CompactMode bool `toml:"compact_mode" json:"compact_mode"`
}

// HistoryConfig contains transcript persistence configuration.
type HistoryConfig struct {
	// Enabled turns transcript persistence on or off
	Enabled bool `toml:"enabled" json:"enabled"`
	// Path is the SQLite database path (empty = ~/.redraft/history.db)
	Path string `toml:"path" json:"path"`
	// MaxConversations limits stored conversations (clamped to 1-1000)
	MaxConversations int `toml:"max_conversations" json:"max_conversations"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns a config populated with built-in defaults.
func Default() *Config {
	return &Config{
		Version: "1",
		Local: LocalConfig{
			OllamaURL:   "http://127.0.0.1:11434",
			OllamaModel: "llama3.2:3b",
		},
		Correction: CorrectionConfig{
			Enabled:    true,
			QuietMs:    600,
			MinChars:   3,
			RatePerSec: 2,
		},
		UI: UIConfig{
			Animations:     true,
			ShowTimestamps: true,
		},
		History: HistoryConfig{
			Enabled:          true,
			MaxConversations: 100,
		},
	}
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns the redraft configuration directory (~/.redraft).
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to find home directory: %w", err)
	}
	return filepath.Join(home, ".redraft"), nil
}

// ConfigPathTOML returns the TOML config file path.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the JSON config file path.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// HistoryPath resolves the SQLite history database path.
func (c *Config) HistoryPath() (string, error) {
	if c.History.Path != "" {
		return c.History.Path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.db"), nil
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads configuration from disk, applying env overrides, defaults, and
// validation. Missing files are not an error; defaults are returned.
func Load() (*Config, error) {
	cfg := Default()

	// TOML first, JSON as fallback.
	if path, err := ConfigPathTOML(); err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("failed to load TOML config: %w", err)
			}
			return finishLoad(cfg)
		}
	}

	if path, err := ConfigPathJSON(); err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("failed to read JSON config: %w", err)
			}
			if err := json.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to load JSON config: %w", err)
			}
			return finishLoad(cfg)
		}
	}

	return finishLoad(cfg)
}

// LoadFromPath loads configuration from an explicit file path, choosing the
// decoder by extension.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	switch filepath.Ext(path) {
	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse TOML config: %w", err)
		}
	}
	return finishLoad(cfg)
}

// finishLoad applies overrides and validation shared by all load paths.
func finishLoad(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	cfg.Validate()
	return cfg, nil
}

// =============================================================================
// SAVING
// =============================================================================

// Save writes the configuration to the TOML path atomically.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes the configuration as TOML to the given path.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	// 0600: the config file may hold a private server URL.
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies REDRAFT_* environment variables on top of the
// loaded values.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("REDRAFT_OLLAMA_URL"); v != "" {
		c.Local.OllamaURL = v
	}
	if v := os.Getenv("REDRAFT_OLLAMA_MODEL"); v != "" {
		c.Local.OllamaModel = v
	}
	if v := os.Getenv("REDRAFT_QUIET_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil {
			c.Correction.QuietMs = ms
		}
	}
	if v := os.Getenv("REDRAFT_CORRECTIONS"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.Correction.Enabled = enabled
		}
	}
	if v := os.Getenv("REDRAFT_HISTORY_PATH"); v != "" {
		c.History.Path = v
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate clamps out-of-range values to their valid bounds. Invalid input
// never aborts startup; the demo should come up with usable settings.
func (c *Config) Validate() {
	if c.Local.OllamaURL == "" {
		c.Local.OllamaURL = "http://127.0.0.1:11434"
	}
	if c.Local.OllamaModel == "" {
		c.Local.OllamaModel = "llama3.2:3b"
	}

	c.Correction.QuietMs = clampInt(c.Correction.QuietMs, 150, 5000)
	c.Correction.MinChars = clampInt(c.Correction.MinChars, 1, 20)
	c.Correction.RatePerSec = clampFloat(c.Correction.RatePerSec, 0.1, 10)

	c.History.MaxConversations = clampInt(c.History.MaxConversations, 1, 1000)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// =============================================================================
// GLOBAL ACCESS
// =============================================================================

var (
	globalMu     sync.RWMutex
	globalConfig *Config
	globalOnce   sync.Once
)

// Global returns the process-wide configuration, loading it on first use.
func Global() *Config {
	globalOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: using default config: %v\n", err)
			cfg = Default()
		}
		globalMu.Lock()
		globalConfig = cfg
		globalMu.Unlock()
	})
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalConfig
}

// SetGlobal replaces the process-wide configuration. Used by the reload
// watcher and by tests.
func SetGlobal(cfg *Config) {
	globalOnce.Do(func() {})
	globalMu.Lock()
	globalConfig = cfg
	globalMu.Unlock()
}
