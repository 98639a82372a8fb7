// Package config provides hierarchical configuration management.
// Priority: defaults < system < user < project < env
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"gopkg.in/yaml.v3"
)

// Config holds all dataset-builder configuration.
type Config struct {
	Version int `yaml:"version"`

	Data        DataConfig        `yaml:"data"`
	Batch       BatchConfig       `yaml:"batch"`
	Coordinates CoordinatesConfig `yaml:"coordinates"`
	Telemetry   TelemetryConfig   `yaml:"telemetry"`
}

// DataConfig locates the datasets on disk.
type DataConfig struct {
	Root    string   `yaml:"root"`    // dataset root directory
	Regions []string `yaml:"regions"` // routing regions to process
}

// BatchConfig controls the transformation run.
type BatchConfig struct {
	Count       int    `yaml:"count"`        // matches per flush
	Workers     int    `yaml:"workers"`      // concurrent matches, 0 = NumCPU
	Compression string `yaml:"compression"`  // snappy | zstd | gzip | lz4 | none
	Overwrite   bool   `yaml:"overwrite"`    // reprocess already-stored matches
	ErrorPolicy string `yaml:"error_policy"` // strict | skip | quarantine
}

// CoordinatesConfig points at cached coordinate tables. Empty paths
// fall back to built-in defaults.
type CoordinatesConfig struct {
	BuildingsFile string `yaml:"buildings_file"`
	CampsFile     string `yaml:"camps_file"`
}

// TelemetryConfig for optional tracing.
type TelemetryConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Endpoint string `yaml:"endpoint"`
}

// Default returns the default configuration.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	gptiltDir := filepath.Join(homeDir, ".gptilt")

	return &Config{
		Version: 1,
		Data: DataConfig{
			Root:    filepath.Join(gptiltDir, "data"),
			Regions: []string{"americas", "asia", "europe"},
		},
		Batch: BatchConfig{
			Count:       64,
			Workers:     0, // auto
			Compression: "snappy",
			ErrorPolicy: "quarantine",
		},
		Telemetry: TelemetryConfig{
			Enabled: false,
		},
	}
}

// Manager handles configuration loading and merging.
type Manager struct {
	mu     sync.RWMutex
	config *Config
	paths  []string // Paths that were loaded
}

// NewManager creates a new configuration manager.
func NewManager() *Manager {
	return &Manager{
		config: Default(),
	}
}

// Load loads configuration from all sources in priority order.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Start with defaults
	m.config = Default()

	// Load from paths in order (later overrides earlier)
	for _, path := range m.getConfigPaths() {
		if err := m.loadFile(path); err != nil {
			// Missing files are fine, broken ones are not
			if !os.IsNotExist(err) {
				return err
			}
		} else {
			m.paths = append(m.paths, path)
		}
	}

	// Override with environment variables
	m.loadEnv()

	return nil
}

// getConfigPaths returns config file paths in priority order.
func (m *Manager) getConfigPaths() []string {
	var paths []string

	// System config
	if runtime.GOOS != "windows" {
		paths = append(paths, "/etc/gptilt/config.yaml")
	}

	// User config
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".gptilt", "config.yaml"))
	}

	// Project config (current directory)
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".gptilt.yaml"))
	}

	return paths
}

// loadFile loads a single config file and merges it.
func (m *Manager) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var partial Config
	if err := yaml.Unmarshal(data, &partial); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	m.merge(&partial)
	return nil
}

// merge merges non-zero values from src into config.
func (m *Manager) merge(src *Config) {
	if src.Data.Root != "" {
		m.config.Data.Root = src.Data.Root
	}
	if len(src.Data.Regions) > 0 {
		m.config.Data.Regions = src.Data.Regions
	}

	if src.Batch.Count != 0 {
		m.config.Batch.Count = src.Batch.Count
	}
	if src.Batch.Workers != 0 {
		m.config.Batch.Workers = src.Batch.Workers
	}
	if src.Batch.Compression != "" {
		m.config.Batch.Compression = src.Batch.Compression
	}
	if src.Batch.Overwrite {
		m.config.Batch.Overwrite = true
	}
	if src.Batch.ErrorPolicy != "" {
		m.config.Batch.ErrorPolicy = src.Batch.ErrorPolicy
	}

	if src.Coordinates.BuildingsFile != "" {
		m.config.Coordinates.BuildingsFile = src.Coordinates.BuildingsFile
	}
	if src.Coordinates.CampsFile != "" {
		m.config.Coordinates.CampsFile = src.Coordinates.CampsFile
	}

	if src.Telemetry.Enabled {
		m.config.Telemetry.Enabled = true
	}
	if src.Telemetry.Endpoint != "" {
		m.config.Telemetry.Endpoint = src.Telemetry.Endpoint
	}
}

// loadEnv loads configuration from environment variables.
func (m *Manager) loadEnv() {
	if v := os.Getenv("GPTILT_DATA_ROOT"); v != "" {
		m.config.Data.Root = v
	}
	if v := os.Getenv("GPTILT_COMPRESSION"); v != "" {
		m.config.Batch.Compression = v
	}
	if v := os.Getenv("GPTILT_WORKERS"); v != "" {
		var workers int
		if _, err := fmt.Sscanf(v, "%d", &workers); err == nil {
			m.config.Batch.Workers = workers
		}
	}
	if v := os.Getenv("GPTILT_ERROR_POLICY"); v != "" {
		m.config.Batch.ErrorPolicy = v
	}
	if v := os.Getenv("GPTILT_TELEMETRY_ENDPOINT"); v != "" {
		m.config.Telemetry.Endpoint = v
		m.config.Telemetry.Enabled = true
	}
}

// Get returns the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// GetPaths returns the paths that were loaded.
func (m *Manager) GetPaths() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.paths
}

// Save writes the current config to the user config file.
func (m *Manager) Save() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	configDir := filepath.Join(home, ".gptilt")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(m.config)
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(configDir, "config.yaml"), data, 0o644)
}

// Global instance
var (
	globalManager *Manager
	globalOnce    sync.Once
)

// Global returns the global configuration manager.
func Global() *Manager {
	globalOnce.Do(func() {
		globalManager = NewManager()
		globalManager.Load()
	})
	return globalManager
}
