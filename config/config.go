// Package config provides configuration loading and management for bazaar.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete bazaar configuration
type Config struct {
	Assistant AssistantConfig `yaml:"assistant"`
	Bargain   BargainConfig   `yaml:"bargain"`
	Prefs     PrefsConfig     `yaml:"prefs"`
}

// AssistantConfig configures the generative model used by the assistant
type AssistantConfig struct {
	// Provider selects the model API ("gemini" or "openai")
	Provider string `yaml:"provider"`
	// Model is used for one-shot generation (promotions, insights)
	Model string `yaml:"model"`
	// ChatModel is used for streaming chat sessions
	ChatModel string `yaml:"chat_model"`
	// Endpoint overrides the provider's default API base URL
	Endpoint string `yaml:"endpoint"`
	// Temperature controls randomness (0.0-2.0, default: 0.2)
	Temperature float64 `yaml:"temperature"`
	// Timeout is the maximum time to wait for model responses
	Timeout time.Duration `yaml:"timeout"`
}

// BargainConfig bounds customer counter-offers. Zero values leave
// bargaining unrestricted.
type BargainConfig struct {
	// MinRatio is the lowest acceptable offer as a fraction of the
	// original price (0 disables the floor)
	MinRatio float64 `yaml:"min_ratio"`
	// CapAtOriginal rejects offers above the catalog total
	CapAtOriginal bool `yaml:"cap_at_original"`
}

// PrefsConfig locates the local preference store
type PrefsConfig struct {
	// Path is the preference file path (default: ~/.config/bazaar/prefs.yaml)
	Path string `yaml:"path"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Assistant: AssistantConfig{
			Provider:    "gemini",
			Model:       "gemini-3-flash-preview",
			ChatModel:   "gemini-3-pro-preview",
			Endpoint:    "", // Provider default
			Temperature: 0.2,
			Timeout:     3 * time.Minute,
		},
		Bargain: BargainConfig{
			MinRatio:      0,
			CapAtOriginal: false,
		},
		Prefs: PrefsConfig{
			Path: "", // Resolved to the user config dir at load time
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Assistant.Provider == "" {
		return fmt.Errorf("assistant.provider is required")
	}
	if c.Assistant.Model == "" {
		return fmt.Errorf("assistant.model is required")
	}
	if c.Assistant.ChatModel == "" {
		return fmt.Errorf("assistant.chat_model is required")
	}
	if c.Assistant.Temperature < 0 || c.Assistant.Temperature > 2 {
		return fmt.Errorf("assistant.temperature must be between 0 and 2")
	}
	if c.Bargain.MinRatio < 0 || c.Bargain.MinRatio > 1 {
		return fmt.Errorf("bargain.min_ratio must be between 0 and 1")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Assistant
	if other.Assistant.Provider != "" {
		c.Assistant.Provider = other.Assistant.Provider
	}
	if other.Assistant.Model != "" {
		c.Assistant.Model = other.Assistant.Model
	}
	if other.Assistant.ChatModel != "" {
		c.Assistant.ChatModel = other.Assistant.ChatModel
	}
	if other.Assistant.Endpoint != "" {
		c.Assistant.Endpoint = other.Assistant.Endpoint
	}
	if other.Assistant.Temperature != 0 {
		c.Assistant.Temperature = other.Assistant.Temperature
	}
	if other.Assistant.Timeout != 0 {
		c.Assistant.Timeout = other.Assistant.Timeout
	}

	// Bargain
	if other.Bargain.MinRatio != 0 {
		c.Bargain.MinRatio = other.Bargain.MinRatio
	}
	if other.Bargain.CapAtOriginal {
		c.Bargain.CapAtOriginal = true
	}

	// Prefs
	if other.Prefs.Path != "" {
		c.Prefs.Path = other.Prefs.Path
	}
}
