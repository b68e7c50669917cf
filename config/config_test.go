package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Assistant.Provider != "gemini" {
		t.Errorf("expected default provider gemini, got %s", cfg.Assistant.Provider)
	}
	if cfg.Assistant.Model != "gemini-3-flash-preview" {
		t.Errorf("expected default model gemini-3-flash-preview, got %s", cfg.Assistant.Model)
	}
	if cfg.Assistant.ChatModel != "gemini-3-pro-preview" {
		t.Errorf("expected default chat model gemini-3-pro-preview, got %s", cfg.Assistant.ChatModel)
	}
	if cfg.Assistant.Temperature != 0.2 {
		t.Errorf("expected default temperature 0.2, got %f", cfg.Assistant.Temperature)
	}
	if cfg.Assistant.Timeout != 3*time.Minute {
		t.Errorf("expected default timeout 3m, got %s", cfg.Assistant.Timeout)
	}
	if cfg.Bargain.MinRatio != 0 || cfg.Bargain.CapAtOriginal {
		t.Error("expected permissive bargain defaults")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "missing provider",
			modify:  func(c *Config) { c.Assistant.Provider = "" },
			wantErr: true,
		},
		{
			name:    "missing model",
			modify:  func(c *Config) { c.Assistant.Model = "" },
			wantErr: true,
		},
		{
			name:    "missing chat model",
			modify:  func(c *Config) { c.Assistant.ChatModel = "" },
			wantErr: true,
		},
		{
			name:    "temperature too low",
			modify:  func(c *Config) { c.Assistant.Temperature = -0.1 },
			wantErr: true,
		},
		{
			name:    "temperature too high",
			modify:  func(c *Config) { c.Assistant.Temperature = 2.1 },
			wantErr: true,
		},
		{
			name:    "min ratio above one",
			modify:  func(c *Config) { c.Bargain.MinRatio = 1.5 },
			wantErr: true,
		},
		{
			name:    "min ratio negative",
			modify:  func(c *Config) { c.Bargain.MinRatio = -0.2 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `
assistant:
  provider: "openai"
  model: "gpt-test"
  temperature: 0.5
  timeout: 30s
bargain:
  min_ratio: 0.7
  cap_at_original: true
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if cfg.Assistant.Provider != "openai" {
		t.Errorf("provider = %s", cfg.Assistant.Provider)
	}
	if cfg.Assistant.Model != "gpt-test" {
		t.Errorf("model = %s", cfg.Assistant.Model)
	}
	// Unset fields keep their defaults.
	if cfg.Assistant.ChatModel != "gemini-3-pro-preview" {
		t.Errorf("chat model should default, got %s", cfg.Assistant.ChatModel)
	}
	if cfg.Assistant.Timeout != 30*time.Second {
		t.Errorf("timeout = %s", cfg.Assistant.Timeout)
	}
	if cfg.Bargain.MinRatio != 0.7 || !cfg.Bargain.CapAtOriginal {
		t.Errorf("bargain = %+v", cfg.Bargain)
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Assistant.Model = "round-trip"
	cfg.Bargain.MinRatio = 0.9

	if err := cfg.SaveToFile(configPath); err != nil {
		t.Fatalf("SaveToFile() error = %v", err)
	}

	loaded, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}
	if loaded.Assistant.Model != "round-trip" {
		t.Errorf("model = %s", loaded.Assistant.Model)
	}
	if loaded.Bargain.MinRatio != 0.9 {
		t.Errorf("min ratio = %f", loaded.Bargain.MinRatio)
	}
}

func TestConfigMerge(t *testing.T) {
	base := DefaultConfig()

	base.Merge(&Config{
		Assistant: AssistantConfig{
			Model:       "override-model",
			Temperature: 0.9,
		},
		Bargain: BargainConfig{CapAtOriginal: true},
	})

	if base.Assistant.Model != "override-model" {
		t.Errorf("model = %s", base.Assistant.Model)
	}
	if base.Assistant.Temperature != 0.9 {
		t.Errorf("temperature = %f", base.Assistant.Temperature)
	}
	// Zero values in the overlay leave the base alone.
	if base.Assistant.Provider != "gemini" {
		t.Errorf("provider = %s", base.Assistant.Provider)
	}
	if base.Assistant.ChatModel != "gemini-3-pro-preview" {
		t.Errorf("chat model = %s", base.Assistant.ChatModel)
	}
	if !base.Bargain.CapAtOriginal {
		t.Error("cap should merge")
	}

	base.Merge(nil) // must not panic
}
