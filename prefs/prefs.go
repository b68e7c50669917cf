// Package prefs persists the single local user preference: the theme
// flag. The file is read once at startup and written on toggle; a
// watcher re-applies the value when the file changes on disk.
package prefs

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Prefs is the persisted preference set.
type Prefs struct {
	// DarkMode selects the dark theme.
	DarkMode bool `yaml:"dark_mode"`
}

// Store reads and writes the preference file.
type Store struct {
	path   string
	logger *slog.Logger

	mu      sync.RWMutex
	current Prefs
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore creates a preference store over the given file path.
func NewStore(path string, opts ...Option) *Store {
	s := &Store{
		path:   path,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the preference file. A missing file yields defaults.
func (s *Store) Load() (Prefs, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return Prefs{}, nil
	}
	if err != nil {
		return Prefs{}, fmt.Errorf("read prefs file: %w", err)
	}

	var p Prefs
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Prefs{}, fmt.Errorf("parse prefs file: %w", err)
	}

	s.mu.Lock()
	s.current = p
	s.mu.Unlock()
	return p, nil
}

// Current returns the last loaded or written preferences.
func (s *Store) Current() Prefs {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// SetDarkMode writes the theme flag to disk.
func (s *Store) SetDarkMode(dark bool) error {
	s.mu.Lock()
	s.current.DarkMode = dark
	p := s.current
	s.mu.Unlock()

	return s.write(p)
}

// Toggle flips the theme flag, persists it, and returns the new value.
func (s *Store) Toggle() (bool, error) {
	s.mu.Lock()
	s.current.DarkMode = !s.current.DarkMode
	p := s.current
	s.mu.Unlock()

	if err := s.write(p); err != nil {
		return false, err
	}
	return p.DarkMode, nil
}

func (s *Store) write(p Prefs) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create prefs directory: %w", err)
	}

	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write prefs file: %w", err)
	}

	s.logger.Debug("Preferences written", "path", s.path, "dark_mode", p.DarkMode)
	return nil
}
