package prefs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "prefs.yaml"))
}

func TestStore_LoadMissingFileYieldsDefaults(t *testing.T) {
	s := tempStore(t)

	p, err := s.Load()
	require.NoError(t, err)
	assert.False(t, p.DarkMode)
	assert.False(t, s.Current().DarkMode)
}

func TestStore_ToggleFlipsAndPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	s := NewStore(path)

	dark, err := s.Toggle()
	require.NoError(t, err)
	assert.True(t, dark)
	assert.True(t, s.Current().DarkMode)

	// A fresh store sees the persisted value.
	fresh := NewStore(path)
	p, err := fresh.Load()
	require.NoError(t, err)
	assert.True(t, p.DarkMode)

	dark, err = s.Toggle()
	require.NoError(t, err)
	assert.False(t, dark)
}

func TestStore_SetDarkMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.yaml")
	s := NewStore(path)

	require.NoError(t, s.SetDarkMode(true))
	assert.True(t, s.Current().DarkMode)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "dark_mode: true")
}

func TestStore_LoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("dark_mode: [not a bool"), 0644))

	s := NewStore(path)
	_, err := s.Load()
	assert.Error(t, err)
}

func TestStore_WatchSeesExternalWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prefs.yaml")
	s := NewStore(path)
	require.NoError(t, s.SetDarkMode(false))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	updates := make(chan Prefs, 4)
	done := make(chan error, 1)
	go func() {
		done <- s.Watch(ctx, func(p Prefs) {
			updates <- p
		})
	}()

	// Give the watcher time to attach before writing.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("dark_mode: true\n"), 0644))

	select {
	case p := <-updates:
		assert.True(t, p.DarkMode)
		assert.True(t, s.Current().DarkMode)
	case <-ctx.Done():
		t.Fatal("watcher never fired")
	}

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}
