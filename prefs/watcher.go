package prefs

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch re-applies preferences whenever the file changes on disk and
// invokes fn with the new value. The parent directory is watched
// rather than the file itself so atomic replace (write temp + rename)
// is seen. Watch blocks until the context ends.
func (s *Store) Watch(ctx context.Context, fn func(Prefs)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		return err
	}

	target := filepath.Clean(s.path)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			p, err := s.Load()
			if err != nil {
				s.logger.Warn("Failed to reload preferences", "path", s.path, "error", err)
				continue
			}
			s.logger.Debug("Preferences reloaded", "dark_mode", p.DarkMode)
			fn(p)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("Preference watcher error", "error", err)
		}
	}
}
