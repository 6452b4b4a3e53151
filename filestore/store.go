// Package filestore persists the whole dataset as one JSON document on
// disk. It is the zero-dependency storage mode for demos and tests and
// implements the same repository contracts as the MongoDB backend.
package filestore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"tonotes/model"
	"tonotes/utils"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// document is the on-disk shape. The top-level keys match the seed data
// files this store is loaded from, so a hand-edited dataset drops in
// unchanged.
type document struct {
	Notes    []*model.Note    `json:"notes"`
	Users    []*model.User    `json:"user"`
	Sessions []*model.Session `json:"sessions,omitempty"`
}

// Store holds the document in memory and rewrites the file on every
// mutation. A watcher reloads the document when the file changes on
// disk, so external edits show up without a restart.
type Store struct {
	mu      sync.RWMutex
	path    string
	data    document
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// Open loads the document at path, creating an empty one when the file
// does not exist yet.
func Open(path string) (*Store, error) {
	s := &Store{
		path: path,
		done: make(chan struct{}),
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	if err := s.load(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		if err := s.save(); err != nil {
			return nil, err
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch data directory: %w", err)
	}
	s.watcher = watcher
	go s.watch()

	return s, nil
}

func (s *Store) Close() error {
	close(s.done)
	if s.watcher != nil {
		return s.watcher.Close()
	}
	return nil
}

func (s *Store) load() error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return err
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("failed to parse data file %s: %w", s.path, err)
	}

	s.mu.Lock()
	s.data = doc
	s.mu.Unlock()
	return nil
}

// save rewrites the whole document. Callers must hold the write lock;
// the temp-file rename keeps readers of the file itself from seeing a
// half-written document.
func (s *Store) save() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write data file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace data file: %w", err)
	}
	return nil
}

func (s *Store) watch() {
	for {
		select {
		case <-s.done:
			return
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if event.Name != s.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := s.load(); err != nil {
				utils.Logger.Warn("failed to reload data file",
					zap.String("path", s.path), zap.Error(err))
			}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			utils.Logger.Warn("data file watcher error", zap.Error(err))
		}
	}
}
