package theme

import (
	"fmt"
	"sync"
)

// Storage is the durable home of the single selected-theme key.
type Storage interface {
	Load() (string, error)
	Save(id string) error
}

// Store holds the active theme selection. It initializes from durable storage
// (falling back to the default id when nothing is stored), persists every
// local change, and exposes a one-way sync entry point for the server-stored
// preference. Last writer wins; a selection is a single id, never a partial
// edit.
type Store struct {
	mu      sync.Mutex
	current string
	storage Storage
}

func NewStore(storage Storage) (*Store, error) {
	stored, err := storage.Load()
	if err != nil {
		return nil, fmt.Errorf("load theme selection: %w", err)
	}
	if stored == "" {
		stored = DefaultThemeID
	}
	return &Store{current: stored, storage: storage}, nil
}

func (s *Store) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// CurrentTheme resolves the active selection against the bundled set. The
// second return is false when the stored id is not a bundled theme.
func (s *Store) CurrentTheme() (Theme, bool) {
	return Lookup(s.Current())
}

// Set makes id the active selection and persists it.
func (s *Store) Set(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.storage.Save(id); err != nil {
		return fmt.Errorf("persist theme selection: %w", err)
	}
	s.current = id
	return nil
}

// SyncFromUser reconciles the server-stored preference into local state, used
// once per session on start. Equal values are a no-op with no storage write.
// An unrecognized id is accepted as-is. Returns whether the selection changed.
func (s *Store) SyncFromUser(id string) (bool, error) {
	if id == "" {
		return false, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if id == s.current {
		return false, nil
	}
	if err := s.storage.Save(id); err != nil {
		return false, fmt.Errorf("persist theme selection: %w", err)
	}
	s.current = id
	return true, nil
}
