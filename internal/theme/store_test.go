package theme

import (
	"path/filepath"
	"testing"
)

type stubStorage struct {
	stored    string
	loadErr   error
	saveCount int
}

func (s *stubStorage) Load() (string, error) {
	return s.stored, s.loadErr
}

func (s *stubStorage) Save(id string) error {
	s.stored = id
	s.saveCount++
	return nil
}

func TestNewStoreFallsBackToDefault(t *testing.T) {
	store, err := NewStore(&stubStorage{})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if got := store.Current(); got != DefaultThemeID {
		t.Errorf("expected %q, got %q", DefaultThemeID, got)
	}
}

func TestNewStoreInitializesFromStorage(t *testing.T) {
	store, err := NewStore(&stubStorage{stored: "mint"})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if got := store.Current(); got != "mint" {
		t.Errorf("expected mint, got %q", got)
	}
}

func TestSetPersistsSelection(t *testing.T) {
	storage := &stubStorage{}
	store, err := NewStore(storage)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	if err := store.Set("lavender"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if storage.stored != "lavender" {
		t.Errorf("expected persisted lavender, got %q", storage.stored)
	}
	if got := store.Current(); got != "lavender" {
		t.Errorf("expected lavender, got %q", got)
	}
}

func TestSyncFromUserIsNoOpWhenEqual(t *testing.T) {
	storage := &stubStorage{stored: "mint"}
	store, err := NewStore(storage)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	changed, err := store.SyncFromUser("mint")
	if err != nil {
		t.Fatalf("SyncFromUser: %v", err)
	}
	if changed {
		t.Error("expected no change")
	}
	if storage.saveCount != 0 {
		t.Errorf("expected no storage write, got %d", storage.saveCount)
	}
}

func TestSyncFromUserOverwritesDifferentValue(t *testing.T) {
	storage := &stubStorage{stored: "mint"}
	store, err := NewStore(storage)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	changed, err := store.SyncFromUser("sky")
	if err != nil {
		t.Fatalf("SyncFromUser: %v", err)
	}
	if !changed {
		t.Error("expected selection to change")
	}
	if got := store.Current(); got != "sky" {
		t.Errorf("expected sky, got %q", got)
	}
	if storage.saveCount != 1 {
		t.Errorf("expected one storage write, got %d", storage.saveCount)
	}
}

func TestSyncFromUserAcceptsUnrecognizedID(t *testing.T) {
	store, err := NewStore(&stubStorage{})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	changed, err := store.SyncFromUser("solarized")
	if err != nil {
		t.Fatalf("SyncFromUser: %v", err)
	}
	if !changed {
		t.Error("expected selection to change")
	}
	if _, ok := store.CurrentTheme(); ok {
		t.Error("expected unrecognized id to miss the bundled set")
	}
}

func TestAvailableContainsFixedSet(t *testing.T) {
	ids := map[string]bool{}
	for _, theme := range Available() {
		ids[theme.ID] = true
	}
	for _, want := range []string{"default", "lavender", "mint", "sky"} {
		if !ids[want] {
			t.Errorf("expected theme %q in bundled set", want)
		}
	}
	if len(ids) != 4 {
		t.Errorf("expected exactly 4 themes, got %d", len(ids))
	}
}

func TestFileStorageRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "theme")
	storage := NewFileStorage(path)

	got, err := storage.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != "" {
		t.Errorf("expected empty value before first save, got %q", got)
	}

	if err := storage.Save("lavender"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err = storage.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != "lavender" {
		t.Errorf("expected lavender, got %q", got)
	}
}
