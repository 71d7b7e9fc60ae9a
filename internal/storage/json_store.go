package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/journeyline/internal/models"
)

const jsonStoreVersion = 1

// jsonDocument is the on-disk layout of a JSON store
type jsonDocument struct {
	Version  int                           `json:"version"`
	Settings models.Settings               `json:"settings"`
	Profiles map[string]models.UserProfile `json:"profiles"`
}

// JSONStore keeps everything in a single JSON file. Writes replace the file
// atomically. Init on an existing file just loads it.
type JSONStore struct {
	path string

	mu  sync.Mutex
	doc *jsonDocument
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return s.load()
	}

	s.doc = &jsonDocument{
		Version: jsonStoreVersion,
		Settings: models.Settings{
			CurrentUser: uuid.NewString(),
			CreatedAt:   time.Now().UTC().Format(time.RFC3339),
		},
		Profiles: make(map[string]models.UserProfile),
	}
	return s.write()
}

func (s *JSONStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// load must be called with s.mu held.
func (s *JSONStore) load() error {
	if s.doc != nil {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotInitialized
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	doc := &jsonDocument{}
	if err := json.Unmarshal(data, doc); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if doc.Version > jsonStoreVersion {
		return fmt.Errorf("storage version (%d) is newer than supported version (%d)", doc.Version, jsonStoreVersion)
	}
	if doc.Profiles == nil {
		doc.Profiles = make(map[string]models.UserProfile)
	}
	s.doc = doc
	return nil
}

// Close drops the cached document; the next Load rereads the file.
func (s *JSONStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = nil
	return nil
}

// write must be called with s.mu held.
func (s *JSONStore) write() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

func (s *JSONStore) GetSettings() (models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return models.Settings{}, fmt.Errorf("storage not loaded")
	}
	return s.doc.Settings, nil
}

func (s *JSONStore) SaveSettings(settings models.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.doc.Settings = settings
	return s.write()
}

func (s *JSONStore) LoadProfile(userID string) (models.UserProfile, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return models.UserProfile{}, false, fmt.Errorf("storage not loaded")
	}
	p, ok := s.doc.Profiles[userID]
	if !ok {
		return models.UserProfile{}, false, nil
	}
	return p.Clone(), true, nil
}

func (s *JSONStore) SaveProfile(userID string, profile models.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.doc.Profiles[userID] = profile.Clone()
	return s.write()
}

func (s *JSONStore) DeleteProfile(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return fmt.Errorf("storage not loaded")
	}
	if _, ok := s.doc.Profiles[userID]; !ok {
		return nil
	}
	delete(s.doc.Profiles, userID)
	return s.write()
}

func (s *JSONStore) ListProfiles() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	ids := make([]string, 0, len(s.doc.Profiles))
	for id := range s.doc.Profiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
