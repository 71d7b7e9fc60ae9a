package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/julianstephens/journeyline/internal/constants"
	"github.com/julianstephens/journeyline/internal/models"
)

func setupJSONStore(t *testing.T) *JSONStore {
	t.Helper()
	store := NewJSONStore(filepath.Join(t.TempDir(), "nested", "journeyline.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	return store
}

func TestJSONStore_InitCreatesUser(t *testing.T) {
	store := setupJSONStore(t)

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings() failed: %v", err)
	}
	if settings.CurrentUser == "" {
		t.Error("Init() did not assign a user id")
	}

	info, err := os.Stat(store.GetConfigPath())
	if err != nil {
		t.Fatalf("storage file missing: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("file mode = %o, want 600", perm)
	}

	again := NewJSONStore(store.GetConfigPath())
	if err := again.Init(); err != nil {
		t.Fatalf("second Init() failed: %v", err)
	}
	if s2, _ := again.GetSettings(); s2.CurrentUser != settings.CurrentUser {
		t.Errorf("second Init() changed the user id: %q != %q", s2.CurrentUser, settings.CurrentUser)
	}
}

func TestJSONStore_LoadNotInitialized(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "missing.json"))
	if err := store.Load(); err != ErrNotInitialized {
		t.Errorf("Load() error = %v, want %v", err, ErrNotInitialized)
	}
	if _, err := store.GetSettings(); err == nil {
		t.Error("GetSettings() before Load should fail")
	}
}

func TestJSONStore_ProfileSurvivesReload(t *testing.T) {
	store := setupJSONStore(t)

	start := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	profile := models.UserProfile{
		Role:         constants.RoleCarrier,
		Jurisdiction: "California",
		Counterpart:  constants.UnknownJurisdiction,
		Stage:        "match",
		StartDate:    &start,
		Tasks:        map[string][]models.Task{"match": {{ID: 0, Text: "Interview agencies", Done: true}}},
		Moods:        []models.MoodEntry{{ID: "m1", Mood: constants.MoodGood, At: start}},
		Journal:      []models.JournalEntry{{ID: "j1", Text: "Day one", At: start}},
	}
	if err := store.SaveProfile("u1", profile); err != nil {
		t.Fatalf("SaveProfile() failed: %v", err)
	}

	reopened := NewJSONStore(store.GetConfigPath())
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	got, found, err := reopened.LoadProfile("u1")
	if err != nil || !found {
		t.Fatalf("LoadProfile() = found %v, err %v", found, err)
	}
	if diff := cmp.Diff(profile, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("profile mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONStore_ListAndDelete(t *testing.T) {
	store := setupJSONStore(t)

	for _, id := range []string{"b", "a"} {
		if err := store.SaveProfile(id, models.UserProfile{Name: id}); err != nil {
			t.Fatalf("SaveProfile(%s) failed: %v", id, err)
		}
	}

	ids, err := store.ListProfiles()
	if err != nil {
		t.Fatalf("ListProfiles() failed: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, ids); diff != "" {
		t.Errorf("ListProfiles() mismatch (-want +got):\n%s", diff)
	}

	if err := store.DeleteProfile("a"); err != nil {
		t.Fatalf("DeleteProfile() failed: %v", err)
	}
	if err := store.DeleteProfile("missing"); err != nil {
		t.Errorf("DeleteProfile(missing) = %v, want nil", err)
	}
	if _, err := RequireProfile(store, "a"); err != ErrProfileNotFound {
		t.Errorf("RequireProfile() error = %v, want %v", err, ErrProfileNotFound)
	}
}

func TestJSONStore_LoadedProfileIsACopy(t *testing.T) {
	store := setupJSONStore(t)
	if err := store.SaveProfile("u1", models.UserProfile{Tasks: map[string][]models.Task{"s": {{Text: "t"}}}}); err != nil {
		t.Fatalf("SaveProfile() failed: %v", err)
	}

	p, _, _ := store.LoadProfile("u1")
	p.Tasks["s"][0].Done = true

	again, _, _ := store.LoadProfile("u1")
	if again.Tasks["s"][0].Done {
		t.Error("mutating a loaded profile changed the store")
	}
}
