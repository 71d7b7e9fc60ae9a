package postgres

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/julianstephens/journeyline/internal/constants"
	"github.com/julianstephens/journeyline/internal/models"
)

// TestStore_Integration tests PostgreSQL store with a real database
// Set POSTGRES_TEST_URL environment variable to run this test
// Example: POSTGRES_TEST_URL="postgres://journeyline@localhost:5432/journeyline_test?sslmode=disable"
func TestStore_Integration(t *testing.T) {
	connStr := os.Getenv("POSTGRES_TEST_URL")
	if connStr == "" {
		t.Skip("POSTGRES_TEST_URL not set, skipping PostgreSQL integration test")
	}

	store := New(connStr)
	if err := store.Init(); err != nil {
		t.Fatalf("Failed to initialize store: %v", err)
	}
	defer store.Close()

	const userID = "integration-user"
	defer store.DeleteProfile(userID)

	t.Run("Settings", func(t *testing.T) {
		settings, err := store.GetSettings()
		if err != nil {
			t.Fatalf("Failed to get settings: %v", err)
		}
		if settings.CurrentUser == "" {
			t.Error("Expected a generated user id")
		}

		settings.DisplayIdentifier = "integration@example.com"
		if err := store.SaveSettings(settings); err != nil {
			t.Fatalf("Failed to save settings: %v", err)
		}
		updated, err := store.GetSettings()
		if err != nil {
			t.Fatalf("Failed to get updated settings: %v", err)
		}
		if updated.DisplayIdentifier != "integration@example.com" {
			t.Errorf("Expected display identifier to persist, got %q", updated.DisplayIdentifier)
		}
	})

	t.Run("Profile", func(t *testing.T) {
		start := time.Date(2026, time.April, 1, 12, 0, 0, 0, time.UTC)
		want := models.UserProfile{
			Role:         constants.RoleIntendedParent,
			Jurisdiction: "New York",
			Counterpart:  constants.UnknownJurisdiction,
			Stage:        "match",
			StartDate:    &start,
			Tasks: map[string][]models.Task{
				"match": {{ID: 0, Text: "Create profile", Done: true}, {ID: 1, Text: "Video calls"}},
			},
			Moods:   []models.MoodEntry{{ID: "m1", Mood: constants.MoodGreat, At: start.Add(time.Hour)}},
			Journal: []models.JournalEntry{{ID: "j1", Text: "First call went well", At: start.Add(2 * time.Hour)}},
		}

		if err := store.SaveProfile(userID, want); err != nil {
			t.Fatalf("Failed to save profile: %v", err)
		}
		got, found, err := store.LoadProfile(userID)
		if err != nil || !found {
			t.Fatalf("Failed to load profile: found %v, err %v", found, err)
		}
		if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("Profile mismatch (-want +got):\n%s", diff)
		}

		ids, err := store.ListProfiles()
		if err != nil {
			t.Fatalf("Failed to list profiles: %v", err)
		}
		listed := false
		for _, id := range ids {
			listed = listed || id == userID
		}
		if !listed {
			t.Errorf("Expected %s in %v", userID, ids)
		}

		if err := store.DeleteProfile(userID); err != nil {
			t.Fatalf("Failed to delete profile: %v", err)
		}
		if _, found, _ := store.LoadProfile(userID); found {
			t.Error("Expected profile to be gone")
		}
	})

	t.Run("SchemaVersion", func(t *testing.T) {
		current, latest, err := store.SchemaVersion()
		if err != nil {
			t.Fatalf("SchemaVersion failed: %v", err)
		}
		if current != latest {
			t.Errorf("Expected schema at latest version, got %d of %d", current, latest)
		}
	})
}
