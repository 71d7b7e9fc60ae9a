package storage

import (
	"errors"

	"github.com/julianstephens/journeyline/internal/models"
)

// ErrProfileNotFound is returned when a user has no stored profile
var ErrProfileNotFound = errors.New("profile not found")

// ErrNotInitialized is returned by Load when the store has never been initialized
var ErrNotInitialized = errors.New("storage not initialized, run 'journeyline init' first")

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Profiles
	// LoadProfile reports found=false, without an error, for users that
	// have never saved a profile.
	LoadProfile(userID string) (models.UserProfile, bool, error)
	// SaveProfile replaces everything stored for the user in one step.
	SaveProfile(userID string, profile models.UserProfile) error
	// DeleteProfile removes the user's profile. Missing profiles are not an error.
	DeleteProfile(userID string) error
	ListProfiles() ([]string, error)

	// Utils
	GetConfigPath() string
}

// SchemaInspector is implemented by SQL-backed providers
type SchemaInspector interface {
	Ping() error
	SchemaVersion() (current, latest int, err error)
}

// Migrator is implemented by providers with a versioned schema
type Migrator interface {
	Migrate(logFn func(string)) (int, error)
}

// RequireProfile loads a profile and turns a miss into ErrProfileNotFound.
func RequireProfile(p Provider, userID string) (models.UserProfile, error) {
	profile, found, err := p.LoadProfile(userID)
	if err != nil {
		return models.UserProfile{}, err
	}
	if !found {
		return models.UserProfile{}, ErrProfileNotFound
	}
	return profile, nil
}
