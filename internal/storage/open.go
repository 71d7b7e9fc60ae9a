package storage

import (
	"errors"
	"fmt"
	"strings"

	apperrors "github.com/julianstephens/journeyline/internal/errors"
	"github.com/julianstephens/journeyline/internal/storage/postgres"
	"github.com/julianstephens/journeyline/internal/storage/sqlite"
	"github.com/julianstephens/journeyline/internal/utils"
)

// IsPostgresConnString reports whether config names a PostgreSQL database.
func IsPostgresConnString(config string) bool {
	return strings.HasPrefix(config, "postgres://") || strings.HasPrefix(config, "postgresql://")
}

// Open picks a provider for config without touching the backing store:
// a PostgreSQL URL, a .json file or, for anything else, a SQLite file.
func Open(config string) (Provider, error) {
	config = strings.TrimSpace(config)
	if config == "" {
		return nil, apperrors.NewUserError("no storage configured", "pass --config or set the database connection in your environment")
	}

	if IsPostgresConnString(config) {
		if _, err := postgres.ValidateConnString(config); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, apperrors.NewUserError(
					"PostgreSQL connection strings with embedded credentials are not allowed",
					"store it with 'journeyline keyring set', export it in the environment, or use a .pgpass file",
				)
			}
			return nil, err
		}
		return postgres.New(config), nil
	}

	path, err := utils.ExpandPath(config)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(strings.ToLower(path), ".json") {
		return NewJSONStore(path), nil
	}
	return sqlite.NewStore(path), nil
}

// Describe returns a log-safe label for the backend behind config.
func Describe(config string) string {
	if IsPostgresConnString(config) {
		return "postgresql"
	}
	if strings.HasSuffix(strings.ToLower(config), ".json") {
		return fmt.Sprintf("json (%s)", config)
	}
	return fmt.Sprintf("sqlite (%s)", config)
}
