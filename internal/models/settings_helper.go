package models

import (
	"fmt"
	"time"

	"github.com/julianstephens/journeyline/internal/constants"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}

	for key, value := range data {
		switch key {
		case constants.SettingCurrentUser:
			settings.CurrentUser = value
		case constants.SettingDisplayIdentifier:
			settings.DisplayIdentifier = value
		case constants.SettingCreatedAt:
			if value != "" {
				if _, err := time.Parse(time.RFC3339, value); err != nil {
					return Settings{}, fmt.Errorf("parsing %s: %w", constants.SettingCreatedAt, err)
				}
			}
			settings.CreatedAt = value
		}
	}

	return settings, nil
}

// SettingsToMap flattens settings into the key/value form stored by the providers.
func SettingsToMap(s Settings) map[string]string {
	return map[string]string{
		constants.SettingCurrentUser:       s.CurrentUser,
		constants.SettingDisplayIdentifier: s.DisplayIdentifier,
		constants.SettingCreatedAt:         s.CreatedAt,
	}
}
