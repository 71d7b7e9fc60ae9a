package constants

const (
	// Settings keys
	SettingCurrentUser       = "current_user"
	SettingDisplayIdentifier = "display_identifier"
	SettingCreatedAt         = "created_at"
)
