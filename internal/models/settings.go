package models

// Settings holds the persisted identity for the local installation
type Settings struct {
	CurrentUser       string `json:"current_user"`       // opaque stable user id
	DisplayIdentifier string `json:"display_identifier"` // e-mail or handle shown in the UI
	CreatedAt         string `json:"created_at"`         // RFC 3339
}
