package constants

import (
	tea "github.com/charmbracelet/bubbletea"
)

// ConflictType represents the type of validation conflict
type ConflictType string

// SessionState represents the current state of the TUI application
type SessionState int

// ConfirmationMsg is a message to trigger a confirmation dialog
type ConfirmationMsg struct {
	Message string
	Action  func() tea.Cmd
}

const (
	AppName            = "journeyline"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/journeyline/journeyline.db"
	Version            = "v0.1.0"

	// Environment variables
	EnvDBConnection = "JOURNEYLINE_DB_CONNECTION"
	EnvUser         = "JOURNEYLINE_USER"
	EnvFileName     = ".env"

	// LockfileName marks an interactive session holding the store
	LockfileName = "journeyline.lock"

	// Save pipeline
	SaveBreakerName          = "profile-save"
	SaveBreakerMaxFailures   = 3
	SaveBreakerOpenTimeout   = 30 // seconds
	SaveBreakerHalfOpenCalls = 1

	// Journal preview size used by status and the TUI
	RecentJournalLimit = 4

	// Conflict Types
	ConflictUnknownRole         ConflictType = "unknown_role"
	ConflictUnknownStage        ConflictType = "unknown_stage"
	ConflictUnknownJurisdiction ConflictType = "unknown_jurisdiction"
	ConflictTaskTemplateDrift   ConflictType = "task_template_drift"
	ConflictUnknownMood         ConflictType = "unknown_mood"
	ConflictTimestampOrder      ConflictType = "timestamp_order"
	ConflictFutureTimestamp     ConflictType = "future_timestamp"
	ConflictMissingStartDate    ConflictType = "missing_start_date"
)

// Session States
const (
	StateToday SessionState = iota
	StateTimeline
	StateTasks
	StateAsk
	StateJournal
	StateArticle
	StateAddJournal
	StateConfirmReset
)
