package constants

import "time"

const (
	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimestampFormat is used when listing journal and mood entries
	TimestampFormat = "2006-01-02 15:04"

	// Day and Week are the nominal units the timeline is projected in
	Day  = 24 * time.Hour
	Week = 7 * Day
)
