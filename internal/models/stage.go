package models

import (
	"time"

	"github.com/julianstephens/journeyline/internal/constants"
)

// Stage is an immutable phase definition for one role
type Stage struct {
	ID       string   `yaml:"id" json:"id" validate:"required"`
	Name     string   `yaml:"name" json:"name" validate:"required"`
	Weeks    int      `yaml:"weeks" json:"weeks" validate:"gt=0"`
	Duration string   `yaml:"duration" json:"duration" validate:"required"`
	Tasks    []string `yaml:"tasks" json:"tasks" validate:"min=1,dive,required"`
	Articles []string `yaml:"articles" json:"articles,omitempty"`
}

// TimelineEntry is a projected date range for a stage. It is derived, never stored.
type TimelineEntry struct {
	StageID string                `json:"stage_id"`
	Name    string                `json:"name"`
	Start   time.Time             `json:"start"`
	End     time.Time             `json:"end"`
	Status  constants.StageStatus `json:"status"`
}
