package models

import (
	"strings"

	"github.com/julianstephens/journeyline/internal/constants"
)

// Article is a long-form knowledge base entry
type Article struct {
	ID       string `yaml:"id" json:"id" validate:"required"`
	Title    string `yaml:"title" json:"title" validate:"required"`
	Category string `yaml:"category" json:"category" validate:"required,oneof=Medical Legal Financial Wellness"`
	Body     string `yaml:"-" json:"body" validate:"required"`
}

// ReadMinutes estimates reading time at a fixed words-per-minute rate, rounded up.
// Markdown heading and bullet markers are not counted as words.
func (a Article) ReadMinutes() int {
	words := 0
	for _, f := range strings.Fields(a.Body) {
		if strings.Trim(f, "#-") == "" {
			continue
		}
		words++
	}
	wpm := constants.WordsPerMinuteReadingSpeed
	return (words + wpm - 1) / wpm
}

// JurisdictionFact is curated legal reference data for one jurisdiction
type JurisdictionFact struct {
	Jurisdiction string                 `yaml:"jurisdiction" json:"jurisdiction" validate:"required"`
	Favorability constants.Favorability `yaml:"favorability" json:"favorability" validate:"oneof=favorable moderate restrictive"`
	PreBirth     bool                   `yaml:"prebirth" json:"prebirth"`
	Notes        string                 `yaml:"notes" json:"notes" validate:"required"`
}

// FocusItem is one of the day's highest-priority actions
type FocusItem struct {
	Title       string `yaml:"title" json:"title" validate:"required"`
	Description string `yaml:"description" json:"description" validate:"required"`
	ArticleID   string `yaml:"article,omitempty" json:"article_id,omitempty"`
}

// Reminder is a per-stage nudge
type Reminder struct {
	Title       string `yaml:"title" json:"title" validate:"required"`
	Description string `yaml:"description" json:"description" validate:"required"`
	Urgent      bool   `yaml:"urgent" json:"urgent"`
}

// DailyGuide is the greeting block shown at the top of the day
type DailyGuide struct {
	Greeting          string `yaml:"greeting" json:"greeting" validate:"required"`
	Message           string `yaml:"message" json:"message" validate:"required"`
	Action            string `yaml:"action" json:"action" validate:"required"`
	ActionDescription string `yaml:"action_description" json:"action_description"`
	ArticleID         string `yaml:"article" json:"article_id,omitempty"`
}

// HardMoment is support content for a difficult situation
type HardMoment struct {
	ID    string `yaml:"id" json:"id" validate:"required"`
	Title string `yaml:"title" json:"title" validate:"required"`
	Body  string `yaml:"body" json:"body" validate:"required"`
}
