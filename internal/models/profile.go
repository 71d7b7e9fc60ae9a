package models

import (
	"time"

	"github.com/julianstephens/journeyline/internal/constants"
)

// Task is one checklist item of a stage. ID is its position in the stage's list.
type Task struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// MoodEntry is an append-only mood log record
type MoodEntry struct {
	ID   string         `json:"id"`
	Mood constants.Mood `json:"mood"`
	At   time.Time      `json:"at"`
}

// JournalEntry is an append-only free-text journal record
type JournalEntry struct {
	ID   string    `json:"id"`
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

// UserProfile is everything the engine knows about one user's journey.
// Operations never mutate a profile in place; they return an updated copy.
type UserProfile struct {
	Role         constants.Role    `json:"role"`
	Jurisdiction string            `json:"jurisdiction"`
	Counterpart  string            `json:"counterpart_jurisdiction"`
	Name         string            `json:"name"`
	Stage        string            `json:"stage"`
	StartDate    *time.Time        `json:"start_date,omitempty"`
	Tasks        map[string][]Task `json:"tasks"`
	Moods        []MoodEntry       `json:"moods"`
	Journal      []JournalEntry    `json:"journal"`
}

// Started reports whether the journey has a start timestamp.
func (p UserProfile) Started() bool {
	return p.StartDate != nil && !p.StartDate.IsZero()
}

// HasCounterpart reports whether the other party's jurisdiction is known.
func (p UserProfile) HasCounterpart() bool {
	return p.Counterpart != "" && p.Counterpart != constants.UnknownJurisdiction
}

// Clone returns a deep copy so callers can derive a new profile safely.
func (p UserProfile) Clone() UserProfile {
	out := p
	if p.StartDate != nil {
		start := *p.StartDate
		out.StartDate = &start
	}
	if p.Tasks != nil {
		out.Tasks = make(map[string][]Task, len(p.Tasks))
		for id, tasks := range p.Tasks {
			out.Tasks[id] = append([]Task(nil), tasks...)
		}
	}
	if p.Moods != nil {
		out.Moods = append([]MoodEntry(nil), p.Moods...)
	}
	if p.Journal != nil {
		out.Journal = append([]JournalEntry(nil), p.Journal...)
	}
	return out
}
