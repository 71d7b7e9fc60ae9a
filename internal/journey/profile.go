package journey

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/journeyline/internal/constants"
	apperrors "github.com/julianstephens/journeyline/internal/errors"
	"github.com/julianstephens/journeyline/internal/models"
)

// Onboarding is the information collected before a journey starts
type Onboarding struct {
	Role         constants.Role
	Jurisdiction string
	Counterpart  string
	Stage        string
	Name         string
}

// Begin starts a journey: it replaces the profile's identity fields, stamps
// the start date, and materializes the first stage's checklist.
func (e *Engine) Begin(p models.UserProfile, o Onboarding, now time.Time) (models.UserProfile, error) {
	stages, err := e.StagesFor(o.Role)
	if err != nil {
		return p, err
	}
	stageID := o.Stage
	if stageID == "" {
		stageID = stages[0].ID
	}
	if indexOf(stages, stageID) < 0 {
		return p, e.unknownStage(o.Role, stageID)
	}
	if err := e.checkJurisdiction(o.Jurisdiction, false); err != nil {
		return p, err
	}
	counterpart := o.Counterpart
	if counterpart == "" {
		counterpart = constants.UnknownJurisdiction
	}
	if err := e.checkJurisdiction(counterpart, true); err != nil {
		return p, err
	}

	out := p.Clone()
	out.Role = o.Role
	out.Jurisdiction = o.Jurisdiction
	out.Counterpart = counterpart
	out.Name = strings.TrimSpace(o.Name)
	out.Stage = stageID
	start := now
	out.StartDate = &start
	return e.EnsureCurrentTasks(out), nil
}

// SetStage moves the profile to another stage of its role and materializes
// that stage's checklist.
func (e *Engine) SetStage(p models.UserProfile, stageID string) (models.UserProfile, error) {
	stages, err := e.StagesFor(p.Role)
	if err != nil {
		return p, err
	}
	if indexOf(stages, stageID) < 0 {
		return p, e.unknownStage(p.Role, stageID)
	}
	out := p.Clone()
	out.Stage = stageID
	return e.EnsureCurrentTasks(out), nil
}

// SetJurisdiction changes the user's home jurisdiction.
func (e *Engine) SetJurisdiction(p models.UserProfile, jurisdiction string) (models.UserProfile, error) {
	if err := e.checkJurisdiction(jurisdiction, false); err != nil {
		return p, err
	}
	out := p.Clone()
	out.Jurisdiction = jurisdiction
	return out, nil
}

// SetCounterpart changes the other party's jurisdiction. "unknown" is allowed.
func (e *Engine) SetCounterpart(p models.UserProfile, jurisdiction string) (models.UserProfile, error) {
	if err := e.checkJurisdiction(jurisdiction, true); err != nil {
		return p, err
	}
	out := p.Clone()
	out.Counterpart = jurisdiction
	return out, nil
}

// SetName changes the display name.
func SetName(p models.UserProfile, name string) models.UserProfile {
	out := p.Clone()
	out.Name = strings.TrimSpace(name)
	return out
}

// LogMood appends a mood entry.
func LogMood(p models.UserProfile, entry models.MoodEntry) (models.UserProfile, error) {
	if _, ok := constants.ParseMood(string(entry.Mood)); !ok {
		return p, apperrors.NewUserError(
			fmt.Sprintf("unknown mood %q", entry.Mood),
			"use one of "+moodList(),
		)
	}
	out := p.Clone()
	out.Moods = append(out.Moods, entry)
	return out, nil
}

// AppendJournal appends a journal entry. Blank text is rejected.
func AppendJournal(p models.UserProfile, entry models.JournalEntry) (models.UserProfile, error) {
	entry.Text = strings.TrimSpace(entry.Text)
	if entry.Text == "" {
		return p, apperrors.NewUserError("journal entry is empty", "write something after the command")
	}
	out := p.Clone()
	out.Journal = append(out.Journal, entry)
	return out, nil
}

// RecentJournal returns up to limit entries, newest first. limit <= 0 means all.
func RecentJournal(p models.UserProfile, limit int) []models.JournalEntry {
	out := append([]models.JournalEntry(nil), p.Journal...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].At.After(out[j].At) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// RecentMoods returns up to limit mood entries, newest first. limit <= 0 means all.
func RecentMoods(p models.UserProfile, limit int) []models.MoodEntry {
	out := append([]models.MoodEntry(nil), p.Moods...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].At.After(out[j].At) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Reset returns the empty profile of a journey that has not begun.
func Reset() models.UserProfile {
	return models.UserProfile{}
}

func (e *Engine) checkJurisdiction(name string, allowUnknown bool) error {
	if allowUnknown && name == constants.UnknownJurisdiction {
		return nil
	}
	if e.kb.IsJurisdiction(name) {
		return nil
	}
	return apperrors.NewUserError(
		fmt.Sprintf("unknown jurisdiction %q", name),
		"use a full state name such as \"California\" or \"DC\"",
	)
}

func (e *Engine) unknownStage(role constants.Role, id string) error {
	stages, _ := e.kb.Stages(role)
	ids := make([]string, len(stages))
	for i, s := range stages {
		ids[i] = s.ID
	}
	return apperrors.NewUserError(
		fmt.Sprintf("unknown stage %q for role %s", id, role),
		"use one of "+strings.Join(ids, ", "),
	)
}

func moodList() string {
	names := make([]string, len(constants.Moods))
	for i, m := range constants.Moods {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}
