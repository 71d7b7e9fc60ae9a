// Package guidance selects what to show a user on a given day: the stage
// reminder, up to two focus items, the daily guide and related articles.
// Missing table entries are normal and produce empty results.
package guidance

import (
	"github.com/julianstephens/journeyline/internal/constants"
	"github.com/julianstephens/journeyline/internal/knowledge"
	"github.com/julianstephens/journeyline/internal/models"
)

const maxFocusItems = 2

// Selector reads guidance tables from a knowledge base
type Selector struct {
	kb *knowledge.Base
}

// New creates a selector over kb.
func New(kb *knowledge.Base) *Selector {
	return &Selector{kb: kb}
}

// TodaysFocus returns at most two focus items for a role and stage.
func (s *Selector) TodaysFocus(role constants.Role, stageID string) []models.FocusItem {
	items := s.kb.Focus(role, stageID)
	if len(items) > maxFocusItems {
		items = items[:maxFocusItems]
	}
	return items
}

// ReminderFor returns the reminder for a stage, if any.
func (s *Selector) ReminderFor(stageID string) (models.Reminder, bool) {
	return s.kb.Reminder(stageID)
}

// DailyGuide returns the guide card for a role and stage, if any.
func (s *Selector) DailyGuide(role constants.Role, stageID string) (models.DailyGuide, bool) {
	return s.kb.Guide(role, stageID)
}

// HardMoments lists the support entries for a role.
func (s *Selector) HardMoments(role constants.Role) []models.HardMoment {
	return s.kb.HardMoments(role)
}

// HardMoment looks up one support entry by id.
func (s *Selector) HardMoment(role constants.Role, id string) (models.HardMoment, bool) {
	for _, m := range s.kb.HardMoments(role) {
		if m.ID == id {
			return m, true
		}
	}
	return models.HardMoment{}, false
}

// StageArticles resolves the articles linked from a stage. Ids without an
// article are skipped.
func (s *Selector) StageArticles(role constants.Role, stageID string) []models.Article {
	stages, ok := s.kb.Stages(role)
	if !ok {
		return nil
	}
	for _, st := range stages {
		if st.ID != stageID {
			continue
		}
		var out []models.Article
		for _, id := range st.Articles {
			if a, ok := s.kb.Article(id); ok {
				out = append(out, a)
			}
		}
		return out
	}
	return nil
}

// Today bundles everything the "today" view shows for a profile
type Today struct {
	Guide       *models.DailyGuide
	Reminder    *models.Reminder
	Focus       []models.FocusItem
	Articles    []models.Article
	HasGuidance bool
}

// ForProfile collects the day's guidance for the profile's current stage.
func (s *Selector) ForProfile(p models.UserProfile) Today {
	var t Today
	if g, ok := s.DailyGuide(p.Role, p.Stage); ok {
		t.Guide = &g
	}
	if r, ok := s.ReminderFor(p.Stage); ok {
		t.Reminder = &r
	}
	t.Focus = s.TodaysFocus(p.Role, p.Stage)
	t.Articles = s.StageArticles(p.Role, p.Stage)
	t.HasGuidance = t.Guide != nil || t.Reminder != nil || len(t.Focus) > 0
	return t
}
