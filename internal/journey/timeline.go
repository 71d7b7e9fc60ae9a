package journey

import (
	"time"

	"github.com/julianstephens/journeyline/internal/constants"
	"github.com/julianstephens/journeyline/internal/models"
)

// ProjectTimeline projects calendar ranges for every stage of the profile's
// role. It returns nil when the journey has not started or the role is unknown.
func (e *Engine) ProjectTimeline(p models.UserProfile) []models.TimelineEntry {
	if !p.Started() {
		return nil
	}
	stages, ok := e.kb.Stages(p.Role)
	if !ok {
		return nil
	}
	return Project(*p.StartDate, stages, indexOf(stages, p.Stage))
}

// Project lays stages end to end from start using their nominal weeks.
// Dates never move based on how long earlier stages actually took.
func Project(start time.Time, stages []models.Stage, current int) []models.TimelineEntry {
	entries := make([]models.TimelineEntry, 0, len(stages))
	cursor := start
	for i, s := range stages {
		end := cursor.AddDate(0, 0, s.Weeks*7)
		entries = append(entries, models.TimelineEntry{
			StageID: s.ID,
			Name:    s.Name,
			Start:   cursor,
			End:     end,
			Status:  statusFor(i, current),
		})
		cursor = end
	}
	return entries
}

func statusFor(index, current int) constants.StageStatus {
	switch {
	case index < current:
		return constants.StageDone
	case index == current:
		return constants.StageCurrent
	default:
		return constants.StageFuture
	}
}

// ProjectedEnd returns the end date of the last projected stage.
func ProjectedEnd(entries []models.TimelineEntry) (time.Time, bool) {
	if len(entries) == 0 {
		return time.Time{}, false
	}
	return entries[len(entries)-1].End, true
}

// DaysInJourney counts whole days since the journey started. Journeys that
// have not started, or start in the future, report 0.
func DaysInJourney(p models.UserProfile, now time.Time) int {
	if !p.Started() || now.Before(*p.StartDate) {
		return 0
	}
	return int(now.Sub(*p.StartDate) / constants.Day)
}
