package validation

import (
	"fmt"
	"sort"
	"time"

	"github.com/julianstephens/journeyline/internal/constants"
	"github.com/julianstephens/journeyline/internal/knowledge"
	"github.com/julianstephens/journeyline/internal/models"
)

// Severity tells whether a conflict breaks the engine or is informational
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// ClockSkewTolerance is how far in the future a timestamp may be before it is
// reported
const ClockSkewTolerance = 5 * time.Minute

// Conflict represents a detected problem in a stored profile
type Conflict struct {
	Type        constants.ConflictType
	Severity    Severity
	Description string
	Items       []string // stage ids or entry ids involved
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// FixAction represents an action taken during auto-fix
type FixAction struct {
	Action         string
	SourceConflict Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// HasErrors ignores warnings.
func (vr *ValidationResult) HasErrors() bool {
	for _, c := range vr.Conflicts {
		if c.Severity == SeverityError {
			return true
		}
	}
	return false
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	report := "Conflicts detected:\n"
	for _, conflict := range vr.Conflicts {
		report += fmt.Sprintf("- [%s] %s\n", conflict.Severity, conflict.Description)
	}
	return report
}

// Validator checks stored profiles against the knowledge base
type Validator struct {
	kb *knowledge.Base
}

func New(kb *knowledge.Base) *Validator {
	return &Validator{kb: kb}
}

// ValidateProfile reports everything in p the engine would not produce
// itself. A profile that has never begun a journey has nothing to check.
func (v *Validator) ValidateProfile(p models.UserProfile, now time.Time) ValidationResult {
	result := ValidationResult{}
	add := func(t constants.ConflictType, sev Severity, items []string, format string, args ...interface{}) {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        t,
			Severity:    sev,
			Description: fmt.Sprintf(format, args...),
			Items:       items,
		})
	}

	if p.Role == "" && !p.Started() {
		return result
	}

	stages, roleKnown := v.kb.Stages(p.Role)
	if !roleKnown {
		add(constants.ConflictUnknownRole, SeverityError, nil, "Unknown role %q", p.Role)
	}

	if !p.Started() {
		add(constants.ConflictMissingStartDate, SeverityError, nil, "Journey has a role but no start date")
	} else if p.StartDate.After(now.Add(ClockSkewTolerance)) {
		add(constants.ConflictFutureTimestamp, SeverityWarning, nil, "Start date %s is in the future", p.StartDate.Format(constants.DateFormat))
	}

	if p.Jurisdiction != "" && !v.kb.IsJurisdiction(p.Jurisdiction) {
		add(constants.ConflictUnknownJurisdiction, SeverityError, []string{p.Jurisdiction}, "Unknown jurisdiction %q", p.Jurisdiction)
	}
	if p.Counterpart != "" && p.Counterpart != constants.UnknownJurisdiction && !v.kb.IsJurisdiction(p.Counterpart) {
		add(constants.ConflictUnknownJurisdiction, SeverityError, []string{p.Counterpart}, "Unknown counterpart jurisdiction %q", p.Counterpart)
	}

	if roleKnown {
		templates := make(map[string]models.Stage, len(stages))
		for _, s := range stages {
			templates[s.ID] = s
		}
		if _, ok := templates[p.Stage]; !ok {
			add(constants.ConflictUnknownStage, SeverityError, []string{p.Stage}, "Stage %q is not a %s stage", p.Stage, p.Role)
		}

		ids := make([]string, 0, len(p.Tasks))
		for id := range p.Tasks {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			tmpl, ok := templates[id]
			if !ok {
				add(constants.ConflictTaskTemplateDrift, SeverityWarning, []string{id}, "Checklist for unknown stage %q", id)
				continue
			}
			if got, want := len(p.Tasks[id]), len(tmpl.Tasks); got != want {
				add(constants.ConflictTaskTemplateDrift, SeverityWarning, []string{id},
					"Checklist for %q has %d tasks, template has %d", id, got, want)
			}
		}
	}

	var outOfOrder []string
	for i, m := range p.Moods {
		if _, ok := constants.ParseMood(string(m.Mood)); !ok {
			add(constants.ConflictUnknownMood, SeverityError, []string{m.ID}, "Mood entry %s has unknown label %q", m.ID, m.Mood)
		}
		if i > 0 && m.At.Before(p.Moods[i-1].At) {
			outOfOrder = append(outOfOrder, m.ID)
		}
		if m.At.After(now.Add(ClockSkewTolerance)) {
			add(constants.ConflictFutureTimestamp, SeverityWarning, []string{m.ID}, "Mood entry %s is dated in the future", m.ID)
		}
	}
	if len(outOfOrder) > 0 {
		add(constants.ConflictTimestampOrder, SeverityWarning, outOfOrder, "Mood log is out of order (%d entries)", len(outOfOrder))
	}

	outOfOrder = nil
	for i, j := range p.Journal {
		if i > 0 && j.At.Before(p.Journal[i-1].At) {
			outOfOrder = append(outOfOrder, j.ID)
		}
		if j.At.After(now.Add(ClockSkewTolerance)) {
			add(constants.ConflictFutureTimestamp, SeverityWarning, []string{j.ID}, "Journal entry %s is dated in the future", j.ID)
		}
	}
	if len(outOfOrder) > 0 {
		add(constants.ConflictTimestampOrder, SeverityWarning, outOfOrder, "Journal is out of order (%d entries)", len(outOfOrder))
	}

	return result
}

// AutoFix repairs the conflicts that can be fixed without losing user data
// and returns the repaired profile. Only ordering problems qualify.
func AutoFix(conflicts []Conflict, p models.UserProfile) (models.UserProfile, []FixAction) {
	actions := []FixAction{}
	out := p.Clone()

	for _, conflict := range conflicts {
		if conflict.Type != constants.ConflictTimestampOrder {
			continue
		}
		if isMoodConflict(conflict, out) {
			sort.SliceStable(out.Moods, func(i, j int) bool { return out.Moods[i].At.Before(out.Moods[j].At) })
			actions = append(actions, FixAction{Action: "Sorted mood log by time", SourceConflict: conflict})
			continue
		}
		sort.SliceStable(out.Journal, func(i, j int) bool { return out.Journal[i].At.Before(out.Journal[j].At) })
		actions = append(actions, FixAction{Action: "Sorted journal by time", SourceConflict: conflict})
	}

	return out, actions
}

func isMoodConflict(c Conflict, p models.UserProfile) bool {
	if len(c.Items) == 0 {
		return false
	}
	for _, m := range p.Moods {
		if m.ID == c.Items[0] {
			return true
		}
	}
	return false
}
