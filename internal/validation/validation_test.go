package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/journeyline/internal/constants"
	"github.com/julianstephens/journeyline/internal/knowledge"
	"github.com/julianstephens/journeyline/internal/models"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func setupValidator(t *testing.T) *Validator {
	t.Helper()
	kb, err := knowledge.Default()
	if err != nil {
		t.Fatalf("knowledge.Default() failed: %v", err)
	}
	return New(kb)
}

func validProfile() models.UserProfile {
	start := now.AddDate(0, 0, -30)
	return models.UserProfile{
		Role:         constants.RoleCarrier,
		Jurisdiction: "California",
		Counterpart:  constants.UnknownJurisdiction,
		Stage:        "match",
		StartDate:    &start,
		Tasks: map[string][]models.Task{
			"match": {
				{ID: 0, Text: "Create profile"},
				{ID: 1, Text: "Video calls"},
				{ID: 2, Text: "Discuss expectations"},
				{ID: 3, Text: "Confirm match"},
			},
		},
		Moods: []models.MoodEntry{
			{ID: "m1", Mood: constants.MoodGood, At: start},
			{ID: "m2", Mood: constants.MoodHard, At: start.Add(time.Hour)},
		},
		Journal: []models.JournalEntry{
			{ID: "j1", Text: "Started", At: start},
		},
	}
}

func hasConflict(result ValidationResult, want constants.ConflictType) bool {
	for _, c := range result.Conflicts {
		if c.Type == want {
			return true
		}
	}
	return false
}

func TestValidateProfile_NoConflicts(t *testing.T) {
	v := setupValidator(t)

	result := v.ValidateProfile(validProfile(), now)
	if result.HasConflicts() {
		t.Errorf("unexpected conflicts:\n%s", result.FormatReport())
	}
	if got := result.FormatReport(); got != "No conflicts detected." {
		t.Errorf("FormatReport() = %q", got)
	}
}

func TestValidateProfile_NotBegun(t *testing.T) {
	v := setupValidator(t)

	if result := v.ValidateProfile(models.UserProfile{}, now); result.HasConflicts() {
		t.Errorf("zero profile reported conflicts:\n%s", result.FormatReport())
	}
}

func TestValidateProfile_Conflicts(t *testing.T) {
	v := setupValidator(t)

	tests := []struct {
		name      string
		mutate    func(p *models.UserProfile)
		want      constants.ConflictType
		wantError bool
	}{
		{
			name:      "unknown role",
			mutate:    func(p *models.UserProfile) { p.Role = "astronaut" },
			want:      constants.ConflictUnknownRole,
			wantError: true,
		},
		{
			name:      "unknown stage",
			mutate:    func(p *models.UserProfile) { p.Stage = "orbit" },
			want:      constants.ConflictUnknownStage,
			wantError: true,
		},
		{
			name:      "unknown jurisdiction",
			mutate:    func(p *models.UserProfile) { p.Jurisdiction = "Atlantis" },
			want:      constants.ConflictUnknownJurisdiction,
			wantError: true,
		},
		{
			name:      "unknown counterpart jurisdiction",
			mutate:    func(p *models.UserProfile) { p.Counterpart = "Narnia" },
			want:      constants.ConflictUnknownJurisdiction,
			wantError: true,
		},
		{
			name:      "missing start date",
			mutate:    func(p *models.UserProfile) { p.StartDate = nil },
			want:      constants.ConflictMissingStartDate,
			wantError: true,
		},
		{
			name: "future start date",
			mutate: func(p *models.UserProfile) {
				future := now.AddDate(0, 0, 3)
				p.StartDate = &future
			},
			want: constants.ConflictFutureTimestamp,
		},
		{
			name: "task list drift",
			mutate: func(p *models.UserProfile) {
				p.Tasks["match"] = append(p.Tasks["match"], models.Task{ID: 4, Text: "Extra"})
			},
			want: constants.ConflictTaskTemplateDrift,
		},
		{
			name: "checklist for a stage the role lacks",
			mutate: func(p *models.UserProfile) {
				p.Tasks["orbit"] = []models.Task{{ID: 0, Text: "x"}}
			},
			want: constants.ConflictTaskTemplateDrift,
		},
		{
			name:      "unknown mood",
			mutate:    func(p *models.UserProfile) { p.Moods[0].Mood = "Ecstatic" },
			want:      constants.ConflictUnknownMood,
			wantError: true,
		},
		{
			name: "moods out of order",
			mutate: func(p *models.UserProfile) {
				p.Moods[0], p.Moods[1] = p.Moods[1], p.Moods[0]
			},
			want: constants.ConflictTimestampOrder,
		},
		{
			name: "journal in the future",
			mutate: func(p *models.UserProfile) {
				p.Journal = append(p.Journal, models.JournalEntry{ID: "j2", Text: "later", At: now.Add(time.Hour)})
			},
			want: constants.ConflictFutureTimestamp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProfile()
			tt.mutate(&p)

			result := v.ValidateProfile(p, now)
			if !hasConflict(result, tt.want) {
				t.Fatalf("expected %s conflict, got:\n%s", tt.want, result.FormatReport())
			}
			if result.HasErrors() != tt.wantError {
				t.Errorf("HasErrors() = %v, want %v", result.HasErrors(), tt.wantError)
			}
		})
	}
}

func TestValidateProfile_ClockSkewTolerated(t *testing.T) {
	v := setupValidator(t)

	p := validProfile()
	p.Journal = append(p.Journal, models.JournalEntry{ID: "j2", Text: "now-ish", At: now.Add(time.Minute)})
	if result := v.ValidateProfile(p, now); result.HasConflicts() {
		t.Errorf("small clock skew reported:\n%s", result.FormatReport())
	}
}

func TestFormatReport_IncludesSeverity(t *testing.T) {
	result := ValidationResult{Conflicts: []Conflict{
		{Type: constants.ConflictUnknownRole, Severity: SeverityError, Description: "Unknown role \"x\""},
	}}
	if got := result.FormatReport(); !strings.Contains(got, "[error] Unknown role") {
		t.Errorf("FormatReport() = %q", got)
	}
}

func TestAutoFix_SortsEntries(t *testing.T) {
	v := setupValidator(t)

	p := validProfile()
	p.Moods[0], p.Moods[1] = p.Moods[1], p.Moods[0]
	p.Journal = append(p.Journal, models.JournalEntry{ID: "j0", Text: "earlier", At: p.Journal[0].At.Add(-time.Hour)})

	result := v.ValidateProfile(p, now)
	fixed, actions := AutoFix(result.Conflicts, p)
	if len(actions) != 2 {
		t.Fatalf("AutoFix() took %d actions, want 2", len(actions))
	}
	if again := v.ValidateProfile(fixed, now); again.HasConflicts() {
		t.Errorf("conflicts remain after AutoFix:\n%s", again.FormatReport())
	}
	if p.Moods[0].ID != "m2" {
		t.Error("AutoFix() modified its input")
	}
}

func TestAutoFix_LeavesOtherConflicts(t *testing.T) {
	p := validProfile()
	conflicts := []Conflict{{Type: constants.ConflictUnknownMood, Severity: SeverityError, Items: []string{"m1"}}}

	_, actions := AutoFix(conflicts, p)
	if len(actions) != 0 {
		t.Errorf("AutoFix() acted on an unfixable conflict: %+v", actions)
	}
}
