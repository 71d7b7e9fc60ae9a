package guidance

import (
	"testing"

	"github.com/julianstephens/journeyline/internal/constants"
	"github.com/julianstephens/journeyline/internal/knowledge"
	"github.com/julianstephens/journeyline/internal/models"
)

func setupSelector(t *testing.T) *Selector {
	t.Helper()
	kb, err := knowledge.Default()
	if err != nil {
		t.Fatalf("failed to load knowledge base: %v", err)
	}
	return New(kb)
}

func TestTodaysFocus(t *testing.T) {
	s := setupSelector(t)
	tests := []struct {
		name    string
		role    constants.Role
		stage   string
		wantLen int
	}{
		{"carrier research", constants.RoleCarrier, "research", 2},
		{"carrier transfer", constants.RoleCarrier, "transfer", 1},
		{"unknown stage", constants.RoleCarrier, "nope", 0},
		{"unknown role", "donor", "research", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.TodaysFocus(tt.role, tt.stage)
			if len(got) != tt.wantLen {
				t.Errorf("TodaysFocus() returned %d items, want %d", len(got), tt.wantLen)
			}
		})
	}
}

func TestReminderFor(t *testing.T) {
	s := setupSelector(t)
	r, ok := s.ReminderFor("legal")
	if !ok {
		t.Fatal("expected a reminder for legal")
	}
	if r.Title != "Verify escrow is funded" || !r.Urgent {
		t.Errorf("unexpected reminder: %+v", r)
	}
	if _, ok := s.ReminderFor("nope"); ok {
		t.Error("expected no reminder for unknown stage")
	}
}

func TestHardMoment(t *testing.T) {
	s := setupSelector(t)
	all := s.HardMoments(constants.RoleCarrier)
	if len(all) == 0 {
		t.Fatal("expected hard moments for carriers")
	}
	m, ok := s.HardMoment(constants.RoleCarrier, all[0].ID)
	if !ok || m.Title != all[0].Title {
		t.Errorf("HardMoment(%q) = %+v, %v", all[0].ID, m, ok)
	}
	if _, ok := s.HardMoment(constants.RoleCarrier, "missing"); ok {
		t.Error("expected miss for unknown id")
	}
}

func TestStageArticles(t *testing.T) {
	s := setupSelector(t)
	got := s.StageArticles(constants.RoleCarrier, "legal")
	want := []string{"contract", "escrow", "attorneys"}
	if len(got) != len(want) {
		t.Fatalf("expected %d articles, got %d", len(want), len(got))
	}
	for i, a := range got {
		if a.ID != want[i] {
			t.Errorf("article %d = %q, want %q", i, a.ID, want[i])
		}
	}
	if got := s.StageArticles(constants.RoleCarrier, "nope"); got != nil {
		t.Errorf("expected nil for unknown stage, got %v", got)
	}
}

func TestForProfile(t *testing.T) {
	s := setupSelector(t)

	today := s.ForProfile(models.UserProfile{Role: constants.RoleCarrier, Stage: "medical"})
	if !today.HasGuidance || today.Reminder == nil || len(today.Focus) == 0 {
		t.Errorf("expected guidance for medical stage: %+v", today)
	}

	empty := s.ForProfile(models.UserProfile{})
	if empty.HasGuidance || empty.Guide != nil || empty.Reminder != nil {
		t.Errorf("expected no guidance for an empty profile: %+v", empty)
	}
}
