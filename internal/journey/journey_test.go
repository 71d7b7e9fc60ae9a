package journey

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/journeyline/internal/constants"
	"github.com/julianstephens/journeyline/internal/knowledge"
	"github.com/julianstephens/journeyline/internal/models"
)

func setupEngine(t *testing.T) *Engine {
	t.Helper()
	kb, err := knowledge.Default()
	if err != nil {
		t.Fatalf("failed to load knowledge base: %v", err)
	}
	return New(kb)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 9, 0, 0, 0, time.UTC)
}

func startedCarrier(t *testing.T, e *Engine, stage string) models.UserProfile {
	t.Helper()
	p, err := e.Begin(models.UserProfile{}, Onboarding{
		Role:         constants.RoleCarrier,
		Jurisdiction: "California",
		Stage:        stage,
	}, date(2026, time.January, 5))
	if err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	return p
}

func TestStagesFor_UnknownRole(t *testing.T) {
	e := setupEngine(t)
	_, err := e.StagesFor("donor")
	var roleErr *UnknownRoleError
	if !errors.As(err, &roleErr) {
		t.Fatalf("expected UnknownRoleError, got %v", err)
	}
	if roleErr.Role != "donor" {
		t.Errorf("expected role donor, got %q", roleErr.Role)
	}
}

func TestCurrentStageIndex(t *testing.T) {
	e := setupEngine(t)
	tests := []struct {
		name    string
		profile models.UserProfile
		want    int
	}{
		{"first stage", models.UserProfile{Role: constants.RoleCarrier, Stage: "research"}, 0},
		{"later stage", models.UserProfile{Role: constants.RoleCarrier, Stage: "legal"}, 3},
		{"unset stage", models.UserProfile{Role: constants.RoleCarrier}, -1},
		{"stage of other role", models.UserProfile{Role: constants.RoleCarrier, Stage: "no-such"}, -1},
		{"unknown role", models.UserProfile{Role: "donor", Stage: "research"}, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.CurrentStageIndex(tt.profile); got != tt.want {
				t.Errorf("CurrentStageIndex() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestProgress(t *testing.T) {
	tests := []struct {
		name  string
		index int
		n     int
		want  float64
	}{
		{"first of many", 0, 7, 0},
		{"last of many", 6, 7, 100},
		{"middle", 1, 3, 50},
		{"single stage", 0, 1, 0},
		{"empty list", 0, 0, 0},
		{"not found", -1, 7, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Progress(tt.index, tt.n); got != tt.want {
				t.Errorf("Progress(%d, %d) = %v, want %v", tt.index, tt.n, got, tt.want)
			}
		})
	}
}

func TestProgressPercent_Monotonic(t *testing.T) {
	e := setupEngine(t)
	for _, role := range constants.Roles {
		stages, err := e.StagesFor(role)
		if err != nil {
			t.Fatalf("StagesFor(%s): %v", role, err)
		}
		prev := -1.0
		for i, s := range stages {
			got := e.ProgressPercent(models.UserProfile{Role: role, Stage: s.ID})
			if got < prev {
				t.Errorf("%s: progress decreased at stage %s: %v < %v", role, s.ID, got, prev)
			}
			if i == 0 && got != 0 {
				t.Errorf("%s: first stage progress = %v, want 0", role, got)
			}
			if i == len(stages)-1 && got != 100 {
				t.Errorf("%s: last stage progress = %v, want 100", role, got)
			}
			prev = got
		}
	}
}

func TestProject_TwoStages(t *testing.T) {
	start := date(2026, time.March, 2)
	stages := []models.Stage{
		{ID: "a", Name: "A", Weeks: 2},
		{ID: "b", Name: "B", Weeks: 4},
	}
	got := Project(start, stages, 1)
	want := []models.TimelineEntry{
		{StageID: "a", Name: "A", Start: start, End: start.AddDate(0, 0, 14), Status: constants.StageDone},
		{StageID: "b", Name: "B", Start: start.AddDate(0, 0, 14), End: start.AddDate(0, 0, 42), Status: constants.StageCurrent},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Project() mismatch (-want +got):\n%s", diff)
	}
}

func TestProjectTimeline(t *testing.T) {
	e := setupEngine(t)

	t.Run("not started", func(t *testing.T) {
		p := models.UserProfile{Role: constants.RoleCarrier, Stage: "research"}
		if got := e.ProjectTimeline(p); len(got) != 0 {
			t.Errorf("expected empty timeline, got %d entries", len(got))
		}
	})

	t.Run("contiguous with statuses", func(t *testing.T) {
		p := startedCarrier(t, e, "legal")
		entries := e.ProjectTimeline(p)
		stages, _ := e.StagesFor(constants.RoleCarrier)
		if len(entries) != len(stages) {
			t.Fatalf("expected %d entries, got %d", len(stages), len(entries))
		}
		if !entries[0].Start.Equal(*p.StartDate) {
			t.Errorf("first entry should start at the start date")
		}
		for i := 1; i < len(entries); i++ {
			if !entries[i].Start.Equal(entries[i-1].End) {
				t.Errorf("entry %d does not start where entry %d ends", i, i-1)
			}
		}
		wantStatus := []constants.StageStatus{
			constants.StageDone, constants.StageDone, constants.StageDone,
			constants.StageCurrent,
			constants.StageFuture, constants.StageFuture, constants.StageFuture,
		}
		for i, entry := range entries {
			if entry.Status != wantStatus[i] {
				t.Errorf("entry %s status = %s, want %s", entry.StageID, entry.Status, wantStatus[i])
			}
		}
	})

	t.Run("unknown stage marks everything future", func(t *testing.T) {
		p := startedCarrier(t, e, "research")
		p.Stage = "gone"
		for _, entry := range e.ProjectTimeline(p) {
			if entry.Status != constants.StageFuture {
				t.Errorf("entry %s status = %s, want future", entry.StageID, entry.Status)
			}
		}
	})
}

func TestProjectedEnd(t *testing.T) {
	if _, ok := ProjectedEnd(nil); ok {
		t.Error("expected no end for empty timeline")
	}
	start := date(2026, time.March, 2)
	entries := Project(start, []models.Stage{{ID: "a", Weeks: 1}, {ID: "b", Weeks: 1}}, 0)
	end, ok := ProjectedEnd(entries)
	if !ok || !end.Equal(start.AddDate(0, 0, 14)) {
		t.Errorf("ProjectedEnd() = %v, %v", end, ok)
	}
}

func TestDaysInJourney(t *testing.T) {
	start := date(2026, time.January, 5)
	p := models.UserProfile{StartDate: &start}
	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"same day", start.Add(3 * time.Hour), 0},
		{"ten days", start.AddDate(0, 0, 10), 10},
		{"before start", start.AddDate(0, 0, -1), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysInJourney(p, tt.now); got != tt.want {
				t.Errorf("DaysInJourney() = %d, want %d", got, tt.want)
			}
		})
	}
	if got := DaysInJourney(models.UserProfile{}, start); got != 0 {
		t.Errorf("unstarted journey should report 0 days, got %d", got)
	}
}
