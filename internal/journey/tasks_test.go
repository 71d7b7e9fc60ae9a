package journey

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/journeyline/internal/models"
)

var testStage = models.Stage{
	ID:    "legal",
	Name:  "Contracts",
	Weeks: 3,
	Tasks: []string{"Get attorney", "Review contract", "Sign"},
}

func TestMaterializeTasks(t *testing.T) {
	p := MaterializeTasks(models.UserProfile{}, testStage)
	want := []models.Task{
		{ID: 0, Text: "Get attorney"},
		{ID: 1, Text: "Review contract"},
		{ID: 2, Text: "Sign"},
	}
	if diff := cmp.Diff(want, p.Tasks["legal"]); diff != "" {
		t.Errorf("tasks mismatch (-want +got):\n%s", diff)
	}
}

func TestMaterializeTasks_Idempotent(t *testing.T) {
	p := MaterializeTasks(models.UserProfile{}, testStage)
	p = ToggleTask(p, "legal", 1)

	again := MaterializeTasks(p, testStage)
	if diff := cmp.Diff(p, again); diff != "" {
		t.Errorf("second materialize changed the profile (-before +after):\n%s", diff)
	}

	changed := testStage
	changed.Tasks = []string{"Something else"}
	again = MaterializeTasks(p, changed)
	if len(again.Tasks["legal"]) != 3 || !again.Tasks["legal"][1].Done {
		t.Error("existing checklist must survive template changes")
	}
}

func TestToggleTask(t *testing.T) {
	base := MaterializeTasks(models.UserProfile{}, testStage)

	t.Run("flips only the target", func(t *testing.T) {
		p := ToggleTask(base, "legal", 2)
		for _, task := range p.Tasks["legal"] {
			if task.Done != (task.ID == 2) {
				t.Errorf("task %d done = %v", task.ID, task.Done)
			}
		}
		if base.Tasks["legal"][2].Done {
			t.Error("input profile was mutated")
		}
	})

	t.Run("self inverse", func(t *testing.T) {
		p := ToggleTask(ToggleTask(base, "legal", 0), "legal", 0)
		if diff := cmp.Diff(base, p); diff != "" {
			t.Errorf("double toggle changed the profile:\n%s", diff)
		}
	})

	t.Run("unknown task is a no-op", func(t *testing.T) {
		if diff := cmp.Diff(base, ToggleTask(base, "legal", 9)); diff != "" {
			t.Errorf("unexpected change:\n%s", diff)
		}
		if diff := cmp.Diff(base, ToggleTask(base, "transfer", 0)); diff != "" {
			t.Errorf("unexpected change:\n%s", diff)
		}
	})
}

func TestCompletionCount(t *testing.T) {
	done, total := CompletionCount(nil)
	if done != 0 || total != 0 {
		t.Errorf("CompletionCount(nil) = %d/%d", done, total)
	}
	p := MaterializeTasks(models.UserProfile{}, testStage)
	p = ToggleTask(p, "legal", 0)
	p = ToggleTask(p, "legal", 2)
	done, total = CompletionCount(p.Tasks["legal"])
	if done != 2 || total != 3 {
		t.Errorf("CompletionCount() = %d/%d, want 2/3", done, total)
	}
}
