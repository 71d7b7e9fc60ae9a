package journey

import "github.com/julianstephens/journeyline/internal/models"

// MaterializeTasks creates the checklist for stage from its template the
// first time it is needed. An existing checklist is never touched.
func MaterializeTasks(p models.UserProfile, stage models.Stage) models.UserProfile {
	if _, ok := p.Tasks[stage.ID]; ok {
		return p
	}
	out := p.Clone()
	if out.Tasks == nil {
		out.Tasks = make(map[string][]models.Task)
	}
	tasks := make([]models.Task, len(stage.Tasks))
	for i, text := range stage.Tasks {
		tasks[i] = models.Task{ID: i, Text: text}
	}
	out.Tasks[stage.ID] = tasks
	return out
}

// ToggleTask flips the done flag of one task. Unknown stages or task ids
// leave the profile unchanged.
func ToggleTask(p models.UserProfile, stageID string, taskID int) models.UserProfile {
	tasks, ok := p.Tasks[stageID]
	if !ok {
		return p
	}
	for i, t := range tasks {
		if t.ID != taskID {
			continue
		}
		out := p.Clone()
		out.Tasks[stageID][i].Done = !t.Done
		return out
	}
	return p
}

// CompletionCount returns how many tasks are done out of the total.
func CompletionCount(tasks []models.Task) (done, total int) {
	for _, t := range tasks {
		if t.Done {
			done++
		}
	}
	return done, len(tasks)
}

// EnsureCurrentTasks materializes the checklist of the profile's current stage.
func (e *Engine) EnsureCurrentTasks(p models.UserProfile) models.UserProfile {
	stage, ok := e.Stage(p.Role, p.Stage)
	if !ok {
		return p
	}
	return MaterializeTasks(p, stage)
}
