package progress

import (
	"github.com/julianstephens/journeyline/internal/cli"
	"github.com/julianstephens/journeyline/internal/journey"
)

type TasksCmd struct {
	List   TasksListCmd   `cmd:"" default:"1" help:"Show a stage's checklist."`
	Toggle TasksToggleCmd `cmd:"" help:"Mark a task done or not done."`
}

type TasksListCmd struct {
	Stage string `help:"Stage id (defaults to the current stage)."`
}

func (c *TasksListCmd) Run(ctx *cli.Context) error {
	p, err := ctx.StartedProfile()
	if err != nil {
		return err
	}
	stageID := c.Stage
	if stageID == "" {
		stageID = p.Stage
	}

	tasks, ok := p.Tasks[stageID]
	if !ok {
		ctx.Printf("No checklist for %q yet.\n", stageID)
		return nil
	}
	stage, _ := ctx.Engine.Stage(p.Role, stageID)
	done, total := journey.CompletionCount(tasks)
	ctx.Printf("%s (%d/%d)\n", stage.Name, done, total)
	for _, t := range tasks {
		ctx.Printf("  %d %s %s\n", t.ID, checkbox(t), t.Text)
	}
	return nil
}

type TasksToggleCmd struct {
	ID    int    `arg:"" help:"Task id, as shown by 'journeyline tasks'."`
	Stage string `help:"Stage id (defaults to the current stage)."`
}

func (c *TasksToggleCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.StartedProfile(); err != nil {
		return err
	}
	s, err := ctx.Session()
	if err != nil {
		return err
	}
	p, err := s.ToggleTask(c.Stage, c.ID)
	if err != nil {
		return err
	}

	stageID := c.Stage
	if stageID == "" {
		stageID = p.Stage
	}
	t := p.Tasks[stageID][c.ID]
	ctx.Printf("%s %s\n", checkbox(t), t.Text)
	return nil
}
