package progress

import (
	"github.com/julianstephens/journeyline/internal/cli"
)

type StageCmd struct {
	List StageListCmd `cmd:"" default:"1" help:"List the stages of your journey."`
	Set  StageSetCmd  `cmd:"" help:"Move to another stage."`
}

type StageListCmd struct{}

func (c *StageListCmd) Run(ctx *cli.Context) error {
	p, err := ctx.StartedProfile()
	if err != nil {
		return err
	}
	stages, err := ctx.Engine.StagesFor(p.Role)
	if err != nil {
		return err
	}
	for _, s := range stages {
		marker := "  "
		if s.ID == p.Stage {
			marker = "▶ "
		}
		ctx.Printf("%s%-10s %-22s %s\n", marker, s.ID, s.Name, s.Duration)
	}
	return nil
}

type StageSetCmd struct {
	ID string `arg:"" help:"Stage id, as shown by 'journeyline stage'."`
}

func (c *StageSetCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.StartedProfile(); err != nil {
		return err
	}
	s, err := ctx.Session()
	if err != nil {
		return err
	}
	p, err := s.SetStage(c.ID)
	if err != nil {
		return err
	}
	stage, _ := ctx.Engine.Stage(p.Role, p.Stage)
	ctx.Printf("✓ Now at %q (%.0f%% of the journey)\n", stage.Name, ctx.Engine.ProgressPercent(p))
	return nil
}
