package progress

import (
	"github.com/julianstephens/journeyline/internal/cli"
	"github.com/julianstephens/journeyline/internal/journey"
	"github.com/julianstephens/journeyline/internal/utils"
)

type TimelineCmd struct{}

func (c *TimelineCmd) Run(ctx *cli.Context) error {
	p, err := ctx.StartedProfile()
	if err != nil {
		return err
	}

	entries := ctx.Engine.ProjectTimeline(p)
	for _, e := range entries {
		stage, _ := ctx.Engine.Stage(p.Role, e.StageID)
		ctx.Printf("%s %-22s %s → %s  (%s)\n",
			statusIcon(e.Status), e.Name, utils.FormatDate(e.Start), utils.FormatDate(e.End), stage.Duration)
	}
	if end, ok := journey.ProjectedEnd(entries); ok {
		ctx.Println()
		ctx.Printf("Projected finish: %s. Dates use typical stage lengths and do not move as you progress.\n", utils.FormatDate(end))
	}
	return nil
}
