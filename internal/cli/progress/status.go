package progress

import (
	"fmt"
	"strings"

	"github.com/julianstephens/journeyline/internal/cli"
	"github.com/julianstephens/journeyline/internal/constants"
	"github.com/julianstephens/journeyline/internal/journey"
	"github.com/julianstephens/journeyline/internal/models"
	"github.com/julianstephens/journeyline/internal/utils"
)

type StatusCmd struct{}

func (c *StatusCmd) Run(ctx *cli.Context) error {
	p, err := ctx.StartedProfile()
	if err != nil {
		return err
	}

	stages, err := ctx.Engine.StagesFor(p.Role)
	if err != nil {
		return err
	}
	idx := ctx.Engine.CurrentStageIndex(p)

	if p.Name != "" {
		ctx.Printf("%s · %s\n", p.Name, roleLabel(p.Role))
	} else {
		ctx.Println(roleLabel(p.Role))
	}
	ctx.Printf("State: %s", p.Jurisdiction)
	if badge, ok := ctx.KB.Badge(p.Jurisdiction); ok {
		ctx.Printf(" (%s)", badge)
	}
	ctx.Println()
	if p.HasCounterpart() {
		ctx.Printf("Other party: %s\n", p.Counterpart)
	}
	ctx.Println()

	stage, _ := ctx.Engine.Stage(p.Role, p.Stage)
	ctx.Printf("Stage %d of %d: %s\n", idx+1, len(stages), stage.Name)
	ctx.Printf("Progress: %s %.0f%%\n", bar(ctx.Engine.ProgressPercent(p), 20), ctx.Engine.ProgressPercent(p))
	ctx.Printf("Day %d of your journey (%s)\n", journey.DaysInJourney(p, ctx.Clock()), utils.HumanizeDays(journey.DaysInJourney(p, ctx.Clock())))

	done, total := journey.CompletionCount(p.Tasks[p.Stage])
	ctx.Printf("Tasks: %d/%d done\n", done, total)

	if end, ok := journey.ProjectedEnd(ctx.Engine.ProjectTimeline(p)); ok {
		ctx.Printf("Projected finish: %s\n", utils.FormatDate(end))
	}

	if moods := journey.RecentMoods(p, 1); len(moods) > 0 {
		ctx.Printf("Last mood: %s (%s)\n", moods[0].Mood, moods[0].At.Format(constants.TimestampFormat))
	}

	if entries := journey.RecentJournal(p, constants.RecentJournalLimit); len(entries) > 0 {
		ctx.Println()
		ctx.Println("Recent journal:")
		for _, e := range entries {
			ctx.Printf("  %s  %s\n", e.At.Format(constants.TimestampFormat), preview(e.Text, 60))
		}
	}
	return nil
}

func roleLabel(r constants.Role) string {
	switch r {
	case constants.RoleCarrier:
		return "Gestational carrier"
	case constants.RoleIntendedParent:
		return "Intended parent"
	}
	return string(r)
}

// bar renders pct (0-100) as a fixed-width text progress bar.
func bar(pct float64, width int) string {
	filled := int(pct / 100 * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}

func preview(text string, max int) string {
	text = strings.Join(strings.Fields(text), " ")
	r := []rune(text)
	if len(r) <= max {
		return text
	}
	return string(r[:max-1]) + "…"
}

func statusIcon(s constants.StageStatus) string {
	switch s {
	case constants.StageDone:
		return "✓"
	case constants.StageCurrent:
		return "▶"
	}
	return "·"
}

func checkbox(t models.Task) string {
	if t.Done {
		return "[x]"
	}
	return "[ ]"
}

func money(v int) string {
	s := fmt.Sprint(v)
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return "$" + b.String()
}
