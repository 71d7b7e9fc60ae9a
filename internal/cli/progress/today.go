package progress

import (
	"github.com/julianstephens/journeyline/internal/cli"
)

type TodayCmd struct{}

func (c *TodayCmd) Run(ctx *cli.Context) error {
	p, err := ctx.StartedProfile()
	if err != nil {
		return err
	}

	today := ctx.Guidance.ForProfile(p)
	if !today.HasGuidance {
		ctx.Println("Nothing specific for today. Check your tasks with 'journeyline tasks'.")
		return nil
	}

	if g := today.Guide; g != nil {
		greeting := g.Greeting
		if p.Name != "" {
			greeting += ", " + p.Name
		}
		ctx.Println(greeting)
		ctx.Println(g.Message)
		ctx.Println()
		ctx.Printf("Today: %s\n", g.Action)
		if g.ActionDescription != "" {
			ctx.Printf("  %s\n", g.ActionDescription)
		}
		ctx.Println()
	}

	if r := today.Reminder; r != nil {
		prefix := "Reminder"
		if r.Urgent {
			prefix = "❗ Reminder"
		}
		ctx.Printf("%s: %s\n  %s\n\n", prefix, r.Title, r.Description)
	}

	if len(today.Focus) > 0 {
		ctx.Println("Focus:")
		for _, f := range today.Focus {
			ctx.Printf("  • %s: %s\n", f.Title, f.Description)
		}
		ctx.Println()
	}

	if len(today.Articles) > 0 {
		ctx.Println("Read next:")
		for _, a := range today.Articles {
			ctx.Printf("  %-14s %s (%d min)\n", a.ID, a.Title, a.ReadMinutes())
		}
	}
	return nil
}
