package progress

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/journeyline/internal/cli"
	"github.com/julianstephens/journeyline/internal/constants"
	apperrors "github.com/julianstephens/journeyline/internal/errors"
	"github.com/julianstephens/journeyline/internal/journey"
	"github.com/julianstephens/journeyline/internal/utils"
)

type ProfileCmd struct {
	Show  ProfileShowCmd  `cmd:"" default:"1" help:"Show the journey profile."`
	Set   ProfileSetCmd   `cmd:"" help:"Start a journey or change its details."`
	Reset ProfileResetCmd `cmd:"" help:"Discard the journey and start over."`
}

type ProfileShowCmd struct{}

func (c *ProfileShowCmd) Run(ctx *cli.Context) error {
	s, err := ctx.Session()
	if err != nil {
		return err
	}
	p := s.Profile()

	ctx.Printf("User:        %s\n", s.UserID())
	if !p.Started() {
		ctx.Println("Journey:     not started")
		return nil
	}
	stage, _ := ctx.Engine.Stage(p.Role, p.Stage)
	ctx.Printf("Name:        %s\n", p.Name)
	ctx.Printf("Role:        %s\n", roleLabel(p.Role))
	ctx.Printf("State:       %s\n", p.Jurisdiction)
	ctx.Printf("Other party: %s\n", p.Counterpart)
	ctx.Printf("Stage:       %s (%s)\n", stage.Name, p.Stage)
	ctx.Printf("Started:     %s\n", utils.FormatDate(*p.StartDate))
	return nil
}

// ProfileSetCmd starts a journey when none exists and otherwise updates the
// fields that were passed.
type ProfileSetCmd struct {
	Role       string `help:"carrier (gc) or intended-parent (ip); only when starting."`
	State      string `help:"Your state."`
	OtherState string `help:"The other party's state, or 'unknown'."`
	Stage      string `help:"Stage to start at; only when starting."`
	Name       string `help:"Your name."`
}

func (c *ProfileSetCmd) Run(ctx *cli.Context) error {
	s, err := ctx.Session()
	if err != nil {
		return err
	}

	if !s.Profile().Started() {
		if c.Role == "" {
			return apperrors.NewUserError("no journey started yet", "pass --role and --state to start one")
		}
		role, ok := constants.ParseRole(c.Role)
		if !ok {
			return apperrors.NewUserError(fmt.Sprintf("unknown role %q", c.Role), "use carrier (gc) or intended-parent (ip)")
		}
		p, err := s.Begin(journey.Onboarding{
			Role:         role,
			Jurisdiction: ctx.Jurisdiction(c.State),
			Counterpart:  ctx.Jurisdiction(c.OtherState),
			Stage:        c.Stage,
			Name:         c.Name,
		})
		if err != nil {
			return err
		}
		ctx.Printf("Journey started as %s in %s.\n", roleLabel(p.Role), p.Jurisdiction)
		return nil
	}

	if c.Role != "" {
		return apperrors.NewUserError("the role is fixed once a journey starts", "use 'journeyline profile reset' to start over")
	}
	if c.Stage != "" {
		return apperrors.NewUserError("use 'journeyline stage set' to change stage", "")
	}

	changed := false
	if c.State != "" {
		if _, err := s.SetJurisdiction(ctx.Jurisdiction(c.State)); err != nil {
			return err
		}
		changed = true
	}
	if c.OtherState != "" {
		if _, err := s.SetCounterpart(ctx.Jurisdiction(c.OtherState)); err != nil {
			return err
		}
		changed = true
	}
	if c.Name != "" {
		if _, err := s.SetName(c.Name); err != nil {
			return err
		}
		changed = true
	}
	if !changed {
		return apperrors.NewUserError("nothing to change", "pass --state, --other-state or --name")
	}
	ctx.Println("✓ Profile updated")
	return nil
}

type ProfileResetCmd struct {
	Yes bool `short:"y" help:"Do not ask for confirmation."`
}

func (c *ProfileResetCmd) Run(ctx *cli.Context) error {
	s, err := ctx.Session()
	if err != nil {
		return err
	}

	if !c.Yes {
		confirm := false
		err := huh.NewConfirm().
			Title("Discard your journey, tasks, moods and journal?").
			Affirmative("Reset").
			Negative("Cancel").
			Value(&confirm).
			Run()
		if err != nil {
			return err
		}
		if !confirm {
			ctx.Println("Reset cancelled.")
			return nil
		}
	}

	s.Reset()
	ctx.Println("✓ Journey reset")
	return nil
}
