package library

import (
	"fmt"

	"github.com/julianstephens/journeyline/internal/cli"
	"github.com/julianstephens/journeyline/internal/constants"
	apperrors "github.com/julianstephens/journeyline/internal/errors"
)

// HardCmd lists support entries for difficult moments, or shows one.
type HardCmd struct {
	ID    string `arg:"" optional:"" help:"Entry id."`
	Plain bool   `help:"Print markdown without terminal styling."`
}

func (c *HardCmd) Run(ctx *cli.Context) error {
	s, err := ctx.Session()
	if err != nil {
		return err
	}
	role := s.Profile().Role
	if _, ok := constants.ParseRole(string(role)); !ok {
		role = constants.RoleIntendedParent
	}

	if c.ID == "" {
		for _, m := range ctx.Guidance.HardMoments(role) {
			ctx.Printf("  %-16s %s\n", m.ID, m.Title)
		}
		return nil
	}

	m, ok := ctx.Guidance.HardMoment(role, c.ID)
	if !ok {
		return apperrors.NewUserError(fmt.Sprintf("no entry %q", c.ID), "run 'journeyline hard' to list them")
	}
	ctx.Println(m.Title)
	out, err := render(m.Body, c.Plain)
	if err != nil {
		return fmt.Errorf("render entry: %w", err)
	}
	ctx.Println(out)
	return nil
}
