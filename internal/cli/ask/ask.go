package ask

import (
	"fmt"
	"strings"

	"github.com/julianstephens/journeyline/internal/cli"
	"github.com/julianstephens/journeyline/internal/constants"
	apperrors "github.com/julianstephens/journeyline/internal/errors"
	"github.com/julianstephens/journeyline/internal/logger"
)

type AskCmd struct {
	Question []string `arg:"" help:"Your question, in plain words."`
	Topic    bool     `help:"Also print which topic answered."`
}

func (c *AskCmd) Run(ctx *cli.Context) error {
	q := strings.TrimSpace(strings.Join(c.Question, " "))
	if q == "" {
		return apperrors.NewUserError("ask me something", `e.g. journeyline ask "what is a pre-birth order?"`)
	}

	s, err := ctx.Session()
	if err != nil {
		return err
	}
	p := s.Profile()

	topic := ctx.Router.Classify(q)
	logger.Debug("Routed question", "topic", topic)
	if c.Topic {
		ctx.Printf("[%s]\n", topic)
	}
	ctx.Println(ctx.Router.Answer(q, p))
	return nil
}

// LawCmd prints the curated legal facts for a jurisdiction.
type LawCmd struct {
	Jurisdiction string `arg:"" optional:"" help:"State name (defaults to yours)."`
}

func (c *LawCmd) Run(ctx *cli.Context) error {
	name := c.Jurisdiction
	if name == "" {
		s, err := ctx.Session()
		if err != nil {
			return err
		}
		name = s.Profile().Jurisdiction
		if name == "" {
			return apperrors.NewUserError("which state?", "pass a state name or start a journey with your state")
		}
	}

	canonical, ok := ctx.KB.LookupJurisdiction(name)
	if !ok {
		return apperrors.NewUserError(fmt.Sprintf("unknown jurisdiction %q", name), "use a US state name or DC")
	}

	ctx.Println(canonical)
	if badge, ok := ctx.KB.Badge(canonical); ok {
		ctx.Printf("Status: %s\n", badge)
	}

	fact, ok := ctx.KB.Fact(canonical)
	if !ok {
		ctx.Println("No detailed notes for this state. Laws change; confirm with a reproductive attorney licensed there.")
		return nil
	}
	ctx.Printf("Favorability: %s\n", fact.Favorability)
	switch {
	case fact.PreBirth:
		ctx.Println("Pre-birth orders: available")
	case fact.Favorability == constants.FavorabilityRestrictive:
		ctx.Println("Pre-birth orders: not available")
	default:
		ctx.Println("Pre-birth orders: not generally available; parentage is usually established after birth")
	}
	ctx.Println()
	ctx.Println(fact.Notes)
	return nil
}
