package progress

import (
	"github.com/julianstephens/journeyline/internal/cli"
	"github.com/julianstephens/journeyline/internal/constants"
	"github.com/julianstephens/journeyline/internal/journey"
)

// EstimateCmd needs no profile or storage.
type EstimateCmd struct {
	Base         int  `default:"50000" help:"Base compensation in dollars (35000-100000)."`
	Transfers    int  `help:"Number of embryo transfers."`
	CSection     bool `name:"c-section" help:"Include the c-section fee."`
	Twins        bool `help:"Include the multiples fee."`
	BedrestWeeks int  `help:"Weeks of bed rest."`
}

func (c *EstimateCmd) Run(ctx *cli.Context) error {
	est := journey.EstimateCompensation(journey.EstimateInput{
		Base:         c.Base,
		Transfers:    c.Transfers,
		CSection:     c.CSection,
		Twins:        c.Twins,
		BedrestWeeks: c.BedrestWeeks,
	})

	line := func(label string, v int) {
		ctx.Printf("  %-22s %10s\n", label, money(v))
	}
	ctx.Println("Estimated carrier compensation")
	line("Base", est.Base)
	if est.Transfers > 0 {
		line("Transfer fees", est.Transfers)
	}
	if est.CSection > 0 {
		line("C-section", est.CSection)
	}
	if est.Twins > 0 {
		line("Multiples", est.Twins)
	}
	if est.Bedrest > 0 {
		line("Bed rest", est.Bedrest)
	}
	ctx.Printf("  %-22s %10s\n", "Total", money(est.Total))
	if c.Base != est.Base {
		ctx.Printf("\nBase adjusted to the supported range %s-%s.\n", money(constants.EstimateMinBase), money(constants.EstimateMaxBase))
	}
	ctx.Println("\nActual packages vary by agency and state; this is a planning figure.")
	return nil
}
