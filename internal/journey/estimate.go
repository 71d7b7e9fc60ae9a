package journey

import "github.com/julianstephens/journeyline/internal/constants"

// EstimateInput describes a carrier's expected journey for the compensation estimator
type EstimateInput struct {
	Base         int
	Transfers    int
	CSection     bool
	Twins        bool
	BedrestWeeks int
}

// Estimate is an itemized compensation estimate in whole dollars
type Estimate struct {
	Base      int
	Transfers int
	CSection  int
	Twins     int
	Bedrest   int
	Total     int
}

// EstimateCompensation itemizes a carrier's expected compensation. Inputs
// outside the supported ranges are clamped.
func EstimateCompensation(in EstimateInput) Estimate {
	base := clamp(in.Base, constants.EstimateMinBase, constants.EstimateMaxBase)
	transfers := clamp(in.Transfers, 0, constants.EstimateMaxTransfers)
	bedrest := clamp(in.BedrestWeeks, 0, constants.EstimateMaxBedrestWeeks)

	est := Estimate{
		Base:      base,
		Transfers: transfers * constants.EstimatePerTransfer,
		Bedrest:   bedrest * constants.EstimatePerBedrestWeek,
	}
	if in.CSection {
		est.CSection = constants.EstimateCSection
	}
	if in.Twins {
		est.Twins = constants.EstimateTwins
	}
	est.Total = est.Base + est.Transfers + est.CSection + est.Twins + est.Bedrest
	return est
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
