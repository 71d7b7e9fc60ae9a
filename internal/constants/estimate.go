package constants

// Carrier compensation estimator amounts, in whole US dollars.
const (
	EstimateMinBase            = 35000
	EstimateMaxBase            = 100000
	EstimateDefaultBase        = 50000
	EstimatePerTransfer        = 1250
	EstimateCSection           = 3500
	EstimateTwins              = 7500
	EstimatePerBedrestWeek     = 400
	EstimateMaxTransfers       = 10
	EstimateMaxBedrestWeeks    = 40
	WordsPerMinuteReadingSpeed = 200
)

func init() {
	if EstimateMinBase > EstimateDefaultBase || EstimateDefaultBase > EstimateMaxBase {
		panic("EstimateDefaultBase must lie within [EstimateMinBase, EstimateMaxBase]")
	}
}
