package service

import "github.com/shopspring/decimal"

// Policy holds the configurable underwriting thresholds. Boundary values
// come from configuration, not hard-coded business meaning; defaults match
// the standard NBFC policy set.
type Policy struct {
	MinCreditScore   int
	MaxDTIRatio      float64
	MinLoanAmount    decimal.Decimal
	MaxLoanAmount    decimal.Decimal
	MinRequiredDocs  int
	RateExcellentPct float64
	RateGoodPct      float64
	RateFairPct      float64
	DTICapPct        float64
}

// DefaultPolicy returns the policy defaults used when no configuration
// overrides are present.
func DefaultPolicy() Policy {
	return Policy{
		MinCreditScore:   650,
		MaxDTIRatio:      50,
		MinLoanAmount:    decimal.NewFromInt(50_000),
		MaxLoanAmount:    decimal.NewFromInt(5_000_000),
		MinRequiredDocs:  3,
		RateExcellentPct: 10.5,
		RateGoodPct:      12.5,
		RateFairPct:      15.0,
		DTICapPct:        50,
	}
}
