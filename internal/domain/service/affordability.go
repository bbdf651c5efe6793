package service

import (
	"github.com/shopspring/decimal"

	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/domain/valueobject"
)

// referenceRatePct is the fixed annual rate used for the DTI reference
// installment. The applicant's actual rate is not known at DTI time, so
// the ratio is deliberately computed against this constant; acceptance
// thresholds are calibrated to it.
const referenceRatePct = 12.0

// worstCaseDTI is the sentinel returned for non-positive income. It is an
// explicit worst-case value that forces rejection downstream, not an error.
const worstCaseDTI = 100.0

// RiskAssessment pairs the coarse category with the raw points that
// produced it.
type RiskAssessment struct {
	Category valueobject.RiskCategory
	Points   int
}

// Analyzer computes affordability metrics against a configured policy.
// All methods are pure and safe for concurrent use.
type Analyzer struct {
	policy Policy
}

// NewAnalyzer creates an Analyzer with the given policy.
func NewAnalyzer(policy Policy) *Analyzer {
	return &Analyzer{policy: policy}
}

// ComputeDTI returns the debt-to-income ratio as a percentage, using a
// reference installment at the fixed 12% annual rate.
func (an *Analyzer) ComputeDTI(
	monthlyIncome, existingObligation, requestedAmount decimal.Decimal,
	tenureMonths int,
) float64 {
	if monthlyIncome.LessThanOrEqual(decimal.Zero) {
		return worstCaseDTI
	}

	referenceEMI, err := ComputeEMI(requestedAmount, referenceRatePct, tenureMonths)
	if err != nil {
		return worstCaseDTI
	}

	total := existingObligation.Add(referenceEMI)
	return total.Div(monthlyIncome).InexactFloat64() * 100
}

// AssignInterestRate maps a credit score onto the configured rate tiers.
func (an *Analyzer) AssignInterestRate(creditScore int) float64 {
	switch {
	case creditScore >= 750:
		return an.policy.RateExcellentPct
	case creditScore >= 700:
		return an.policy.RateGoodPct
	default:
		return an.policy.RateFairPct
	}
}

// ClassifyRisk accumulates points from three independent factor bands.
// Bands combine, but within each band only the first matching tier
// applies.
func (an *Analyzer) ClassifyRisk(creditScore int, dtiPct float64, monthlyIncome decimal.Decimal) RiskAssessment {
	points := 0

	// Credit score band.
	switch {
	case creditScore < 650:
		points += 40
	case creditScore < 700:
		points += 25
	case creditScore < 750:
		points += 10
	}

	// DTI band.
	switch {
	case dtiPct > 50:
		points += 30
	case dtiPct > 40:
		points += 20
	case dtiPct > 30:
		points += 10
	}

	// Income band.
	income := monthlyIncome.InexactFloat64()
	switch {
	case income < 25_000:
		points += 20
	case income < 40_000:
		points += 10
	}

	category := valueobject.RiskCategoryLow
	switch {
	case points >= 60:
		category = valueobject.RiskCategoryHigh
	case points >= 30:
		category = valueobject.RiskCategoryMedium
	}

	return RiskAssessment{Category: category, Points: points}
}

// MaxAffordablePrincipal estimates the applicant's borrowing capacity: the
// principal whose installment fills the DTI headroom, at a score-driven
// tenure (better scores are offered longer tenures for capacity
// estimation only).
func (an *Analyzer) MaxAffordablePrincipal(
	monthlyIncome, existingObligation decimal.Decimal,
	creditScore int,
) decimal.Decimal {
	dtiCap := decimal.NewFromFloat(an.policy.DTICapPct / 100)
	maxEMI := monthlyIncome.Mul(dtiCap).Sub(existingObligation)
	if maxEMI.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	tenure := 36
	switch {
	case creditScore >= 750:
		tenure = 60
	case creditScore >= 700:
		tenure = 48
	}

	rate := an.AssignInterestRate(creditScore)
	principal, err := ComputeMaxPrincipal(maxEMI, rate, tenure)
	if err != nil {
		return decimal.Zero
	}
	return principal
}
