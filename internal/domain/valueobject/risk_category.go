package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// RiskCategory – immutable value object
// ---------------------------------------------------------------------------

// RiskCategory is the coarse risk bucket assigned during affordability
// analysis. It drives approval conservatism, not eligibility itself.
type RiskCategory struct {
	value string
}

const (
	riskLow    = "low"
	riskMedium = "medium"
	riskHigh   = "high"
)

var (
	RiskCategoryLow    = RiskCategory{value: riskLow}
	RiskCategoryMedium = RiskCategory{value: riskMedium}
	RiskCategoryHigh   = RiskCategory{value: riskHigh}
)

var validRiskCategories = map[string]RiskCategory{
	riskLow:    RiskCategoryLow,
	riskMedium: RiskCategoryMedium,
	riskHigh:   RiskCategoryHigh,
}

// NewRiskCategory creates a RiskCategory from a raw string.
func NewRiskCategory(s string) (RiskCategory, error) {
	v, ok := validRiskCategories[s]
	if !ok {
		return RiskCategory{}, fmt.Errorf("invalid risk category: %q", s)
	}
	return v, nil
}

// String returns the string representation.
func (c RiskCategory) String() string { return c.value }

// IsZero returns true when not initialised.
func (c RiskCategory) IsZero() bool { return c.value == "" }

// Equal returns true when both categories match.
func (c RiskCategory) Equal(other RiskCategory) bool { return c.value == other.value }
