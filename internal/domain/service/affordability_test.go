package service_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/domain/service"
	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/domain/valueobject"
)

func TestComputeDTI_NonPositiveIncomeIsWorstCase(t *testing.T) {
	an := service.NewAnalyzer(service.DefaultPolicy())

	dti := an.ComputeDTI(decimal.Zero, decimal.Zero, decimal.NewFromInt(500_000), 36)
	assert.Equal(t, 100.0, dti)

	dti = an.ComputeDTI(decimal.NewFromInt(-1), decimal.NewFromInt(10_000), decimal.NewFromInt(100_000), 12)
	assert.Equal(t, 100.0, dti)
}

func TestComputeDTI_ReferenceInstallment(t *testing.T) {
	an := service.NewAnalyzer(service.DefaultPolicy())

	// Reference EMI for 500k/36m at the fixed 12% rate is 16607, so with
	// no existing obligation on 80k income: 16607/80000 = 20.76%.
	dti := an.ComputeDTI(decimal.NewFromInt(80_000), decimal.Zero, decimal.NewFromInt(500_000), 36)
	assert.InDelta(t, 20.76, dti, 0.01)

	// Existing obligations add on top.
	dti = an.ComputeDTI(decimal.NewFromInt(80_000), decimal.NewFromInt(20_000), decimal.NewFromInt(500_000), 36)
	assert.InDelta(t, 45.76, dti, 0.01)
}

func TestAssignInterestRate_Tiers(t *testing.T) {
	an := service.NewAnalyzer(service.DefaultPolicy())

	assert.Equal(t, 10.5, an.AssignInterestRate(750))
	assert.Equal(t, 10.5, an.AssignInterestRate(900))
	assert.Equal(t, 12.5, an.AssignInterestRate(700))
	assert.Equal(t, 12.5, an.AssignInterestRate(749))
	assert.Equal(t, 15.0, an.AssignInterestRate(699))
	assert.Equal(t, 15.0, an.AssignInterestRate(300))
}

func TestClassifyRisk_BoundaryPoints(t *testing.T) {
	an := service.NewAnalyzer(service.DefaultPolicy())
	income := decimal.NewFromInt(100_000) // no income points

	// 40 (score < 650) + 20 (DTI > 40) = 60 -> high.
	r := an.ClassifyRisk(600, 45, income)
	assert.Equal(t, 60, r.Points)
	assert.True(t, r.Category.Equal(valueobject.RiskCategoryHigh))

	// 40 (score < 650) + 10 (DTI > 30) = 50 -> medium.
	r = an.ClassifyRisk(600, 35, income)
	assert.Equal(t, 50, r.Points)
	assert.True(t, r.Category.Equal(valueobject.RiskCategoryMedium))

	// 10 + 10 + 10 = 30 -> medium, boundary inclusive.
	r = an.ClassifyRisk(740, 35, decimal.NewFromInt(35_000))
	assert.Equal(t, 30, r.Points)
	assert.True(t, r.Category.Equal(valueobject.RiskCategoryMedium))

	// 10 + 10 = 20 -> low.
	r = an.ClassifyRisk(740, 35, income)
	assert.Equal(t, 20, r.Points)
	assert.True(t, r.Category.Equal(valueobject.RiskCategoryLow))

	// Clean profile -> 0 points, low.
	r = an.ClassifyRisk(800, 20, income)
	assert.Equal(t, 0, r.Points)
	assert.True(t, r.Category.Equal(valueobject.RiskCategoryLow))
}

func TestClassifyRisk_TiersWithinBandAreExclusive(t *testing.T) {
	an := service.NewAnalyzer(service.DefaultPolicy())

	// Score 600 matches both "< 650" and "< 700" but only the first tier
	// applies: 40 points, not 65.
	r := an.ClassifyRisk(600, 0, decimal.NewFromInt(100_000))
	assert.Equal(t, 40, r.Points)
}

func TestMaxAffordablePrincipal_NoHeadroom(t *testing.T) {
	an := service.NewAnalyzer(service.DefaultPolicy())

	// 50% of 10k income is 5k, fully consumed by the 6k obligation.
	p := an.MaxAffordablePrincipal(decimal.NewFromInt(10_000), decimal.NewFromInt(6_000), 780)
	assert.True(t, p.IsZero())
}

func TestMaxAffordablePrincipal_ScoreDrivenTenure(t *testing.T) {
	an := service.NewAnalyzer(service.DefaultPolicy())
	income := decimal.NewFromInt(80_000)

	// Better scores get longer capacity tenures and lower rates, so
	// capacity strictly grows with the score tier.
	fair := an.MaxAffordablePrincipal(income, decimal.Zero, 680)
	good := an.MaxAffordablePrincipal(income, decimal.Zero, 720)
	excellent := an.MaxAffordablePrincipal(income, decimal.Zero, 780)

	assert.True(t, fair.IsPositive())
	assert.True(t, good.GreaterThan(fair))
	assert.True(t, excellent.GreaterThan(good))

	// 40k max EMI at 12.5% over 48 months is roughly 1.50M.
	assert.InDelta(t, 1_504_900, good.InexactFloat64(), 5_000)
}
