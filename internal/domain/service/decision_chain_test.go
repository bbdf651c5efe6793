package service_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/domain/model"
	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/domain/service"
	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/domain/valueobject"
)

func passingInput() service.DecisionInput {
	return service.DecisionInput{
		RequestedAmount: decimal.NewFromInt(500_000),
		TenureMonths:    36,
		Assessment: model.EligibilityAssessment{
			CreditScore:           730,
			DTIRatio:              20.76,
			InterestRateAnnualPct: 12.5,
			MonthlyInstallment:    decimal.NewFromInt(16_727),
			RiskCategory:          valueobject.RiskCategoryLow,
			Eligible:              true,
		},
		Readiness: service.Readiness{Complete: true, AllVerified: true, Total: 3, Verified: 3},
	}
}

func TestRuleChain_ApprovesCleanApplication(t *testing.T) {
	chain := service.NewRuleChain(service.DefaultPolicy())

	out := chain.Decide(passingInput())

	assert.True(t, out.Status.Equal(valueobject.ApplicationStatusApproved))
	assert.True(t, decimal.NewFromInt(500_000).Equal(out.ApprovedAmount))
	assert.Empty(t, out.RejectionReason)
	assert.NotEmpty(t, out.Message)
	assert.NotEmpty(t, out.NextSteps)

	// All seven rules evaluated, all passing.
	require.Len(t, out.Trace, 7)
	for _, entry := range out.Trace {
		assert.True(t, entry.Passed, "rule %s", entry.Rule)
	}
}

func TestRuleChain_LowScoreShortCircuits(t *testing.T) {
	chain := service.NewRuleChain(service.DefaultPolicy())

	in := passingInput()
	in.Assessment.CreditScore = 600

	out := chain.Decide(in)

	assert.True(t, out.Status.Equal(valueobject.ApplicationStatusRejected))
	assert.True(t, out.ApprovedAmount.IsZero())
	assert.Equal(t, "credit score below minimum requirement", out.RejectionReason)

	// Rule 1 fails; rules 2-7 are never evaluated.
	require.Len(t, out.Trace, 1)
	assert.Equal(t, service.RuleMinCreditScore, out.Trace[0].Rule)
	assert.False(t, out.Trace[0].Passed)
}

func TestRuleChain_HighDTIRejects(t *testing.T) {
	chain := service.NewRuleChain(service.DefaultPolicy())

	in := passingInput()
	in.Assessment.DTIRatio = 62.5

	out := chain.Decide(in)

	assert.True(t, out.Status.Equal(valueobject.ApplicationStatusRejected))
	assert.Equal(t, "debt-to-income ratio too high", out.RejectionReason)
	require.Len(t, out.Trace, 2)
}

func TestRuleChain_BelowMinimumAmountRejects(t *testing.T) {
	chain := service.NewRuleChain(service.DefaultPolicy())

	in := passingInput()
	in.RequestedAmount = decimal.NewFromInt(20_000)

	out := chain.Decide(in)

	assert.True(t, out.Status.Equal(valueobject.ApplicationStatusRejected))
	assert.Equal(t, "loan amount below minimum threshold", out.RejectionReason)
	require.Len(t, out.Trace, 3)
}

func TestRuleChain_OversizedRequestIsCappedNotRejected(t *testing.T) {
	chain := service.NewRuleChain(service.DefaultPolicy())

	in := passingInput()
	in.RequestedAmount = decimal.NewFromInt(6_000_000)

	out := chain.Decide(in)

	// The cap is a soft rule: the chain continues to approval with the
	// maximum amount.
	assert.True(t, out.Status.Equal(valueobject.ApplicationStatusApproved))
	assert.True(t, decimal.NewFromInt(5_000_000).Equal(out.ApprovedAmount))

	require.Len(t, out.Trace, 7)
	assert.Equal(t, service.RuleMaxLoanAmount, out.Trace[3].Rule)
	assert.False(t, out.Trace[3].Passed)
}

func TestRuleChain_MissingDocuments(t *testing.T) {
	chain := service.NewRuleChain(service.DefaultPolicy())

	in := passingInput()
	in.Readiness = service.Readiness{Complete: false, Total: 2, Verified: 1}

	out := chain.Decide(in)

	assert.True(t, out.Status.Equal(valueobject.ApplicationStatusDocumentsPending))
	assert.True(t, out.ApprovedAmount.IsZero())
	require.Len(t, out.Trace, 5)
	assert.Equal(t, service.RuleDocumentsComplete, out.Trace[4].Rule)
}

func TestRuleChain_UnverifiedDocumentsGoToReview(t *testing.T) {
	chain := service.NewRuleChain(service.DefaultPolicy())

	in := passingInput()
	in.Readiness = service.Readiness{Complete: true, AllVerified: false, Total: 3, Verified: 2}

	out := chain.Decide(in)

	assert.True(t, out.Status.Equal(valueobject.ApplicationStatusUnderReview))
	assert.True(t, out.ApprovedAmount.IsZero())
	require.Len(t, out.Trace, 6)
}

func TestRuleChain_HighRiskHaircut(t *testing.T) {
	chain := service.NewRuleChain(service.DefaultPolicy())

	in := passingInput()
	in.Assessment.RiskCategory = valueobject.RiskCategoryHigh

	out := chain.Decide(in)

	assert.True(t, out.Status.Equal(valueobject.ApplicationStatusApproved))
	assert.True(t, decimal.NewFromInt(400_000).Equal(out.ApprovedAmount), "got %s", out.ApprovedAmount)
	assert.Contains(t, out.Message, "Conditionally approved")
}

func TestRuleChain_HighRiskHaircutAppliesToCappedAmount(t *testing.T) {
	chain := service.NewRuleChain(service.DefaultPolicy())

	in := passingInput()
	in.RequestedAmount = decimal.NewFromInt(6_000_000)
	in.Assessment.RiskCategory = valueobject.RiskCategoryHigh

	out := chain.Decide(in)

	// Haircut runs on the capped amount, not the requested one.
	assert.True(t, decimal.NewFromInt(4_000_000).Equal(out.ApprovedAmount), "got %s", out.ApprovedAmount)
}

func TestRuleChain_MediumRiskApprovesUnadjusted(t *testing.T) {
	chain := service.NewRuleChain(service.DefaultPolicy())

	in := passingInput()
	in.Assessment.RiskCategory = valueobject.RiskCategoryMedium

	out := chain.Decide(in)

	assert.True(t, out.Status.Equal(valueobject.ApplicationStatusApproved))
	assert.True(t, decimal.NewFromInt(500_000).Equal(out.ApprovedAmount))
}

func TestRuleChain_IsPure(t *testing.T) {
	chain := service.NewRuleChain(service.DefaultPolicy())
	in := passingInput()

	first := chain.Decide(in)
	second := chain.Decide(in)

	assert.Equal(t, first, second)
}
