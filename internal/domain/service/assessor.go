package service

import (
	"context"
	"fmt"

	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/domain/model"
)

// Assessor derives the full eligibility record for an application: credit
// score, DTI, rate tier, installment, risk category and borrowing
// capacity. It holds no state of its own and is safe for concurrent use.
type Assessor struct {
	estimator *ScoreEstimator
	analyzer  *Analyzer
	policy    Policy
}

// NewAssessor wires the estimation and affordability services.
func NewAssessor(estimator *ScoreEstimator, analyzer *Analyzer, policy Policy) *Assessor {
	return &Assessor{estimator: estimator, analyzer: analyzer, policy: policy}
}

// Assess computes a fresh assessment from the application's current
// figures. Re-running replaces previous values wholesale; nothing
// accumulates.
func (as *Assessor) Assess(ctx context.Context, app model.LoanApplication) (model.EligibilityAssessment, error) {
	applicant := Applicant{
		MonthlyIncome:   app.MonthlyIncome(),
		ExistingEMI:     app.ExistingEMI(),
		RequestedAmount: app.RequestedAmount(),
		TenureMonths:    app.TenureMonths(),
		EmploymentType:  app.EmploymentType(),
	}

	score := as.estimator.Estimate(ctx, applicant)
	dti := as.analyzer.ComputeDTI(
		app.MonthlyIncome(), app.ExistingEMI(), app.RequestedAmount(), app.TenureMonths(),
	)
	rate := as.analyzer.AssignInterestRate(score)

	installment, err := ComputeEMI(app.RequestedAmount(), rate, app.TenureMonths())
	if err != nil {
		return model.EligibilityAssessment{}, fmt.Errorf("compute installment: %w", err)
	}

	risk := as.analyzer.ClassifyRisk(score, dti, app.MonthlyIncome())
	capacity := as.analyzer.MaxAffordablePrincipal(app.MonthlyIncome(), app.ExistingEMI(), score)

	return model.EligibilityAssessment{
		CreditScore:            score,
		DTIRatio:               dti,
		InterestRateAnnualPct:  rate,
		MonthlyInstallment:     installment,
		RiskCategory:           risk.Category,
		MaxAffordablePrincipal: capacity,
		Eligible:               score >= as.policy.MinCreditScore && dti <= as.policy.MaxDTIRatio,
	}, nil
}
