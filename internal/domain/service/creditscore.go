package service

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/domain/port"
	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/domain/valueobject"
)

const (
	// Score bounds for any estimate, remote or local.
	MinScore = 300
	MaxScore = 900

	baseFallbackScore = 700
)

// Applicant is the feature snapshot consumed by credit-score estimation.
type Applicant struct {
	MonthlyIncome   decimal.Decimal
	ExistingEMI     decimal.Decimal
	RequestedAmount decimal.Decimal
	TenureMonths    int
	EmploymentType  valueobject.EmploymentType
}

// ScoreEstimator produces a credit score, preferring the remote predictor
// and falling back to a deterministic local formula on any failure. The
// fallback never fails.
type ScoreEstimator struct {
	predictor port.CreditScorePredictor // nil = always use the local fallback
	logger    *slog.Logger
}

// NewScoreEstimator wires the optional remote predictor.
func NewScoreEstimator(predictor port.CreditScorePredictor, logger *slog.Logger) *ScoreEstimator {
	return &ScoreEstimator{predictor: predictor, logger: logger}
}

// Estimate returns a credit score in [300, 900]. Remote failures (timeout,
// transport error, out-of-range response) are recovered locally and never
// propagate to the caller.
func (e *ScoreEstimator) Estimate(ctx context.Context, a Applicant) int {
	if e.predictor != nil {
		req := port.ScoreRequest{
			MonthlyIncome:  a.MonthlyIncome.InexactFloat64(),
			LoanAmount:     a.RequestedAmount.InexactFloat64(),
			EmploymentType: a.EmploymentType.String(),
			TenureMonths:   a.TenureMonths,
		}
		if a.ExistingEMI.IsPositive() {
			req.ExistingLoans = 1
		}

		score, err := e.predictor.PredictScore(ctx, req)
		if err == nil && score >= MinScore && score <= MaxScore {
			return score
		}
		if err != nil {
			e.logger.Warn("score predictor unavailable, using local fallback", "error", err)
		} else {
			e.logger.Warn("score predictor returned out-of-range score, using local fallback", "score", score)
		}
	}
	return FallbackScore(a)
}

// FallbackScore is the deterministic local estimator. Within each factor
// the tiers are mutually exclusive, evaluated high-to-low, first match
// wins. The result is clamped to [300, 900].
func FallbackScore(a Applicant) int {
	score := baseFallbackScore

	income := a.MonthlyIncome.InexactFloat64()

	// Income factor.
	switch {
	case income >= 100_000:
		score += 50
	case income >= 50_000:
		score += 30
	case income < 25_000:
		score -= 50
	}

	// Loan amount to annual income ratio. Zero income yields +Inf here,
	// which lands in the worst tier as intended.
	loanToIncome := a.RequestedAmount.InexactFloat64() / (income * 12)
	switch {
	case loanToIncome > 5:
		score -= 40
	case loanToIncome > 3:
		score -= 20
	}

	// Existing obligation factor.
	if a.ExistingEMI.IsPositive() {
		emiToIncome := a.ExistingEMI.InexactFloat64() / income
		switch {
		case emiToIncome > 0.4:
			score -= 30
		case emiToIncome > 0.25:
			score -= 15
		}
	}

	if a.EmploymentType.IsSelfEmployed() {
		score -= 20
	}

	return clampScore(score)
}

func clampScore(score int) int {
	if score < MinScore {
		return MinScore
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}
