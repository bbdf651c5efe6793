package service

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// EMI arithmetic – pure functions
// ---------------------------------------------------------------------------

var (
	// ErrInvalidTenure and ErrInvalidRate mark input-contract violations:
	// zero-rate or zero-tenure loans are out of scope and callers must
	// guard before reaching these formulas.
	ErrInvalidTenure = errors.New("tenure months must be at least 1")
	ErrInvalidRate   = errors.New("annual rate must be positive")
)

// ComputeEMI returns the equated monthly installment for an amortizing
// loan, rounded to the nearest whole currency unit.
//
// The calculation uses:
//
//	monthlyRate = annualRatePct / 12 / 100
//	installment = P * r * (1+r)^n / ((1+r)^n - 1)
func ComputeEMI(principal decimal.Decimal, annualRatePct float64, tenureMonths int) (decimal.Decimal, error) {
	if tenureMonths < 1 {
		return decimal.Zero, ErrInvalidTenure
	}
	if annualRatePct <= 0 {
		return decimal.Zero, ErrInvalidRate
	}

	monthlyRate := annualRatePct / 12.0 / 100.0
	factor := math.Pow(1+monthlyRate, float64(tenureMonths))
	installment := principal.InexactFloat64() * monthlyRate * factor / (factor - 1)

	return decimal.NewFromFloat(installment).Round(0), nil
}

// ComputeMaxPrincipal is the algebraic inverse of ComputeEMI: the largest
// principal whose installment does not exceed maxAffordableEMI. Returns
// zero when the affordable installment is zero or negative.
func ComputeMaxPrincipal(maxAffordableEMI decimal.Decimal, annualRatePct float64, tenureMonths int) (decimal.Decimal, error) {
	if tenureMonths < 1 {
		return decimal.Zero, ErrInvalidTenure
	}
	if annualRatePct <= 0 {
		return decimal.Zero, ErrInvalidRate
	}
	if maxAffordableEMI.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, nil
	}

	monthlyRate := annualRatePct / 12.0 / 100.0
	factor := math.Pow(1+monthlyRate, float64(tenureMonths))
	principal := maxAffordableEMI.InexactFloat64() * (factor - 1) / (monthlyRate * factor)

	return decimal.NewFromFloat(principal).Round(2), nil
}
