package adapter

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/domain/port"
)

// StubPredictor returns deterministic simulated scores derived from the
// request features. It stands in for the model service in development and
// testing; results are reproducible for identical inputs.
type StubPredictor struct{}

// NewStubPredictor creates the simulated predictor.
func NewStubPredictor() *StubPredictor {
	return &StubPredictor{}
}

// PredictScore implements port.CreditScorePredictor with a hash of the
// request features mapped into the valid score range.
func (p *StubPredictor) PredictScore(_ context.Context, req port.ScoreRequest) (int, error) {
	seed := fmt.Sprintf("%.2f|%.2f|%d|%s|%d",
		req.MonthlyIncome, req.LoanAmount, req.ExistingLoans,
		req.EmploymentType, req.TenureMonths,
	)
	h := sha256.Sum256([]byte(seed))
	score := 300 + int(binary.BigEndian.Uint32(h[:4])%601)
	return score, nil
}
