package port

import (
	"context"
	"errors"

	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/domain/event"
	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/domain/model"
)

// ---------------------------------------------------------------------------
// Sentinel errors
// ---------------------------------------------------------------------------

var (
	// ErrApplicationNotFound is a normal, recoverable outcome: callers map
	// it to a not-found result, they do not treat it as a failure path.
	ErrApplicationNotFound = errors.New("loan application not found")
	ErrDocumentNotFound    = errors.New("document not found")
)

// ---------------------------------------------------------------------------
// Repository ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// ApplicationRepository persists and retrieves loan applications.
type ApplicationRepository interface {
	Save(ctx context.Context, app model.LoanApplication) error
	FindByID(ctx context.Context, id string) (model.LoanApplication, error)
	FindByApplicantID(ctx context.Context, applicantID string) ([]model.LoanApplication, error)
}

// DocumentRepository persists and retrieves application documents.
type DocumentRepository interface {
	Save(ctx context.Context, doc model.Document) error
	FindByID(ctx context.Context, id string) (model.Document, error)
	FindByApplicationID(ctx context.Context, applicationID string) ([]model.Document, error)
}

// ActionLogRepository appends audit rows for engine invocations. It is
// write-only from the engine's perspective; failures must never fail the
// primary operation.
type ActionLogRepository interface {
	Append(ctx context.Context, rec model.ActionRecord) error
}

// AnalyticsRepository serves portfolio summary queries for the admin
// surface.
type AnalyticsRepository interface {
	PortfolioSummary(ctx context.Context) (PortfolioSummary, error)
}

// StatusCount is one row of the portfolio status breakdown.
type StatusCount struct {
	Status    string
	Count     int64
	AvgAmount float64
}

// PortfolioSummary aggregates application metrics for reporting.
type PortfolioSummary struct {
	TotalApplications int64
	StatusBreakdown   []StatusCount
	AvgLoanAmount     float64
	AvgCreditScore    float64
	AvgDTIRatio       float64
	AvgInstallment    float64
}

// ---------------------------------------------------------------------------
// External service ports
// ---------------------------------------------------------------------------

// ScoreRequest carries the applicant features sent to the remote credit
// score predictor.
type ScoreRequest struct {
	MonthlyIncome  float64 `json:"monthly_income"`
	ExistingLoans  int     `json:"existing_loans"`
	LoanAmount     float64 `json:"loan_amount"`
	EmploymentType string  `json:"employment_type"`
	TenureMonths   int     `json:"tenure_months"`
}

// CreditScorePredictor fetches a credit score from a remote model service.
// Any transport or validation failure is recovered by the local fallback
// estimator; it is never surfaced to the caller.
type CreditScorePredictor interface {
	PredictScore(ctx context.Context, req ScoreRequest) (int, error)
}

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}
