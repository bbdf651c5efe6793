package usecase_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/domain/event"
	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/domain/model"
	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/domain/port"
	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/domain/service"
	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/domain/valueobject"
)

// --- Mock implementations ---

type mockApplicationRepository struct {
	saveFunc     func(ctx context.Context, app model.LoanApplication) error
	findByIDFunc func(ctx context.Context, id string) (model.LoanApplication, error)
	savedApps    []model.LoanApplication
}

func (m *mockApplicationRepository) Save(ctx context.Context, app model.LoanApplication) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, app)
	}
	m.savedApps = append(m.savedApps, app)
	return nil
}

func (m *mockApplicationRepository) FindByID(ctx context.Context, id string) (model.LoanApplication, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.LoanApplication{}, port.ErrApplicationNotFound
}

func (m *mockApplicationRepository) FindByApplicantID(_ context.Context, _ string) ([]model.LoanApplication, error) {
	return nil, nil
}

type mockDocumentRepository struct {
	saveFunc                func(ctx context.Context, doc model.Document) error
	findByIDFunc            func(ctx context.Context, id string) (model.Document, error)
	findByApplicationIDFunc func(ctx context.Context, applicationID string) ([]model.Document, error)
	savedDocs               []model.Document
}

func (m *mockDocumentRepository) Save(ctx context.Context, doc model.Document) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, doc)
	}
	m.savedDocs = append(m.savedDocs, doc)
	return nil
}

func (m *mockDocumentRepository) FindByID(ctx context.Context, id string) (model.Document, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.Document{}, port.ErrDocumentNotFound
}

func (m *mockDocumentRepository) FindByApplicationID(ctx context.Context, applicationID string) ([]model.Document, error) {
	if m.findByApplicationIDFunc != nil {
		return m.findByApplicationIDFunc(ctx, applicationID)
	}
	return nil, nil
}

type mockEventPublisher struct {
	publishFunc     func(ctx context.Context, events ...event.DomainEvent) error
	publishedEvents []event.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...event.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}

type mockActionLog struct {
	appendFunc func(ctx context.Context, rec model.ActionRecord) error
	records    []model.ActionRecord
}

func (m *mockActionLog) Append(ctx context.Context, rec model.ActionRecord) error {
	if m.appendFunc != nil {
		return m.appendFunc(ctx, rec)
	}
	m.records = append(m.records, rec)
	return nil
}

type mockAnalyticsRepository struct {
	summaryFunc func(ctx context.Context) (port.PortfolioSummary, error)
}

func (m *mockAnalyticsRepository) PortfolioSummary(ctx context.Context) (port.PortfolioSummary, error) {
	if m.summaryFunc != nil {
		return m.summaryFunc(ctx)
	}
	return port.PortfolioSummary{}, nil
}

// --- Fixtures ---

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func salariedEmployment(t *testing.T) valueobject.EmploymentType {
	t.Helper()
	e, err := valueobject.NewEmploymentType("salaried")
	require.NoError(t, err)
	return e
}

// pendingApplication builds an unassessed application with figures that
// pass every underwriting rule.
func pendingApplication(t *testing.T) model.LoanApplication {
	t.Helper()
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	return model.ReconstructLoanApplication(
		"app-1", "applicant-1",
		decimal.NewFromInt(500_000), "home renovation", 36,
		decimal.NewFromInt(80_000), decimal.Zero,
		salariedEmployment(t), "Tech Solutions Pvt Ltd",
		valueobject.ApplicationStatusPending,
		nil, decimal.Zero, "", 1, now, now,
	)
}

func verifiedDocuments(t *testing.T) []model.Document {
	t.Helper()
	now := time.Date(2025, 6, 1, 11, 0, 0, 0, time.UTC)
	types := []valueobject.DocumentType{
		valueobject.DocumentTypeIdentityTaxID,
		valueobject.DocumentTypeSalarySlip,
		valueobject.DocumentTypeBankStatement,
	}
	docs := make([]model.Document, 0, len(types))
	for i, dt := range types {
		docs = append(docs, model.ReconstructDocument(
			"doc-"+dt.String(), "app-1", dt, "uploads/"+dt.String(),
			valueobject.VerificationStatusVerified, nil, "", now.Add(time.Duration(i)*time.Minute), now,
		))
	}
	return docs
}

func mustRisk(t *testing.T, s string) valueobject.RiskCategory {
	t.Helper()
	r, err := valueobject.NewRiskCategory(s)
	require.NoError(t, err)
	return r
}

func app0Time() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func defaultAssessor() *service.Assessor {
	policy := service.DefaultPolicy()
	return service.NewAssessor(
		service.NewScoreEstimator(nil, testLogger()),
		service.NewAnalyzer(policy),
		policy,
	)
}
