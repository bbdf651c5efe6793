package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/application/dto"
	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/application/usecase"
	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/domain/event"
	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/domain/model"
	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/domain/port"
	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/domain/service"
	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/domain/valueobject"
	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/pkg/observability"
)

// -------- helpers --------

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

func newEchoWithValidator() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func mustJSON(v any) *bytes.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type appRepoMock struct {
	saveFn            func(ctx context.Context, app model.LoanApplication) error
	findByIDFn        func(ctx context.Context, id string) (model.LoanApplication, error)
	findByApplicantFn func(ctx context.Context, applicantID string) ([]model.LoanApplication, error)
}

func (m *appRepoMock) Save(ctx context.Context, app model.LoanApplication) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, app)
	}
	return nil
}

func (m *appRepoMock) FindByID(ctx context.Context, id string) (model.LoanApplication, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return model.LoanApplication{}, port.ErrApplicationNotFound
}

func (m *appRepoMock) FindByApplicantID(ctx context.Context, applicantID string) ([]model.LoanApplication, error) {
	if m.findByApplicantFn != nil {
		return m.findByApplicantFn(ctx, applicantID)
	}
	return nil, nil
}

type docRepoMock struct {
	saveFn        func(ctx context.Context, doc model.Document) error
	findByIDFn    func(ctx context.Context, id string) (model.Document, error)
	findByAppIDFn func(ctx context.Context, applicationID string) ([]model.Document, error)
}

func (m *docRepoMock) Save(ctx context.Context, doc model.Document) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, doc)
	}
	return nil
}

func (m *docRepoMock) FindByID(ctx context.Context, id string) (model.Document, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return model.Document{}, port.ErrDocumentNotFound
}

func (m *docRepoMock) FindByApplicationID(ctx context.Context, applicationID string) ([]model.Document, error) {
	if m.findByAppIDFn != nil {
		return m.findByAppIDFn(ctx, applicationID)
	}
	return nil, nil
}

type publisherMock struct{}

func (publisherMock) Publish(context.Context, ...event.DomainEvent) error { return nil }

type actionLogMock struct{}

func (actionLogMock) Append(context.Context, model.ActionRecord) error { return nil }

func pendingApplication(t *testing.T) model.LoanApplication {
	t.Helper()
	emp, err := valueobject.NewEmploymentType("salaried")
	if err != nil {
		t.Fatalf("employment type: %v", err)
	}
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	return model.ReconstructLoanApplication(
		"app-1", "applicant-1",
		decimal.NewFromInt(500_000), "home renovation", 36,
		decimal.NewFromInt(80_000), decimal.Zero,
		emp, "Acme Corp",
		valueobject.ApplicationStatusPending,
		nil, decimal.Zero, "",
		1, now, now,
	)
}

func verifiedDocuments(t *testing.T) []model.Document {
	t.Helper()
	now := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	types := []string{"identity_tax_id", "salary_slip", "bank_statement"}
	docs := make([]model.Document, 0, len(types))
	for i, s := range types {
		dt, err := valueobject.NewDocumentType(s)
		if err != nil {
			t.Fatalf("document type %s: %v", s, err)
		}
		docs = append(docs, model.ReconstructDocument(
			"doc-"+s, "app-1", dt, "s3://docs/"+s,
			valueobject.VerificationStatusVerified,
			map[string]string{}, "all checks passed",
			now.Add(time.Duration(i)*time.Minute), now.Add(time.Duration(i)*time.Minute),
		))
	}
	return docs
}

func newAssessor() *service.Assessor {
	policy := service.DefaultPolicy()
	estimator := service.NewScoreEstimator(nil, testLogger())
	return service.NewAssessor(estimator, service.NewAnalyzer(policy), policy)
}

func newApplicationHandler(appRepo *appRepoMock, docRepo *docRepoMock) *ApplicationHandler {
	logger := testLogger()
	policy := service.DefaultPolicy()
	assessor := newAssessor()
	return NewApplicationHandler(
		usecase.NewSubmitApplicationUseCase(appRepo, publisherMock{}, logger),
		usecase.NewAssessEligibilityUseCase(appRepo, assessor, publisherMock{}, actionLogMock{}, logger),
		usecase.NewMakeDecisionUseCase(appRepo, docRepo, assessor, service.NewRuleChain(policy), publisherMock{}, actionLogMock{}, policy, logger),
		usecase.NewGetApplicationUseCase(appRepo, docRepo),
		usecase.NewGetOfferLetterUseCase(appRepo),
		observability.NewMetrics(nil),
		logger,
	)
}

// -------- tests --------

func TestSubmit_Success(t *testing.T) {
	e := newEchoWithValidator()
	h := newApplicationHandler(&appRepoMock{}, &docRepoMock{})

	reqBody := map[string]any{
		"applicant_id":     "applicant-1",
		"requested_amount": 500000,
		"purpose":          "home renovation",
		"tenure_months":    36,
		"monthly_income":   80000,
		"employment_type":  "salaried",
		"company_name":     "Acme Corp",
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/applications", mustJSON(reqBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Submit(c); err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body: %s", rec.Code, rec.Body.String())
	}
	var got dto.ApplicationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if got.Status != "PENDING" {
		t.Fatalf("status = %s, want PENDING", got.Status)
	}
	if got.ID == "" {
		t.Fatal("expected generated application ID")
	}
}

func TestSubmit_ValidationFailure(t *testing.T) {
	e := newEchoWithValidator()
	h := newApplicationHandler(&appRepoMock{}, &docRepoMock{})

	// Missing applicant_id and an unsupported employment type.
	reqBody := map[string]any{
		"requested_amount": 500000,
		"purpose":          "home renovation",
		"tenure_months":    36,
		"monthly_income":   80000,
		"employment_type":  "freelancer",
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/applications", mustJSON(reqBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Submit(c); err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var got ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if !containsFieldMsg(got.Details, "ApplicantID", "required") {
		t.Errorf("missing ApplicantID error, got %+v", got.Details)
	}
	if !containsFieldMsg(got.Details, "EmploymentType", "one of") {
		t.Errorf("missing EmploymentType error, got %+v", got.Details)
	}
}

func TestGetApplication_NotFound(t *testing.T) {
	e := newEchoWithValidator()
	h := newApplicationHandler(&appRepoMock{}, &docRepoMock{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/applications/nope", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/v1/applications/:id")
	c.SetParamNames("id")
	c.SetParamValues("nope")

	if err := h.Get(c); err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestDecide_Approves(t *testing.T) {
	e := newEchoWithValidator()
	app := pendingApplication(t)
	appRepo := &appRepoMock{
		findByIDFn: func(ctx context.Context, id string) (model.LoanApplication, error) {
			return app, nil
		},
	}
	docRepo := &docRepoMock{
		findByAppIDFn: func(ctx context.Context, applicationID string) ([]model.Document, error) {
			return verifiedDocuments(t), nil
		},
	}
	h := newApplicationHandler(appRepo, docRepo)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/applications/app-1/decision", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/v1/applications/:id/decision")
	c.SetParamNames("id")
	c.SetParamValues("app-1")

	if err := h.Decide(c); err != nil {
		t.Fatalf("Decide error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", rec.Code, rec.Body.String())
	}
	var got dto.DecisionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if got.Status != "APPROVED" {
		t.Fatalf("status = %s, want APPROVED, trace: %+v", got.Status, got.RuleTrace)
	}
	if got.Terms == nil {
		t.Fatal("expected terms on an approval")
	}
	if len(got.RuleTrace) == 0 {
		t.Fatal("expected a populated rule trace")
	}
}

func TestOfferLetter_NotApproved(t *testing.T) {
	e := newEchoWithValidator()
	app := pendingApplication(t)
	appRepo := &appRepoMock{
		findByIDFn: func(ctx context.Context, id string) (model.LoanApplication, error) {
			return app, nil
		},
	}
	h := newApplicationHandler(appRepo, &docRepoMock{})

	reqBody := map[string]any{"applicant_name": "Asha Rao"}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/applications/app-1/offer-letter", mustJSON(reqBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/v1/applications/:id/offer-letter")
	c.SetParamNames("id")
	c.SetParamValues("app-1")

	if err := h.OfferLetter(c); err != nil {
		t.Fatalf("OfferLetter error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409, body: %s", rec.Code, rec.Body.String())
	}
}

func TestUploadDocument_ApplicationMissing(t *testing.T) {
	e := newEchoWithValidator()
	h := NewDocumentHandler(
		usecase.NewUploadDocumentUseCase(&appRepoMock{}, &docRepoMock{}),
		usecase.NewVerifyDocumentUseCase(&docRepoMock{}, publisherMock{}, actionLogMock{}, testLogger()),
		observability.NewMetrics(nil),
		testLogger(),
	)

	reqBody := map[string]any{
		"application_id": "nope",
		"document_type":  "salary_slip",
		"storage_ref":    "s3://docs/slip.pdf",
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", mustJSON(reqBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Upload(c); err != nil {
		t.Fatalf("Upload error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestVerifyDocument_NotFound(t *testing.T) {
	e := newEchoWithValidator()
	h := NewDocumentHandler(
		usecase.NewUploadDocumentUseCase(&appRepoMock{}, &docRepoMock{}),
		usecase.NewVerifyDocumentUseCase(&docRepoMock{}, publisherMock{}, actionLogMock{}, testLogger()),
		observability.NewMetrics(nil),
		testLogger(),
	)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/nope/verify", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/v1/documents/:id/verify")
	c.SetParamNames("id")
	c.SetParamValues("nope")

	if err := h.Verify(c); err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

type analyticsMock struct {
	summary port.PortfolioSummary
}

func (m analyticsMock) PortfolioSummary(context.Context) (port.PortfolioSummary, error) {
	return m.summary, nil
}

func TestPortfolio_Success(t *testing.T) {
	e := newEchoWithValidator()
	h := NewAdminHandler(usecase.NewPortfolioSummaryUseCase(analyticsMock{
		summary: port.PortfolioSummary{
			TotalApplications: 12,
			AvgLoanAmount:     420_000,
			StatusBreakdown: []port.StatusCount{
				{Status: "APPROVED", Count: 7, AvgAmount: 510_000},
				{Status: "REJECTED", Count: 5, AvgAmount: 295_000},
			},
		},
	}), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/portfolio", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Portfolio(c); err != nil {
		t.Fatalf("Portfolio error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got dto.PortfolioSummaryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if got.TotalApplications != 12 || len(got.StatusBreakdown) != 2 {
		t.Fatalf("unexpected summary: %+v", got)
	}
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestReadiness_DatabaseDown(t *testing.T) {
	e := echo.New()
	h := NewHealthHandler("underwriting-engine", pingerFunc(func(context.Context) error {
		return context.DeadlineExceeded
	}))

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.readiness(c); err != nil {
		t.Fatalf("readiness error: %v", err)
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}

func TestLiveness_OK(t *testing.T) {
	e := echo.New()
	h := NewHealthHandler("underwriting-engine", nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.liveness(c); err != nil {
		t.Fatalf("liveness error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
