package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/domain/service"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// SubmitApplicationRequest carries the data needed to open a new loan
// application.
type SubmitApplicationRequest struct {
	ApplicantID     string          `json:"applicant_id" validate:"required"`
	RequestedAmount decimal.Decimal `json:"requested_amount" validate:"required"`
	Purpose         string          `json:"purpose" validate:"required"`
	TenureMonths    int             `json:"tenure_months" validate:"required,gt=0,lte=84"`
	MonthlyIncome   decimal.Decimal `json:"monthly_income" validate:"required"`
	ExistingEMI     decimal.Decimal `json:"existing_emi"`
	EmploymentType  string          `json:"employment_type" validate:"required,oneof=salaried self_employed"`
	CompanyName     string          `json:"company_name"`
}

// UploadDocumentRequest registers an uploaded document against an
// application. ExtractedFields carries the structured fields pulled from
// the file at upload time; verification runs over them later.
type UploadDocumentRequest struct {
	ApplicationID   string            `json:"application_id" validate:"required"`
	DocumentType    string            `json:"document_type" validate:"required"`
	StorageRef      string            `json:"storage_ref" validate:"required"`
	ExtractedFields map[string]string `json:"extracted_fields"`
}

// VerifyDocumentRequest triggers verification of a pending document.
type VerifyDocumentRequest struct {
	DocumentID string `json:"document_id" validate:"required"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// AssessmentResponse is the external representation of an eligibility
// assessment.
type AssessmentResponse struct {
	CreditScore            int             `json:"credit_score"`
	DTIRatio               float64         `json:"dti_ratio"`
	InterestRateAnnualPct  float64         `json:"interest_rate_annual_pct"`
	MonthlyInstallment     decimal.Decimal `json:"monthly_installment"`
	RiskCategory           string          `json:"risk_category"`
	MaxAffordablePrincipal decimal.Decimal `json:"max_affordable_principal"`
	Eligible               bool            `json:"eligible"`
}

// ApplicationResponse is the external representation of a loan application.
type ApplicationResponse struct {
	ID              string              `json:"id"`
	ApplicantID     string              `json:"applicant_id"`
	RequestedAmount decimal.Decimal     `json:"requested_amount"`
	Purpose         string              `json:"purpose"`
	TenureMonths    int                 `json:"tenure_months"`
	MonthlyIncome   decimal.Decimal     `json:"monthly_income"`
	ExistingEMI     decimal.Decimal     `json:"existing_emi"`
	EmploymentType  string              `json:"employment_type"`
	CompanyName     string              `json:"company_name,omitempty"`
	Status          string              `json:"status"`
	Assessment      *AssessmentResponse `json:"assessment,omitempty"`
	ApprovedAmount  decimal.Decimal     `json:"approved_amount"`
	RejectionReason string              `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// DocumentResponse is the external representation of a document.
type DocumentResponse struct {
	ID            string         `json:"id"`
	ApplicationID string         `json:"application_id"`
	DocumentType  string         `json:"document_type"`
	StorageRef    string         `json:"storage_ref"`
	Status        string         `json:"status"`
	Notes         string         `json:"notes,omitempty"`
	Checks        map[string]bool `json:"checks,omitempty"`
	UploadedAt    time.Time      `json:"uploaded_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// DecisionResponse is the result of one decision-chain evaluation. The
// decision stands even when the write-back fails; PersistenceStale marks
// that case.
type DecisionResponse struct {
	ApplicationID    string                   `json:"application_id"`
	Status           string                   `json:"status"`
	ApprovedAmount   decimal.Decimal          `json:"approved_amount"`
	RejectionReason  string                   `json:"rejection_reason,omitempty"`
	Message          string                   `json:"message"`
	NextSteps        []string                 `json:"next_steps"`
	RuleTrace        []service.RuleTraceEntry `json:"rule_trace"`
	Terms            *service.LoanTerms       `json:"terms,omitempty"`
	PersistenceStale bool                     `json:"persistence_stale,omitempty"`
}

// PortfolioSummaryResponse aggregates application metrics for the admin
// surface.
type PortfolioSummaryResponse struct {
	TotalApplications int64                 `json:"total_applications"`
	StatusBreakdown   []StatusCountResponse `json:"status_breakdown"`
	AvgLoanAmount     float64               `json:"avg_loan_amount"`
	AvgCreditScore    float64               `json:"avg_credit_score"`
	AvgDTIRatio       float64               `json:"avg_dti_ratio"`
	AvgInstallment    float64               `json:"avg_installment"`
}

// StatusCountResponse is one row of the portfolio status breakdown.
type StatusCountResponse struct {
	Status    string  `json:"status"`
	Count     int64   `json:"count"`
	AvgAmount float64 `json:"avg_amount"`
}
