package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/domain/event"
	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// LoanApplication aggregate root
// ---------------------------------------------------------------------------

// EligibilityAssessment holds the derived underwriting fields written back
// onto the application. Re-assessment overwrites the whole record; values
// are never accumulated.
type EligibilityAssessment struct {
	CreditScore            int
	DTIRatio               float64
	InterestRateAnnualPct  float64
	MonthlyInstallment     decimal.Decimal
	RiskCategory           valueobject.RiskCategory
	MaxAffordablePrincipal decimal.Decimal
	Eligible               bool
}

// LoanApplication is an immutable aggregate. Every mutation returns a new copy.
type LoanApplication struct {
	id              string
	applicantID     string
	requestedAmount decimal.Decimal
	purpose         string
	tenureMonths    int
	monthlyIncome   decimal.Decimal
	existingEMI     decimal.Decimal
	employmentType  valueobject.EmploymentType
	companyName     string
	status          valueobject.ApplicationStatus
	assessment      *EligibilityAssessment
	approvedAmount  decimal.Decimal
	rejectionReason string
	version         int
	createdAt       time.Time
	updatedAt       time.Time
	domainEvents    []event.DomainEvent
}

// ---------------------------------------------------------------------------
// Constructors
// ---------------------------------------------------------------------------

// NewLoanApplication creates a brand-new application in PENDING status.
func NewLoanApplication(
	applicantID string,
	requestedAmount decimal.Decimal,
	purpose string,
	tenureMonths int,
	monthlyIncome decimal.Decimal,
	existingEMI decimal.Decimal,
	employmentType valueobject.EmploymentType,
	companyName string,
	now time.Time,
) (LoanApplication, error) {
	if applicantID == "" {
		return LoanApplication{}, errors.New("applicant ID is required")
	}
	if requestedAmount.LessThanOrEqual(decimal.Zero) {
		return LoanApplication{}, errors.New("requested amount must be positive")
	}
	if tenureMonths <= 0 {
		return LoanApplication{}, errors.New("tenure months must be positive")
	}
	if monthlyIncome.LessThanOrEqual(decimal.Zero) {
		return LoanApplication{}, errors.New("monthly income must be positive")
	}
	if existingEMI.IsNegative() {
		return LoanApplication{}, errors.New("existing EMI cannot be negative")
	}
	if employmentType.IsZero() {
		return LoanApplication{}, errors.New("employment type is required")
	}

	id := uuid.New().String()
	app := LoanApplication{
		id:              id,
		applicantID:     applicantID,
		requestedAmount: requestedAmount,
		purpose:         purpose,
		tenureMonths:    tenureMonths,
		monthlyIncome:   monthlyIncome,
		existingEMI:     existingEMI,
		employmentType:  employmentType,
		companyName:     companyName,
		status:          valueobject.ApplicationStatusPending,
		approvedAmount:  decimal.Zero,
		version:         1,
		createdAt:       now,
		updatedAt:       now,
	}

	app.domainEvents = append(app.domainEvents, event.NewApplicationSubmitted(
		id, applicantID, requestedAmount, purpose, tenureMonths,
	))
	return app, nil
}

// ReconstructLoanApplication rebuilds an aggregate from persistence without
// side-effects.
func ReconstructLoanApplication(
	id, applicantID string,
	requestedAmount decimal.Decimal,
	purpose string,
	tenureMonths int,
	monthlyIncome, existingEMI decimal.Decimal,
	employmentType valueobject.EmploymentType,
	companyName string,
	status valueobject.ApplicationStatus,
	assessment *EligibilityAssessment,
	approvedAmount decimal.Decimal,
	rejectionReason string,
	version int,
	createdAt, updatedAt time.Time,
) LoanApplication {
	return LoanApplication{
		id:              id,
		applicantID:     applicantID,
		requestedAmount: requestedAmount,
		purpose:         purpose,
		tenureMonths:    tenureMonths,
		monthlyIncome:   monthlyIncome,
		existingEMI:     existingEMI,
		employmentType:  employmentType,
		companyName:     companyName,
		status:          status,
		assessment:      assessment,
		approvedAmount:  approvedAmount,
		rejectionReason: rejectionReason,
		version:         version,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// ---------------------------------------------------------------------------
// Mutations (each returns a new copy)
// ---------------------------------------------------------------------------

// ApplyAssessment overwrites the derived eligibility fields. Assessment is
// idempotent: re-running replaces the previous values wholesale.
func (a LoanApplication) ApplyAssessment(assessment EligibilityAssessment, now time.Time) LoanApplication {
	next := a
	copied := assessment
	next.assessment = &copied
	next.updatedAt = now
	next.domainEvents = copyEvents(a.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewEligibilityAssessed(
		a.id, assessment.CreditScore, assessment.DTIRatio,
		assessment.RiskCategory.String(), assessment.Eligible,
	))
	return next
}

// ApplyDecision records the outcome of a decision-chain evaluation. The
// chain is a pure function of its current inputs, so any status may follow
// any other on re-evaluation; there is no transition memory.
func (a LoanApplication) ApplyDecision(
	status valueobject.ApplicationStatus,
	approvedAmount decimal.Decimal,
	rejectionReason string,
	now time.Time,
) (LoanApplication, error) {
	if !status.IsTerminalDecision() {
		return a, valueobject.ErrInvalidStatusTransition
	}
	next := a
	next.status = status
	next.approvedAmount = approvedAmount
	next.rejectionReason = rejectionReason
	next.updatedAt = now
	next.domainEvents = copyEvents(a.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewDecisionMade(
		a.id, status.String(), approvedAmount, rejectionReason,
	))
	return next, nil
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (a LoanApplication) ID() string                               { return a.id }
func (a LoanApplication) ApplicantID() string                      { return a.applicantID }
func (a LoanApplication) RequestedAmount() decimal.Decimal         { return a.requestedAmount }
func (a LoanApplication) Purpose() string                          { return a.purpose }
func (a LoanApplication) TenureMonths() int                        { return a.tenureMonths }
func (a LoanApplication) MonthlyIncome() decimal.Decimal           { return a.monthlyIncome }
func (a LoanApplication) ExistingEMI() decimal.Decimal             { return a.existingEMI }
func (a LoanApplication) EmploymentType() valueobject.EmploymentType {
	return a.employmentType
}
func (a LoanApplication) CompanyName() string                       { return a.companyName }
func (a LoanApplication) Status() valueobject.ApplicationStatus     { return a.status }
func (a LoanApplication) ApprovedAmount() decimal.Decimal           { return a.approvedAmount }
func (a LoanApplication) RejectionReason() string                   { return a.rejectionReason }
func (a LoanApplication) Version() int                              { return a.version }
func (a LoanApplication) CreatedAt() time.Time                      { return a.createdAt }
func (a LoanApplication) UpdatedAt() time.Time                      { return a.updatedAt }
func (a LoanApplication) DomainEvents() []event.DomainEvent         { return a.domainEvents }

// Assessment returns a copy of the derived eligibility fields, or false
// when the application has not been assessed yet.
func (a LoanApplication) Assessment() (EligibilityAssessment, bool) {
	if a.assessment == nil {
		return EligibilityAssessment{}, false
	}
	return *a.assessment, true
}

// IsAssessed reports whether derived eligibility fields are present.
func (a LoanApplication) IsAssessed() bool { return a.assessment != nil }

// ClearEvents returns a copy with an empty event list (call after publishing).
func (a LoanApplication) ClearEvents() LoanApplication {
	next := a
	next.domainEvents = nil
	return next
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

func copyEvents(src []event.DomainEvent) []event.DomainEvent {
	if len(src) == 0 {
		return nil
	}
	dst := make([]event.DomainEvent, len(src))
	copy(dst, src)
	return dst
}
