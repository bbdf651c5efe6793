package event

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DomainEvent is the interface all domain events implement.
type DomainEvent interface {
	EventID() string
	EventType() string
	AggregateID() string
	OccurredAt() time.Time
}

// BaseEvent provides the common DomainEvent implementation.
type BaseEvent struct {
	ID         string    `json:"event_id"`
	Type       string    `json:"event_type"`
	Aggregate  string    `json:"aggregate_id"`
	OccurredTS time.Time `json:"occurred_at"`
}

// NewBaseEvent creates a BaseEvent with a generated UUID and the current time.
func NewBaseEvent(eventType, aggregateID string) BaseEvent {
	return BaseEvent{
		ID:         uuid.New().String(),
		Type:       eventType,
		Aggregate:  aggregateID,
		OccurredTS: time.Now().UTC(),
	}
}

func (e BaseEvent) EventID() string       { return e.ID }
func (e BaseEvent) EventType() string     { return e.Type }
func (e BaseEvent) AggregateID() string   { return e.Aggregate }
func (e BaseEvent) OccurredAt() time.Time { return e.OccurredTS }

// ---------------------------------------------------------------------------
// Application events
// ---------------------------------------------------------------------------

// ApplicationSubmitted is raised when a new loan application enters the
// system.
type ApplicationSubmitted struct {
	BaseEvent
	ApplicantID     string          `json:"applicant_id"`
	RequestedAmount decimal.Decimal `json:"requested_amount"`
	Purpose         string          `json:"purpose"`
	TenureMonths    int             `json:"tenure_months"`
}

func NewApplicationSubmitted(
	applicationID, applicantID string,
	requestedAmount decimal.Decimal,
	purpose string,
	tenureMonths int,
) ApplicationSubmitted {
	return ApplicationSubmitted{
		BaseEvent:       NewBaseEvent("lending.application.submitted", applicationID),
		ApplicantID:     applicantID,
		RequestedAmount: requestedAmount,
		Purpose:         purpose,
		TenureMonths:    tenureMonths,
	}
}

// EligibilityAssessed is raised when the underwriting pipeline writes a
// fresh assessment onto an application.
type EligibilityAssessed struct {
	BaseEvent
	CreditScore  int     `json:"credit_score"`
	DTIRatio     float64 `json:"dti_ratio"`
	RiskCategory string  `json:"risk_category"`
	Eligible     bool    `json:"eligible"`
}

func NewEligibilityAssessed(
	applicationID string,
	creditScore int,
	dtiRatio float64,
	riskCategory string,
	eligible bool,
) EligibilityAssessed {
	return EligibilityAssessed{
		BaseEvent:    NewBaseEvent("lending.application.assessed", applicationID),
		CreditScore:  creditScore,
		DTIRatio:     dtiRatio,
		RiskCategory: riskCategory,
		Eligible:     eligible,
	}
}

// DecisionMade is raised when the decision chain reaches a terminal state.
type DecisionMade struct {
	BaseEvent
	Status          string          `json:"status"`
	ApprovedAmount  decimal.Decimal `json:"approved_amount"`
	RejectionReason string          `json:"rejection_reason,omitempty"`
}

func NewDecisionMade(
	applicationID, status string,
	approvedAmount decimal.Decimal,
	rejectionReason string,
) DecisionMade {
	return DecisionMade{
		BaseEvent:       NewBaseEvent("lending.application.decided", applicationID),
		Status:          status,
		ApprovedAmount:  approvedAmount,
		RejectionReason: rejectionReason,
	}
}

// ---------------------------------------------------------------------------
// Document events
// ---------------------------------------------------------------------------

// DocumentVerified is raised when a document completes verification,
// whether it passed or was rejected.
type DocumentVerified struct {
	BaseEvent
	ApplicationID string `json:"application_id"`
	DocumentType  string `json:"document_type"`
	Status        string `json:"status"`
}

func NewDocumentVerified(documentID, applicationID, documentType, status string) DocumentVerified {
	return DocumentVerified{
		BaseEvent:     NewBaseEvent("lending.document.verified", documentID),
		ApplicationID: applicationID,
		DocumentType:  documentType,
		Status:        status,
	}
}
