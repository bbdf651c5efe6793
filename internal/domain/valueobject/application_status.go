package valueobject

import (
	"errors"
	"fmt"
)

// ---------------------------------------------------------------------------
// ApplicationStatus – immutable value object
// ---------------------------------------------------------------------------

// ApplicationStatus represents the lifecycle stage of a loan application.
// The status is always derived from the latest decision-chain evaluation;
// it carries no memory of previous evaluations.
type ApplicationStatus struct {
	value string
}

const (
	appStatusPending          = "PENDING"
	appStatusDocumentsPending = "DOCUMENTS_PENDING"
	appStatusUnderReview      = "UNDER_REVIEW"
	appStatusApproved         = "APPROVED"
	appStatusRejected         = "REJECTED"
)

var (
	ApplicationStatusPending          = ApplicationStatus{value: appStatusPending}
	ApplicationStatusDocumentsPending = ApplicationStatus{value: appStatusDocumentsPending}
	ApplicationStatusUnderReview      = ApplicationStatus{value: appStatusUnderReview}
	ApplicationStatusApproved         = ApplicationStatus{value: appStatusApproved}
	ApplicationStatusRejected         = ApplicationStatus{value: appStatusRejected}
)

var validApplicationStatuses = map[string]ApplicationStatus{
	appStatusPending:          ApplicationStatusPending,
	appStatusDocumentsPending: ApplicationStatusDocumentsPending,
	appStatusUnderReview:      ApplicationStatusUnderReview,
	appStatusApproved:         ApplicationStatusApproved,
	appStatusRejected:         ApplicationStatusRejected,
}

// NewApplicationStatus creates an ApplicationStatus from a raw string.
func NewApplicationStatus(s string) (ApplicationStatus, error) {
	v, ok := validApplicationStatuses[s]
	if !ok {
		return ApplicationStatus{}, fmt.Errorf("invalid application status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s ApplicationStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s ApplicationStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s ApplicationStatus) Equal(other ApplicationStatus) bool {
	return s.value == other.value
}

// IsTerminalDecision reports whether the status is one of the four
// decision-chain terminal states.
func (s ApplicationStatus) IsTerminalDecision() bool {
	switch s.value {
	case appStatusDocumentsPending, appStatusUnderReview, appStatusApproved, appStatusRejected:
		return true
	}
	return false
}

// ---------------------------------------------------------------------------
// Sentinel errors
// ---------------------------------------------------------------------------

var (
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)
