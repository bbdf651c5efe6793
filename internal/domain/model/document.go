package model

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/domain/event"
	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Document aggregate
// ---------------------------------------------------------------------------

// Document is a supporting document attached to exactly one loan
// application. It is created pending and is only ever mutated by the
// verification step for its type.
type Document struct {
	id              string
	applicationID   string
	documentType    valueobject.DocumentType
	storageRef      string
	status          valueobject.VerificationStatus
	extractedFields map[string]string
	notes           string
	uploadedAt      time.Time
	updatedAt       time.Time
	domainEvents    []event.DomainEvent
}

// NewDocument creates a pending document bound to an application. The
// extracted fields captured at upload time are what verification later
// runs its checks over.
func NewDocument(
	applicationID string,
	documentType valueobject.DocumentType,
	storageRef string,
	extractedFields map[string]string,
	now time.Time,
) (Document, error) {
	if applicationID == "" {
		return Document{}, errors.New("application ID is required")
	}
	if documentType.IsZero() {
		return Document{}, errors.New("document type is required")
	}
	if storageRef == "" {
		return Document{}, errors.New("storage reference is required")
	}

	return Document{
		id:              uuid.New().String(),
		applicationID:   applicationID,
		documentType:    documentType,
		storageRef:      storageRef,
		status:          valueobject.VerificationStatusPending,
		extractedFields: extractedFields,
		uploadedAt:      now,
		updatedAt:       now,
	}, nil
}

// ReconstructDocument rebuilds a document from persistence without
// side-effects.
func ReconstructDocument(
	id, applicationID string,
	documentType valueobject.DocumentType,
	storageRef string,
	status valueobject.VerificationStatus,
	extractedFields map[string]string,
	notes string,
	uploadedAt, updatedAt time.Time,
) Document {
	return Document{
		id:              id,
		applicationID:   applicationID,
		documentType:    documentType,
		storageRef:      storageRef,
		status:          status,
		extractedFields: extractedFields,
		notes:           notes,
		uploadedAt:      uploadedAt,
		updatedAt:       updatedAt,
	}
}

// RecordVerification moves a pending document to verified or rejected and
// stores the verification notes. A document is never re-opened to pending.
func (d Document) RecordVerification(
	status valueobject.VerificationStatus,
	notes string,
	now time.Time,
) (Document, error) {
	if !d.status.IsPending() {
		return d, valueobject.ErrInvalidStatusTransition
	}
	if status.IsPending() {
		return d, errors.New("verification cannot move a document back to pending")
	}
	next := d
	next.status = status
	next.notes = notes
	next.updatedAt = now
	next.domainEvents = copyEvents(d.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewDocumentVerified(
		d.id, d.applicationID, d.documentType.String(), status.String(),
	))
	return next, nil
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (d Document) ID() string                                    { return d.id }
func (d Document) ApplicationID() string                         { return d.applicationID }
func (d Document) DocumentType() valueobject.DocumentType        { return d.documentType }
func (d Document) StorageRef() string                            { return d.storageRef }
func (d Document) Status() valueobject.VerificationStatus        { return d.status }
func (d Document) Notes() string                                 { return d.notes }
func (d Document) UploadedAt() time.Time                         { return d.uploadedAt }
func (d Document) UpdatedAt() time.Time                          { return d.updatedAt }
func (d Document) DomainEvents() []event.DomainEvent             { return d.domainEvents }

// ExtractedFields returns a copy of the structured fields captured at
// upload time.
func (d Document) ExtractedFields() map[string]string {
	if d.extractedFields == nil {
		return nil
	}
	out := make(map[string]string, len(d.extractedFields))
	for k, v := range d.extractedFields {
		out[k] = v
	}
	return out
}

// ClearEvents returns a copy with an empty event list (call after publishing).
func (d Document) ClearEvents() Document {
	next := d
	next.domainEvents = nil
	return next
}
