package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// DocumentType – immutable value object
// ---------------------------------------------------------------------------

// DocumentType identifies the kind of supporting document attached to a
// loan application. Each type has its own verification rules.
type DocumentType struct {
	value string
}

const (
	docTypeIdentityTaxID = "identity_tax_id"
	docTypeSalarySlip    = "salary_slip"
	docTypeBankStatement = "bank_statement"
	docTypeIdentityProof = "identity_proof"
)

var (
	DocumentTypeIdentityTaxID = DocumentType{value: docTypeIdentityTaxID}
	DocumentTypeSalarySlip    = DocumentType{value: docTypeSalarySlip}
	DocumentTypeBankStatement = DocumentType{value: docTypeBankStatement}
	DocumentTypeIdentityProof = DocumentType{value: docTypeIdentityProof}
)

var validDocumentTypes = map[string]DocumentType{
	docTypeIdentityTaxID: DocumentTypeIdentityTaxID,
	docTypeSalarySlip:    DocumentTypeSalarySlip,
	docTypeBankStatement: DocumentTypeBankStatement,
	docTypeIdentityProof: DocumentTypeIdentityProof,
}

// NewDocumentType creates a DocumentType from a raw string.
func NewDocumentType(s string) (DocumentType, error) {
	v, ok := validDocumentTypes[s]
	if !ok {
		return DocumentType{}, fmt.Errorf("invalid document type: %q", s)
	}
	return v, nil
}

// String returns the string representation.
func (t DocumentType) String() string { return t.value }

// IsZero returns true when not initialised.
func (t DocumentType) IsZero() bool { return t.value == "" }

// ---------------------------------------------------------------------------
// VerificationStatus – immutable value object
// ---------------------------------------------------------------------------

// VerificationStatus tracks the verification lifecycle of a document.
// Documents are created pending and move to verified or rejected exactly
// once; they are never automatically re-opened.
type VerificationStatus struct {
	value string
}

const (
	verificationPending  = "pending"
	verificationVerified = "verified"
	verificationRejected = "rejected"
)

var (
	VerificationStatusPending  = VerificationStatus{value: verificationPending}
	VerificationStatusVerified = VerificationStatus{value: verificationVerified}
	VerificationStatusRejected = VerificationStatus{value: verificationRejected}
)

var validVerificationStatuses = map[string]VerificationStatus{
	verificationPending:  VerificationStatusPending,
	verificationVerified: VerificationStatusVerified,
	verificationRejected: VerificationStatusRejected,
}

// NewVerificationStatus creates a VerificationStatus from a raw string.
func NewVerificationStatus(s string) (VerificationStatus, error) {
	v, ok := validVerificationStatuses[s]
	if !ok {
		return VerificationStatus{}, fmt.Errorf("invalid verification status: %q", s)
	}
	return v, nil
}

// String returns the string representation.
func (s VerificationStatus) String() string { return s.value }

// IsZero returns true when not initialised.
func (s VerificationStatus) IsZero() bool { return s.value == "" }

// IsVerified reports whether the document passed verification.
func (s VerificationStatus) IsVerified() bool { return s.value == verificationVerified }

// IsPending reports whether the document still awaits verification.
func (s VerificationStatus) IsPending() bool { return s.value == verificationPending }
