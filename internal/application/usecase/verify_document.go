package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/application/dto"
	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/domain/model"
	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/domain/port"
	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/domain/service"
	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/domain/valueobject"
)

// VerifyDocumentUseCase runs the type-specific checks over a pending
// document's extracted fields and records the verdict.
type VerifyDocumentUseCase struct {
	docRepo   port.DocumentRepository
	publisher port.EventPublisher
	actionLog port.ActionLogRepository
	logger    *slog.Logger
}

// NewVerifyDocumentUseCase wires dependencies.
func NewVerifyDocumentUseCase(
	docRepo port.DocumentRepository,
	publisher port.EventPublisher,
	actionLog port.ActionLogRepository,
	logger *slog.Logger,
) *VerifyDocumentUseCase {
	return &VerifyDocumentUseCase{
		docRepo:   docRepo,
		publisher: publisher,
		actionLog: actionLog,
		logger:    logger,
	}
}

// Execute verifies the document and persists the outcome. Only pending
// documents can be verified.
func (uc *VerifyDocumentUseCase) Execute(
	ctx context.Context,
	req dto.VerifyDocumentRequest,
) (dto.DocumentResponse, error) {
	started := time.Now()

	doc, err := uc.docRepo.FindByID(ctx, req.DocumentID)
	if err != nil {
		return dto.DocumentResponse{}, fmt.Errorf("load document: %w", err)
	}

	applicationID := doc.ApplicationID()
	result := service.VerifyDocument(doc.DocumentType(), doc.ExtractedFields())

	status := valueobject.VerificationStatusRejected
	if result.Valid {
		status = valueobject.VerificationStatusVerified
	}

	doc, err = doc.RecordVerification(status, result.Notes, time.Now().UTC())
	if err != nil {
		uc.recordAction(ctx, applicationID, result, false, err.Error(), started)
		return dto.DocumentResponse{}, fmt.Errorf("record verification: %w", err)
	}

	if err := uc.docRepo.Save(ctx, doc); err != nil {
		uc.recordAction(ctx, applicationID, result, false, err.Error(), started)
		return dto.DocumentResponse{}, fmt.Errorf("save document: %w", err)
	}

	if err := uc.publisher.Publish(ctx, doc.DomainEvents()...); err != nil {
		uc.logger.Warn("publish document events failed",
			"document_id", doc.ID(), "error", err)
	}

	uc.recordAction(ctx, applicationID, result, true, "", started)

	resp := toDocumentResponse(doc)
	resp.Checks = result.Checks
	return resp, nil
}

// recordAction appends an audit row. Audit failures are logged and
// swallowed; they never fail the primary operation.
func (uc *VerifyDocumentUseCase) recordAction(
	ctx context.Context,
	applicationID string,
	output any,
	success bool,
	errMessage string,
	started time.Time,
) {
	rec := model.NewActionRecord(
		applicationID, "verification", "verify_document",
		nil, output, success, errMessage,
		time.Since(started), time.Now().UTC(),
	)
	if err := uc.actionLog.Append(ctx, rec); err != nil {
		uc.logger.Warn("append action log failed",
			"application_id", applicationID, "action", "verify_document", "error", err)
	}
}
