package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/application/dto"
	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/domain/model"
	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/domain/port"
	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/domain/valueobject"
)

// UploadDocumentUseCase registers an uploaded document against an
// application. The file itself lives in object storage; only the storage
// reference and the extracted fields pass through here.
type UploadDocumentUseCase struct {
	appRepo port.ApplicationRepository
	docRepo port.DocumentRepository
}

// NewUploadDocumentUseCase wires dependencies.
func NewUploadDocumentUseCase(
	appRepo port.ApplicationRepository,
	docRepo port.DocumentRepository,
) *UploadDocumentUseCase {
	return &UploadDocumentUseCase{appRepo: appRepo, docRepo: docRepo}
}

// Execute creates a pending document for the application.
func (uc *UploadDocumentUseCase) Execute(
	ctx context.Context,
	req dto.UploadDocumentRequest,
) (dto.DocumentResponse, error) {
	// The application must exist before documents attach to it.
	if _, err := uc.appRepo.FindByID(ctx, req.ApplicationID); err != nil {
		return dto.DocumentResponse{}, fmt.Errorf("load application: %w", err)
	}

	docType, err := valueobject.NewDocumentType(req.DocumentType)
	if err != nil {
		return dto.DocumentResponse{}, fmt.Errorf("parse document type: %w", err)
	}

	doc, err := model.NewDocument(
		req.ApplicationID, docType, req.StorageRef, req.ExtractedFields, time.Now().UTC(),
	)
	if err != nil {
		return dto.DocumentResponse{}, fmt.Errorf("create document: %w", err)
	}

	if err := uc.docRepo.Save(ctx, doc); err != nil {
		return dto.DocumentResponse{}, fmt.Errorf("save document: %w", err)
	}

	return toDocumentResponse(doc), nil
}
