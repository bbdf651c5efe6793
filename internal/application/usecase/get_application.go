package usecase

import (
	"context"
	"fmt"

	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/application/dto"
	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/domain/port"
)

// GetApplicationUseCase retrieves one application, optionally with its
// documents.
type GetApplicationUseCase struct {
	appRepo port.ApplicationRepository
	docRepo port.DocumentRepository
}

// NewGetApplicationUseCase wires dependencies.
func NewGetApplicationUseCase(
	appRepo port.ApplicationRepository,
	docRepo port.DocumentRepository,
) *GetApplicationUseCase {
	return &GetApplicationUseCase{appRepo: appRepo, docRepo: docRepo}
}

// Execute returns the application by id.
func (uc *GetApplicationUseCase) Execute(
	ctx context.Context,
	applicationID string,
) (dto.ApplicationResponse, error) {
	app, err := uc.appRepo.FindByID(ctx, applicationID)
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("load application: %w", err)
	}
	return toApplicationResponse(app), nil
}

// ListByApplicant returns every application filed by one applicant.
func (uc *GetApplicationUseCase) ListByApplicant(
	ctx context.Context,
	applicantID string,
) ([]dto.ApplicationResponse, error) {
	apps, err := uc.appRepo.FindByApplicantID(ctx, applicantID)
	if err != nil {
		return nil, fmt.Errorf("load applications: %w", err)
	}
	out := make([]dto.ApplicationResponse, 0, len(apps))
	for _, app := range apps {
		out = append(out, toApplicationResponse(app))
	}
	return out, nil
}

// Documents returns the application's uploaded documents.
func (uc *GetApplicationUseCase) Documents(
	ctx context.Context,
	applicationID string,
) ([]dto.DocumentResponse, error) {
	docs, err := uc.docRepo.FindByApplicationID(ctx, applicationID)
	if err != nil {
		return nil, fmt.Errorf("load documents: %w", err)
	}
	out := make([]dto.DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		out = append(out, toDocumentResponse(doc))
	}
	return out, nil
}
