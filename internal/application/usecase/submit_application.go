package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/application/dto"
	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/domain/model"
	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/domain/port"
	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/domain/valueobject"
)

// SubmitApplicationUseCase opens a new loan application in PENDING status.
// Underwriting happens later, on explicit assessment or decision requests.
type SubmitApplicationUseCase struct {
	appRepo   port.ApplicationRepository
	publisher port.EventPublisher
	logger    *slog.Logger
}

// NewSubmitApplicationUseCase wires dependencies.
func NewSubmitApplicationUseCase(
	appRepo port.ApplicationRepository,
	publisher port.EventPublisher,
	logger *slog.Logger,
) *SubmitApplicationUseCase {
	return &SubmitApplicationUseCase{
		appRepo:   appRepo,
		publisher: publisher,
		logger:    logger,
	}
}

// Execute validates and persists a new application.
func (uc *SubmitApplicationUseCase) Execute(
	ctx context.Context,
	req dto.SubmitApplicationRequest,
) (dto.ApplicationResponse, error) {
	now := time.Now().UTC()

	employment, err := valueobject.NewEmploymentType(req.EmploymentType)
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("parse employment type: %w", err)
	}

	app, err := model.NewLoanApplication(
		req.ApplicantID, req.RequestedAmount, req.Purpose, req.TenureMonths,
		req.MonthlyIncome, req.ExistingEMI, employment, req.CompanyName, now,
	)
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("create application: %w", err)
	}

	if err := uc.appRepo.Save(ctx, app); err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("save application: %w", err)
	}

	if err := uc.publisher.Publish(ctx, app.DomainEvents()...); err != nil {
		uc.logger.Warn("publish application events failed",
			"application_id", app.ID(), "error", err)
	}

	return toApplicationResponse(app), nil
}
