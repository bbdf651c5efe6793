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
)

// AssessEligibilityUseCase runs the underwriting pipeline for one
// application and writes the derived fields back onto it.
type AssessEligibilityUseCase struct {
	appRepo   port.ApplicationRepository
	assessor  *service.Assessor
	publisher port.EventPublisher
	actionLog port.ActionLogRepository
	logger    *slog.Logger
}

// NewAssessEligibilityUseCase wires dependencies.
func NewAssessEligibilityUseCase(
	appRepo port.ApplicationRepository,
	assessor *service.Assessor,
	publisher port.EventPublisher,
	actionLog port.ActionLogRepository,
	logger *slog.Logger,
) *AssessEligibilityUseCase {
	return &AssessEligibilityUseCase{
		appRepo:   appRepo,
		assessor:  assessor,
		publisher: publisher,
		actionLog: actionLog,
		logger:    logger,
	}
}

// Execute assesses the application and persists the result. Re-running
// replaces the previous assessment.
func (uc *AssessEligibilityUseCase) Execute(
	ctx context.Context,
	applicationID string,
) (dto.ApplicationResponse, error) {
	started := time.Now()

	app, err := uc.appRepo.FindByID(ctx, applicationID)
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("load application: %w", err)
	}

	assessment, err := uc.assessor.Assess(ctx, app)
	if err != nil {
		uc.recordAction(ctx, applicationID, "assess_eligibility", nil, false, err.Error(), started)
		return dto.ApplicationResponse{}, fmt.Errorf("assess application: %w", err)
	}

	app = app.ApplyAssessment(assessment, time.Now().UTC())

	if err := uc.appRepo.Save(ctx, app); err != nil {
		uc.recordAction(ctx, applicationID, "assess_eligibility", assessment, false, err.Error(), started)
		return dto.ApplicationResponse{}, fmt.Errorf("save application: %w", err)
	}

	if err := uc.publisher.Publish(ctx, app.DomainEvents()...); err != nil {
		uc.logger.Warn("publish assessment events failed",
			"application_id", app.ID(), "error", err)
	}

	uc.recordAction(ctx, applicationID, "assess_eligibility", assessment, true, "", started)

	return toApplicationResponse(app), nil
}

// recordAction appends an audit row. Audit failures are logged and
// swallowed; they never fail the primary operation.
func (uc *AssessEligibilityUseCase) recordAction(
	ctx context.Context,
	applicationID, action string,
	output any,
	success bool,
	errMessage string,
	started time.Time,
) {
	rec := model.NewActionRecord(
		applicationID, "underwriting", action,
		nil, output, success, errMessage,
		time.Since(started), time.Now().UTC(),
	)
	if err := uc.actionLog.Append(ctx, rec); err != nil {
		uc.logger.Warn("append action log failed",
			"application_id", applicationID, "action", action, "error", err)
	}
}
