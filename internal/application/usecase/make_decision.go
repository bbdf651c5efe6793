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

// MakeDecisionUseCase runs the full decision pipeline: assessment (reusing
// a cached one when present), document readiness, the ordered rule chain,
// and terms generation for approvals.
type MakeDecisionUseCase struct {
	appRepo   port.ApplicationRepository
	docRepo   port.DocumentRepository
	assessor  *service.Assessor
	chain     *service.RuleChain
	publisher port.EventPublisher
	actionLog port.ActionLogRepository
	policy    service.Policy
	logger    *slog.Logger
}

// NewMakeDecisionUseCase wires dependencies.
func NewMakeDecisionUseCase(
	appRepo port.ApplicationRepository,
	docRepo port.DocumentRepository,
	assessor *service.Assessor,
	chain *service.RuleChain,
	publisher port.EventPublisher,
	actionLog port.ActionLogRepository,
	policy service.Policy,
	logger *slog.Logger,
) *MakeDecisionUseCase {
	return &MakeDecisionUseCase{
		appRepo:   appRepo,
		docRepo:   docRepo,
		assessor:  assessor,
		chain:     chain,
		publisher: publisher,
		actionLog: actionLog,
		policy:    policy,
		logger:    logger,
	}
}

// Execute evaluates the rule chain for the application's current inputs.
// The decision is computed first and returned even when the write-back
// fails; PersistenceStale marks that case for the caller.
func (uc *MakeDecisionUseCase) Execute(
	ctx context.Context,
	applicationID string,
) (dto.DecisionResponse, error) {
	started := time.Now()

	app, err := uc.appRepo.FindByID(ctx, applicationID)
	if err != nil {
		return dto.DecisionResponse{}, fmt.Errorf("load application: %w", err)
	}

	now := time.Now().UTC()

	assessment, ok := app.Assessment()
	if !ok {
		assessment, err = uc.assessor.Assess(ctx, app)
		if err != nil {
			uc.recordAction(ctx, applicationID, nil, false, err.Error(), started)
			return dto.DecisionResponse{}, fmt.Errorf("assess application: %w", err)
		}
		app = app.ApplyAssessment(assessment, now)
	}

	documents, err := uc.docRepo.FindByApplicationID(ctx, applicationID)
	if err != nil {
		return dto.DecisionResponse{}, fmt.Errorf("load documents: %w", err)
	}
	readiness := service.SummarizeReadiness(documents, uc.policy.MinRequiredDocs)

	outcome := uc.chain.Decide(service.DecisionInput{
		RequestedAmount: app.RequestedAmount(),
		TenureMonths:    app.TenureMonths(),
		Assessment:      assessment,
		Readiness:       readiness,
	})

	resp := dto.DecisionResponse{
		ApplicationID:   app.ID(),
		Status:          outcome.Status.String(),
		ApprovedAmount:  outcome.ApprovedAmount,
		RejectionReason: outcome.RejectionReason,
		Message:         outcome.Message,
		NextSteps:       outcome.NextSteps,
		RuleTrace:       outcome.Trace,
	}

	if outcome.Status.Equal(valueobject.ApplicationStatusApproved) {
		terms := service.GenerateTerms(
			outcome.ApprovedAmount, assessment.MonthlyInstallment,
			assessment.InterestRateAnnualPct, app.TenureMonths(),
		)
		resp.Terms = &terms
	}

	app, err = app.ApplyDecision(
		outcome.Status, outcome.ApprovedAmount, outcome.RejectionReason, now,
	)
	if err != nil {
		return dto.DecisionResponse{}, fmt.Errorf("apply decision: %w", err)
	}

	// The outcome stands even if the write-back fails: the chain already
	// ran, so the caller gets the decision marked stale instead of an
	// error that would hide it.
	if err := uc.appRepo.Save(ctx, app); err != nil {
		uc.logger.Error("persist decision failed, returning stale result",
			"application_id", app.ID(), "status", outcome.Status.String(), "error", err)
		resp.PersistenceStale = true
		uc.recordAction(ctx, applicationID, resp, false, err.Error(), started)
		return resp, nil
	}

	if err := uc.publisher.Publish(ctx, app.DomainEvents()...); err != nil {
		uc.logger.Warn("publish decision events failed",
			"application_id", app.ID(), "error", err)
	}

	uc.recordAction(ctx, applicationID, resp, true, "", started)

	return resp, nil
}

func (uc *MakeDecisionUseCase) recordAction(
	ctx context.Context,
	applicationID string,
	output any,
	success bool,
	errMessage string,
	started time.Time,
) {
	rec := model.NewActionRecord(
		applicationID, "decision", "make_decision",
		nil, output, success, errMessage,
		time.Since(started), time.Now().UTC(),
	)
	if err := uc.actionLog.Append(ctx, rec); err != nil {
		uc.logger.Warn("append action log failed",
			"application_id", applicationID, "action", "make_decision", "error", err)
	}
}
