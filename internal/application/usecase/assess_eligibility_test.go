package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/application/usecase"
	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/domain/model"
	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/domain/port"
)

func TestAssessEligibility_WritesAssessmentBack(t *testing.T) {
	app := pendingApplication(t)
	appRepo := &mockApplicationRepository{
		findByIDFunc: func(context.Context, string) (model.LoanApplication, error) {
			return app, nil
		},
	}
	publisher := &mockEventPublisher{}
	actions := &mockActionLog{}

	uc := usecase.NewAssessEligibilityUseCase(
		appRepo, defaultAssessor(), publisher, actions, testLogger(),
	)

	resp, err := uc.Execute(context.Background(), "app-1")
	require.NoError(t, err)

	// 80k salaried income, 500k over 36 months: fallback score 730,
	// good tier 12.5%, well under the DTI ceiling.
	require.NotNil(t, resp.Assessment)
	assert.Equal(t, 730, resp.Assessment.CreditScore)
	assert.Equal(t, 12.5, resp.Assessment.InterestRateAnnualPct)
	assert.InDelta(t, 20.76, resp.Assessment.DTIRatio, 0.01)
	assert.Equal(t, "low", resp.Assessment.RiskCategory)
	assert.True(t, resp.Assessment.Eligible)

	require.Len(t, appRepo.savedApps, 1)
	assert.True(t, appRepo.savedApps[0].IsAssessed())
	assert.NotEmpty(t, publisher.publishedEvents)
	require.Len(t, actions.records, 1)
	assert.True(t, actions.records[0].Success)
}

func TestAssessEligibility_ReassessmentOverwrites(t *testing.T) {
	assessed := pendingApplication(t).ApplyAssessment(model.EligibilityAssessment{
		CreditScore:  610,
		RiskCategory: mustRisk(t, "high"),
	}, app0Time()).ClearEvents()

	appRepo := &mockApplicationRepository{
		findByIDFunc: func(context.Context, string) (model.LoanApplication, error) {
			return assessed, nil
		},
	}

	uc := usecase.NewAssessEligibilityUseCase(
		appRepo, defaultAssessor(), &mockEventPublisher{}, &mockActionLog{}, testLogger(),
	)

	resp, err := uc.Execute(context.Background(), "app-1")
	require.NoError(t, err)

	// Fresh inputs replace the stale 610 wholesale.
	require.NotNil(t, resp.Assessment)
	assert.Equal(t, 730, resp.Assessment.CreditScore)
}

func TestAssessEligibility_UnknownApplication(t *testing.T) {
	uc := usecase.NewAssessEligibilityUseCase(
		&mockApplicationRepository{}, defaultAssessor(),
		&mockEventPublisher{}, &mockActionLog{}, testLogger(),
	)

	_, err := uc.Execute(context.Background(), "missing")
	assert.ErrorIs(t, err, port.ErrApplicationNotFound)
}
