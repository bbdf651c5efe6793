package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/domain/port"
	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/domain/service"
	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/domain/valueobject"
)

// ErrNotApproved is returned when an offer letter is requested for an
// application that is not in APPROVED status.
var ErrNotApproved = errors.New("only approved applications can generate offer letters")

// GetOfferLetterUseCase assembles the formal offer for an approved
// application.
type GetOfferLetterUseCase struct {
	appRepo port.ApplicationRepository
}

// NewGetOfferLetterUseCase wires dependencies.
func NewGetOfferLetterUseCase(appRepo port.ApplicationRepository) *GetOfferLetterUseCase {
	return &GetOfferLetterUseCase{appRepo: appRepo}
}

// Execute builds the offer letter. Applicant contact details come from the
// caller; the engine does not own an applicant directory.
func (uc *GetOfferLetterUseCase) Execute(
	ctx context.Context,
	applicationID string,
	applicant service.OfferApplicant,
) (service.OfferLetter, error) {
	app, err := uc.appRepo.FindByID(ctx, applicationID)
	if err != nil {
		return service.OfferLetter{}, fmt.Errorf("load application: %w", err)
	}

	if !app.Status().Equal(valueobject.ApplicationStatusApproved) {
		return service.OfferLetter{}, ErrNotApproved
	}

	assessment, ok := app.Assessment()
	if !ok {
		return service.OfferLetter{}, errors.New("approved application has no assessment on record")
	}

	letter := service.GenerateOfferLetter(
		app.ID(), applicant, app.Purpose(),
		app.ApprovedAmount(), assessment.MonthlyInstallment,
		assessment.InterestRateAnnualPct, app.TenureMonths(),
		time.Now().UTC(),
	)
	return letter, nil
}
