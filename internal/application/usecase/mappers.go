package usecase

import (
	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/application/dto"
	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/domain/model"
)

func toApplicationResponse(app model.LoanApplication) dto.ApplicationResponse {
	resp := dto.ApplicationResponse{
		ID:              app.ID(),
		ApplicantID:     app.ApplicantID(),
		RequestedAmount: app.RequestedAmount(),
		Purpose:         app.Purpose(),
		TenureMonths:    app.TenureMonths(),
		MonthlyIncome:   app.MonthlyIncome(),
		ExistingEMI:     app.ExistingEMI(),
		EmploymentType:  app.EmploymentType().String(),
		CompanyName:     app.CompanyName(),
		Status:          app.Status().String(),
		ApprovedAmount:  app.ApprovedAmount(),
		RejectionReason: app.RejectionReason(),
		CreatedAt:       app.CreatedAt(),
		UpdatedAt:       app.UpdatedAt(),
	}
	if assessment, ok := app.Assessment(); ok {
		resp.Assessment = toAssessmentResponse(assessment)
	}
	return resp
}

func toAssessmentResponse(a model.EligibilityAssessment) *dto.AssessmentResponse {
	return &dto.AssessmentResponse{
		CreditScore:            a.CreditScore,
		DTIRatio:               a.DTIRatio,
		InterestRateAnnualPct:  a.InterestRateAnnualPct,
		MonthlyInstallment:     a.MonthlyInstallment,
		RiskCategory:           a.RiskCategory.String(),
		MaxAffordablePrincipal: a.MaxAffordablePrincipal,
		Eligible:               a.Eligible,
	}
}

func toDocumentResponse(doc model.Document) dto.DocumentResponse {
	return dto.DocumentResponse{
		ID:            doc.ID(),
		ApplicationID: doc.ApplicationID(),
		DocumentType:  doc.DocumentType().String(),
		StorageRef:    doc.StorageRef(),
		Status:        doc.Status().String(),
		Notes:         doc.Notes(),
		UploadedAt:    doc.UploadedAt(),
		UpdatedAt:     doc.UpdatedAt(),
	}
}
