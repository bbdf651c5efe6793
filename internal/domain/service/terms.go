package service

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// processingFeePct is charged on the approved amount at disbursement.
const processingFeePct = 0.02

// offerValidityDays is how long a generated offer letter stays open.
const offerValidityDays = 15

// LoanTerms is the disclosure sheet attached to an approved decision.
type LoanTerms struct {
	LoanAmount            decimal.Decimal `json:"loan_amount"`
	InterestRateAnnualPct float64         `json:"interest_rate_annual_pct"`
	TenureMonths          int             `json:"tenure_months"`
	MonthlyInstallment    decimal.Decimal `json:"monthly_installment"`
	TotalInterest         decimal.Decimal `json:"total_interest"`
	TotalPayable          decimal.Decimal `json:"total_payable"`
	ProcessingFee         decimal.Decimal `json:"processing_fee"`
	DisbursementMethod    string          `json:"disbursement_method"`
	RepaymentMethod       string          `json:"repayment_method"`
	PrepaymentCharges     string          `json:"prepayment_charges"`
	LatePaymentCharges    string          `json:"late_payment_charges"`
	KeyTerms              []string        `json:"key_terms"`
	RequiredDocuments     []string        `json:"required_documents"`
}

// GenerateTerms derives the terms sheet from the approved figures. Pure
// computation; callers decide where the result goes.
func GenerateTerms(approvedAmount, monthlyInstallment decimal.Decimal, annualRatePct float64, tenureMonths int) LoanTerms {
	totalPayable := monthlyInstallment.Mul(decimal.NewFromInt(int64(tenureMonths)))
	totalInterest := totalPayable.Sub(approvedAmount)

	return LoanTerms{
		LoanAmount:            approvedAmount,
		InterestRateAnnualPct: annualRatePct,
		TenureMonths:          tenureMonths,
		MonthlyInstallment:    monthlyInstallment,
		TotalInterest:         totalInterest.Round(0),
		TotalPayable:          totalPayable.Round(0),
		ProcessingFee:         approvedAmount.Mul(decimal.NewFromFloat(processingFeePct)).Round(0),
		DisbursementMethod:    "Direct bank transfer",
		RepaymentMethod:       "Auto-debit from bank account",
		PrepaymentCharges:     "Nil after 6 months, 2% before 6 months",
		LatePaymentCharges:    "2% per month on overdue amount",
		KeyTerms: []string{
			"The loan is subject to approval and verification",
			"Interest rate is fixed for the entire tenure",
			"EMI due date is 5th of every month",
			"First EMI due after 30 days of disbursement",
			"Loan can be prepaid after 6 months without charges",
			"Late payment attracts penal charges",
			"The lender reserves the right to reject or modify the application",
		},
		RequiredDocuments: []string{
			"Signed loan agreement",
			"Post-dated cheques / NACH mandate",
			"KYC documents",
			"Income proof",
		},
	}
}

// OfferLetter is the formal offer generated for an approved application.
type OfferLetter struct {
	LetterNumber       string          `json:"letter_number"`
	IssuedAt           time.Time       `json:"issued_at"`
	ApplicantName      string          `json:"applicant_name"`
	ApplicantEmail     string          `json:"applicant_email"`
	ApplicantPhone     string          `json:"applicant_phone"`
	LoanAmount         decimal.Decimal `json:"loan_amount"`
	LoanPurpose        string          `json:"loan_purpose"`
	TenureMonths       int             `json:"tenure_months"`
	InterestRatePct    float64         `json:"interest_rate_pct"`
	MonthlyInstallment decimal.Decimal `json:"monthly_installment"`
	Terms              LoanTerms       `json:"terms"`
	ValidUntil         time.Time       `json:"valid_until"`
	AcceptanceRequired bool            `json:"acceptance_required"`
}

// OfferApplicant carries the contact details stamped on the letter.
type OfferApplicant struct {
	Name  string
	Email string
	Phone string
}

// GenerateOfferLetter assembles the offer for an already-approved
// application. The letter number embeds the issue year and the
// application id; validity is fixed at 15 days from issue.
func GenerateOfferLetter(applicationID string, applicant OfferApplicant, purpose string, approvedAmount, monthlyInstallment decimal.Decimal, annualRatePct float64, tenureMonths int, now time.Time) OfferLetter {
	terms := GenerateTerms(approvedAmount, monthlyInstallment, annualRatePct, tenureMonths)

	return OfferLetter{
		LetterNumber:       fmt.Sprintf("SMLOAN/%d/%s", now.Year(), applicationID),
		IssuedAt:           now,
		ApplicantName:      applicant.Name,
		ApplicantEmail:     applicant.Email,
		ApplicantPhone:     applicant.Phone,
		LoanAmount:         approvedAmount,
		LoanPurpose:        purpose,
		TenureMonths:       tenureMonths,
		InterestRatePct:    annualRatePct,
		MonthlyInstallment: monthlyInstallment,
		Terms:              terms,
		ValidUntil:         now.AddDate(0, 0, offerValidityDays),
		AcceptanceRequired: true,
	}
}
