package service

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Document verification checks
// ---------------------------------------------------------------------------
//
// Each document type gets a fixed set of named checks over the fields
// extracted at upload time. The checks are pure; persistence of the
// resulting verdict happens at the usecase layer.

var (
	taxIDPattern          = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	aadhaarPattern        = regexp.MustCompile(`^\d{4}-?\d{4}-?\d{4}$`)
	passportPattern       = regexp.MustCompile(`^[A-Z]\d{7}$`)
	drivingLicensePattern = regexp.MustCompile(`^[A-Z]{2}\d{13}$`)
)

// Salary plausibility bounds, monthly gross.
const (
	minPlausibleSalary = 10_000
	maxPlausibleSalary = 10_000_000
)

// Bank statement red-flag thresholds.
const (
	minAverageBalance    = 5_000
	maxBounceCount       = 2
	maxIncomeVariation   = 0.5
	minAverageBankIncome = 15_000
)

// CheckResult is the verdict for one document: the overall outcome plus
// every named check that contributed to it.
type CheckResult struct {
	Valid  bool            `json:"valid"`
	Checks map[string]bool `json:"checks"`
	Notes  string          `json:"notes"`
}

func allPass(checks map[string]bool) bool {
	for _, ok := range checks {
		if !ok {
			return false
		}
	}
	return true
}

// VerifyDocument dispatches on the document type and runs the matching
// check set over the extracted fields.
func VerifyDocument(docType valueobject.DocumentType, fields map[string]string) CheckResult {
	switch docType.String() {
	case valueobject.DocumentTypeIdentityTaxID.String():
		return VerifyTaxID(fields["id_number"])
	case valueobject.DocumentTypeSalarySlip.String():
		return VerifySalarySlip(SalarySlipFields{
			EmployerName: fields["employer_name"],
			EmployeeName: fields["employee_name"],
			GrossSalary:  parseAmount(fields["gross_salary"]),
			SalaryMonth:  fields["salary_month"],
		})
	case valueobject.DocumentTypeBankStatement.String():
		return VerifyBankStatement(BankStatementFields{
			MonthlyCredits: parseAmountList(fields["monthly_credits"]),
			AverageBalance: parseAmount(fields["average_balance"]),
			BounceCount:    parseCount(fields["bounce_count"]),
		})
	case valueobject.DocumentTypeIdentityProof.String():
		return VerifyIdentityProof(IdentityFields{
			Name:     fields["name"],
			IDNumber: fields["id_number"],
			Address:  fields["address"],
			IDType:   fields["id_type"],
		})
	default:
		return CheckResult{
			Valid:  false,
			Checks: map[string]bool{"supported_type": false},
			Notes:  fmt.Sprintf("unsupported document type %q", docType.String()),
		}
	}
}

// VerifyTaxID validates the tax identity number format and checks for a
// personal-holder card (fourth character 'P').
func VerifyTaxID(number string) CheckResult {
	number = strings.ToUpper(strings.TrimSpace(number))
	checks := map[string]bool{
		"format":          taxIDPattern.MatchString(number),
		"personal_holder": len(number) >= 4 && number[3] == 'P',
	}
	valid := allPass(checks)
	notes := "tax identity card verified"
	if !checks["format"] {
		notes = "invalid tax identity format, expected ABCDE1234F"
	} else if !valid {
		notes = "tax identity card is not a personal-holder card"
	}
	return CheckResult{Valid: valid, Checks: checks, Notes: notes}
}

// SalarySlipFields are the fields extracted from an uploaded salary slip.
type SalarySlipFields struct {
	EmployerName string
	EmployeeName string
	GrossSalary  float64
	SalaryMonth  string
}

// VerifySalarySlip checks that the slip names both parties, carries a
// salary month, and shows a plausible gross salary.
func VerifySalarySlip(f SalarySlipFields) CheckResult {
	checks := map[string]bool{
		"has_employer_name": f.EmployerName != "",
		"has_employee_name": f.EmployeeName != "",
		"has_salary_amount": f.GrossSalary > 0,
		"has_salary_month":  f.SalaryMonth != "",
		"salary_plausible":  f.GrossSalary >= minPlausibleSalary && f.GrossSalary <= maxPlausibleSalary,
	}
	valid := allPass(checks)
	notes := "salary slip verified"
	if !valid {
		notes = "salary slip has validation issues"
	}
	return CheckResult{Valid: valid, Checks: checks, Notes: notes}
}

// BankStatementFields are the fields extracted from a bank statement.
type BankStatementFields struct {
	MonthlyCredits []float64
	AverageBalance float64
	BounceCount    int
}

// VerifyBankStatement screens for red flags: low running balance, bounced
// payments, and irregular income (coefficient of variation of monthly
// credits above 0.5), then checks the average credited income floor.
func VerifyBankStatement(f BankStatementFields) CheckResult {
	avgIncome := mean(f.MonthlyCredits)
	checks := map[string]bool{
		"sufficient_balance": f.AverageBalance >= minAverageBalance,
		"low_bounce_rate":    f.BounceCount <= maxBounceCount,
		"regular_income":     coefficientOfVariation(f.MonthlyCredits) <= maxIncomeVariation,
		"income_floor":       avgIncome >= minAverageBankIncome,
	}
	valid := allPass(checks)
	notes := "bank statement verified"
	if !valid {
		notes = "bank statement shows some concerns"
	}
	return CheckResult{Valid: valid, Checks: checks, Notes: notes}
}

// IdentityFields are the fields extracted from an identity proof.
type IdentityFields struct {
	Name     string
	IDNumber string
	Address  string
	IDType   string
}

// VerifyIdentityProof checks presence of the holder details and validates
// the id number against the format for its type. Unknown id types skip
// the format check rather than failing it.
func VerifyIdentityProof(f IdentityFields) CheckResult {
	checks := map[string]bool{
		"has_name":      f.Name != "",
		"has_id_number": f.IDNumber != "",
		"has_address":   f.Address != "",
		"valid_format":  validIDFormat(f.IDNumber, f.IDType),
	}
	valid := allPass(checks)
	notes := "identity proof verified"
	if !valid {
		notes = "identity proof has validation issues"
	}
	return CheckResult{Valid: valid, Checks: checks, Notes: notes}
}

func validIDFormat(idNumber, idType string) bool {
	switch idType {
	case "aadhaar":
		return aadhaarPattern.MatchString(idNumber)
	case "passport":
		return passportPattern.MatchString(idNumber)
	case "driving_license":
		return drivingLicensePattern.MatchString(idNumber)
	default:
		return true
	}
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// coefficientOfVariation returns stddev/mean. Empty or zero-mean inputs
// yield NaN, which fails no threshold comparison on its own; the income
// floor check catches those cases.
func coefficientOfVariation(values []float64) float64 {
	m := mean(values)
	var variance float64
	for _, v := range values {
		variance += (v - m) * (v - m)
	}
	variance /= float64(len(values))
	return math.Sqrt(variance) / m
}

func parseAmount(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

func parseCount(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return v
}

func parseAmountList(s string) []float64 {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		out = append(out, parseAmount(p))
	}
	return out
}
