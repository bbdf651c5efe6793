package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/domain/model"
	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/domain/port"
	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/domain/valueobject"
)

// ApplicationRepo implements port.ApplicationRepository.
type ApplicationRepo struct {
	pool *pgxpool.Pool
}

// NewApplicationRepo creates a new repository backed by PostgreSQL.
func NewApplicationRepo(pool *pgxpool.Pool) *ApplicationRepo {
	return &ApplicationRepo{pool: pool}
}

// Save persists a loan application (upsert by ID with optimistic locking).
func (r *ApplicationRepo) Save(ctx context.Context, app model.LoanApplication) error {
	query := `
		INSERT INTO loan_applications (
			id, applicant_id, requested_amount, purpose, tenure_months,
			monthly_income, existing_emi, employment_type, company_name,
			status, credit_score, dti_ratio, interest_rate, monthly_installment,
			risk_category, max_affordable_principal, eligible,
			approved_amount, rejection_reason,
			version, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22)
		ON CONFLICT (id) DO UPDATE SET
			status                   = EXCLUDED.status,
			credit_score             = EXCLUDED.credit_score,
			dti_ratio                = EXCLUDED.dti_ratio,
			interest_rate            = EXCLUDED.interest_rate,
			monthly_installment      = EXCLUDED.monthly_installment,
			risk_category            = EXCLUDED.risk_category,
			max_affordable_principal = EXCLUDED.max_affordable_principal,
			eligible                 = EXCLUDED.eligible,
			approved_amount          = EXCLUDED.approved_amount,
			rejection_reason         = EXCLUDED.rejection_reason,
			version                  = loan_applications.version + 1,
			updated_at               = EXCLUDED.updated_at
		WHERE loan_applications.version = $20
	`

	var (
		creditScore            *int
		dtiRatio               *float64
		interestRate           *float64
		monthlyInstallment     *decimal.Decimal
		riskCategory           *string
		maxAffordablePrincipal *decimal.Decimal
		eligible               *bool
	)
	if assessment, ok := app.Assessment(); ok {
		creditScore = &assessment.CreditScore
		dtiRatio = &assessment.DTIRatio
		interestRate = &assessment.InterestRateAnnualPct
		monthlyInstallment = &assessment.MonthlyInstallment
		risk := assessment.RiskCategory.String()
		riskCategory = &risk
		maxAffordablePrincipal = &assessment.MaxAffordablePrincipal
		eligible = &assessment.Eligible
	}

	tag, err := r.pool.Exec(ctx, query,
		app.ID(), app.ApplicantID(), app.RequestedAmount(), app.Purpose(), app.TenureMonths(),
		app.MonthlyIncome(), app.ExistingEMI(), app.EmploymentType().String(), app.CompanyName(),
		app.Status().String(), creditScore, dtiRatio, interestRate, monthlyInstallment,
		riskCategory, maxAffordablePrincipal, eligible,
		app.ApprovedAmount(), app.RejectionReason(),
		app.Version(), app.CreatedAt(), app.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save loan application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errors.New("optimistic locking conflict on loan application")
	}
	return nil
}

const applicationColumns = `
	id, applicant_id, requested_amount, purpose, tenure_months,
	monthly_income, existing_emi, employment_type, company_name,
	status, credit_score, dti_ratio, interest_rate, monthly_installment,
	risk_category, max_affordable_principal, eligible,
	approved_amount, rejection_reason,
	version, created_at, updated_at`

// FindByID retrieves a single loan application.
func (r *ApplicationRepo) FindByID(ctx context.Context, id string) (model.LoanApplication, error) {
	query := `SELECT` + applicationColumns + `
		FROM loan_applications
		WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)
	app, err := scanApplication(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.LoanApplication{}, port.ErrApplicationNotFound
	}
	return app, err
}

// FindByApplicantID retrieves all applications filed by one applicant.
func (r *ApplicationRepo) FindByApplicantID(ctx context.Context, applicantID string) ([]model.LoanApplication, error) {
	query := `SELECT` + applicationColumns + `
		FROM loan_applications
		WHERE applicant_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, applicantID)
	if err != nil {
		return nil, fmt.Errorf("query loan applications: %w", err)
	}
	defer rows.Close()

	var result []model.LoanApplication
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, app)
	}
	return result, rows.Err()
}

// ---------------------------------------------------------------------------
// scan helpers
// ---------------------------------------------------------------------------

type scannable interface {
	Scan(dest ...any) error
}

func scanApplication(s scannable) (model.LoanApplication, error) {
	var (
		id, applicantID              string
		requestedAmount              decimal.Decimal
		purpose                      string
		tenureMonths                 int
		monthlyIncome, existingEMI   decimal.Decimal
		employmentStr, companyName   string
		statusStr                    string
		creditScore                  *int
		dtiRatio, interestRate       *float64
		monthlyInstallment           *decimal.Decimal
		riskCategoryStr              *string
		maxAffordablePrincipal       *decimal.Decimal
		eligible                     *bool
		approvedAmount               decimal.Decimal
		rejectionReason              string
		version                      int
		createdAt, updatedAt         time.Time
	)

	err := s.Scan(
		&id, &applicantID, &requestedAmount, &purpose, &tenureMonths,
		&monthlyIncome, &existingEMI, &employmentStr, &companyName,
		&statusStr, &creditScore, &dtiRatio, &interestRate, &monthlyInstallment,
		&riskCategoryStr, &maxAffordablePrincipal, &eligible,
		&approvedAmount, &rejectionReason,
		&version, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.LoanApplication{}, err
		}
		return model.LoanApplication{}, fmt.Errorf("scan loan application: %w", err)
	}

	status, err := valueobject.NewApplicationStatus(statusStr)
	if err != nil {
		return model.LoanApplication{}, fmt.Errorf("parse status: %w", err)
	}
	employment, err := valueobject.NewEmploymentType(employmentStr)
	if err != nil {
		return model.LoanApplication{}, fmt.Errorf("parse employment type: %w", err)
	}

	var assessment *model.EligibilityAssessment
	if creditScore != nil && riskCategoryStr != nil {
		risk, err := valueobject.NewRiskCategory(*riskCategoryStr)
		if err != nil {
			return model.LoanApplication{}, fmt.Errorf("parse risk category: %w", err)
		}
		assessment = &model.EligibilityAssessment{
			CreditScore:            *creditScore,
			DTIRatio:               derefFloat(dtiRatio),
			InterestRateAnnualPct:  derefFloat(interestRate),
			MonthlyInstallment:     derefDecimal(monthlyInstallment),
			RiskCategory:           risk,
			MaxAffordablePrincipal: derefDecimal(maxAffordablePrincipal),
			Eligible:               eligible != nil && *eligible,
		}
	}

	return model.ReconstructLoanApplication(
		id, applicantID, requestedAmount, purpose, tenureMonths,
		monthlyIncome, existingEMI, employment, companyName,
		status, assessment, approvedAmount, rejectionReason,
		version, createdAt, updatedAt,
	), nil
}

func derefFloat(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

func derefDecimal(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
