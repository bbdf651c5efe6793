package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/domain/port"
	pkgpostgres "github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/pkg/postgres"
)

// AnalyticsRepo implements port.AnalyticsRepository with aggregate queries
// over the applications table.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepo creates a new repository backed by PostgreSQL.
func NewAnalyticsRepo(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// PortfolioSummary aggregates application counts and averages for the
// admin surface. Both queries run in one transaction so the totals and
// the per-status breakdown describe the same snapshot.
func (r *AnalyticsRepo) PortfolioSummary(ctx context.Context) (port.PortfolioSummary, error) {
	var summary port.PortfolioSummary

	err := pkgpostgres.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		var txErr error
		summary, txErr = queryTotals(ctx, tx)
		if txErr != nil {
			return txErr
		}
		summary.StatusBreakdown, txErr = queryStatusBreakdown(ctx, tx)
		return txErr
	})
	if err != nil {
		return port.PortfolioSummary{}, err
	}
	return summary, nil
}

// Averages over assessed fields skip unassessed rows.
func queryTotals(ctx context.Context, q pkgpostgres.Querier) (port.PortfolioSummary, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(AVG(requested_amount), 0),
		       COALESCE(AVG(credit_score), 0),
		       COALESCE(AVG(dti_ratio), 0),
		       COALESCE(AVG(monthly_installment), 0)
		FROM loan_applications
	`
	var summary port.PortfolioSummary
	err := q.QueryRow(ctx, query).Scan(
		&summary.TotalApplications,
		&summary.AvgLoanAmount,
		&summary.AvgCreditScore,
		&summary.AvgDTIRatio,
		&summary.AvgInstallment,
	)
	if err != nil {
		return port.PortfolioSummary{}, fmt.Errorf("query portfolio totals: %w", err)
	}
	return summary, nil
}

func queryStatusBreakdown(ctx context.Context, q pkgpostgres.Querier) ([]port.StatusCount, error) {
	query := `
		SELECT status, COUNT(*), COALESCE(AVG(requested_amount), 0)
		FROM loan_applications
		GROUP BY status
		ORDER BY status
	`
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query status breakdown: %w", err)
	}
	defer rows.Close()

	var breakdown []port.StatusCount
	for rows.Next() {
		var sc port.StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count, &sc.AvgAmount); err != nil {
			return nil, fmt.Errorf("scan status breakdown: %w", err)
		}
		breakdown = append(breakdown, sc)
	}
	return breakdown, rows.Err()
}
