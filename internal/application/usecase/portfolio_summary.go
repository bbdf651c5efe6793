package usecase

import (
	"context"
	"fmt"

	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/application/dto"
	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/domain/port"
)

// PortfolioSummaryUseCase serves the admin portfolio breakdown.
type PortfolioSummaryUseCase struct {
	analytics port.AnalyticsRepository
}

// NewPortfolioSummaryUseCase wires dependencies.
func NewPortfolioSummaryUseCase(analytics port.AnalyticsRepository) *PortfolioSummaryUseCase {
	return &PortfolioSummaryUseCase{analytics: analytics}
}

// Execute returns the aggregated portfolio metrics.
func (uc *PortfolioSummaryUseCase) Execute(ctx context.Context) (dto.PortfolioSummaryResponse, error) {
	summary, err := uc.analytics.PortfolioSummary(ctx)
	if err != nil {
		return dto.PortfolioSummaryResponse{}, fmt.Errorf("load portfolio summary: %w", err)
	}

	breakdown := make([]dto.StatusCountResponse, 0, len(summary.StatusBreakdown))
	for _, sc := range summary.StatusBreakdown {
		breakdown = append(breakdown, dto.StatusCountResponse{
			Status:    sc.Status,
			Count:     sc.Count,
			AvgAmount: sc.AvgAmount,
		})
	}

	return dto.PortfolioSummaryResponse{
		TotalApplications: summary.TotalApplications,
		StatusBreakdown:   breakdown,
		AvgLoanAmount:     summary.AvgLoanAmount,
		AvgCreditScore:    summary.AvgCreditScore,
		AvgDTIRatio:       summary.AvgDTIRatio,
		AvgInstallment:    summary.AvgInstallment,
	}, nil
}
