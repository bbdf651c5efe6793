package service_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/domain/service"
)

func TestComputeEMI_StandardLoan(t *testing.T) {
	emi, err := service.ComputeEMI(decimal.NewFromInt(500_000), 12.0, 36)
	require.NoError(t, err)

	// 500k over 36 months at 12% annual comes to 16607/month.
	assert.True(t, decimal.NewFromInt(16_607).Equal(emi), "got %s", emi)
}

func TestComputeEMI_GoodTierRate(t *testing.T) {
	emi, err := service.ComputeEMI(decimal.NewFromInt(500_000), 12.5, 36)
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(16_727).Equal(emi), "got %s", emi)
}

func TestComputeEMI_InvalidInputs(t *testing.T) {
	_, err := service.ComputeEMI(decimal.NewFromInt(100_000), 12.0, 0)
	assert.ErrorIs(t, err, service.ErrInvalidTenure)

	_, err = service.ComputeEMI(decimal.NewFromInt(100_000), 0, 36)
	assert.ErrorIs(t, err, service.ErrInvalidRate)

	_, err = service.ComputeEMI(decimal.NewFromInt(100_000), -1.5, 36)
	assert.ErrorIs(t, err, service.ErrInvalidRate)
}

func TestComputeMaxPrincipal_NonPositiveEMI(t *testing.T) {
	p, err := service.ComputeMaxPrincipal(decimal.Zero, 12.0, 36)
	require.NoError(t, err)
	assert.True(t, p.IsZero())

	p, err = service.ComputeMaxPrincipal(decimal.NewFromInt(-5_000), 12.0, 36)
	require.NoError(t, err)
	assert.True(t, p.IsZero())
}

func TestComputeMaxPrincipal_RoundTrip(t *testing.T) {
	cases := []struct {
		name      string
		principal int64
		rate      float64
		tenure    int
	}{
		{"small short", 50_000, 15.0, 12},
		{"mid", 500_000, 12.5, 36},
		{"large long", 5_000_000, 10.5, 60},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			principal := decimal.NewFromInt(tc.principal)

			emi, err := service.ComputeEMI(principal, tc.rate, tc.tenure)
			require.NoError(t, err)

			back, err := service.ComputeMaxPrincipal(emi, tc.rate, tc.tenure)
			require.NoError(t, err)

			// The installment is rounded to a whole unit, so the inverse
			// lands within a small neighbourhood of the original.
			assert.InDelta(t, principal.InexactFloat64(), back.InexactFloat64(), 100,
				"principal %s round-tripped to %s", principal, back)
		})
	}
}
