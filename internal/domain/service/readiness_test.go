package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/domain/model"
	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/domain/service"
	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/domain/valueobject"
)

func docWithStatus(id string, status valueobject.VerificationStatus) model.Document {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	return model.ReconstructDocument(
		id, "app-1", valueobject.DocumentTypeSalarySlip, "uploads/"+id,
		status, nil, "", now, now,
	)
}

func TestSummarizeReadiness_EmptySet(t *testing.T) {
	r := service.SummarizeReadiness(nil, 3)

	assert.False(t, r.Complete)
	assert.False(t, r.AllVerified)
	assert.Equal(t, 0, r.Total)
	assert.Equal(t, 0, r.Verified)
}

func TestSummarizeReadiness_IncompleteSet(t *testing.T) {
	docs := []model.Document{
		docWithStatus("d1", valueobject.VerificationStatusVerified),
		docWithStatus("d2", valueobject.VerificationStatusVerified),
	}

	r := service.SummarizeReadiness(docs, 3)

	assert.False(t, r.Complete)
	assert.True(t, r.AllVerified)
	assert.Equal(t, 2, r.Total)
	assert.Equal(t, 2, r.Verified)
}

func TestSummarizeReadiness_PendingDocumentBlocksVerification(t *testing.T) {
	docs := []model.Document{
		docWithStatus("d1", valueobject.VerificationStatusVerified),
		docWithStatus("d2", valueobject.VerificationStatusVerified),
		docWithStatus("d3", valueobject.VerificationStatusPending),
	}

	r := service.SummarizeReadiness(docs, 3)

	assert.True(t, r.Complete)
	assert.False(t, r.AllVerified)
	assert.Equal(t, 3, r.Total)
	assert.Equal(t, 2, r.Verified)
}

func TestSummarizeReadiness_RejectedCountsAgainstVerification(t *testing.T) {
	docs := []model.Document{
		docWithStatus("d1", valueobject.VerificationStatusVerified),
		docWithStatus("d2", valueobject.VerificationStatusVerified),
		docWithStatus("d3", valueobject.VerificationStatusRejected),
	}

	r := service.SummarizeReadiness(docs, 3)

	assert.True(t, r.Complete)
	assert.False(t, r.AllVerified)
	assert.Equal(t, 2, r.Verified)
}

func TestSummarizeReadiness_AllVerified(t *testing.T) {
	docs := []model.Document{
		docWithStatus("d1", valueobject.VerificationStatusVerified),
		docWithStatus("d2", valueobject.VerificationStatusVerified),
		docWithStatus("d3", valueobject.VerificationStatusVerified),
	}

	r := service.SummarizeReadiness(docs, 3)

	assert.True(t, r.Complete)
	assert.True(t, r.AllVerified)
	assert.Equal(t, 3, r.Verified)
}
