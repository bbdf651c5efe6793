package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/domain/model"
	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/domain/port"
	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/domain/valueobject"
)

// DocumentRepo implements port.DocumentRepository.
type DocumentRepo struct {
	pool *pgxpool.Pool
}

// NewDocumentRepo creates a new repository backed by PostgreSQL.
func NewDocumentRepo(pool *pgxpool.Pool) *DocumentRepo {
	return &DocumentRepo{pool: pool}
}

// Save persists a document (upsert by ID). Extracted fields are stored as
// JSONB.
func (r *DocumentRepo) Save(ctx context.Context, doc model.Document) error {
	query := `
		INSERT INTO documents (
			id, application_id, document_type, storage_ref,
			verification_status, extracted_fields, notes,
			uploaded_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		ON CONFLICT (id) DO UPDATE SET
			verification_status = EXCLUDED.verification_status,
			extracted_fields    = EXCLUDED.extracted_fields,
			notes               = EXCLUDED.notes,
			updated_at          = EXCLUDED.updated_at
	`
	_, err := r.pool.Exec(ctx, query,
		doc.ID(), doc.ApplicationID(), doc.DocumentType().String(), doc.StorageRef(),
		doc.Status().String(), doc.ExtractedFields(), doc.Notes(),
		doc.UploadedAt(), doc.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}

const documentColumns = `
	id, application_id, document_type, storage_ref,
	verification_status, extracted_fields, notes,
	uploaded_at, updated_at`

// FindByID retrieves a single document.
func (r *DocumentRepo) FindByID(ctx context.Context, id string) (model.Document, error) {
	query := `SELECT` + documentColumns + `
		FROM documents
		WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)
	doc, err := scanDocument(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Document{}, port.ErrDocumentNotFound
	}
	return doc, err
}

// FindByApplicationID retrieves every document attached to an application.
func (r *DocumentRepo) FindByApplicationID(ctx context.Context, applicationID string) ([]model.Document, error) {
	query := `SELECT` + documentColumns + `
		FROM documents
		WHERE application_id = $1
		ORDER BY uploaded_at ASC
	`
	rows, err := r.pool.Query(ctx, query, applicationID)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()

	var result []model.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, doc)
	}
	return result, rows.Err()
}

func scanDocument(s scannable) (model.Document, error) {
	var (
		id, applicationID    string
		docTypeStr           string
		storageRef           string
		statusStr            string
		extractedFields      map[string]string
		notes                string
		uploadedAt, updated  time.Time
	)

	err := s.Scan(
		&id, &applicationID, &docTypeStr, &storageRef,
		&statusStr, &extractedFields, &notes,
		&uploadedAt, &updated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Document{}, err
		}
		return model.Document{}, fmt.Errorf("scan document: %w", err)
	}

	docType, err := valueobject.NewDocumentType(docTypeStr)
	if err != nil {
		return model.Document{}, fmt.Errorf("parse document type: %w", err)
	}
	status, err := valueobject.NewVerificationStatus(statusStr)
	if err != nil {
		return model.Document{}, fmt.Errorf("parse verification status: %w", err)
	}

	return model.ReconstructDocument(
		id, applicationID, docType, storageRef,
		status, extractedFields, notes, uploadedAt, updated,
	), nil
}
