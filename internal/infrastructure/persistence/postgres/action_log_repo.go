package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/domain/model"
)

// ActionLogRepo implements port.ActionLogRepository as an append-only
// audit table.
type ActionLogRepo struct {
	pool *pgxpool.Pool
}

// NewActionLogRepo creates a new repository backed by PostgreSQL.
func NewActionLogRepo(pool *pgxpool.Pool) *ActionLogRepo {
	return &ActionLogRepo{pool: pool}
}

// Append inserts one audit row. There is no update path.
func (r *ActionLogRepo) Append(ctx context.Context, rec model.ActionRecord) error {
	query := `
		INSERT INTO engine_actions (
			id, application_id, agent_name, action,
			input_data, output_data, success, error_message,
			execution_time_ms, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`
	_, err := r.pool.Exec(ctx, query,
		rec.ID, rec.ApplicationID, rec.AgentName, rec.Action,
		rec.Input, rec.Output, rec.Success, rec.ErrorMessage,
		rec.DurationMS, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("append engine action: %w", err)
	}
	return nil
}
