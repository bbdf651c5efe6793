package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ActionRecord is one append-only audit row per engine invocation. The
// engine only ever writes these; it never reads them back.
type ActionRecord struct {
	ID            string
	ApplicationID string
	AgentName     string
	Action        string
	Input         json.RawMessage
	Output        json.RawMessage
	Success       bool
	ErrorMessage  string
	DurationMS    int64
	CreatedAt     time.Time
}

// NewActionRecord builds an audit row for a completed engine action.
// Input and output snapshots are best-effort; a marshalling failure leaves
// the snapshot empty rather than losing the row.
func NewActionRecord(
	applicationID, agentName, action string,
	input, output any,
	success bool,
	errorMessage string,
	duration time.Duration,
	now time.Time,
) ActionRecord {
	return ActionRecord{
		ID:            uuid.New().String(),
		ApplicationID: applicationID,
		AgentName:     agentName,
		Action:        action,
		Input:         marshalSnapshot(input),
		Output:        marshalSnapshot(output),
		Success:       success,
		ErrorMessage:  errorMessage,
		DurationMS:    duration.Milliseconds(),
		CreatedAt:     now,
	}
}

func marshalSnapshot(v any) json.RawMessage {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return b
}
