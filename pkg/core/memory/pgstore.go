package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"decisionscan/pkg/core/store"
	"decisionscan/pkg/models"
)

// PGStore persists context history in Postgres as a JSONB blob per context
// id, upserted on every record. It satisfies the same Store interface as
// the in-process ring, so the advisor is unaware of the backing.
type PGStore struct {
	size int
}

// NewPGStore builds a Postgres-backed store. The pool must be initialized
// via store.InitDB before first use. size <= 0 selects the default ring
// size.
//
// Schema assumption:
//
//	CREATE TABLE IF NOT EXISTS decision_history (
//	  context_id TEXT PRIMARY KEY,
//	  history_json JSONB,
//	  updated_at TIMESTAMPTZ
//	);
func NewPGStore(size int) *PGStore {
	if size <= 0 {
		size = DefaultRingSize
	}
	return &PGStore{size: size}
}

// Record appends one outcome in a single atomic upsert: concurrent scans
// of the same context serialize on the row, never on a read-modify-write
// in Go. Each write adds exactly one element, so dropping the head when
// the ring is full keeps the length at size.
func (p *PGStore) Record(ctx context.Context, contextID string, rec models.HistoricalOutcome) error {
	pool := store.GetPool()
	if pool == nil {
		return fmt.Errorf("memory_store_unavailable: database pool not initialized")
	}

	jsonData, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal outcome: %w", err)
	}

	query := `
		INSERT INTO decision_history (context_id, history_json, updated_at)
		VALUES ($1, jsonb_build_array($2::jsonb), $3)
		ON CONFLICT (context_id)
		DO UPDATE SET
			history_json = CASE
				WHEN jsonb_array_length(decision_history.history_json) >= $4
					THEN (decision_history.history_json - 0) || $2::jsonb
				ELSE decision_history.history_json || $2::jsonb
			END,
			updated_at = EXCLUDED.updated_at;
	`
	if _, err := pool.Exec(ctx, query, contextID, jsonData, time.Now(), p.size); err != nil {
		return fmt.Errorf("failed to save history: %w", err)
	}
	return nil
}

// History returns the stored ring for a context, oldest first. A missing
// row is an empty history, not an error.
func (p *PGStore) History(contextID string) ([]models.HistoricalOutcome, error) {
	pool := store.GetPool()
	if pool == nil {
		return nil, fmt.Errorf("memory_store_unavailable: database pool not initialized")
	}
	ctx := context.Background()

	var jsonData []byte
	err := pool.QueryRow(ctx, `SELECT history_json FROM decision_history WHERE context_id = $1`, contextID).Scan(&jsonData)
	if err != nil {
		if err == pgx.ErrNoRows {
			return []models.HistoricalOutcome{}, nil
		}
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	var records []models.HistoricalOutcome
	if err := json.Unmarshal(jsonData, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal history: %w", err)
	}
	return records, nil
}
