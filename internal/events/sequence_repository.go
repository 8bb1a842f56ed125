package events

import (
	"context"
	"database/sql"
	"fmt"
)

// SequenceRepository manages producer-side sequences for events.
type SequenceRepository interface {
	NextSequence(ctx context.Context, partitionKey string) (int64, error)
}

type sequenceRepo struct {
	db *sql.DB
}

// NewSequenceRepository creates a new sequence repository.
func NewSequenceRepository(db *sql.DB) SequenceRepository {
	return &sequenceRepo{db: db}
}

func (r *sequenceRepo) NextSequence(ctx context.Context, partitionKey string) (int64, error) {
	if partitionKey == "" {
		return 0, fmt.Errorf("partition key is required")
	}

	var seq int64
	if err := r.db.QueryRowContext(ctx, `
		INSERT INTO event_sequence (partition_key, last_sequence, updated_at)
		VALUES ($1, 1, NOW())
		ON CONFLICT (partition_key)
		DO UPDATE SET last_sequence = event_sequence.last_sequence + 1, updated_at = NOW()
		RETURNING last_sequence
	`, partitionKey).Scan(&seq); err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}
