package evidence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"mintgate/internal/readiness"
	id "mintgate/pkg/domain"
)

// PostgresStore implements the evidence store on an append-only
// readiness_evidence table.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres creates a PostgreSQL evidence store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Save(ctx context.Context, record readiness.EvidenceRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO readiness_evidence (
			evaluation_id, user_id, request_snapshot, response_snapshot,
			correlation_id, created_at
		) VALUES ($1, $2, $3, $4, $5, $6)`,
		record.EvaluationID.String(), record.UserID.String(),
		[]byte(record.RequestSnapshot), []byte(record.ResponseSnapshot),
		record.CorrelationID, record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save evidence record: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, evaluationID id.EvaluationID) (*readiness.EvidenceRecord, error) {
	record := readiness.EvidenceRecord{EvaluationID: evaluationID}
	var userID string
	err := s.db.QueryRowContext(ctx, `
		SELECT user_id, request_snapshot, response_snapshot, correlation_id, created_at
		FROM readiness_evidence
		WHERE evaluation_id = $1`,
		evaluationID.String(),
	).Scan(&userID, (*[]byte)(&record.RequestSnapshot), (*[]byte)(&record.ResponseSnapshot),
		&record.CorrelationID, &record.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get evidence record: %w", err)
	}
	record.UserID, err = id.ParseUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("get evidence record: %w", err)
	}
	return &record, nil
}

func (s *PostgresStore) ListByUser(ctx context.Context, userID id.UserID, limit int, from time.Time) ([]readiness.EvidenceRecord, error) {
	query := `
		SELECT evaluation_id, request_snapshot, response_snapshot, correlation_id, created_at
		FROM readiness_evidence
		WHERE user_id = $1 AND created_at >= $2
		ORDER BY created_at DESC
		LIMIT $3`
	if from.IsZero() {
		from = time.Unix(0, 0)
	}
	rows, err := s.db.QueryContext(ctx, query, userID.String(), from, limit)
	if err != nil {
		return nil, fmt.Errorf("list evidence records: %w", err)
	}
	defer rows.Close()

	var records []readiness.EvidenceRecord
	for rows.Next() {
		record := readiness.EvidenceRecord{UserID: userID}
		var evaluationID string
		if err := rows.Scan(&evaluationID, (*[]byte)(&record.RequestSnapshot),
			(*[]byte)(&record.ResponseSnapshot), &record.CorrelationID, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan evidence record: %w", err)
		}
		record.EvaluationID, err = id.ParseEvaluationID(evaluationID)
		if err != nil {
			return nil, fmt.Errorf("scan evidence record: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// Schema is the DDL for the readiness_evidence table. Applied by migrations
// in deployment; exposed here so integration tests can create it.
const Schema = `
CREATE TABLE IF NOT EXISTS readiness_evidence (
	evaluation_id UUID PRIMARY KEY,
	user_id UUID NOT NULL,
	request_snapshot JSONB NOT NULL,
	response_snapshot JSONB NOT NULL,
	correlation_id TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS readiness_evidence_user_idx ON readiness_evidence (user_id, created_at DESC);
`
