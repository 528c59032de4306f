// Package postgres persists audit events in PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	id "mintgate/pkg/domain"
	audit "mintgate/pkg/platform/audit"
	txcontext "mintgate/pkg/platform/tx"
)

// Store implements audit.Store on an append-only audit_events table.
type Store struct {
	db *sql.DB
}

// New creates a PostgreSQL audit store.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *Store) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

// Append writes an audit event. Category is always derived from the action;
// the eventCategories map is the source of truth, not the caller.
func (s *Store) Append(ctx context.Context, event audit.Event) error {
	category := audit.AuditEvent(event.Action).Category()
	timestamp := event.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	var userID any
	if !event.UserID.IsNil() {
		userID = event.UserID.String()
	}

	_, err := s.execer(ctx).ExecContext(ctx, `
		INSERT INTO audit_events (
			id, category, occurred_at, user_id, subject, action,
			tier, decision, reason, policy_version, correlation_id, actor_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		uuid.New().String(), string(category), timestamp, userID,
		event.Subject, event.Action, event.Tier, event.Decision,
		event.Reason, event.PolicyVersion, event.CorrelationID, event.ActorID,
	)
	if err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}

// ListByUser returns events for a user in insertion order.
func (s *Store) ListByUser(ctx context.Context, userID id.UserID) ([]audit.Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT category, occurred_at, subject, action, tier, decision,
		       reason, policy_version, correlation_id, actor_id
		FROM audit_events
		WHERE user_id = $1
		ORDER BY occurred_at ASC`,
		userID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer rows.Close()

	var events []audit.Event
	for rows.Next() {
		event := audit.Event{UserID: userID}
		var category string
		if err := rows.Scan(
			&category, &event.Timestamp, &event.Subject, &event.Action,
			&event.Tier, &event.Decision, &event.Reason,
			&event.PolicyVersion, &event.CorrelationID, &event.ActorID,
		); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		event.Category = audit.EventCategory(category)
		events = append(events, event)
	}
	return events, rows.Err()
}

// Schema is the DDL for the audit_events table. Applied by migrations in
// deployment; exposed here so integration tests can create it.
const Schema = `
CREATE TABLE IF NOT EXISTS audit_events (
	id UUID PRIMARY KEY,
	category TEXT NOT NULL,
	occurred_at TIMESTAMPTZ NOT NULL,
	user_id UUID,
	subject TEXT NOT NULL DEFAULT '',
	action TEXT NOT NULL,
	tier TEXT NOT NULL DEFAULT '',
	decision TEXT NOT NULL DEFAULT '',
	reason TEXT NOT NULL DEFAULT '',
	policy_version TEXT NOT NULL DEFAULT '',
	correlation_id TEXT NOT NULL DEFAULT '',
	actor_id TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS audit_events_user_idx ON audit_events (user_id, occurred_at);
`
