package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/strataapp/strata/internal/db"
	"github.com/strataapp/strata/internal/domain"
)

// SQLiteAuditRepo implements AuditRepo using a SQLite database.
// Audit rows are append-only mirrors of selected domain events.
type SQLiteAuditRepo struct {
	db db.DBTX
}

func NewSQLiteAuditRepo(dbtx db.DBTX) *SQLiteAuditRepo {
	return &SQLiteAuditRepo{db: dbtx}
}

func (r *SQLiteAuditRepo) Append(ctx context.Context, a *domain.AuditEvent) error {
	payload := a.Payload
	if payload == nil {
		payload = map[string]string{}
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling audit payload: %w", err)
	}

	query := `INSERT INTO audit_events (id, owner_id, type, payload_json, occurred_at) VALUES (?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		a.ID,
		a.OwnerID,
		string(a.Type),
		string(data),
		a.OccurredAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("appending audit event: %w", err)
	}
	return nil
}

func (r *SQLiteAuditRepo) ListByOwner(ctx context.Context, ownerID string, limit int) ([]*domain.AuditEvent, error) {
	query := `SELECT id, owner_id, type, payload_json, occurred_at
		FROM audit_events WHERE owner_id = ? ORDER BY occurred_at DESC, id LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, ownerID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing audit events: %w", err)
	}
	defer rows.Close()

	var events []*domain.AuditEvent
	for rows.Next() {
		var a domain.AuditEvent
		var typeStr, payloadJSON, occurredAtStr string
		if err := rows.Scan(&a.ID, &a.OwnerID, &typeStr, &payloadJSON, &occurredAtStr); err != nil {
			return nil, fmt.Errorf("scanning audit event: %w", err)
		}
		a.Type = domain.AuditType(typeStr)
		if err := json.Unmarshal([]byte(payloadJSON), &a.Payload); err != nil {
			return nil, fmt.Errorf("unmarshaling audit payload: %w", err)
		}
		a.OccurredAt, err = time.Parse(time.RFC3339, occurredAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing occurred_at: %w", err)
		}
		events = append(events, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating audit events: %w", err)
	}
	return events, nil
}
