package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/strataapp/strata/internal/db"
)

// SQLiteReceiptRepo implements ReceiptRepo using a SQLite database. The
// (event_id, consumer) primary key makes the insert the serialization point
// for duplicate deliveries: exactly one writer wins, the rest get
// ErrDuplicate.
type SQLiteReceiptRepo struct {
	db db.DBTX
}

func NewSQLiteReceiptRepo(dbtx db.DBTX) *SQLiteReceiptRepo {
	return &SQLiteReceiptRepo{db: dbtx}
}

func (r *SQLiteReceiptRepo) Create(ctx context.Context, eventID, consumer string, processedAt time.Time) error {
	query := `INSERT INTO event_receipts (event_id, consumer, processed_at) VALUES (?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, eventID, consumer, processedAt.Format(time.RFC3339))
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("receipt for event %s by %s: %w", eventID, consumer, ErrDuplicate)
		}
		return fmt.Errorf("inserting event receipt: %w", err)
	}
	return nil
}

func (r *SQLiteReceiptRepo) Exists(ctx context.Context, eventID, consumer string) (bool, error) {
	query := `SELECT COUNT(*) FROM event_receipts WHERE event_id = ? AND consumer = ?`
	var count int
	if err := r.db.QueryRowContext(ctx, query, eventID, consumer).Scan(&count); err != nil {
		return false, fmt.Errorf("checking event receipt: %w", err)
	}
	return count > 0, nil
}
