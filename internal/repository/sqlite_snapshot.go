package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/strataapp/strata/internal/db"
	"github.com/strataapp/strata/internal/domain"
)

// SQLiteSnapshotRepo implements SnapshotRepo using a SQLite database.
// Snapshots are append-only: there is no update or delete path.
type SQLiteSnapshotRepo struct {
	db db.DBTX
}

func NewSQLiteSnapshotRepo(dbtx db.DBTX) *SQLiteSnapshotRepo {
	return &SQLiteSnapshotRepo{db: dbtx}
}

func (r *SQLiteSnapshotRepo) Append(ctx context.Context, s *domain.GoalSnapshot) error {
	query := `INSERT INTO goal_snapshots (id, goal_id, taken_at, actual, expected) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.GoalID,
		s.TakenAt.Format(time.RFC3339),
		s.Actual,
		s.Expected,
	)
	if err != nil {
		return fmt.Errorf("appending goal snapshot: %w", err)
	}
	return nil
}

func (r *SQLiteSnapshotRepo) ListByGoal(ctx context.Context, goalID string) ([]*domain.GoalSnapshot, error) {
	query := `SELECT id, goal_id, taken_at, actual, expected FROM goal_snapshots WHERE goal_id = ? ORDER BY taken_at`
	rows, err := r.db.QueryContext(ctx, query, goalID)
	if err != nil {
		return nil, fmt.Errorf("listing goal snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []*domain.GoalSnapshot
	for rows.Next() {
		var s domain.GoalSnapshot
		var takenAtStr string
		if err := rows.Scan(&s.ID, &s.GoalID, &takenAtStr, &s.Actual, &s.Expected); err != nil {
			return nil, fmt.Errorf("scanning goal snapshot: %w", err)
		}
		s.TakenAt, err = time.Parse(time.RFC3339, takenAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing taken_at: %w", err)
		}
		snapshots = append(snapshots, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating goal snapshots: %w", err)
	}
	return snapshots, nil
}
