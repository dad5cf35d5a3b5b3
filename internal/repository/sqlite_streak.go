package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/strataapp/strata/internal/db"
	"github.com/strataapp/strata/internal/domain"
)

// SQLiteStreakRepo implements StreakRepo using a SQLite database.
// Only the streak consumer writes here.
type SQLiteStreakRepo struct {
	db db.DBTX
}

func NewSQLiteStreakRepo(dbtx db.DBTX) *SQLiteStreakRepo {
	return &SQLiteStreakRepo{db: dbtx}
}

func (r *SQLiteStreakRepo) Get(ctx context.Context, ownerID string) (*domain.StreakState, error) {
	query := `SELECT owner_id, current_streak, updated_at FROM streak_states WHERE owner_id = ?`
	row := r.db.QueryRowContext(ctx, query, ownerID)

	var s domain.StreakState
	var updatedAtStr string
	if err := row.Scan(&s.OwnerID, &s.CurrentStreak, &updatedAtStr); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("streak state: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning streak state: %w", err)
	}

	var err error
	s.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &s, nil
}

func (r *SQLiteStreakRepo) Upsert(ctx context.Context, s *domain.StreakState) error {
	query := `INSERT INTO streak_states (owner_id, current_streak, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(owner_id) DO UPDATE SET current_streak = excluded.current_streak, updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query, s.OwnerID, s.CurrentStreak, s.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("upserting streak state: %w", err)
	}
	return nil
}
