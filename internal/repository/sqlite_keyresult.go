package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/strataapp/strata/internal/db"
	"github.com/strataapp/strata/internal/domain"
)

const keyResultColumns = `id, goal_id, title, current, target, created_at, updated_at`

// SQLiteKeyResultRepo implements KeyResultRepo using a SQLite database.
type SQLiteKeyResultRepo struct {
	db db.DBTX
}

func NewSQLiteKeyResultRepo(dbtx db.DBTX) *SQLiteKeyResultRepo {
	return &SQLiteKeyResultRepo{db: dbtx}
}

func (r *SQLiteKeyResultRepo) Create(ctx context.Context, k *domain.KeyResult) error {
	query := `INSERT INTO key_results (` + keyResultColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		k.ID,
		k.GoalID,
		k.Title,
		k.Current,
		k.Target,
		k.CreatedAt.Format(time.RFC3339),
		k.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting key result: %w", err)
	}
	return nil
}

func (r *SQLiteKeyResultRepo) GetByID(ctx context.Context, id string) (*domain.KeyResult, error) {
	query := `SELECT ` + keyResultColumns + ` FROM key_results WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	k, err := scanKeyResultFrom(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("key result: %w", ErrNotFound)
		}
		return nil, err
	}
	return k, nil
}

func (r *SQLiteKeyResultRepo) ListByGoal(ctx context.Context, goalID string) ([]*domain.KeyResult, error) {
	query := `SELECT ` + keyResultColumns + ` FROM key_results WHERE goal_id = ? ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, goalID)
	if err != nil {
		return nil, fmt.Errorf("listing key results: %w", err)
	}
	defer rows.Close()

	var results []*domain.KeyResult
	for rows.Next() {
		k, err := scanKeyResultFrom(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning key result row: %w", err)
		}
		results = append(results, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating key results: %w", err)
	}
	return results, nil
}

func (r *SQLiteKeyResultRepo) Update(ctx context.Context, k *domain.KeyResult) error {
	query := `UPDATE key_results SET title = ?, current = ?, target = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		k.Title,
		k.Current,
		k.Target,
		k.UpdatedAt.Format(time.RFC3339),
		k.ID,
	)
	if err != nil {
		return fmt.Errorf("updating key result: %w", err)
	}
	return nil
}

func scanKeyResultFrom(scan func(dest ...any) error) (*domain.KeyResult, error) {
	var k domain.KeyResult
	var createdAtStr, updatedAtStr string

	if err := scan(&k.ID, &k.GoalID, &k.Title, &k.Current, &k.Target, &createdAtStr, &updatedAtStr); err != nil {
		return nil, err
	}

	var err error
	k.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	k.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &k, nil
}
