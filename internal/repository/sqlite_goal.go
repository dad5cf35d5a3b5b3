package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/strataapp/strata/internal/db"
	"github.com/strataapp/strata/internal/domain"
)

const goalColumns = `id, owner_id, title, start_date, end_date, active, created_at, updated_at`

// SQLiteGoalRepo implements GoalRepo using a SQLite database.
type SQLiteGoalRepo struct {
	db db.DBTX
}

func NewSQLiteGoalRepo(dbtx db.DBTX) *SQLiteGoalRepo {
	return &SQLiteGoalRepo{db: dbtx}
}

func (r *SQLiteGoalRepo) Create(ctx context.Context, g *domain.Goal) error {
	query := `INSERT INTO goals (` + goalColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		g.ID,
		g.OwnerID,
		g.Title,
		g.StartDate.Format(dateLayout),
		g.EndDate.Format(dateLayout),
		boolToInt(g.Active),
		g.CreatedAt.Format(time.RFC3339),
		g.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting goal: %w", err)
	}
	return nil
}

func (r *SQLiteGoalRepo) GetByID(ctx context.Context, id string) (*domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	g, err := scanGoalFrom(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("goal: %w", ErrNotFound)
		}
		return nil, err
	}
	return g, nil
}

func (r *SQLiteGoalRepo) ListActiveByOwner(ctx context.Context, ownerID string) ([]*domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE owner_id = ? AND active = 1 ORDER BY created_at`
	return r.list(ctx, query, ownerID)
}

func (r *SQLiteGoalRepo) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE owner_id = ? ORDER BY created_at`
	return r.list(ctx, query, ownerID)
}

func (r *SQLiteGoalRepo) Update(ctx context.Context, g *domain.Goal) error {
	query := `UPDATE goals SET title = ?, start_date = ?, end_date = ?, active = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		g.Title,
		g.StartDate.Format(dateLayout),
		g.EndDate.Format(dateLayout),
		boolToInt(g.Active),
		g.UpdatedAt.Format(time.RFC3339),
		g.ID,
	)
	if err != nil {
		return fmt.Errorf("updating goal: %w", err)
	}
	return nil
}

func (r *SQLiteGoalRepo) list(ctx context.Context, query string, args ...any) ([]*domain.Goal, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing goals: %w", err)
	}
	defer rows.Close()

	var goals []*domain.Goal
	for rows.Next() {
		g, err := scanGoalFrom(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning goal row: %w", err)
		}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating goals: %w", err)
	}
	return goals, nil
}

func scanGoalFrom(scan func(dest ...any) error) (*domain.Goal, error) {
	var g domain.Goal
	var startStr, endStr, createdAtStr, updatedAtStr string
	var activeInt int

	if err := scan(&g.ID, &g.OwnerID, &g.Title, &startStr, &endStr, &activeInt, &createdAtStr, &updatedAtStr); err != nil {
		return nil, err
	}
	g.Active = intToBool(activeInt)

	var err error
	g.StartDate, err = time.Parse(dateLayout, startStr)
	if err != nil {
		return nil, fmt.Errorf("parsing start_date: %w", err)
	}
	g.EndDate, err = time.Parse(dateLayout, endStr)
	if err != nil {
		return nil, fmt.Errorf("parsing end_date: %w", err)
	}
	g.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	g.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &g, nil
}
