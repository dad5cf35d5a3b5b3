package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/strataapp/strata/internal/db"
	"github.com/strataapp/strata/internal/domain"
)

// SQLiteWeeklyPlanRepo implements WeeklyPlanRepo using a SQLite database.
// The weekday grid is stored as JSON keyed by weekday number (0 = Sunday,
// matching time.Weekday).
type SQLiteWeeklyPlanRepo struct {
	db db.DBTX
}

func NewSQLiteWeeklyPlanRepo(dbtx db.DBTX) *SQLiteWeeklyPlanRepo {
	return &SQLiteWeeklyPlanRepo{db: dbtx}
}

func (r *SQLiteWeeklyPlanRepo) Create(ctx context.Context, w *domain.WeeklyPlan) error {
	gridJSON, err := marshalGrid(w.Grid)
	if err != nil {
		return err
	}
	query := `INSERT INTO weekly_plans (id, owner_id, year, week, grid_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		w.ID,
		w.OwnerID,
		w.Year,
		w.Week,
		gridJSON,
		w.CreatedAt.Format(time.RFC3339),
		w.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("weekly plan for %s week %d/%d: %w", w.OwnerID, w.Week, w.Year, ErrDuplicate)
		}
		return fmt.Errorf("inserting weekly plan: %w", err)
	}
	return nil
}

func (r *SQLiteWeeklyPlanRepo) GetByID(ctx context.Context, id string) (*domain.WeeklyPlan, error) {
	query := `SELECT id, owner_id, year, week, grid_json, created_at, updated_at
		FROM weekly_plans WHERE id = ?`
	return scanWeeklyPlan(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteWeeklyPlanRepo) GetByOwnerWeek(ctx context.Context, ownerID string, year, week int) (*domain.WeeklyPlan, error) {
	query := `SELECT id, owner_id, year, week, grid_json, created_at, updated_at
		FROM weekly_plans WHERE owner_id = ? AND year = ? AND week = ?`
	return scanWeeklyPlan(r.db.QueryRowContext(ctx, query, ownerID, year, week))
}

func (r *SQLiteWeeklyPlanRepo) Update(ctx context.Context, w *domain.WeeklyPlan) error {
	gridJSON, err := marshalGrid(w.Grid)
	if err != nil {
		return err
	}
	query := `UPDATE weekly_plans SET grid_json = ?, updated_at = ? WHERE id = ?`
	_, err = r.db.ExecContext(ctx, query, gridJSON, w.UpdatedAt.Format(time.RFC3339), w.ID)
	if err != nil {
		return fmt.Errorf("updating weekly plan: %w", err)
	}
	return nil
}

func marshalGrid(grid map[time.Weekday][]string) (string, error) {
	keyed := make(map[string][]string, len(grid))
	for day, tasks := range grid {
		keyed[strconv.Itoa(int(day))] = tasks
	}
	data, err := json.Marshal(keyed)
	if err != nil {
		return "", fmt.Errorf("marshaling weekly grid: %w", err)
	}
	return string(data), nil
}

func unmarshalGrid(gridJSON string) (map[time.Weekday][]string, error) {
	var keyed map[string][]string
	if err := json.Unmarshal([]byte(gridJSON), &keyed); err != nil {
		return nil, fmt.Errorf("unmarshaling weekly grid: %w", err)
	}
	grid := make(map[time.Weekday][]string, len(keyed))
	for key, tasks := range keyed {
		day, err := strconv.Atoi(key)
		if err != nil || day < 0 || day > 6 {
			return nil, fmt.Errorf("invalid weekday key %q in weekly grid", key)
		}
		grid[time.Weekday(day)] = tasks
	}
	return grid, nil
}

func scanWeeklyPlan(row *sql.Row) (*domain.WeeklyPlan, error) {
	var w domain.WeeklyPlan
	var gridJSON, createdAtStr, updatedAtStr string

	err := row.Scan(&w.ID, &w.OwnerID, &w.Year, &w.Week, &gridJSON, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("weekly plan: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning weekly plan: %w", err)
	}

	w.Grid, err = unmarshalGrid(gridJSON)
	if err != nil {
		return nil, err
	}
	w.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	w.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &w, nil
}
