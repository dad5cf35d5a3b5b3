package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/strataapp/strata/internal/db"
	"github.com/strataapp/strata/internal/domain"
)

// SQLiteDailyPlanRepo implements DailyPlanRepo using a SQLite database.
// Executions live in a child table keyed (plan_id, position) so the planned
// order survives round-trips.
type SQLiteDailyPlanRepo struct {
	db db.DBTX
}

func NewSQLiteDailyPlanRepo(dbtx db.DBTX) *SQLiteDailyPlanRepo {
	return &SQLiteDailyPlanRepo{db: dbtx}
}

func (r *SQLiteDailyPlanRepo) Create(ctx context.Context, p *domain.DailyPlan) error {
	query := `INSERT INTO daily_plans (id, owner_id, date, closed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.OwnerID,
		p.Date.Format(dateLayout),
		boolToInt(p.Closed),
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("daily plan for %s on %s: %w", p.OwnerID, p.Date.Format(dateLayout), ErrDuplicate)
		}
		return fmt.Errorf("inserting daily plan: %w", err)
	}
	return r.insertExecutions(ctx, p)
}

func (r *SQLiteDailyPlanRepo) GetByID(ctx context.Context, id string) (*domain.DailyPlan, error) {
	query := `SELECT id, owner_id, date, closed, created_at, updated_at FROM daily_plans WHERE id = ?`
	return r.scanPlan(ctx, r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteDailyPlanRepo) GetByOwnerDate(ctx context.Context, ownerID string, date time.Time) (*domain.DailyPlan, error) {
	query := `SELECT id, owner_id, date, closed, created_at, updated_at
		FROM daily_plans WHERE owner_id = ? AND date = ?`
	return r.scanPlan(ctx, r.db.QueryRowContext(ctx, query, ownerID, date.Format(dateLayout)))
}

// ListOpenBefore returns the owner's open plans dated strictly before date,
// oldest first. Used by the day-close sweep to catch up missed closures.
func (r *SQLiteDailyPlanRepo) ListOpenBefore(ctx context.Context, ownerID string, date time.Time) ([]*domain.DailyPlan, error) {
	query := `SELECT id, owner_id, date, closed, created_at, updated_at
		FROM daily_plans WHERE owner_id = ? AND closed = 0 AND date < ? ORDER BY date`
	rows, err := r.db.QueryContext(ctx, query, ownerID, date.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("listing open daily plans: %w", err)
	}
	defer rows.Close()

	var plans []*domain.DailyPlan
	for rows.Next() {
		p, err := scanPlanRow(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating daily plans: %w", err)
	}

	for _, p := range plans {
		if err := r.loadExecutions(ctx, p); err != nil {
			return nil, err
		}
	}
	return plans, nil
}

func (r *SQLiteDailyPlanRepo) Update(ctx context.Context, p *domain.DailyPlan) error {
	query := `UPDATE daily_plans SET closed = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		boolToInt(p.Closed),
		p.UpdatedAt.Format(time.RFC3339),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating daily plan: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM task_executions WHERE plan_id = ?`, p.ID); err != nil {
		return fmt.Errorf("clearing task executions: %w", err)
	}
	return r.insertExecutions(ctx, p)
}

func (r *SQLiteDailyPlanRepo) insertExecutions(ctx context.Context, p *domain.DailyPlan) error {
	query := `INSERT INTO task_executions (plan_id, position, task_id, completed, missed)
		VALUES (?, ?, ?, ?, ?)`
	for i, e := range p.Executions {
		if _, err := r.db.ExecContext(ctx, query, p.ID, i, e.TaskID, boolToInt(e.Completed), boolToInt(e.Missed)); err != nil {
			return fmt.Errorf("inserting task execution %d: %w", i, err)
		}
	}
	return nil
}

func (r *SQLiteDailyPlanRepo) scanPlan(ctx context.Context, row *sql.Row) (*domain.DailyPlan, error) {
	var p domain.DailyPlan
	var dateStr, createdAtStr, updatedAtStr string
	var closedInt int

	err := row.Scan(&p.ID, &p.OwnerID, &dateStr, &closedInt, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("daily plan: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning daily plan: %w", err)
	}
	if err := populatePlan(&p, dateStr, closedInt, createdAtStr, updatedAtStr); err != nil {
		return nil, err
	}
	if err := r.loadExecutions(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func scanPlanRow(rows *sql.Rows) (*domain.DailyPlan, error) {
	var p domain.DailyPlan
	var dateStr, createdAtStr, updatedAtStr string
	var closedInt int

	if err := rows.Scan(&p.ID, &p.OwnerID, &dateStr, &closedInt, &createdAtStr, &updatedAtStr); err != nil {
		return nil, fmt.Errorf("scanning daily plan row: %w", err)
	}
	if err := populatePlan(&p, dateStr, closedInt, createdAtStr, updatedAtStr); err != nil {
		return nil, err
	}
	return &p, nil
}

func populatePlan(p *domain.DailyPlan, dateStr string, closedInt int, createdAtStr, updatedAtStr string) error {
	p.Closed = intToBool(closedInt)

	var err error
	p.Date, err = time.Parse(dateLayout, dateStr)
	if err != nil {
		return fmt.Errorf("parsing date: %w", err)
	}
	p.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return fmt.Errorf("parsing created_at: %w", err)
	}
	p.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return fmt.Errorf("parsing updated_at: %w", err)
	}
	return nil
}

func (r *SQLiteDailyPlanRepo) loadExecutions(ctx context.Context, p *domain.DailyPlan) error {
	query := `SELECT task_id, completed, missed FROM task_executions WHERE plan_id = ? ORDER BY position`
	rows, err := r.db.QueryContext(ctx, query, p.ID)
	if err != nil {
		return fmt.Errorf("listing task executions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e domain.TaskExecution
		var completedInt, missedInt int
		if err := rows.Scan(&e.TaskID, &completedInt, &missedInt); err != nil {
			return fmt.Errorf("scanning task execution: %w", err)
		}
		e.Completed = intToBool(completedInt)
		e.Missed = intToBool(missedInt)
		p.Executions = append(p.Executions, e)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating task executions: %w", err)
	}
	return nil
}
