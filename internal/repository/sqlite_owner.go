package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/strataapp/strata/internal/db"
	"github.com/strataapp/strata/internal/domain"
)

// SQLiteOwnerRepo implements OwnerRepo using a SQLite database.
type SQLiteOwnerRepo struct {
	db db.DBTX
}

func NewSQLiteOwnerRepo(dbtx db.DBTX) *SQLiteOwnerRepo {
	return &SQLiteOwnerRepo{db: dbtx}
}

func (r *SQLiteOwnerRepo) Create(ctx context.Context, o *domain.Owner) error {
	query := `INSERT INTO owners (id, display_name, timezone, created_at) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		o.ID,
		o.DisplayName,
		o.Timezone,
		o.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("owner %s: %w", o.ID, ErrDuplicate)
		}
		return fmt.Errorf("inserting owner: %w", err)
	}
	return nil
}

func (r *SQLiteOwnerRepo) GetByID(ctx context.Context, id string) (*domain.Owner, error) {
	query := `SELECT id, display_name, timezone, created_at FROM owners WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	var o domain.Owner
	var createdAtStr string
	if err := row.Scan(&o.ID, &o.DisplayName, &o.Timezone, &createdAtStr); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("owner: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning owner: %w", err)
	}

	var err error
	o.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &o, nil
}

func (r *SQLiteOwnerRepo) List(ctx context.Context) ([]*domain.Owner, error) {
	query := `SELECT id, display_name, timezone, created_at FROM owners ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing owners: %w", err)
	}
	defer rows.Close()

	var owners []*domain.Owner
	for rows.Next() {
		var o domain.Owner
		var createdAtStr string
		if err := rows.Scan(&o.ID, &o.DisplayName, &o.Timezone, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning owner row: %w", err)
		}
		o.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		owners = append(owners, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating owners: %w", err)
	}
	return owners, nil
}
