package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent so the whole
// list re-runs on every startup.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS owners (
		id           TEXT PRIMARY KEY,
		display_name TEXT NOT NULL,
		timezone     TEXT NOT NULL DEFAULT 'UTC',
		created_at   TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id            TEXT PRIMARY KEY,
		owner_id      TEXT NOT NULL REFERENCES owners(id) ON DELETE CASCADE,
		description   TEXT NOT NULL,
		goal_id       TEXT,
		key_result_id TEXT,
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_owner ON tasks(owner_id)`,

	`CREATE TABLE IF NOT EXISTS daily_plans (
		id         TEXT PRIMARY KEY,
		owner_id   TEXT NOT NULL REFERENCES owners(id) ON DELETE CASCADE,
		date       TEXT NOT NULL,
		closed     INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		UNIQUE (owner_id, date)
	)`,

	`CREATE TABLE IF NOT EXISTS task_executions (
		plan_id     TEXT NOT NULL REFERENCES daily_plans(id) ON DELETE CASCADE,
		position    INTEGER NOT NULL,
		task_id     TEXT NOT NULL,
		completed   INTEGER NOT NULL DEFAULT 0,
		missed      INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (plan_id, position)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_task_executions_task ON task_executions(task_id)`,

	`CREATE TABLE IF NOT EXISTS weekly_plans (
		id         TEXT PRIMARY KEY,
		owner_id   TEXT NOT NULL REFERENCES owners(id) ON DELETE CASCADE,
		year       INTEGER NOT NULL,
		week       INTEGER NOT NULL,
		grid_json  TEXT NOT NULL DEFAULT '{}',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		UNIQUE (owner_id, year, week)
	)`,

	`CREATE TABLE IF NOT EXISTS goals (
		id         TEXT PRIMARY KEY,
		owner_id   TEXT NOT NULL REFERENCES owners(id) ON DELETE CASCADE,
		title      TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date   TEXT NOT NULL,
		active     INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_goals_owner ON goals(owner_id)`,

	`CREATE TABLE IF NOT EXISTS key_results (
		id         TEXT PRIMARY KEY,
		goal_id    TEXT NOT NULL REFERENCES goals(id) ON DELETE CASCADE,
		title      TEXT NOT NULL,
		current    REAL NOT NULL DEFAULT 0,
		target     REAL NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_key_results_goal ON key_results(goal_id)`,

	// Derived state. Each table is written by exactly one consumer.
	`CREATE TABLE IF NOT EXISTS streak_states (
		owner_id       TEXT PRIMARY KEY REFERENCES owners(id) ON DELETE CASCADE,
		current_streak INTEGER NOT NULL DEFAULT 0,
		updated_at     TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS goal_snapshots (
		id       TEXT PRIMARY KEY,
		goal_id  TEXT NOT NULL REFERENCES goals(id) ON DELETE CASCADE,
		taken_at TEXT NOT NULL,
		actual   REAL NOT NULL,
		expected REAL NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_goal_snapshots_goal ON goal_snapshots(goal_id)`,

	`CREATE TABLE IF NOT EXISTS audit_events (
		id           TEXT PRIMARY KEY,
		owner_id     TEXT NOT NULL,
		type         TEXT NOT NULL,
		payload_json TEXT NOT NULL DEFAULT '{}',
		occurred_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_audit_events_owner ON audit_events(owner_id, occurred_at)`,

	// The primary key is the idempotency gate: inserting a receipt for an
	// already-processed (event, consumer) pair fails, which consumers treat
	// as already-applied.
	`CREATE TABLE IF NOT EXISTS event_receipts (
		event_id     TEXT NOT NULL,
		consumer     TEXT NOT NULL,
		processed_at TEXT NOT NULL,
		PRIMARY KEY (event_id, consumer)
	)`,
}
