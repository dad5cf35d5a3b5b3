package domain

import "time"

// Derived state is computed from closed facts and written only by its owning
// event consumer. It is never edited through any other path.

// StreakState tracks the owner's run of fully-completed closed days.
type StreakState struct {
	OwnerID       string
	CurrentStreak int
	UpdatedAt     time.Time
}

// GoalSnapshot is an append-only reading of a goal at day close: actual
// progress (sum of key-result currents) against expected progress (sum of
// targets scaled by the elapsed horizon). Rows are never updated or deleted.
type GoalSnapshot struct {
	ID       string
	GoalID   string
	TakenAt  time.Time
	Actual   float64
	Expected float64
}

type AuditType string

const (
	AuditTaskCreated    AuditType = "TASK_CREATED"
	AuditTaskCompleted  AuditType = "TASK_COMPLETED"
	AuditDayClosed      AuditType = "DAY_CLOSED"
	AuditWeeklyPlanEdit AuditType = "WEEKLY_PLAN_UPDATED"
	AuditUserCreated    AuditType = "USER_CREATED"
)

// AuditEvent mirrors a domain event for historical display. The payload holds
// ids only; no metrics are computed here.
type AuditEvent struct {
	ID         string
	OwnerID    string
	Type       AuditType
	Payload    map[string]string
	OccurredAt time.Time
}
