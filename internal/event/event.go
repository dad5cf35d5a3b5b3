package event

import "time"

// Event is an immutable fact record. Variants are plain value structs;
// consumers dispatch with a type switch rather than a registry keyed by
// runtime type. Events are never mutated or deleted after publication.
type Event interface {
	EventID() string
	Owner() string
	At() time.Time
}

// Base carries the fields common to every event variant. OccurredAt comes
// from the injected Clock, never from the wall clock directly.
type Base struct {
	ID         string
	OwnerID    string
	OccurredAt time.Time
}

func (b Base) EventID() string { return b.ID }
func (b Base) Owner() string   { return b.OwnerID }
func (b Base) At() time.Time   { return b.OccurredAt }

// TaskCreated is published when a new intent unit is created.
type TaskCreated struct {
	Base
	TaskID string
}

// TaskCompleted is published when an execution is marked completed against
// an open daily plan. Goal links are carried so consumers need not re-read
// the task.
type TaskCompleted struct {
	Base
	TaskID      string
	Date        time.Time
	GoalID      *string
	KeyResultID *string
}

// DayClosed is published exactly once per (owner, date) when the daily plan
// transitions from open to closed. It is the boundary between execution and
// historical truth.
type DayClosed struct {
	Base
	Date time.Time
}

// WeeklyPlanUpdated is published after an intent-grid edit. It carries no
// grid contents; consumers that care re-read the plan.
type WeeklyPlanUpdated struct {
	Base
	PlanID string
}

// UserCreated is published when an owner account is registered.
type UserCreated struct {
	Base
}
