package domain

import "time"

// Task is a unit of intent: something the owner plans to do, optionally
// linked to a goal or a specific key result. Tasks stay mutable until
// deleted; execution history lives on DailyPlan, never here.
type Task struct {
	ID          string
	OwnerID     string
	Description string
	GoalID      *string
	KeyResultID *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
