package service

import (
	"context"
	"time"

	"github.com/strataapp/strata/internal/domain"
)

type OwnerService interface {
	Register(ctx context.Context, o *domain.Owner) error
	GetByID(ctx context.Context, id string) (*domain.Owner, error)
	List(ctx context.Context) ([]*domain.Owner, error)
}

type TaskService interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id string) error

	// CompleteTask records a completion against the open daily plan for
	// (ownerID, date) and publishes the completion fact. It fails with a
	// DomainViolation when no plan was materialized for that date.
	CompleteTask(ctx context.Context, taskID, ownerID string, date time.Time) error

	// MissTask records a miss. Unlike CompleteTask it publishes no event.
	MissTask(ctx context.Context, taskID, ownerID string, date time.Time) error
}

type PlanService interface {
	// MaterializeDay projects the weekly intent grid into an open DailyPlan
	// for (ownerID, date). Idempotent: an existing plan is returned as-is.
	// Refuses dates in the past relative to the owner's today.
	MaterializeDay(ctx context.Context, ownerID string, date time.Time) (*domain.DailyPlan, error)

	GetDay(ctx context.Context, ownerID string, date time.Time) (*domain.DailyPlan, error)

	// UpsertWeek creates or replaces the weekly grid for the plan's ISO week
	// and publishes the update. Already-materialized days are untouched.
	UpsertWeek(ctx context.Context, w *domain.WeeklyPlan) error

	GetWeek(ctx context.Context, ownerID string, year, week int) (*domain.WeeklyPlan, error)

	// ReconcileWeeklyPlan publishes WeeklyPlanUpdated for an edited plan.
	// It never touches any DailyPlan.
	ReconcileWeeklyPlan(ctx context.Context, w *domain.WeeklyPlan) error
}

type DayCloseService interface {
	// CloseDay transitions the plan for (ownerID, date) from open to closed
	// and publishes DayClosed. Closing an already-closed day is a no-op.
	CloseDay(ctx context.Context, ownerID string, date time.Time) error

	// CloseOpenBefore closes every open plan dated strictly before the given
	// date, oldest first, publishing DayClosed for each. Returns how many
	// plans were closed.
	CloseOpenBefore(ctx context.Context, ownerID string, before time.Time) (int, error)
}

type GoalService interface {
	CreateGoal(ctx context.Context, g *domain.Goal) error
	GetGoal(ctx context.Context, id string) (*domain.Goal, error)
	ListGoals(ctx context.Context, ownerID string) ([]*domain.Goal, error)
	DeactivateGoal(ctx context.Context, id string) error

	AddKeyResult(ctx context.Context, k *domain.KeyResult) error
	ListKeyResults(ctx context.Context, goalID string) ([]*domain.KeyResult, error)
	UpdateProgress(ctx context.Context, keyResultID string, current float64) error
}

// ReviewService is the read surface over derived state. It never writes;
// derived tables belong to their consumers.
type ReviewService interface {
	GetStreak(ctx context.Context, ownerID string) (*domain.StreakState, error)
	ListSnapshots(ctx context.Context, goalID string) ([]*domain.GoalSnapshot, error)
	ListAudit(ctx context.Context, ownerID string, limit int) ([]*domain.AuditEvent, error)
}
