package repository

import (
	"context"
	"time"

	"github.com/strataapp/strata/internal/domain"
)

type OwnerRepo interface {
	Create(ctx context.Context, o *domain.Owner) error
	GetByID(ctx context.Context, id string) (*domain.Owner, error)
	List(ctx context.Context) ([]*domain.Owner, error)
}

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id string) error
}

type DailyPlanRepo interface {
	Create(ctx context.Context, p *domain.DailyPlan) error
	GetByID(ctx context.Context, id string) (*domain.DailyPlan, error)
	GetByOwnerDate(ctx context.Context, ownerID string, date time.Time) (*domain.DailyPlan, error)
	ListOpenBefore(ctx context.Context, ownerID string, date time.Time) ([]*domain.DailyPlan, error)
	Update(ctx context.Context, p *domain.DailyPlan) error
}

type WeeklyPlanRepo interface {
	Create(ctx context.Context, w *domain.WeeklyPlan) error
	GetByID(ctx context.Context, id string) (*domain.WeeklyPlan, error)
	GetByOwnerWeek(ctx context.Context, ownerID string, year, week int) (*domain.WeeklyPlan, error)
	Update(ctx context.Context, w *domain.WeeklyPlan) error
}

type GoalRepo interface {
	Create(ctx context.Context, g *domain.Goal) error
	GetByID(ctx context.Context, id string) (*domain.Goal, error)
	ListActiveByOwner(ctx context.Context, ownerID string) ([]*domain.Goal, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Goal, error)
	Update(ctx context.Context, g *domain.Goal) error
}

type KeyResultRepo interface {
	Create(ctx context.Context, k *domain.KeyResult) error
	GetByID(ctx context.Context, id string) (*domain.KeyResult, error)
	ListByGoal(ctx context.Context, goalID string) ([]*domain.KeyResult, error)
	Update(ctx context.Context, k *domain.KeyResult) error
}

// Derived-state repos. Each is written by exactly one consumer; everything
// else only reads.

type StreakRepo interface {
	Get(ctx context.Context, ownerID string) (*domain.StreakState, error)
	Upsert(ctx context.Context, s *domain.StreakState) error
}

type SnapshotRepo interface {
	Append(ctx context.Context, s *domain.GoalSnapshot) error
	ListByGoal(ctx context.Context, goalID string) ([]*domain.GoalSnapshot, error)
}

type AuditRepo interface {
	Append(ctx context.Context, a *domain.AuditEvent) error
	ListByOwner(ctx context.Context, ownerID string, limit int) ([]*domain.AuditEvent, error)
}

// ReceiptRepo guards idempotent consumption. Create returns ErrDuplicate when
// a receipt for (eventID, consumer) already exists; that insert failure is the
// serialization point for concurrent duplicate deliveries.
type ReceiptRepo interface {
	Create(ctx context.Context, eventID, consumer string, processedAt time.Time) error
	Exists(ctx context.Context, eventID, consumer string) (bool, error)
}
