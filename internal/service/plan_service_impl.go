package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/strataapp/strata/internal/clock"
	"github.com/strataapp/strata/internal/db"
	"github.com/strataapp/strata/internal/domain"
	"github.com/strataapp/strata/internal/event"
	"github.com/strataapp/strata/internal/repository"
)

type planService struct {
	plans      repository.DailyPlanRepo
	weeks      repository.WeeklyPlanRepo
	owners     repository.OwnerRepo
	uow        db.UnitOfWork
	dispatcher *event.Dispatcher
	clk        clock.Clock
	observer   UseCaseObserver
}

func NewPlanService(
	plans repository.DailyPlanRepo,
	weeks repository.WeeklyPlanRepo,
	owners repository.OwnerRepo,
	uow db.UnitOfWork,
	dispatcher *event.Dispatcher,
	clk clock.Clock,
	observers ...UseCaseObserver,
) PlanService {
	return &planService{
		plans:      plans,
		weeks:      weeks,
		owners:     owners,
		uow:        uow,
		dispatcher: dispatcher,
		clk:        clk,
		observer:   useCaseObserverOrNoop(observers),
	}
}

func (s *planService) MaterializeDay(ctx context.Context, ownerID string, date time.Time) (plan *domain.DailyPlan, err error) {
	started := s.clk.Now()
	defer func() {
		observe(ctx, s.observer, "materialize_day", started, err, map[string]any{
			"owner_id": ownerID, "date": date.Format("2006-01-02"),
		})
	}()

	zone, err := s.ownerZone(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	date = clock.Midnight(date, time.UTC)

	// A date before the owner's today would fabricate history. Calendar
	// dates are compared as strings so the owner's zone offset cannot skew
	// the comparison against the UTC-normalized plan date.
	if date.Format("2006-01-02") < s.clk.Today(zone).Format("2006-01-02") {
		return nil, domain.Violation("cannot materialize a past date: history is not fabricated retroactively")
	}

	// Idempotent: an existing plan wins, whatever its state.
	existing, err := s.plans.GetByOwnerDate(ctx, ownerID, date)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	year, week := domain.ISOWeekOf(date)
	var taskIDs []string
	weekly, err := s.weeks.GetByOwnerWeek(ctx, ownerID, year, week)
	switch {
	case err == nil:
		taskIDs = weekly.TasksFor(date.Weekday())
	case errors.Is(err, repository.ErrNotFound):
		// No weekly intent for this week: the day materializes empty.
	default:
		return nil, err
	}

	now := s.clk.Now()
	plan = &domain.DailyPlan{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Date:      date,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, taskID := range taskIDs {
		plan.Executions = append(plan.Executions, domain.TaskExecution{TaskID: taskID})
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteDailyPlanRepo(tx).Create(ctx, plan)
	})
	if err != nil {
		// Lost a race with a concurrent materialization; theirs is the plan.
		if errors.Is(err, repository.ErrDuplicate) {
			return s.plans.GetByOwnerDate(ctx, ownerID, date)
		}
		return nil, err
	}
	return plan, nil
}

func (s *planService) GetDay(ctx context.Context, ownerID string, date time.Time) (*domain.DailyPlan, error) {
	return s.plans.GetByOwnerDate(ctx, ownerID, clock.Midnight(date, time.UTC))
}

func (s *planService) UpsertWeek(ctx context.Context, w *domain.WeeklyPlan) error {
	now := s.clk.Now()

	existing, err := s.weeks.GetByOwnerWeek(ctx, w.OwnerID, w.Year, w.Week)
	switch {
	case err == nil:
		existing.Grid = w.Grid
		existing.UpdatedAt = now
		if err := s.weeks.Update(ctx, existing); err != nil {
			return err
		}
		*w = *existing
	case errors.Is(err, repository.ErrNotFound):
		if w.ID == "" {
			w.ID = uuid.New().String()
		}
		w.CreatedAt = now
		w.UpdatedAt = now
		if err := s.weeks.Create(ctx, w); err != nil {
			return err
		}
	default:
		return err
	}

	return s.ReconcileWeeklyPlan(ctx, w)
}

func (s *planService) GetWeek(ctx context.Context, ownerID string, year, week int) (*domain.WeeklyPlan, error) {
	return s.weeks.GetByOwnerWeek(ctx, ownerID, year, week)
}

// ReconcileWeeklyPlan publishes the edit fact. Materialized days are never
// touched here; intent edits only affect days materialized afterwards.
func (s *planService) ReconcileWeeklyPlan(ctx context.Context, w *domain.WeeklyPlan) error {
	s.dispatcher.Publish(ctx, event.WeeklyPlanUpdated{
		Base: event.Base{
			ID:         uuid.New().String(),
			OwnerID:    w.OwnerID,
			OccurredAt: s.clk.Now(),
		},
		PlanID: w.ID,
	})
	return nil
}

// ownerZone resolves the owner's IANA timezone, falling back to UTC when the
// owner is unknown or the zone fails to load.
func (s *planService) ownerZone(ctx context.Context, ownerID string) (*time.Location, error) {
	owner, err := s.owners.GetByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return time.UTC, nil
		}
		return nil, err
	}
	zone, err := time.LoadLocation(owner.Timezone)
	if err != nil {
		return time.UTC, nil
	}
	return zone, nil
}
