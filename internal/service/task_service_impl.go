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

type taskService struct {
	tasks      repository.TaskRepo
	plans      repository.DailyPlanRepo
	uow        db.UnitOfWork
	dispatcher *event.Dispatcher
	clk        clock.Clock
	observer   UseCaseObserver
}

func NewTaskService(
	tasks repository.TaskRepo,
	plans repository.DailyPlanRepo,
	uow db.UnitOfWork,
	dispatcher *event.Dispatcher,
	clk clock.Clock,
	observers ...UseCaseObserver,
) TaskService {
	return &taskService{
		tasks:      tasks,
		plans:      plans,
		uow:        uow,
		dispatcher: dispatcher,
		clk:        clk,
		observer:   useCaseObserverOrNoop(observers),
	}
}

func (s *taskService) Create(ctx context.Context, t *domain.Task) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	now := s.clk.Now()
	t.CreatedAt = now
	t.UpdatedAt = now

	if err := s.tasks.Create(ctx, t); err != nil {
		return err
	}

	s.dispatcher.Publish(ctx, event.TaskCreated{
		Base: event.Base{
			ID:         uuid.New().String(),
			OwnerID:    t.OwnerID,
			OccurredAt: now,
		},
		TaskID: t.ID,
	})
	return nil
}

func (s *taskService) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

func (s *taskService) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Task, error) {
	return s.tasks.ListByOwner(ctx, ownerID)
}

func (s *taskService) Update(ctx context.Context, t *domain.Task) error {
	t.UpdatedAt = s.clk.Now()
	return s.tasks.Update(ctx, t)
}

func (s *taskService) Delete(ctx context.Context, id string) error {
	return s.tasks.Delete(ctx, id)
}

func (s *taskService) CompleteTask(ctx context.Context, taskID, ownerID string, date time.Time) (err error) {
	started := s.clk.Now()
	defer func() {
		observe(ctx, s.observer, "complete_task", started, err, map[string]any{
			"task_id": taskID, "owner_id": ownerID,
		})
	}()

	var completed event.TaskCompleted
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPlans := repository.NewSQLiteDailyPlanRepo(tx)

		plan, err := txPlans.GetByOwnerDate(ctx, ownerID, date)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return domain.Violation("actionable truth cannot exist without structure: no daily plan for this date")
			}
			return err
		}
		if err := plan.MarkCompleted(taskID); err != nil {
			return err
		}
		plan.UpdatedAt = s.clk.Now()
		if err := txPlans.Update(ctx, plan); err != nil {
			return err
		}

		completed = event.TaskCompleted{
			Base: event.Base{
				ID:         uuid.New().String(),
				OwnerID:    ownerID,
				OccurredAt: s.clk.Now(),
			},
			TaskID: taskID,
			Date:   plan.Date,
		}

		// Goal links travel on the event so consumers need not re-read the
		// task. A deleted task just means no links.
		txTasks := repository.NewSQLiteTaskRepo(tx)
		if task, err := txTasks.GetByID(ctx, taskID); err == nil {
			completed.GoalID = task.GoalID
			completed.KeyResultID = task.KeyResultID
		} else if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.dispatcher.Publish(ctx, completed)
	return nil
}

func (s *taskService) MissTask(ctx context.Context, taskID, ownerID string, date time.Time) (err error) {
	started := s.clk.Now()
	defer func() {
		observe(ctx, s.observer, "miss_task", started, err, map[string]any{
			"task_id": taskID, "owner_id": ownerID,
		})
	}()

	// Misses are recorded but publish no event; only completions feed the
	// derived layers.
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPlans := repository.NewSQLiteDailyPlanRepo(tx)

		plan, err := txPlans.GetByOwnerDate(ctx, ownerID, date)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return domain.Violation("actionable truth cannot exist without structure: no daily plan for this date")
			}
			return err
		}
		if err := plan.MarkMissed(taskID); err != nil {
			return err
		}
		plan.UpdatedAt = s.clk.Now()
		return txPlans.Update(ctx, plan)
	})
}
