package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/strataapp/strata/internal/clock"
	"github.com/strataapp/strata/internal/db"
	"github.com/strataapp/strata/internal/domain"
	"github.com/strataapp/strata/internal/event"
	"github.com/strataapp/strata/internal/repository"
)

// dayCloseService is the single boundary where an open execution day becomes
// frozen historical truth.
type dayCloseService struct {
	plans      repository.DailyPlanRepo
	uow        db.UnitOfWork
	dispatcher *event.Dispatcher
	clk        clock.Clock
	observer   UseCaseObserver
}

func NewDayCloseService(
	plans repository.DailyPlanRepo,
	uow db.UnitOfWork,
	dispatcher *event.Dispatcher,
	clk clock.Clock,
	observers ...UseCaseObserver,
) DayCloseService {
	return &dayCloseService{
		plans:      plans,
		uow:        uow,
		dispatcher: dispatcher,
		clk:        clk,
		observer:   useCaseObserverOrNoop(observers),
	}
}

func (s *dayCloseService) CloseDay(ctx context.Context, ownerID string, date time.Time) (err error) {
	started := s.clk.Now()
	defer func() {
		observe(ctx, s.observer, "close_day", started, err, map[string]any{
			"owner_id": ownerID, "date": date.Format("2006-01-02"),
		})
	}()

	plan, err := s.plans.GetByOwnerDate(ctx, ownerID, clock.Midnight(date, time.UTC))
	if err != nil {
		return err
	}
	return s.closePlanAndPublish(ctx, plan)
}

func (s *dayCloseService) CloseOpenBefore(ctx context.Context, ownerID string, before time.Time) (int, error) {
	open, err := s.plans.ListOpenBefore(ctx, ownerID, clock.Midnight(before, time.UTC))
	if err != nil {
		return 0, err
	}
	closed := 0
	for _, plan := range open {
		if err := s.closePlanAndPublish(ctx, plan); err != nil {
			return closed, err
		}
		closed++
	}
	return closed, nil
}

// closePlanAndPublish performs the one-way transition and publishes the
// closure fact. An already-closed plan is left alone, which makes double
// invocation safe at the state level.
func (s *dayCloseService) closePlanAndPublish(ctx context.Context, plan *domain.DailyPlan) error {
	if plan.Closed {
		return nil
	}
	if err := plan.Close(); err != nil {
		return err
	}
	plan.UpdatedAt = s.clk.Now()

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteDailyPlanRepo(tx).Update(ctx, plan)
	})
	if err != nil {
		return err
	}

	s.dispatcher.Publish(ctx, event.DayClosed{
		Base: event.Base{
			ID:         uuid.New().String(),
			OwnerID:    plan.OwnerID,
			OccurredAt: s.clk.Now(),
		},
		Date: plan.Date,
	})
	return nil
}
