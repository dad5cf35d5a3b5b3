package consumer

import (
	"context"
	"errors"

	"github.com/strataapp/strata/internal/clock"
	"github.com/strataapp/strata/internal/db"
	"github.com/strataapp/strata/internal/domain"
	"github.com/strataapp/strata/internal/event"
	"github.com/strataapp/strata/internal/repository"
)

// StreakConsumer maintains the owner's run of fully-completed days. On each
// DayClosed: a day where every planned task was completed extends the streak,
// a day with any incomplete task resets it, and a day with no tasks leaves it
// untouched.
type StreakConsumer struct {
	uow db.UnitOfWork
	clk clock.Clock
}

func NewStreakConsumer(uow db.UnitOfWork, clk clock.Clock) *StreakConsumer {
	return &StreakConsumer{uow: uow, clk: clk}
}

func (c *StreakConsumer) Name() string { return "streak" }

func (c *StreakConsumer) Consume(ctx context.Context, e event.Event) error {
	closed, ok := e.(event.DayClosed)
	if !ok {
		return nil
	}

	return c.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		applied, err := claimReceipt(ctx, tx, closed.EventID(), c.Name(), c.clk)
		if err != nil || !applied {
			return err
		}

		plans := repository.NewSQLiteDailyPlanRepo(tx)
		plan, err := plans.GetByOwnerDate(ctx, closed.OwnerID, closed.Date)
		if err != nil {
			// Source fact missing: keep the receipt, skip the derivation.
			if errors.Is(err, repository.ErrNotFound) {
				return nil
			}
			return err
		}

		// An empty day neither extends nor breaks the streak.
		if len(plan.Executions) == 0 {
			return nil
		}

		streaks := repository.NewSQLiteStreakRepo(tx)
		state, err := streaks.Get(ctx, closed.OwnerID)
		if err != nil {
			if !errors.Is(err, repository.ErrNotFound) {
				return err
			}
			state = &domain.StreakState{OwnerID: closed.OwnerID}
		}

		if plan.AllCompleted() {
			state.CurrentStreak++
		} else {
			state.CurrentStreak = 0
		}
		state.UpdatedAt = c.clk.Now()
		return streaks.Upsert(ctx, state)
	})
}
