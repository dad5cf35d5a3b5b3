package consumer

import (
	"context"

	"github.com/google/uuid"
	"github.com/strataapp/strata/internal/clock"
	"github.com/strataapp/strata/internal/db"
	"github.com/strataapp/strata/internal/domain"
	"github.com/strataapp/strata/internal/event"
	"github.com/strataapp/strata/internal/repository"
)

// SnapshotConsumer appends one GoalSnapshot per active goal on every
// DayClosed: actual progress is the sum of key-result currents, expected is
// the sum of targets scaled by how much of the goal's horizon has elapsed.
// Snapshots are never updated afterwards.
type SnapshotConsumer struct {
	uow db.UnitOfWork
	clk clock.Clock
}

func NewSnapshotConsumer(uow db.UnitOfWork, clk clock.Clock) *SnapshotConsumer {
	return &SnapshotConsumer{uow: uow, clk: clk}
}

func (c *SnapshotConsumer) Name() string { return "goal_snapshot" }

func (c *SnapshotConsumer) Consume(ctx context.Context, e event.Event) error {
	closed, ok := e.(event.DayClosed)
	if !ok {
		return nil
	}

	return c.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		applied, err := claimReceipt(ctx, tx, closed.EventID(), c.Name(), c.clk)
		if err != nil || !applied {
			return err
		}

		goals := repository.NewSQLiteGoalRepo(tx)
		active, err := goals.ListActiveByOwner(ctx, closed.OwnerID)
		if err != nil {
			return err
		}

		keyResults := repository.NewSQLiteKeyResultRepo(tx)
		snapshots := repository.NewSQLiteSnapshotRepo(tx)
		for _, goal := range active {
			results, err := keyResults.ListByGoal(ctx, goal.ID)
			if err != nil {
				return err
			}

			var actual, targetTotal float64
			for _, kr := range results {
				actual += kr.Current
				targetTotal += kr.Target
			}

			snap := &domain.GoalSnapshot{
				ID:       uuid.New().String(),
				GoalID:   goal.ID,
				TakenAt:  closed.At(),
				Actual:   actual,
				Expected: targetTotal * goal.HorizonFraction(closed.At()),
			}
			if err := snapshots.Append(ctx, snap); err != nil {
				return err
			}
		}
		return nil
	})
}
