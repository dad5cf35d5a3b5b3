package consumer

import (
	"context"
	"testing"
	"time"

	"github.com/strataapp/strata/internal/domain"
	"github.com/strataapp/strata/internal/event"
	"github.com/strataapp/strata/internal/repository"
	"github.com/strataapp/strata/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var closeDate = time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

func dayClosedEvent(id, ownerID string, date time.Time) event.DayClosed {
	return event.DayClosed{
		Base: event.Base{ID: id, OwnerID: ownerID, OccurredAt: date.Add(22 * time.Hour)},
		Date: date,
	}
}

func TestStreakConsumer_FullDayExtends(t *testing.T) {
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	clk := testutil.NewFrozenClock(closeDate.Add(22 * time.Hour))
	ctx := context.Background()

	owner := testutil.NewTestOwner("Alex")
	require.NoError(t, repository.NewSQLiteOwnerRepo(database).Create(ctx, owner))

	plan := testutil.NewTestDailyPlan(owner.ID, closeDate,
		testutil.WithExecutions("task-a", "task-b"), testutil.WithClosed())
	for i := range plan.Executions {
		plan.Executions[i].Completed = true
	}
	require.NoError(t, repository.NewSQLiteDailyPlanRepo(database).Create(ctx, plan))

	c := NewStreakConsumer(uow, clk)
	require.NoError(t, c.Consume(ctx, dayClosedEvent("evt-1", owner.ID, closeDate)))

	state, err := repository.NewSQLiteStreakRepo(database).Get(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, state.CurrentStreak)
}

func TestStreakConsumer_PartialDayResets(t *testing.T) {
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	clk := testutil.NewFrozenClock(closeDate.Add(22 * time.Hour))
	ctx := context.Background()

	owner := testutil.NewTestOwner("Alex")
	require.NoError(t, repository.NewSQLiteOwnerRepo(database).Create(ctx, owner))

	streaks := repository.NewSQLiteStreakRepo(database)
	require.NoError(t, streaks.Upsert(ctx, &domain.StreakState{
		OwnerID: owner.ID, CurrentStreak: 5, UpdatedAt: clk.Now(),
	}))

	plan := testutil.NewTestDailyPlan(owner.ID, closeDate,
		testutil.WithExecutions("task-a", "task-b"), testutil.WithClosed())
	plan.Executions[0].Completed = true
	require.NoError(t, repository.NewSQLiteDailyPlanRepo(database).Create(ctx, plan))

	c := NewStreakConsumer(uow, clk)
	require.NoError(t, c.Consume(ctx, dayClosedEvent("evt-1", owner.ID, closeDate)))

	state, err := streaks.Get(ctx, owner.ID)
	require.NoError(t, err)
	assert.Zero(t, state.CurrentStreak)
}

func TestStreakConsumer_EmptyDayLeavesStreak(t *testing.T) {
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	clk := testutil.NewFrozenClock(closeDate.Add(22 * time.Hour))
	ctx := context.Background()

	owner := testutil.NewTestOwner("Alex")
	require.NoError(t, repository.NewSQLiteOwnerRepo(database).Create(ctx, owner))

	streaks := repository.NewSQLiteStreakRepo(database)
	require.NoError(t, streaks.Upsert(ctx, &domain.StreakState{
		OwnerID: owner.ID, CurrentStreak: 3, UpdatedAt: clk.Now(),
	}))

	plan := testutil.NewTestDailyPlan(owner.ID, closeDate, testutil.WithClosed())
	require.NoError(t, repository.NewSQLiteDailyPlanRepo(database).Create(ctx, plan))

	c := NewStreakConsumer(uow, clk)
	require.NoError(t, c.Consume(ctx, dayClosedEvent("evt-1", owner.ID, closeDate)))

	state, err := streaks.Get(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, state.CurrentStreak)
}

func TestStreakConsumer_RedeliveryIsAbsorbed(t *testing.T) {
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	clk := testutil.NewFrozenClock(closeDate.Add(22 * time.Hour))
	ctx := context.Background()

	owner := testutil.NewTestOwner("Alex")
	require.NoError(t, repository.NewSQLiteOwnerRepo(database).Create(ctx, owner))

	plan := testutil.NewTestDailyPlan(owner.ID, closeDate,
		testutil.WithExecutions("task-a"), testutil.WithClosed())
	plan.Executions[0].Completed = true
	require.NoError(t, repository.NewSQLiteDailyPlanRepo(database).Create(ctx, plan))

	c := NewStreakConsumer(uow, clk)
	evt := dayClosedEvent("evt-1", owner.ID, closeDate)
	require.NoError(t, c.Consume(ctx, evt))
	require.NoError(t, c.Consume(ctx, evt), "redelivery must not error")
	require.NoError(t, c.Consume(ctx, evt))

	state, err := repository.NewSQLiteStreakRepo(database).Get(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, state.CurrentStreak, "applied exactly once")
}

func TestStreakConsumer_MissingPlanSkipsButKeepsReceipt(t *testing.T) {
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	clk := testutil.NewFrozenClock(closeDate.Add(22 * time.Hour))
	ctx := context.Background()

	c := NewStreakConsumer(uow, clk)
	require.NoError(t, c.Consume(ctx, dayClosedEvent("evt-1", "ghost-owner", closeDate)))

	exists, err := repository.NewSQLiteReceiptRepo(database).Exists(ctx, "evt-1", c.Name())
	require.NoError(t, err)
	assert.True(t, exists, "missing source fact still consumes the delivery")
}

func TestStreakConsumer_IgnoresOtherEvents(t *testing.T) {
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	clk := testutil.NewFrozenClock(closeDate)
	ctx := context.Background()

	c := NewStreakConsumer(uow, clk)
	evt := event.TaskCreated{
		Base:   event.Base{ID: "evt-1", OwnerID: "owner-1", OccurredAt: clk.Now()},
		TaskID: "task-a",
	}
	require.NoError(t, c.Consume(ctx, evt))

	exists, err := repository.NewSQLiteReceiptRepo(database).Exists(ctx, "evt-1", c.Name())
	require.NoError(t, err)
	assert.False(t, exists, "irrelevant events are not receipted")
}
