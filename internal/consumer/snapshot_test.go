package consumer

import (
	"context"
	"testing"

	"github.com/strataapp/strata/internal/repository"
	"github.com/strataapp/strata/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotConsumer_RecordsPacePerActiveGoal(t *testing.T) {
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	ctx := context.Background()

	owner := testutil.NewTestOwner("Alex")
	require.NoError(t, repository.NewSQLiteOwnerRepo(database).Create(ctx, owner))

	// Goal horizon 10 days, closed at day 5: expected = half the targets.
	start := closeDate.AddDate(0, 0, -5)
	end := closeDate.AddDate(0, 0, 5)
	goal := testutil.NewTestGoal(owner.ID, "Read the stack", testutil.WithHorizon(start, end))
	require.NoError(t, repository.NewSQLiteGoalRepo(database).Create(ctx, goal))

	inactive := testutil.NewTestGoal(owner.ID, "Abandoned", testutil.WithInactive())
	require.NoError(t, repository.NewSQLiteGoalRepo(database).Create(ctx, inactive))

	krs := repository.NewSQLiteKeyResultRepo(database)
	require.NoError(t, krs.Create(ctx, testutil.NewTestKeyResult(goal.ID, "Books", testutil.WithProgress(2, 6))))
	require.NoError(t, krs.Create(ctx, testutil.NewTestKeyResult(goal.ID, "Papers", testutil.WithProgress(1, 4))))

	clk := testutil.NewFrozenClock(closeDate)
	c := NewSnapshotConsumer(uow, clk)
	evt := dayClosedEvent("evt-1", owner.ID, closeDate)
	// Closure instant sits exactly mid-horizon.
	evt.OccurredAt = closeDate
	require.NoError(t, c.Consume(ctx, evt))

	snaps, err := repository.NewSQLiteSnapshotRepo(database).ListByGoal(ctx, goal.ID)
	require.NoError(t, err)
	require.Len(t, snaps, 1)
	assert.Equal(t, 3.0, snaps[0].Actual, "sum of key result currents")
	assert.InDelta(t, 5.0, snaps[0].Expected, 1e-9, "half of the summed targets")

	none, err := repository.NewSQLiteSnapshotRepo(database).ListByGoal(ctx, inactive.ID)
	require.NoError(t, err)
	assert.Empty(t, none, "inactive goals are not snapshotted")
}

func TestSnapshotConsumer_GoalWithoutKeyResults(t *testing.T) {
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	ctx := context.Background()

	owner := testutil.NewTestOwner("Alex")
	require.NoError(t, repository.NewSQLiteOwnerRepo(database).Create(ctx, owner))

	goal := testutil.NewTestGoal(owner.ID, "Vague ambition")
	require.NoError(t, repository.NewSQLiteGoalRepo(database).Create(ctx, goal))

	c := NewSnapshotConsumer(uow, testutil.NewFrozenClock(closeDate))
	require.NoError(t, c.Consume(ctx, dayClosedEvent("evt-1", owner.ID, closeDate)))

	snaps, err := repository.NewSQLiteSnapshotRepo(database).ListByGoal(ctx, goal.ID)
	require.NoError(t, err)
	require.Len(t, snaps, 1)
	assert.Zero(t, snaps[0].Actual)
	assert.Zero(t, snaps[0].Expected)
}

func TestSnapshotConsumer_RedeliveryIsAbsorbed(t *testing.T) {
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	ctx := context.Background()

	owner := testutil.NewTestOwner("Alex")
	require.NoError(t, repository.NewSQLiteOwnerRepo(database).Create(ctx, owner))

	goal := testutil.NewTestGoal(owner.ID, "Read the stack")
	require.NoError(t, repository.NewSQLiteGoalRepo(database).Create(ctx, goal))

	c := NewSnapshotConsumer(uow, testutil.NewFrozenClock(closeDate))
	evt := dayClosedEvent("evt-1", owner.ID, closeDate)
	require.NoError(t, c.Consume(ctx, evt))
	require.NoError(t, c.Consume(ctx, evt))

	snaps, err := repository.NewSQLiteSnapshotRepo(database).ListByGoal(ctx, goal.ID)
	require.NoError(t, err)
	assert.Len(t, snaps, 1, "one snapshot per goal per closure, not per delivery")
}
