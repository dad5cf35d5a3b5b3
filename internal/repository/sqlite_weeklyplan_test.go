package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/strataapp/strata/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeeklyPlanRepo_GridRoundtrip(t *testing.T) {
	database := testutil.NewTestDB(t)
	owner := seedOwner(t, database)
	repo := NewSQLiteWeeklyPlanRepo(database)
	ctx := context.Background()

	plan := testutil.NewTestWeeklyPlan(owner.ID, 2025, 25,
		testutil.WithDayTasks(time.Monday, "task-a", "task-b"),
		testutil.WithDayTasks(time.Sunday, "task-c"))
	require.NoError(t, repo.Create(ctx, plan))

	fetched, err := repo.GetByOwnerWeek(ctx, owner.ID, 2025, 25)
	require.NoError(t, err)
	assert.Equal(t, plan.ID, fetched.ID)
	assert.Equal(t, []string{"task-a", "task-b"}, fetched.Grid[time.Monday])
	assert.Equal(t, []string{"task-c"}, fetched.Grid[time.Sunday])
	assert.Empty(t, fetched.Grid[time.Wednesday])
}

func TestWeeklyPlanRepo_DuplicateWeek(t *testing.T) {
	database := testutil.NewTestDB(t)
	owner := seedOwner(t, database)
	repo := NewSQLiteWeeklyPlanRepo(database)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestWeeklyPlan(owner.ID, 2025, 25)))

	err := repo.Create(ctx, testutil.NewTestWeeklyPlan(owner.ID, 2025, 25))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicate))
}

func TestWeeklyPlanRepo_UpdateReplacesGrid(t *testing.T) {
	database := testutil.NewTestDB(t)
	owner := seedOwner(t, database)
	repo := NewSQLiteWeeklyPlanRepo(database)
	ctx := context.Background()

	plan := testutil.NewTestWeeklyPlan(owner.ID, 2025, 25,
		testutil.WithDayTasks(time.Monday, "task-a"))
	require.NoError(t, repo.Create(ctx, plan))

	plan.Grid = map[time.Weekday][]string{time.Friday: {"task-z"}}
	require.NoError(t, repo.Update(ctx, plan))

	fetched, err := repo.GetByOwnerWeek(ctx, owner.ID, 2025, 25)
	require.NoError(t, err)
	assert.Empty(t, fetched.Grid[time.Monday])
	assert.Equal(t, []string{"task-z"}, fetched.Grid[time.Friday])
}

func TestWeeklyPlanRepo_NotFound(t *testing.T) {
	database := testutil.NewTestDB(t)
	owner := seedOwner(t, database)
	repo := NewSQLiteWeeklyPlanRepo(database)

	_, err := repo.GetByOwnerWeek(context.Background(), owner.ID, 2025, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}
