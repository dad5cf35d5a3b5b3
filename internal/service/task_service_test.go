package service

import (
	"context"
	"errors"
	"testing"

	"github.com/strataapp/strata/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleteTask_MarksExecution(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	owner := e.newOwner(t)
	task := e.newTask(t, owner.ID, "write draft")
	e.planMonday(t, owner.ID, task.ID)

	_, err := e.Plans.MaterializeDay(ctx, owner.ID, testMonday)
	require.NoError(t, err)

	require.NoError(t, e.Tasks.CompleteTask(ctx, task.ID, owner.ID, testMonday))

	plan, err := e.Plans.GetDay(ctx, owner.ID, testMonday)
	require.NoError(t, err)
	assert.True(t, plan.Executions[0].Completed)

	completions := e.captured.taskCompleted()
	require.Len(t, completions, 1)
	assert.Equal(t, task.ID, completions[0].TaskID)
	assert.Equal(t, testMonday, completions[0].Date)
}

func TestCompleteTask_WithoutPlanIsViolation(t *testing.T) {
	e := setup(t)
	owner := e.newOwner(t)
	task := e.newTask(t, owner.ID, "write draft")

	err := e.Tasks.CompleteTask(context.Background(), task.ID, owner.ID, testMonday)
	require.Error(t, err)
	assert.True(t, domain.IsViolation(err))
	assert.Empty(t, e.captured.taskCompleted(), "no event on failure")
}

func TestCompleteTask_UnplannedTask(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	owner := e.newOwner(t)
	planned := e.newTask(t, owner.ID, "write draft")
	stray := e.newTask(t, owner.ID, "unrelated")
	e.planMonday(t, owner.ID, planned.ID)

	_, err := e.Plans.MaterializeDay(ctx, owner.ID, testMonday)
	require.NoError(t, err)

	err = e.Tasks.CompleteTask(ctx, stray.ID, owner.ID, testMonday)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotPlanned))
}

func TestCompleteTask_ClosedDayIsImmutable(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	owner := e.newOwner(t)
	task := e.newTask(t, owner.ID, "write draft")
	e.planMonday(t, owner.ID, task.ID)

	_, err := e.Plans.MaterializeDay(ctx, owner.ID, testMonday)
	require.NoError(t, err)
	require.NoError(t, e.DayClose.CloseDay(ctx, owner.ID, testMonday))

	err = e.Tasks.CompleteTask(ctx, task.ID, owner.ID, testMonday)
	require.Error(t, err)
	assert.True(t, domain.IsViolation(err))

	plan, err := e.Plans.GetDay(ctx, owner.ID, testMonday)
	require.NoError(t, err)
	assert.False(t, plan.Executions[0].Completed, "closed truth stays frozen")
}

func TestCompleteTask_CarriesGoalLinks(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	owner := e.newOwner(t)

	goal := &domain.Goal{OwnerID: owner.ID, Title: "Ship the report", Active: true,
		StartDate: testMonday.AddDate(0, 0, -7), EndDate: testMonday.AddDate(0, 0, 7)}
	require.NoError(t, e.Goals.CreateGoal(ctx, goal))

	task := e.newTask(t, owner.ID, "write draft")
	task.GoalID = &goal.ID
	require.NoError(t, e.Tasks.Update(ctx, task))

	e.planMonday(t, owner.ID, task.ID)
	_, err := e.Plans.MaterializeDay(ctx, owner.ID, testMonday)
	require.NoError(t, err)

	require.NoError(t, e.Tasks.CompleteTask(ctx, task.ID, owner.ID, testMonday))

	completions := e.captured.taskCompleted()
	require.Len(t, completions, 1)
	require.NotNil(t, completions[0].GoalID)
	assert.Equal(t, goal.ID, *completions[0].GoalID)
}

func TestMissTask_PublishesNothing(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	owner := e.newOwner(t)
	task := e.newTask(t, owner.ID, "write draft")
	e.planMonday(t, owner.ID, task.ID)

	_, err := e.Plans.MaterializeDay(ctx, owner.ID, testMonday)
	require.NoError(t, err)

	require.NoError(t, e.Tasks.MissTask(ctx, task.ID, owner.ID, testMonday))

	plan, err := e.Plans.GetDay(ctx, owner.ID, testMonday)
	require.NoError(t, err)
	assert.True(t, plan.Executions[0].Missed)
	assert.Empty(t, e.captured.taskCompleted(), "misses are recorded silently")
}

func TestMissTask_OverridesEarlierCompletion(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	owner := e.newOwner(t)
	task := e.newTask(t, owner.ID, "write draft")
	e.planMonday(t, owner.ID, task.ID)

	_, err := e.Plans.MaterializeDay(ctx, owner.ID, testMonday)
	require.NoError(t, err)

	require.NoError(t, e.Tasks.CompleteTask(ctx, task.ID, owner.ID, testMonday))
	require.NoError(t, e.Tasks.MissTask(ctx, task.ID, owner.ID, testMonday))

	plan, err := e.Plans.GetDay(ctx, owner.ID, testMonday)
	require.NoError(t, err)
	assert.True(t, plan.Executions[0].Missed)
	assert.False(t, plan.Executions[0].Completed)
}
