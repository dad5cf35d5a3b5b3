package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/strataapp/strata/internal/consumer"
	"github.com/strataapp/strata/internal/db"
	"github.com/strataapp/strata/internal/domain"
	"github.com/strataapp/strata/internal/event"
	"github.com/strataapp/strata/internal/repository"
	"github.com/strataapp/strata/internal/testutil"
	"github.com/stretchr/testify/require"
)

// testMonday is a Monday, ISO week 25 of 2025.
var testMonday = time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

type env struct {
	database   *sql.DB
	uow        db.UnitOfWork
	clk        *testutil.FrozenClock
	dispatcher *event.Dispatcher
	captured   *captureConsumer

	owners repository.OwnerRepo
	tasks  repository.TaskRepo
	plans  repository.DailyPlanRepo
	goals  repository.GoalRepo

	Owners   OwnerService
	Tasks    TaskService
	Plans    PlanService
	DayClose DayCloseService
	Goals    GoalService
	Review   ReviewService
}

// captureConsumer records every published event for assertions. It registers
// last so the real consumers have already run when an event lands here.
type captureConsumer struct {
	mu     sync.Mutex
	events []event.Event
}

func (c *captureConsumer) Name() string { return "test_capture" }

func (c *captureConsumer) Consume(_ context.Context, e event.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
	return nil
}

func (c *captureConsumer) ofType(match func(event.Event) bool) []event.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []event.Event
	for _, e := range c.events {
		if match(e) {
			out = append(out, e)
		}
	}
	return out
}

func (c *captureConsumer) dayClosed() []event.DayClosed {
	var out []event.DayClosed
	for _, e := range c.ofType(func(e event.Event) bool { _, ok := e.(event.DayClosed); return ok }) {
		out = append(out, e.(event.DayClosed))
	}
	return out
}

func (c *captureConsumer) taskCompleted() []event.TaskCompleted {
	var out []event.TaskCompleted
	for _, e := range c.ofType(func(e event.Event) bool { _, ok := e.(event.TaskCompleted); return ok }) {
		out = append(out, e.(event.TaskCompleted))
	}
	return out
}

func setup(t *testing.T) *env {
	t.Helper()

	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	clk := testutil.NewFrozenClock(testMonday.Add(9 * time.Hour))

	dispatcher := event.NewDispatcher(nil)
	captured := &captureConsumer{}
	dispatcher.Register(
		consumer.NewStreakConsumer(uow, clk),
		consumer.NewSnapshotConsumer(uow, clk),
		consumer.NewAuditConsumer(uow, clk),
		captured,
	)

	owners := repository.NewSQLiteOwnerRepo(database)
	tasks := repository.NewSQLiteTaskRepo(database)
	plans := repository.NewSQLiteDailyPlanRepo(database)
	weeks := repository.NewSQLiteWeeklyPlanRepo(database)
	goals := repository.NewSQLiteGoalRepo(database)
	keyResults := repository.NewSQLiteKeyResultRepo(database)
	streaks := repository.NewSQLiteStreakRepo(database)
	snapshots := repository.NewSQLiteSnapshotRepo(database)
	audits := repository.NewSQLiteAuditRepo(database)

	return &env{
		database:   database,
		uow:        uow,
		clk:        clk,
		dispatcher: dispatcher,
		captured:   captured,
		owners:     owners,
		tasks:      tasks,
		plans:      plans,
		goals:      goals,
		Owners:     NewOwnerService(owners, dispatcher, clk),
		Tasks:      NewTaskService(tasks, plans, uow, dispatcher, clk),
		Plans:      NewPlanService(plans, weeks, owners, uow, dispatcher, clk),
		DayClose:   NewDayCloseService(plans, uow, dispatcher, clk),
		Goals:      NewGoalService(goals, keyResults, clk),
		Review:     NewReviewService(streaks, snapshots, audits),
	}
}

func (e *env) newOwner(t *testing.T, opts ...testutil.OwnerOption) *domain.Owner {
	t.Helper()
	owner := testutil.NewTestOwner("Alex", opts...)
	require.NoError(t, e.owners.Create(context.Background(), owner))
	return owner
}

func (e *env) newTask(t *testing.T, ownerID, description string, opts ...testutil.TaskOption) *domain.Task {
	t.Helper()
	task := testutil.NewTestTask(ownerID, description, opts...)
	require.NoError(t, e.Tasks.Create(context.Background(), task))
	return task
}

// planWeek stores a weekly grid scheduling the given tasks on Monday.
func (e *env) planMonday(t *testing.T, ownerID string, taskIDs ...string) {
	t.Helper()
	plan := testutil.NewTestWeeklyPlan(ownerID, 2025, 25,
		testutil.WithDayTasks(time.Monday, taskIDs...))
	require.NoError(t, e.Plans.UpsertWeek(context.Background(), plan))
}
