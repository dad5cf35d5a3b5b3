package testutil

import (
	"time"

	"github.com/google/uuid"
	"github.com/strataapp/strata/internal/domain"
)

// Owner options
type OwnerOption func(*domain.Owner)

func WithTimezone(tz string) OwnerOption {
	return func(o *domain.Owner) {
		o.Timezone = tz
	}
}

func NewTestOwner(name string, opts ...OwnerOption) *domain.Owner {
	o := &domain.Owner{
		ID:          uuid.New().String(),
		DisplayName: name,
		Timezone:    "UTC",
		CreatedAt:   time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Task options
type TaskOption func(*domain.Task)

func WithGoalLink(goalID string) TaskOption {
	return func(t *domain.Task) {
		t.GoalID = &goalID
	}
}

func WithKeyResultLink(krID string) TaskOption {
	return func(t *domain.Task) {
		t.KeyResultID = &krID
	}
}

func NewTestTask(ownerID, description string, opts ...TaskOption) *domain.Task {
	now := time.Now().UTC()
	t := &domain.Task{
		ID:          uuid.New().String(),
		OwnerID:     ownerID,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Goal options
type GoalOption func(*domain.Goal)

func WithHorizon(start, end time.Time) GoalOption {
	return func(g *domain.Goal) {
		g.StartDate = start
		g.EndDate = end
	}
}

func WithInactive() GoalOption {
	return func(g *domain.Goal) {
		g.Active = false
	}
}

func NewTestGoal(ownerID, title string, opts ...GoalOption) *domain.Goal {
	now := time.Now().UTC()
	g := &domain.Goal{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Title:     title,
		StartDate: now.AddDate(0, -1, 0),
		EndDate:   now.AddDate(0, 2, 0),
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// KeyResult options
type KeyResultOption func(*domain.KeyResult)

func WithProgress(current, target float64) KeyResultOption {
	return func(kr *domain.KeyResult) {
		kr.Current = current
		kr.Target = target
	}
}

func NewTestKeyResult(goalID, title string, opts ...KeyResultOption) *domain.KeyResult {
	now := time.Now().UTC()
	kr := &domain.KeyResult{
		ID:        uuid.New().String(),
		GoalID:    goalID,
		Title:     title,
		Current:   0,
		Target:    10,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(kr)
	}
	return kr
}

// WeeklyPlan options
type WeeklyPlanOption func(*domain.WeeklyPlan)

func WithDayTasks(day time.Weekday, taskIDs ...string) WeeklyPlanOption {
	return func(w *domain.WeeklyPlan) {
		w.Grid[day] = taskIDs
	}
}

func NewTestWeeklyPlan(ownerID string, year, week int, opts ...WeeklyPlanOption) *domain.WeeklyPlan {
	now := time.Now().UTC()
	w := &domain.WeeklyPlan{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Year:      year,
		Week:      week,
		Grid:      map[time.Weekday][]string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// DailyPlan options
type DailyPlanOption func(*domain.DailyPlan)

func WithExecutions(taskIDs ...string) DailyPlanOption {
	return func(p *domain.DailyPlan) {
		p.Executions = nil
		for _, id := range taskIDs {
			p.Executions = append(p.Executions, domain.TaskExecution{TaskID: id})
		}
	}
}

func WithClosed() DailyPlanOption {
	return func(p *domain.DailyPlan) {
		p.Closed = true
	}
}

func NewTestDailyPlan(ownerID string, date time.Time, opts ...DailyPlanOption) *domain.DailyPlan {
	now := time.Now().UTC()
	p := &domain.DailyPlan{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Date:      date,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}
