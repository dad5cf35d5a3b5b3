package formatter

import (
	"testing"
	"time"

	"github.com/strataapp/strata/internal/domain"
	"github.com/stretchr/testify/assert"
)

var fmtDate = time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

func TestFormatDailyPlan_ShowsTasksAndProgress(t *testing.T) {
	plan := &domain.DailyPlan{
		OwnerID: "owner-1",
		Date:    fmtDate,
		Executions: []domain.TaskExecution{
			{TaskID: "task-a", Completed: true},
			{TaskID: "task-b", Missed: true},
			{TaskID: "task-c"},
		},
	}
	descriptions := map[string]string{
		"task-a": "write two pages",
		"task-b": "edit bibliography",
	}

	out := FormatDailyPlan(plan, descriptions)
	assert.Contains(t, out, "Mon 2025-06-16")
	assert.Contains(t, out, "write two pages")
	assert.Contains(t, out, "edit bibliography")
	assert.Contains(t, out, "task-c", "deleted tasks fall back to the ID")
	assert.Contains(t, out, "1/3 completed")
	assert.Contains(t, out, "OPEN")
}

func TestFormatDailyPlan_ClosedAndEmpty(t *testing.T) {
	plan := &domain.DailyPlan{OwnerID: "owner-1", Date: fmtDate, Closed: true}

	out := FormatDailyPlan(plan, nil)
	assert.Contains(t, out, "CLOSED")
	assert.Contains(t, out, "Nothing planned")
}

func TestFormatWeeklyPlan_RendersAllSevenDays(t *testing.T) {
	plan := &domain.WeeklyPlan{
		Year: 2025,
		Week: 25,
		Grid: map[time.Weekday][]string{
			time.Monday: {"task-a"},
		},
	}

	out := FormatWeeklyPlan(plan, map[string]string{"task-a": "write two pages"})
	assert.Contains(t, out, "WEEK 25, 2025")
	for _, day := range []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"} {
		assert.Contains(t, out, day)
	}
	assert.Contains(t, out, "write two pages")
	assert.Contains(t, out, "(empty)")
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := RenderTable(
		[]string{"ID", "NAME"},
		[][]string{{"a1", "Alex"}, {"b2", "Bo"}},
	)
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "Alex")
	assert.Contains(t, out, "─")
}
