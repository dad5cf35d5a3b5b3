package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/strataapp/strata/internal/domain"
)

// FormatDailyPlan renders one day's executions. descriptions maps task IDs to
// their text; a task deleted since planning falls back to its ID.
func FormatDailyPlan(plan *domain.DailyPlan, descriptions map[string]string) string {
	var b strings.Builder

	title := fmt.Sprintf("%s  %s", plan.Date.Format("Mon 2006-01-02"), PlanBadge(plan.Closed))
	b.WriteString(Header("Daily Plan"))
	b.WriteString("\n")
	b.WriteString(title)
	b.WriteString("\n\n")

	if len(plan.Executions) == 0 {
		b.WriteString(Dim("Nothing planned."))
		b.WriteString("\n")
		return b.String()
	}

	done := 0
	for _, ex := range plan.Executions {
		desc, ok := descriptions[ex.TaskID]
		if !ok {
			desc = ex.TaskID
		}
		b.WriteString(fmt.Sprintf("  %s %s\n", ExecutionMark(ex.Completed, ex.Missed), desc))
		if ex.Completed {
			done++
		}
	}

	b.WriteString("\n")
	b.WriteString(Dim(fmt.Sprintf("%d/%d completed", done, len(plan.Executions))))
	b.WriteString("\n")
	return b.String()
}

// FormatWeeklyPlan renders the intent grid Monday through Sunday.
func FormatWeeklyPlan(plan *domain.WeeklyPlan, descriptions map[string]string) string {
	var b strings.Builder

	b.WriteString(Header(fmt.Sprintf("Week %d, %d", plan.Week, plan.Year)))
	b.WriteString("\n")

	days := []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
		time.Friday, time.Saturday, time.Sunday,
	}
	for _, day := range days {
		taskIDs := plan.Grid[day]
		b.WriteString(Bold(day.String()))
		b.WriteString("\n")
		if len(taskIDs) == 0 {
			b.WriteString(Dim("  (empty)"))
			b.WriteString("\n")
			continue
		}
		for _, id := range taskIDs {
			desc, ok := descriptions[id]
			if !ok {
				desc = id
			}
			b.WriteString(fmt.Sprintf("  - %s\n", desc))
		}
	}
	return b.String()
}
