package formatter

import (
	"github.com/strataapp/strata/internal/domain"
)

// FormatTaskList renders the task backlog as a table.
func FormatTaskList(tasks []*domain.Task) string {
	headers := []string{"ID", "DESCRIPTION", "GOAL"}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		goal := Dim("-")
		if t.GoalID != nil {
			goal = StyleBlue.Render(shortID(*t.GoalID))
		}
		rows = append(rows, []string{shortID(t.ID), t.Description, goal})
	}
	return RenderTable(headers, rows)
}

// FormatOwnerList renders registered owners as a table.
func FormatOwnerList(owners []*domain.Owner) string {
	headers := []string{"ID", "NAME", "TIMEZONE"}
	rows := make([][]string, 0, len(owners))
	for _, o := range owners {
		rows = append(rows, []string{shortID(o.ID), o.DisplayName, o.Timezone})
	}
	return RenderTable(headers, rows)
}
