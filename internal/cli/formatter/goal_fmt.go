package formatter

import (
	"fmt"
	"time"

	"github.com/strataapp/strata/internal/domain"
)

// FormatGoalList renders goals as a table with their horizon and state.
func FormatGoalList(goals []*domain.Goal) string {
	headers := []string{"ID", "TITLE", "HORIZON", "STATE"}
	rows := make([][]string, 0, len(goals))
	for _, g := range goals {
		state := StyleGreen.Render("active")
		if !g.Active {
			state = Dim("inactive")
		}
		horizon := fmt.Sprintf("%s → %s",
			g.StartDate.Format("2006-01-02"), g.EndDate.Format("2006-01-02"))
		rows = append(rows, []string{shortID(g.ID), g.Title, horizon, state})
	}
	return RenderTable(headers, rows)
}

// FormatGoalDetail renders one goal with its key results and expected pace.
func FormatGoalDetail(g *domain.Goal, results []*domain.KeyResult, now time.Time) string {
	out := Header(g.Title) + "\n"
	out += fmt.Sprintf("%s  %s → %s\n\n",
		Dim(shortID(g.ID)),
		g.StartDate.Format("2006-01-02"), g.EndDate.Format("2006-01-02"))

	if len(results) == 0 {
		out += Dim("No key results.") + "\n"
		return out
	}

	headers := []string{"KEY RESULT", "CURRENT", "TARGET", "PACE"}
	rows := make([][]string, 0, len(results))
	elapsed := g.HorizonFraction(now)
	for _, kr := range results {
		expected := kr.Target * elapsed
		pace := StyleGreen.Render("on track")
		if kr.Current < expected {
			pace = StyleYellow.Render("behind")
		}
		rows = append(rows, []string{
			kr.Title,
			fmt.Sprintf("%.1f", kr.Current),
			fmt.Sprintf("%.1f", kr.Target),
			pace,
		})
	}
	out += RenderTable(headers, rows)
	return out
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
