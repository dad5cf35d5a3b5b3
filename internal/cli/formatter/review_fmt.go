package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/strataapp/strata/internal/domain"
)

// FormatStreak renders the current streak with a one-line verdict.
func FormatStreak(state *domain.StreakState) string {
	var b strings.Builder
	b.WriteString(Header("Streak"))
	b.WriteString("\n")
	switch {
	case state.CurrentStreak == 0:
		b.WriteString(Dim("No streak. Close a fully completed day to start one."))
	case state.CurrentStreak == 1:
		b.WriteString(StyleGreen.Render("1 day"))
	default:
		b.WriteString(StyleGreen.Render(fmt.Sprintf("%d days", state.CurrentStreak)))
	}
	b.WriteString("\n")
	return b.String()
}

// FormatSnapshots renders a goal's snapshot history, oldest first.
func FormatSnapshots(snaps []*domain.GoalSnapshot) string {
	headers := []string{"TAKEN", "ACTUAL", "EXPECTED", "PACE"}
	rows := make([][]string, 0, len(snaps))
	for _, s := range snaps {
		pace := StyleGreen.Render("on track")
		if s.Actual < s.Expected {
			pace = StyleYellow.Render("behind")
		}
		rows = append(rows, []string{
			s.TakenAt.Format("2006-01-02"),
			fmt.Sprintf("%.1f", s.Actual),
			fmt.Sprintf("%.1f", s.Expected),
			pace,
		})
	}
	return Header("Goal History") + "\n" + RenderTable(headers, rows)
}

// FormatAudit renders the audit trail, newest first.
func FormatAudit(events []*domain.AuditEvent) string {
	headers := []string{"WHEN", "EVENT", "DETAIL"}
	rows := make([][]string, 0, len(events))
	for _, e := range events {
		rows = append(rows, []string{
			e.OccurredAt.Format("2006-01-02 15:04"),
			StyleBlue.Render(string(e.Type)),
			payloadSummary(e.Payload),
		})
	}
	return Header("History") + "\n" + RenderTable(headers, rows)
}

func payloadSummary(payload map[string]string) string {
	if len(payload) == 0 {
		return Dim("-")
	}
	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", k, payload[k]))
	}
	return strings.Join(parts, " ")
}
