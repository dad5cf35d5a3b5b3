package domain

import "time"

// WeeklyPlan is the editable intent horizon for one ISO week: an ordered list
// of task IDs per weekday. It has no closed state and stays mutable forever.
// Editing it never alters an already-materialized DailyPlan.
type WeeklyPlan struct {
	ID        string
	OwnerID   string
	Year      int
	Week      int
	Grid      map[time.Weekday][]string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TasksFor returns the ordered task IDs scheduled for the given weekday.
func (w *WeeklyPlan) TasksFor(day time.Weekday) []string {
	return w.Grid[day]
}

// ISOWeekOf returns the ISO year and week number covering the given date.
func ISOWeekOf(date time.Time) (year, week int) {
	return date.ISOWeek()
}
