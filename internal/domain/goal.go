package domain

import "time"

// Goal is an owner-scoped objective with a time horizon. Key results under it
// carry the measurable progress; snapshots compare that progress against the
// horizon.
type Goal struct {
	ID        string
	OwnerID   string
	Title     string
	StartDate time.Time
	EndDate   time.Time
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// KeyResult is one measurable component of a goal.
type KeyResult struct {
	ID        string
	GoalID    string
	Title     string
	Current   float64
	Target    float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HorizonFraction returns how far through the goal's time horizon the given
// instant is, clamped to [0, 1]. A zero-length horizon counts as fully elapsed.
func (g *Goal) HorizonFraction(at time.Time) float64 {
	total := g.EndDate.Sub(g.StartDate)
	if total <= 0 {
		return 1
	}
	elapsed := at.Sub(g.StartDate)
	if elapsed <= 0 {
		return 0
	}
	if elapsed >= total {
		return 1
	}
	return float64(elapsed) / float64(total)
}
