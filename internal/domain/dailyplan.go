package domain

import (
	"fmt"
	"time"
)

// TaskExecution records what happened to one planned task on one day.
type TaskExecution struct {
	TaskID    string
	Completed bool
	Missed    bool
}

// DailyPlan is the execution truth for one (owner, date). It starts open and
// mutable; Close makes it permanently immutable. There is no transition back:
// once closed, every mutation fails with a DomainViolation.
type DailyPlan struct {
	ID         string
	OwnerID    string
	Date       time.Time
	Closed     bool
	Executions []TaskExecution
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Close transitions the plan from open to closed. Closed is terminal.
func (p *DailyPlan) Close() error {
	if p.Closed {
		return Violation("daily plan is already closed: historical truth cannot be rewritten")
	}
	p.Closed = true
	return nil
}

// MarkCompleted marks the execution for taskID as completed.
func (p *DailyPlan) MarkCompleted(taskID string) error {
	return p.mark(taskID, func(e *TaskExecution) {
		e.Completed = true
		e.Missed = false
	})
}

// MarkMissed marks the execution for taskID as missed.
func (p *DailyPlan) MarkMissed(taskID string) error {
	return p.mark(taskID, func(e *TaskExecution) {
		e.Missed = true
		e.Completed = false
	})
}

func (p *DailyPlan) mark(taskID string, apply func(*TaskExecution)) error {
	if p.Closed {
		return Violation("daily plan is closed: historical truth cannot be rewritten")
	}
	for i := range p.Executions {
		if p.Executions[i].TaskID == taskID {
			apply(&p.Executions[i])
			return nil
		}
	}
	return fmt.Errorf("task %s: %w", taskID, ErrNotPlanned)
}

// AllCompleted reports whether every planned task was completed.
// A plan with no tasks reports false; streak logic treats that case
// separately (an empty day leaves the streak unchanged).
func (p *DailyPlan) AllCompleted() bool {
	if len(p.Executions) == 0 {
		return false
	}
	for _, e := range p.Executions {
		if !e.Completed {
			return false
		}
	}
	return true
}
