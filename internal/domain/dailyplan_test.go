package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDate = time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

func openPlan(taskIDs ...string) *DailyPlan {
	p := &DailyPlan{
		ID:      "plan-1",
		OwnerID: "owner-1",
		Date:    testDate,
	}
	for _, id := range taskIDs {
		p.Executions = append(p.Executions, TaskExecution{TaskID: id})
	}
	return p
}

func TestClose_OpenPlan(t *testing.T) {
	p := openPlan("a")
	require.NoError(t, p.Close())
	assert.True(t, p.Closed)
}

func TestClose_AlreadyClosed(t *testing.T) {
	p := openPlan("a")
	require.NoError(t, p.Close())

	err := p.Close()
	require.Error(t, err)
	assert.True(t, IsViolation(err))
}

func TestMarkCompleted(t *testing.T) {
	p := openPlan("a", "b")
	require.NoError(t, p.MarkCompleted("a"))
	assert.True(t, p.Executions[0].Completed)
	assert.False(t, p.Executions[0].Missed)
	assert.False(t, p.Executions[1].Completed)
}

func TestMarkMissed_OverwritesCompleted(t *testing.T) {
	p := openPlan("a")
	require.NoError(t, p.MarkCompleted("a"))
	require.NoError(t, p.MarkMissed("a"))
	assert.True(t, p.Executions[0].Missed)
	assert.False(t, p.Executions[0].Completed)
}

func TestMark_UnplannedTask(t *testing.T) {
	p := openPlan("a")
	err := p.MarkCompleted("ghost")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotPlanned))
}

func TestMark_ClosedPlanIsImmutable(t *testing.T) {
	p := openPlan("a")
	require.NoError(t, p.Close())

	err := p.MarkCompleted("a")
	require.Error(t, err)
	assert.True(t, IsViolation(err))
	assert.False(t, p.Executions[0].Completed, "closed plan must not change")

	err = p.MarkMissed("a")
	require.Error(t, err)
	assert.True(t, IsViolation(err))
	assert.False(t, p.Executions[0].Missed)
}

func TestAllCompleted(t *testing.T) {
	cases := []struct {
		name      string
		completed []bool
		want      bool
	}{
		{"empty plan", nil, false},
		{"all done", []bool{true, true}, true},
		{"partial", []bool{true, false}, false},
		{"none done", []bool{false}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := &DailyPlan{}
			for i, done := range tc.completed {
				p.Executions = append(p.Executions, TaskExecution{
					TaskID:    string(rune('a' + i)),
					Completed: done,
				})
			}
			assert.Equal(t, tc.want, p.AllCompleted())
		})
	}
}
