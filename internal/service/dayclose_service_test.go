package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/strataapp/strata/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloseDay_PublishesOnce(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	owner := e.newOwner(t)

	_, err := e.Plans.MaterializeDay(ctx, owner.ID, testMonday)
	require.NoError(t, err)

	require.NoError(t, e.DayClose.CloseDay(ctx, owner.ID, testMonday))
	require.NoError(t, e.DayClose.CloseDay(ctx, owner.ID, testMonday), "second close is a no-op")

	closures := e.captured.dayClosed()
	require.Len(t, closures, 1, "closure fact is published exactly once")
	assert.Equal(t, testMonday, closures[0].Date)

	plan, err := e.Plans.GetDay(ctx, owner.ID, testMonday)
	require.NoError(t, err)
	assert.True(t, plan.Closed)
}

func TestCloseDay_MissingPlan(t *testing.T) {
	e := setup(t)
	owner := e.newOwner(t)

	err := e.DayClose.CloseDay(context.Background(), owner.ID, testMonday)
	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestCloseOpenBefore_CatchesUpOldestFirst(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	owner := e.newOwner(t)

	// Materialize three consecutive days by advancing the frozen clock.
	for i := 0; i < 3; i++ {
		_, err := e.Plans.MaterializeDay(ctx, owner.ID, testMonday.AddDate(0, 0, i))
		require.NoError(t, err)
		e.clk.Advance(24 * time.Hour)
	}

	// Clock is now on Thursday; everything before it is overdue.
	closed, err := e.DayClose.CloseOpenBefore(ctx, owner.ID, testMonday.AddDate(0, 0, 3))
	require.NoError(t, err)
	assert.Equal(t, 3, closed)

	closures := e.captured.dayClosed()
	require.Len(t, closures, 3)
	assert.Equal(t, testMonday, closures[0].Date, "oldest day closes first")
	assert.Equal(t, testMonday.AddDate(0, 0, 2), closures[2].Date)

	again, err := e.DayClose.CloseOpenBefore(ctx, owner.ID, testMonday.AddDate(0, 0, 3))
	require.NoError(t, err)
	assert.Zero(t, again, "already-closed days are skipped")
}
