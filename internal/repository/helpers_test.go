package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/strataapp/strata/internal/domain"
	"github.com/strataapp/strata/internal/testutil"
	"github.com/stretchr/testify/require"
)

func seedOwner(t *testing.T, database *sql.DB) *domain.Owner {
	t.Helper()
	owner := testutil.NewTestOwner("Alex")
	require.NoError(t, NewSQLiteOwnerRepo(database).Create(context.Background(), owner))
	return owner
}

func seedGoal(t *testing.T, database *sql.DB, ownerID string) *domain.Goal {
	t.Helper()
	goal := testutil.NewTestGoal(ownerID, "Read more")
	require.NoError(t, NewSQLiteGoalRepo(database).Create(context.Background(), goal))
	return goal
}
