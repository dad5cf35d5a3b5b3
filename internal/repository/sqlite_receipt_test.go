package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/strataapp/strata/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReceiptRepo_CreateThenExists(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteReceiptRepo(database)
	ctx := context.Background()
	now := time.Date(2025, 6, 16, 12, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, "evt-1", "streak", now))

	exists, err := repo.Exists(ctx, "evt-1", "streak")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists(ctx, "evt-1", "audit")
	require.NoError(t, err)
	assert.False(t, exists, "receipts are scoped per consumer")
}

func TestReceiptRepo_DuplicateInsert(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteReceiptRepo(database)
	ctx := context.Background()
	now := time.Date(2025, 6, 16, 12, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, "evt-1", "streak", now))

	err := repo.Create(ctx, "evt-1", "streak", now.Add(time.Minute))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicate))

	// Same event, different consumer is a fresh receipt.
	require.NoError(t, repo.Create(ctx, "evt-1", "audit", now))
}
