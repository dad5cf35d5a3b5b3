// Package consumer holds the event consumers that derive meaning from closed
// facts: streaks, goal snapshots, and the audit trail. Every consumer is
// independently idempotent. Delivery is at-least-once and unordered across
// consumers, so each one gates on its own receipt and derives only from
// persisted source facts, never from another consumer's output.
package consumer

import (
	"context"
	"errors"

	"github.com/strataapp/strata/internal/clock"
	"github.com/strataapp/strata/internal/db"
	"github.com/strataapp/strata/internal/repository"
)

// claimReceipt inserts the receipt for (eventID, consumer) inside the given
// transaction. The insert happens before the derived-state write and in the
// same transaction, so either both land or neither does, and concurrent
// duplicate deliveries serialize on the receipt table's primary key.
//
// Returns applied=false when the receipt already exists: the event was
// processed (or is being processed by the transaction that won the race) and
// must be skipped without error.
func claimReceipt(ctx context.Context, tx db.DBTX, eventID, consumer string, clk clock.Clock) (applied bool, err error) {
	receipts := repository.NewSQLiteReceiptRepo(tx)
	if err := receipts.Create(ctx, eventID, consumer, clk.Now()); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
