package consumer

import (
	"context"

	"github.com/strataapp/strata/internal/clock"
	"github.com/strataapp/strata/internal/db"
	"github.com/strataapp/strata/internal/domain"
	"github.com/strataapp/strata/internal/event"
	"github.com/strataapp/strata/internal/repository"
)

// AuditConsumer mirrors domain events into the audit trail for historical
// display. Payloads carry ids only; no metrics are computed here. The audit
// row reuses the event ID, so the mirror stays one-to-one.
type AuditConsumer struct {
	uow db.UnitOfWork
	clk clock.Clock
}

func NewAuditConsumer(uow db.UnitOfWork, clk clock.Clock) *AuditConsumer {
	return &AuditConsumer{uow: uow, clk: clk}
}

func (c *AuditConsumer) Name() string { return "audit" }

func (c *AuditConsumer) Consume(ctx context.Context, e event.Event) error {
	auditType, payload, ok := mirror(e)

	return c.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		applied, err := claimReceipt(ctx, tx, e.EventID(), c.Name(), c.clk)
		if err != nil || !applied {
			return err
		}
		// Receipt recorded even for unmirrored events, so redelivery of one
		// never re-enters the consumer.
		if !ok {
			return nil
		}

		audits := repository.NewSQLiteAuditRepo(tx)
		return audits.Append(ctx, &domain.AuditEvent{
			ID:         e.EventID(),
			OwnerID:    e.Owner(),
			Type:       auditType,
			Payload:    payload,
			OccurredAt: e.At(),
		})
	})
}

// mirror maps an event variant to its audit type and id-only payload.
func mirror(e event.Event) (domain.AuditType, map[string]string, bool) {
	switch ev := e.(type) {
	case event.TaskCreated:
		return domain.AuditTaskCreated, map[string]string{"task_id": ev.TaskID}, true
	case event.TaskCompleted:
		return domain.AuditTaskCompleted, map[string]string{
			"task_id": ev.TaskID,
			"date":    ev.Date.Format("2006-01-02"),
		}, true
	case event.DayClosed:
		return domain.AuditDayClosed, map[string]string{"date": ev.Date.Format("2006-01-02")}, true
	case event.WeeklyPlanUpdated:
		return domain.AuditWeeklyPlanEdit, map[string]string{"plan_id": ev.PlanID}, true
	case event.UserCreated:
		return domain.AuditUserCreated, map[string]string{}, true
	default:
		return "", nil, false
	}
}
