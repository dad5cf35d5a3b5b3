// Package scheduler drives the periodic transition of execution into truth.
// It carries no business logic: it only feeds (owner, date) pairs into the
// day-close and planning services on a cadence.
package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/strataapp/strata/internal/clock"
	"github.com/strataapp/strata/internal/repository"
	"github.com/strataapp/strata/internal/service"
)

type Sweeper struct {
	owners   repository.OwnerRepo
	dayClose service.DayCloseService
	plans    service.PlanService
	clk      clock.Clock
	logger   *slog.Logger
	interval time.Duration
}

func NewSweeper(
	owners repository.OwnerRepo,
	dayClose service.DayCloseService,
	plans service.PlanService,
	clk clock.Clock,
	logger *slog.Logger,
	interval time.Duration,
) *Sweeper {
	if logger == nil {
		logger = slog.Default()
	}
	if interval <= 0 {
		interval = time.Hour
	}
	return &Sweeper{
		owners:   owners,
		dayClose: dayClose,
		plans:    plans,
		clk:      clk,
		logger:   logger,
		interval: interval,
	}
}

// Run sweeps once immediately, then on every tick until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	if err := s.SweepOnce(ctx); err != nil {
		s.logger.ErrorContext(ctx, "sweep_failed", "error", err.Error())
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.SweepOnce(ctx); err != nil {
				s.logger.ErrorContext(ctx, "sweep_failed", "error", err.Error())
			}
		}
	}
}

// SweepOnce closes every owner's open plans from past days (catching up over
// multiple missed days) and materializes today. Per-owner failures are logged
// and do not stop the sweep.
func (s *Sweeper) SweepOnce(ctx context.Context) error {
	owners, err := s.owners.List(ctx)
	if err != nil {
		return err
	}

	for _, owner := range owners {
		zone, zerr := time.LoadLocation(owner.Timezone)
		if zerr != nil {
			zone = time.UTC
		}
		today := s.clk.Today(zone)

		closed, err := s.dayClose.CloseOpenBefore(ctx, owner.ID, today)
		if err != nil {
			s.logger.ErrorContext(ctx, "sweep_close_failed",
				"owner_id", owner.ID, "error", err.Error())
			continue
		}
		if closed > 0 {
			s.logger.InfoContext(ctx, "sweep_closed_days",
				"owner_id", owner.ID, "count", closed)
		}

		if _, err := s.plans.MaterializeDay(ctx, owner.ID, today); err != nil {
			// A violation here just means today is already behind this
			// owner's zone; anything else is worth logging too.
			if !errors.Is(ctx.Err(), context.Canceled) {
				s.logger.ErrorContext(ctx, "sweep_materialize_failed",
					"owner_id", owner.ID, "error", err.Error())
			}
		}
	}
	return nil
}
