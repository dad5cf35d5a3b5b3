package service

import (
	"context"
	"errors"

	"github.com/strataapp/strata/internal/domain"
	"github.com/strataapp/strata/internal/repository"
)

type reviewService struct {
	streaks   repository.StreakRepo
	snapshots repository.SnapshotRepo
	audits    repository.AuditRepo
}

func NewReviewService(streaks repository.StreakRepo, snapshots repository.SnapshotRepo, audits repository.AuditRepo) ReviewService {
	return &reviewService{streaks: streaks, snapshots: snapshots, audits: audits}
}

// GetStreak returns the owner's streak, zero-valued when no closed day has
// fed the streak consumer yet.
func (s *reviewService) GetStreak(ctx context.Context, ownerID string) (*domain.StreakState, error) {
	state, err := s.streaks.Get(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &domain.StreakState{OwnerID: ownerID}, nil
		}
		return nil, err
	}
	return state, nil
}

func (s *reviewService) ListSnapshots(ctx context.Context, goalID string) ([]*domain.GoalSnapshot, error) {
	return s.snapshots.ListByGoal(ctx, goalID)
}

func (s *reviewService) ListAudit(ctx context.Context, ownerID string, limit int) ([]*domain.AuditEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.audits.ListByOwner(ctx, ownerID, limit)
}
