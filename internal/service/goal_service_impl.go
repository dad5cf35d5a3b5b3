package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/strataapp/strata/internal/clock"
	"github.com/strataapp/strata/internal/domain"
	"github.com/strataapp/strata/internal/repository"
)

type goalService struct {
	goals      repository.GoalRepo
	keyResults repository.KeyResultRepo
	clk        clock.Clock
}

func NewGoalService(goals repository.GoalRepo, keyResults repository.KeyResultRepo, clk clock.Clock) GoalService {
	return &goalService{goals: goals, keyResults: keyResults, clk: clk}
}

func (s *goalService) CreateGoal(ctx context.Context, g *domain.Goal) error {
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	now := s.clk.Now()
	g.Active = true
	g.CreatedAt = now
	g.UpdatedAt = now
	return s.goals.Create(ctx, g)
}

func (s *goalService) GetGoal(ctx context.Context, id string) (*domain.Goal, error) {
	return s.goals.GetByID(ctx, id)
}

func (s *goalService) ListGoals(ctx context.Context, ownerID string) ([]*domain.Goal, error) {
	return s.goals.ListByOwner(ctx, ownerID)
}

func (s *goalService) DeactivateGoal(ctx context.Context, id string) error {
	g, err := s.goals.GetByID(ctx, id)
	if err != nil {
		return err
	}
	g.Active = false
	g.UpdatedAt = s.clk.Now()
	return s.goals.Update(ctx, g)
}

func (s *goalService) AddKeyResult(ctx context.Context, k *domain.KeyResult) error {
	if k.ID == "" {
		k.ID = uuid.New().String()
	}
	if _, err := s.goals.GetByID(ctx, k.GoalID); err != nil {
		return err
	}
	now := s.clk.Now()
	k.CreatedAt = now
	k.UpdatedAt = now
	return s.keyResults.Create(ctx, k)
}

func (s *goalService) ListKeyResults(ctx context.Context, goalID string) ([]*domain.KeyResult, error) {
	return s.keyResults.ListByGoal(ctx, goalID)
}

func (s *goalService) UpdateProgress(ctx context.Context, keyResultID string, current float64) error {
	k, err := s.keyResults.GetByID(ctx, keyResultID)
	if err != nil {
		return err
	}
	k.Current = current
	k.UpdatedAt = s.clk.Now()
	return s.keyResults.Update(ctx, k)
}
