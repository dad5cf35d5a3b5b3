package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/strataapp/strata/internal/clock"
	"github.com/strataapp/strata/internal/domain"
	"github.com/strataapp/strata/internal/event"
	"github.com/strataapp/strata/internal/repository"
)

type ownerService struct {
	owners     repository.OwnerRepo
	dispatcher *event.Dispatcher
	clk        clock.Clock
}

func NewOwnerService(owners repository.OwnerRepo, dispatcher *event.Dispatcher, clk clock.Clock) OwnerService {
	return &ownerService{owners: owners, dispatcher: dispatcher, clk: clk}
}

func (s *ownerService) Register(ctx context.Context, o *domain.Owner) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	if o.Timezone == "" {
		o.Timezone = "UTC"
	}
	o.CreatedAt = s.clk.Now()

	if err := s.owners.Create(ctx, o); err != nil {
		return err
	}

	s.dispatcher.Publish(ctx, event.UserCreated{
		Base: event.Base{
			ID:         uuid.New().String(),
			OwnerID:    o.ID,
			OccurredAt: s.clk.Now(),
		},
	})
	return nil
}

func (s *ownerService) GetByID(ctx context.Context, id string) (*domain.Owner, error) {
	return s.owners.GetByID(ctx, id)
}

func (s *ownerService) List(ctx context.Context) ([]*domain.Owner, error) {
	return s.owners.List(ctx)
}
