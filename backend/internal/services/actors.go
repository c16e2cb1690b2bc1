package services

import (
	"context"

	"go.uber.org/zap"

	"cinegraph/backend/internal/domain"
	"cinegraph/backend/internal/propagate"
	"cinegraph/backend/internal/store"
	"cinegraph/backend/pkg/logger"
)

// ActorService manages actors
type ActorService struct {
	store       *store.Store
	coordinator *propagate.Coordinator
	logger      *zap.Logger
}

// NewActorService creates an actor service
func NewActorService(s *store.Store, c *propagate.Coordinator) *ActorService {
	return &ActorService{store: s, coordinator: c, logger: logger.Get()}
}

// Create persists a new actor and mirrors the node
func (s *ActorService) Create(ctx context.Context, a domain.Actor) (domain.Actor, error) {
	created, err := s.store.CreateActor(ctx, a)
	if err != nil {
		return domain.Actor{}, err
	}
	_ = s.coordinator.Propagate(ctx, propagate.ActorUpserted{Actor: created})
	return created, nil
}

// GetAll returns all actors
func (s *ActorService) GetAll(ctx context.Context) ([]domain.Actor, error) {
	return s.store.ListActors(ctx)
}

// GetByID returns an actor by id
func (s *ActorService) GetByID(ctx context.Context, id int64) (domain.Actor, error) {
	return s.store.GetActor(ctx, id)
}

// Update overwrites an existing actor and re-mirrors the node
func (s *ActorService) Update(ctx context.Context, a domain.Actor) (domain.Actor, error) {
	updated, err := s.store.UpdateActor(ctx, a)
	if err != nil {
		return domain.Actor{}, err
	}
	_ = s.coordinator.Propagate(ctx, propagate.ActorUpserted{Actor: updated})
	return updated, nil
}

// Delete removes an actor from the primary store only; delete propagation to
// the graph index is out of scope.
func (s *ActorService) Delete(ctx context.Context, id int64) error {
	return s.store.DeleteActor(ctx, id)
}
