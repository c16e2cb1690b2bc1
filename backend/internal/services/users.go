// Package services holds the entity and fact managers. Every create or
// update follows the same discipline: validate, commit to the primary
// store, then propagate the committed fact to the graph index. Propagation
// failures are logged and swallowed so user-facing writes never depend on
// graph availability.
package services

import (
	"context"

	"go.uber.org/zap"

	"cinegraph/backend/internal/domain"
	"cinegraph/backend/internal/propagate"
	"cinegraph/backend/internal/store"
	"cinegraph/backend/pkg/logger"
)

// UserService manages users in the primary store and mirrors them to the
// graph index.
type UserService struct {
	store       *store.Store
	coordinator *propagate.Coordinator
	logger      *zap.Logger
}

// NewUserService creates a user service
func NewUserService(s *store.Store, c *propagate.Coordinator) *UserService {
	return &UserService{store: s, coordinator: c, logger: logger.Get()}
}

// Create persists a new user and mirrors the node
func (s *UserService) Create(ctx context.Context, u domain.User) (domain.User, error) {
	created, err := s.store.CreateUser(ctx, u)
	if err != nil {
		return domain.User{}, err
	}
	// Mirror failure is non-fatal; the coordinator already logged it.
	_ = s.coordinator.Propagate(ctx, propagate.UserUpserted{User: created})
	return created, nil
}

// GetAll returns all users
func (s *UserService) GetAll(ctx context.Context) ([]domain.User, error) {
	return s.store.ListUsers(ctx)
}

// GetByID returns a user by id
func (s *UserService) GetByID(ctx context.Context, id int64) (domain.User, error) {
	return s.store.GetUser(ctx, id)
}

// Update overwrites an existing user and re-mirrors the node
func (s *UserService) Update(ctx context.Context, u domain.User) (domain.User, error) {
	updated, err := s.store.UpdateUser(ctx, u)
	if err != nil {
		return domain.User{}, err
	}
	_ = s.coordinator.Propagate(ctx, propagate.UserUpserted{User: updated})
	return updated, nil
}

// Delete removes a user from the primary store only; delete propagation to
// the graph index is out of scope.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	return s.store.DeleteUser(ctx, id)
}
