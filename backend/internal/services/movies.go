package services

import (
	"context"

	"go.uber.org/zap"

	"cinegraph/backend/internal/domain"
	"cinegraph/backend/internal/propagate"
	"cinegraph/backend/internal/store"
	apperrors "cinegraph/backend/pkg/errors"
	"cinegraph/backend/pkg/logger"
)

// MovieService manages movies and their cast links
type MovieService struct {
	store       *store.Store
	coordinator *propagate.Coordinator
	logger      *zap.Logger
}

// NewMovieService creates a movie service
func NewMovieService(s *store.Store, c *propagate.Coordinator) *MovieService {
	return &MovieService{store: s, coordinator: c, logger: logger.Get()}
}

// Create persists a new movie, mirrors the node, and links the given cast.
// All actorIDs must already exist; unknown ids reject the whole create
// before any write.
func (s *MovieService) Create(ctx context.Context, m domain.Movie, actorIDs []int64) (domain.Movie, error) {
	if len(actorIDs) > 0 {
		missing, err := s.store.MissingActors(ctx, actorIDs)
		if err != nil {
			return domain.Movie{}, err
		}
		if len(missing) > 0 {
			return domain.Movie{}, apperrors.NewActorsMissing(missing)
		}
	}

	created, err := s.store.CreateMovie(ctx, m)
	if err != nil {
		return domain.Movie{}, err
	}
	_ = s.coordinator.Propagate(ctx, propagate.MovieUpserted{Movie: created})

	for _, actorID := range actorIDs {
		if err := s.store.AddMovieActor(ctx, created.ID, actorID); err != nil {
			return domain.Movie{}, err
		}
		_ = s.coordinator.Propagate(ctx, propagate.ActedInCreated{ActorID: actorID, MovieID: created.ID})
	}

	return created, nil
}

// GetAll returns all movies
func (s *MovieService) GetAll(ctx context.Context) ([]domain.Movie, error) {
	return s.store.ListMovies(ctx)
}

// GetByID returns a movie by id
func (s *MovieService) GetByID(ctx context.Context, id int64) (domain.Movie, error) {
	return s.store.GetMovie(ctx, id)
}

// Update overwrites an existing movie and re-mirrors the node
func (s *MovieService) Update(ctx context.Context, m domain.Movie) (domain.Movie, error) {
	updated, err := s.store.UpdateMovie(ctx, m)
	if err != nil {
		return domain.Movie{}, err
	}
	_ = s.coordinator.Propagate(ctx, propagate.MovieUpserted{Movie: updated})
	return updated, nil
}

// Delete removes a movie from the primary store only
func (s *MovieService) Delete(ctx context.Context, id int64) error {
	return s.store.DeleteMovie(ctx, id)
}
