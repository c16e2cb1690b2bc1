package recommend

import (
	"context"

	"go.uber.org/zap"

	"cinegraph/backend/internal/domain"
	apperrors "cinegraph/backend/pkg/errors"
	"cinegraph/backend/pkg/logger"
)

// MovieGetter is the slice of the primary store the resolver needs
type MovieGetter interface {
	GetMovie(ctx context.Context, id int64) (domain.Movie, error)
}

// Resolver fetches full movie records for ids produced by the engine
type Resolver struct {
	movies MovieGetter
	logger *zap.Logger
}

// NewResolver creates a resolver reading from the given store
func NewResolver(movies MovieGetter) *Resolver {
	return &Resolver{
		movies: movies,
		logger: logger.Get(),
	}
}

// Resolve returns movie records in exactly the order of movieIDs. Ids that
// exist in the graph index but not in the primary store are expected drift
// under the eventual-consistency write model; they are skipped without
// disturbing the relative order of the rest.
func (r *Resolver) Resolve(ctx context.Context, movieIDs []int64) ([]domain.Movie, error) {
	movies := make([]domain.Movie, 0, len(movieIDs))
	for _, id := range movieIDs {
		movie, err := r.movies.GetMovie(ctx, id)
		if err != nil {
			if apperrors.IsNotFound(err) {
				r.logger.Debug("Skipping drifted movie id missing from primary store",
					zap.Int64("movie_id", id))
				continue
			}
			return nil, err
		}
		movies = append(movies, movie)
	}
	return movies, nil
}

// Service composes the engine and resolver into the call the HTTP layer
// serves for GET /users/:id/recommendations.
type Service struct {
	engine   *Engine
	resolver *Resolver
}

// NewService wires an engine and a resolver together
func NewService(engine *Engine, resolver *Resolver) *Service {
	return &Service{engine: engine, resolver: resolver}
}

// RecommendMovies returns up to limit full movie records for the user,
// ordered by graph-index relevance.
func (s *Service) RecommendMovies(ctx context.Context, userID int64, limit int) ([]domain.Movie, error) {
	ids := s.engine.Recommend(ctx, userID, limit)
	return s.resolver.Resolve(ctx, ids)
}
