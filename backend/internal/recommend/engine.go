// Package recommend turns a user's interaction history into a ranked movie
// list. The engine reads only the graph index; the resolver reads only the
// primary store. Graph outages degrade recommendations to empty results
// instead of failing the request.
package recommend

import (
	"context"
	"time"

	"go.uber.org/zap"

	"cinegraph/backend/internal/graph"
	"cinegraph/backend/pkg/logger"
)

// DefaultLimit is used when a caller passes a non-positive limit
const DefaultLimit = 10

// Traverser is the read surface of the graph index the engine consumes.
// Each method corresponds to one traversal strategy and returns candidates
// already ordered by score with deterministic tie-breaks.
type Traverser interface {
	GenreAffinity(ctx context.Context, userID int64, limit int) ([]graph.ScoredMovie, error)
	CastAffinity(ctx context.Context, userID int64, limit int) ([]graph.ScoredMovie, error)
	TopRated(ctx context.Context, userID int64, limit int) ([]graph.ScoredMovie, error)
	Favorites(ctx context.Context, userID int64, limit int) ([]graph.ScoredMovie, error)
}

// Engine runs the four traversal strategies in strict priority order
type Engine struct {
	traverser Traverser
	timeout   time.Duration
	logger    *zap.Logger
}

// NewEngine creates an engine reading from traverser with the given
// per-call timeout. A zero timeout disables the deadline.
func NewEngine(traverser Traverser, timeout time.Duration) *Engine {
	return &Engine{
		traverser: traverser,
		timeout:   timeout,
		logger:    logger.Get(),
	}
}

// strategy pairs a name with its traversal call for the fixed-order loop
type strategy struct {
	name string
	// overfetch widens the candidate window for strategies whose output
	// thins out during dedup against earlier strategies
	overfetch int
	run       func(ctx context.Context, userID int64, limit int) ([]graph.ScoredMovie, error)
}

// Recommend returns up to limit distinct movie ids for the user, ordered
// by strategy priority and within each strategy by its score. Strategies
// run in the fixed order genre, cast, top-rated, favorites; a later
// strategy never reorders ids placed by an earlier one. Repeated calls
// over unchanged data return identical output.
//
// If the graph index is unreachable the engine logs a warning and returns
// an empty slice: recommendations degrade, requests never fail.
func (e *Engine) Recommend(ctx context.Context, userID int64, limit int) []int64 {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	strategies := []strategy{
		{name: "genre_affinity", overfetch: 2, run: e.traverser.GenreAffinity},
		{name: "cast_affinity", overfetch: 2, run: e.traverser.CastAffinity},
		{name: "top_rated", overfetch: 1, run: e.traverser.TopRated},
		{name: "favorites", overfetch: 1, run: e.traverser.Favorites},
	}

	// The seen set is local to this call; no process-wide dedup state.
	recommended := []int64{}
	seen := make(map[int64]struct{})

	for _, s := range strategies {
		if len(recommended) >= limit {
			break
		}

		candidates, err := s.run(ctx, userID, limit*s.overfetch)
		if err != nil {
			e.logger.Warn("Traversal strategy unavailable, returning degraded recommendations",
				zap.String("strategy", s.name),
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
			return []int64{}
		}

		for _, c := range candidates {
			if _, ok := seen[c.MovieID]; ok {
				continue
			}
			recommended = append(recommended, c.MovieID)
			seen[c.MovieID] = struct{}{}
			if len(recommended) >= limit {
				break
			}
		}
	}

	return recommended
}
