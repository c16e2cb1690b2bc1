// Package propagate mirrors committed primary-store writes into the graph
// index. Propagation is best-effort: a failed mirror is reported as a
// warning-class error and the primary write stands, leaving the two stores
// eventually consistent rather than failing the user-facing request.
package propagate

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"cinegraph/backend/internal/domain"
	apperrors "cinegraph/backend/pkg/errors"
	"cinegraph/backend/pkg/logger"
)

// Index is the mutation surface of the graph index the coordinator writes
// to. *graph.Repository satisfies it.
type Index interface {
	UpsertUser(ctx context.Context, u domain.User) error
	UpsertMovie(ctx context.Context, m domain.Movie) error
	UpsertActor(ctx context.Context, a domain.Actor) error
	MergeLike(ctx context.Context, userID, movieID int64) error
	MergeRating(ctx context.Context, userID, movieID int64, value int) error
	MergeWatch(ctx context.Context, userID, movieID int64) error
	MergeFavorite(ctx context.Context, userID, movieID int64) error
	MergeActedIn(ctx context.Context, actorID, movieID int64) error
}

// Coordinator applies one idempotent graph upsert per committed fact
type Coordinator struct {
	index   Index
	timeout time.Duration
	logger  *zap.Logger
}

// NewCoordinator creates a coordinator writing to index with the given
// per-call timeout. A zero timeout disables the deadline.
func NewCoordinator(index Index, timeout time.Duration) *Coordinator {
	return &Coordinator{
		index:   index,
		timeout: timeout,
		logger:  logger.Get(),
	}
}

// Propagate mirrors a committed fact into the graph index. The caller must
// only invoke this after the corresponding primary-store write succeeded.
// A returned error is always *apperrors.ErrPropagationFailed: the mirror is
// stale but the primary write is never rolled back, and no retry happens.
func (c *Coordinator) Propagate(ctx context.Context, fact Fact) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var err error
	switch f := fact.(type) {
	case UserUpserted:
		err = c.index.UpsertUser(ctx, f.User)
	case MovieUpserted:
		err = c.index.UpsertMovie(ctx, f.Movie)
	case ActorUpserted:
		err = c.index.UpsertActor(ctx, f.Actor)
	case LikeCreated:
		err = c.index.MergeLike(ctx, f.UserID, f.MovieID)
	case RatingSet:
		err = c.index.MergeRating(ctx, f.UserID, f.MovieID, f.Value)
	case WatchCreated:
		err = c.index.MergeWatch(ctx, f.UserID, f.MovieID)
	case FavoriteCreated:
		err = c.index.MergeFavorite(ctx, f.UserID, f.MovieID)
	case ActedInCreated:
		err = c.index.MergeActedIn(ctx, f.ActorID, f.MovieID)
	default:
		err = fmt.Errorf("unknown fact type %T", fact)
	}

	if err != nil {
		c.logger.Warn("Graph propagation failed, primary write stands",
			zap.String("fact", fact.Name()),
			zap.Error(err),
		)
		return apperrors.NewPropagationFailed(fact.Name(), err)
	}
	return nil
}
