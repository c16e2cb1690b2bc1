package propagate

import "cinegraph/backend/internal/domain"

// Fact is one committed primary-store mutation awaiting its graph mirror.
// Each fact maps to exactly one idempotent upsert against the graph index.
type Fact interface {
	// Name identifies the fact kind in logs and errors
	Name() string
}

// UserUpserted mirrors a created or updated user node
type UserUpserted struct {
	User domain.User
}

func (UserUpserted) Name() string { return "user_upserted" }

// MovieUpserted mirrors a created or updated movie node
type MovieUpserted struct {
	Movie domain.Movie
}

func (MovieUpserted) Name() string { return "movie_upserted" }

// ActorUpserted mirrors a created or updated actor node
type ActorUpserted struct {
	Actor domain.Actor
}

func (ActorUpserted) Name() string { return "actor_upserted" }

// LikeCreated mirrors a LIKES edge
type LikeCreated struct {
	UserID  int64
	MovieID int64
}

func (LikeCreated) Name() string { return "like_created" }

// RatingSet mirrors a RATED edge, overwriting the value property
type RatingSet struct {
	UserID  int64
	MovieID int64
	Value   int
}

func (RatingSet) Name() string { return "rating_set" }

// WatchCreated mirrors a WATCHED edge
type WatchCreated struct {
	UserID  int64
	MovieID int64
}

func (WatchCreated) Name() string { return "watch_created" }

// FavoriteCreated mirrors a FAVORITED edge
type FavoriteCreated struct {
	UserID  int64
	MovieID int64
}

func (FavoriteCreated) Name() string { return "favorite_created" }

// ActedInCreated mirrors an ACTED_IN edge
type ActedInCreated struct {
	ActorID int64
	MovieID int64
}

func (ActedInCreated) Name() string { return "acted_in_created" }
