package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinegraph/backend/internal/domain"
	"cinegraph/backend/internal/propagate"
	"cinegraph/backend/internal/store"
	apperrors "cinegraph/backend/pkg/errors"
)

// unreachableIndex simulates a graph index that is down: every mirror
// call fails. Primary-store writes must still succeed through it.
type unreachableIndex struct{}

var errDown = errors.New("connection refused")

func (unreachableIndex) UpsertUser(context.Context, domain.User) error { return errDown }
func (unreachableIndex) UpsertMovie(context.Context, domain.Movie) error { return errDown }
func (unreachableIndex) UpsertActor(context.Context, domain.Actor) error { return errDown }
func (unreachableIndex) MergeLike(context.Context, int64, int64) error { return errDown }
func (unreachableIndex) MergeRating(context.Context, int64, int64, int) error { return errDown }
func (unreachableIndex) MergeWatch(context.Context, int64, int64) error { return errDown }
func (unreachableIndex) MergeFavorite(context.Context, int64, int64) error { return errDown }
func (unreachableIndex) MergeActedIn(context.Context, int64, int64) error { return errDown }

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestWritesSucceedWithGraphIndexDown(t *testing.T) {
	s := openTestStore(t)
	coord := propagate.NewCoordinator(unreachableIndex{}, 0)
	ctx := context.Background()

	users := NewUserService(s, coord)
	movies := NewMovieService(s, coord)
	likes := NewLikeService(s, coord)
	ratings := NewRatingService(s, coord)

	user, err := users.Create(ctx, domain.User{Name: "Alice", Email: "a@example.com", Password: "x"})
	require.NoError(t, err)

	movie, err := movies.Create(ctx, domain.Movie{Title: "Quantum Drift", Description: "d", Year: 2021, Genre: "SciFi"}, nil)
	require.NoError(t, err)

	_, err = likes.Create(ctx, user.ID, movie.ID)
	require.NoError(t, err)

	rating, err := ratings.Set(ctx, user.ID, movie.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, rating.Value)

	// Everything landed in the primary store despite the dead mirror.
	got, err := s.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)
}

func TestRatingService_RejectsOutOfRangeBeforeWrite(t *testing.T) {
	s := openTestStore(t)
	coord := propagate.NewCoordinator(unreachableIndex{}, 0)
	ctx := context.Background()

	ratings := NewRatingService(s, coord)
	users := NewUserService(s, coord)
	movies := NewMovieService(s, coord)

	user, err := users.Create(ctx, domain.User{Name: "Bob", Email: "b@example.com", Password: "x"})
	require.NoError(t, err)
	movie, err := movies.Create(ctx, domain.Movie{Title: "Neon Horizon", Description: "d", Year: 2019, Genre: "Action"}, nil)
	require.NoError(t, err)

	_, err = ratings.Set(ctx, user.ID, movie.ID, 6)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	stored, err := s.ListRatings(ctx)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestMovieService_RejectsUnknownActors(t *testing.T) {
	s := openTestStore(t)
	coord := propagate.NewCoordinator(unreachableIndex{}, 0)
	ctx := context.Background()

	movies := NewMovieService(s, coord)
	actors := NewActorService(s, coord)

	actor, err := actors.Create(ctx, domain.Actor{Name: "Olivia Brown", Bio: "b"})
	require.NoError(t, err)

	_, err = movies.Create(ctx, domain.Movie{Title: "Crimson Tides", Description: "d", Year: 2016, Genre: "Action"},
		[]int64{actor.ID, 404})
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeReferential))

	var missing *apperrors.ErrActorsMissing
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []int64{404}, missing.ActorIDs)

	// The whole create was rejected before any write.
	stored, err := s.ListMovies(ctx)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestLikeService_IdempotentCreate(t *testing.T) {
	s := openTestStore(t)
	coord := propagate.NewCoordinator(unreachableIndex{}, 0)
	ctx := context.Background()

	users := NewUserService(s, coord)
	movies := NewMovieService(s, coord)
	likes := NewLikeService(s, coord)

	user, err := users.Create(ctx, domain.User{Name: "Carol", Email: "c@example.com", Password: "x"})
	require.NoError(t, err)
	movie, err := movies.Create(ctx, domain.Movie{Title: "Paper Lanterns", Description: "d", Year: 2022, Genre: "Drama"}, nil)
	require.NoError(t, err)

	first, err := likes.Create(ctx, user.ID, movie.ID)
	require.NoError(t, err)
	second, err := likes.Create(ctx, user.ID, movie.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}
