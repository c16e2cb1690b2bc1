package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinegraph/backend/internal/domain"
	apperrors "cinegraph/backend/pkg/errors"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func seedUserAndMovie(t *testing.T, s *Store) (domain.User, domain.Movie) {
	t.Helper()
	ctx := context.Background()
	user, err := s.CreateUser(ctx, domain.User{Name: "Alice", Email: "alice@example.com", Password: "x"})
	require.NoError(t, err)
	movie, err := s.CreateMovie(ctx, domain.Movie{Title: "Quantum Drift", Description: "d", Year: 2021, Genre: "SciFi"})
	require.NoError(t, err)
	return user, movie
}

func TestStore_UserCRUD(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	created, err := s.CreateUser(ctx, domain.User{Name: "Alice", Email: "alice@example.com", Password: "x"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	got, err := s.GetUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)

	created.Name = "Alice J."
	updated, err := s.UpdateUser(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, "Alice J.", updated.Name)

	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)

	require.NoError(t, s.DeleteUser(ctx, created.ID))
	_, err = s.GetUser(ctx, created.ID)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestStore_GetMovie_NotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.GetMovie(context.Background(), 12345)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestStore_CreateLike_Idempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	user, movie := seedUserAndMovie(t, s)

	first, err := s.CreateLike(ctx, user.ID, movie.ID)
	require.NoError(t, err)
	second, err := s.CreateLike(ctx, user.ID, movie.ID)
	require.NoError(t, err)

	// Same logical fact, same row.
	assert.Equal(t, first.ID, second.ID)

	likes, err := s.ListLikes(ctx)
	require.NoError(t, err)
	assert.Len(t, likes, 1)
}

func TestStore_CreateLike_ReferentialFailure(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	user, _ := seedUserAndMovie(t, s)

	_, err := s.CreateLike(ctx, user.ID, 999)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))

	_, err = s.CreateLike(ctx, 999, 1)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestStore_SetRating_OverwritesValue(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	user, movie := seedUserAndMovie(t, s)

	first, err := s.SetRating(ctx, user.ID, movie.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, first.Value)

	second, err := s.SetRating(ctx, user.ID, movie.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, second.Value)
	assert.Equal(t, first.ID, second.ID)

	ratings, err := s.ListRatings(ctx)
	require.NoError(t, err)
	require.Len(t, ratings, 1)
	assert.Equal(t, 5, ratings[0].Value)
}

func TestStore_WatchAndFavorite_Idempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	user, movie := seedUserAndMovie(t, s)

	w1, err := s.CreateWatch(ctx, user.ID, movie.ID)
	require.NoError(t, err)
	w2, err := s.CreateWatch(ctx, user.ID, movie.ID)
	require.NoError(t, err)
	assert.Equal(t, w1.ID, w2.ID)

	f1, err := s.CreateFavorite(ctx, user.ID, movie.ID)
	require.NoError(t, err)
	f2, err := s.CreateFavorite(ctx, user.ID, movie.ID)
	require.NoError(t, err)
	assert.Equal(t, f1.ID, f2.ID)
}

func TestStore_MissingActors(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	actor, err := s.CreateActor(ctx, domain.Actor{Name: "Olivia Brown", Bio: "b"})
	require.NoError(t, err)

	missing, err := s.MissingActors(ctx, []int64{actor.ID, 404, 405})
	require.NoError(t, err)
	assert.Equal(t, []int64{404, 405}, missing)
}

func TestStore_AddMovieActor_Idempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	_, movie := seedUserAndMovie(t, s)

	actor, err := s.CreateActor(ctx, domain.Actor{Name: "Olivia Brown", Bio: "b"})
	require.NoError(t, err)

	require.NoError(t, s.AddMovieActor(ctx, movie.ID, actor.ID))
	require.NoError(t, s.AddMovieActor(ctx, movie.ID, actor.ID))
}
