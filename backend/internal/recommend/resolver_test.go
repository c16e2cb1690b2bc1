package recommend

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinegraph/backend/internal/domain"
	apperrors "cinegraph/backend/pkg/errors"
)

// fakeMovieGetter resolves ids against a fixed map, treating absent ids as
// primary-store misses.
type fakeMovieGetter struct {
	movies map[int64]domain.Movie
	err    error
}

func (f *fakeMovieGetter) GetMovie(ctx context.Context, id int64) (domain.Movie, error) {
	if f.err != nil {
		return domain.Movie{}, f.err
	}
	m, ok := f.movies[id]
	if !ok {
		return domain.Movie{}, apperrors.NewNotFound("movie", id)
	}
	return m, nil
}

func TestResolver_PreservesOrder(t *testing.T) {
	getter := &fakeMovieGetter{movies: map[int64]domain.Movie{
		3: {ID: 3, Title: "Three"},
		7: {ID: 7, Title: "Seven"},
		9: {ID: 9, Title: "Nine"},
	}}
	resolver := NewResolver(getter)

	movies, err := resolver.Resolve(context.Background(), []int64{7, 3, 9})
	require.NoError(t, err)

	require.Len(t, movies, 3)
	assert.Equal(t, int64(7), movies[0].ID)
	assert.Equal(t, int64(3), movies[1].ID)
	assert.Equal(t, int64(9), movies[2].ID)
}

func TestResolver_SkipsDriftedIDs(t *testing.T) {
	// Movie 3 exists only in the graph index; the resolver drops it
	// without disturbing the order of the rest.
	getter := &fakeMovieGetter{movies: map[int64]domain.Movie{
		7: {ID: 7, Title: "Seven"},
		9: {ID: 9, Title: "Nine"},
	}}
	resolver := NewResolver(getter)

	movies, err := resolver.Resolve(context.Background(), []int64{7, 3, 9})
	require.NoError(t, err)

	require.Len(t, movies, 2)
	assert.Equal(t, int64(7), movies[0].ID)
	assert.Equal(t, int64(9), movies[1].ID)
}

func TestResolver_EmptyInput(t *testing.T) {
	resolver := NewResolver(&fakeMovieGetter{})

	movies, err := resolver.Resolve(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, movies)
}

func TestResolver_StoreErrorSurfaces(t *testing.T) {
	getter := &fakeMovieGetter{err: apperrors.NewStoreQueryFailed("get movie", errors.New("disk gone"))}
	resolver := NewResolver(getter)

	_, err := resolver.Resolve(context.Background(), []int64{1})
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeStore))
}

func TestService_ComposesEngineAndResolver(t *testing.T) {
	fake := &fakeTraverser{
		genre:     scored(2, 1),
		favorites: scored(5),
	}
	getter := &fakeMovieGetter{movies: map[int64]domain.Movie{
		1: {ID: 1, Title: "One"},
		2: {ID: 2, Title: "Two"},
		5: {ID: 5, Title: "Five"},
	}}
	svc := NewService(NewEngine(fake, 0), NewResolver(getter))

	movies, err := svc.RecommendMovies(context.Background(), 1, 10)
	require.NoError(t, err)

	require.Len(t, movies, 3)
	assert.Equal(t, "Two", movies[0].Title)
	assert.Equal(t, "One", movies[1].Title)
	assert.Equal(t, "Five", movies[2].Title)
}
