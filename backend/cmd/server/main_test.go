package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinegraph/backend/internal/domain"
	"cinegraph/backend/internal/graph"
	"cinegraph/backend/internal/propagate"
	"cinegraph/backend/internal/recommend"
	"cinegraph/backend/internal/services"
	"cinegraph/backend/internal/store"
	"cinegraph/backend/pkg/logger"
)

// nopIndex is a graph index stub whose mirror writes always succeed
type nopIndex struct{}

func (nopIndex) UpsertUser(context.Context, domain.User) error { return nil }
func (nopIndex) UpsertMovie(context.Context, domain.Movie) error { return nil }
func (nopIndex) UpsertActor(context.Context, domain.Actor) error { return nil }
func (nopIndex) MergeLike(context.Context, int64, int64) error { return nil }
func (nopIndex) MergeRating(context.Context, int64, int64, int) error { return nil }
func (nopIndex) MergeWatch(context.Context, int64, int64) error { return nil }
func (nopIndex) MergeFavorite(context.Context, int64, int64) error { return nil }
func (nopIndex) MergeActedIn(context.Context, int64, int64) error { return nil }

// fixedTraverser serves a fixed genre-affinity ranking
type fixedTraverser struct {
	genre []graph.ScoredMovie
}

func (f fixedTraverser) GenreAffinity(ctx context.Context, userID int64, limit int) ([]graph.ScoredMovie, error) {
	return f.genre, nil
}

func (fixedTraverser) CastAffinity(ctx context.Context, userID int64, limit int) ([]graph.ScoredMovie, error) {
	return nil, nil
}

func (fixedTraverser) TopRated(ctx context.Context, userID int64, limit int) ([]graph.ScoredMovie, error) {
	return nil, nil
}

func (fixedTraverser) Favorites(ctx context.Context, userID int64, limit int) ([]graph.ScoredMovie, error) {
	return nil, nil
}

func newTestRouter(t *testing.T, traverser recommend.Traverser) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	primary, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { primary.Close() })

	coordinator := propagate.NewCoordinator(nopIndex{}, 0)
	engine := recommend.NewEngine(traverser, 0)
	recommender := recommend.NewService(engine, recommend.NewResolver(primary))

	deps := &handlers{
		users:        services.NewUserService(primary, coordinator),
		movies:       services.NewMovieService(primary, coordinator),
		actors:       services.NewActorService(primary, coordinator),
		likes:        services.NewLikeService(primary, coordinator),
		ratings:      services.NewRatingService(primary, coordinator),
		watches:      services.NewWatchService(primary, coordinator),
		favorites:    services.NewFavoriteService(primary, coordinator),
		recommender:  recommender,
		defaultLimit: 10,
		logger:       logger.Get(),
	}

	router := gin.New()
	deps.register(router)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t, fixedTraverser{})

	w := doJSON(t, router, "GET", "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "ok", response["status"])
}

func TestCreateUser(t *testing.T) {
	router := newTestRouter(t, fixedTraverser{})

	w := doJSON(t, router, "POST", "/users", gin.H{
		"name":     "Alice Johnson",
		"email":    "alice@example.com",
		"password": "Passw0rd!",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	var user domain.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	assert.NotZero(t, user.ID)
	assert.Equal(t, "Alice Johnson", user.Name)
}

func TestCreateUser_MissingFields(t *testing.T) {
	router := newTestRouter(t, fixedTraverser{})

	w := doJSON(t, router, "POST", "/users", gin.H{"name": "No Email"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateRating_OutOfRange(t *testing.T) {
	router := newTestRouter(t, fixedTraverser{})

	w := doJSON(t, router, "POST", "/users", gin.H{"name": "A", "email": "a@x.com", "password": "p"})
	require.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(t, router, "POST", "/movies", gin.H{"title": "T", "description": "d", "year": 2020, "genre": "Drama"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, "POST", "/ratings", gin.H{"user_id": 1, "movie_id": 1, "rating": 6})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateLike_UnknownMovie(t *testing.T) {
	router := newTestRouter(t, fixedTraverser{})

	w := doJSON(t, router, "POST", "/users", gin.H{"name": "A", "email": "a@x.com", "password": "p"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, "POST", "/likes", gin.H{"user_id": 1, "movie_id": 999})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetMovie_NotFound(t *testing.T) {
	router := newTestRouter(t, fixedTraverser{})

	w := doJSON(t, router, "GET", "/movies/999", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecommendations_OrderedAndDriftSkipped(t *testing.T) {
	// The traverser ranks movie ids 2, 1, 99; 99 exists only in the
	// graph index and must be silently dropped.
	router := newTestRouter(t, fixedTraverser{genre: []graph.ScoredMovie{
		{MovieID: 2, Score: 3},
		{MovieID: 1, Score: 1},
		{MovieID: 99, Score: 1},
	}})

	w := doJSON(t, router, "POST", "/users", gin.H{"name": "A", "email": "a@x.com", "password": "p"})
	require.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(t, router, "POST", "/movies", gin.H{"title": "First", "description": "d", "year": 2019, "genre": "Drama"})
	require.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(t, router, "POST", "/movies", gin.H{"title": "Second", "description": "d", "year": 2021, "genre": "Drama"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, "GET", "/users/1/recommendations", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var movies []domain.Movie
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &movies))
	require.Len(t, movies, 2)
	assert.Equal(t, "Second", movies[0].Title)
	assert.Equal(t, "First", movies[1].Title)
}

func TestWatchLifecycle(t *testing.T) {
	router := newTestRouter(t, fixedTraverser{})

	w := doJSON(t, router, "POST", "/users", gin.H{"name": "A", "email": "a@x.com", "password": "p"})
	require.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(t, router, "POST", "/movies", gin.H{"title": "T", "description": "d", "year": 2020, "genre": "Drama"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, "POST", "/watches", gin.H{"user_id": 1, "movie_id": 1})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, "GET", "/watches", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var watches []domain.Watch
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &watches))
	require.Len(t, watches, 1)

	w = doJSON(t, router, "GET", "/watches/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, "DELETE", "/watches/1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, router, "GET", "/watches/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteFavorite(t *testing.T) {
	router := newTestRouter(t, fixedTraverser{})

	w := doJSON(t, router, "POST", "/users", gin.H{"name": "A", "email": "a@x.com", "password": "p"})
	require.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(t, router, "POST", "/movies", gin.H{"title": "T", "description": "d", "year": 2020, "genre": "Drama"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, "POST", "/favorites", gin.H{"user_id": 1, "movie_id": 1})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, "DELETE", "/favorites/1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, router, "GET", "/favorites", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var favorites []domain.Favorite
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &favorites))
	assert.Empty(t, favorites)
}

func TestDeleteRating(t *testing.T) {
	router := newTestRouter(t, fixedTraverser{})

	w := doJSON(t, router, "POST", "/users", gin.H{"name": "A", "email": "a@x.com", "password": "p"})
	require.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(t, router, "POST", "/movies", gin.H{"title": "T", "description": "d", "year": 2020, "genre": "Drama"})
	require.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(t, router, "POST", "/ratings", gin.H{"user_id": 1, "movie_id": 1, "rating": 4})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, "DELETE", "/ratings/1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, router, "GET", "/ratings/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateActor(t *testing.T) {
	router := newTestRouter(t, fixedTraverser{})

	w := doJSON(t, router, "POST", "/actors", gin.H{"name": "Maya Rossi", "bio": "Stage actor"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, "PUT", "/actors/1", gin.H{"name": "Maya Rossi", "bio": "Stage and screen actor"})
	require.Equal(t, http.StatusOK, w.Code)
	var actor domain.Actor
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &actor))
	assert.Equal(t, "Stage and screen actor", actor.Bio)

	w = doJSON(t, router, "PUT", "/actors/999", gin.H{"name": "Ghost", "bio": "missing"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecommendations_InvalidLimit(t *testing.T) {
	router := newTestRouter(t, fixedTraverser{})

	w := doJSON(t, router, "GET", "/users/1/recommendations?limit=zero", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
