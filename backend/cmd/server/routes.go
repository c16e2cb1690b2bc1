package main

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cinegraph/backend/internal/domain"
	"cinegraph/backend/internal/recommend"
	"cinegraph/backend/internal/services"
	apperrors "cinegraph/backend/pkg/errors"
)

type handlers struct {
	users        *services.UserService
	movies       *services.MovieService
	actors       *services.ActorService
	likes        *services.LikeService
	ratings      *services.RatingService
	watches      *services.WatchService
	favorites    *services.FavoriteService
	recommender  *recommend.Service
	defaultLimit int
	logger       *zap.Logger
}

func (h *handlers) register(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/users", h.listUsers)
	router.POST("/users", h.createUser)
	router.GET("/users/:id", h.getUser)
	router.PUT("/users/:id", h.updateUser)
	router.DELETE("/users/:id", h.deleteUser)
	router.GET("/users/:id/recommendations", h.recommendations)

	router.GET("/movies", h.listMovies)
	router.POST("/movies", h.createMovie)
	router.GET("/movies/:id", h.getMovie)
	router.PUT("/movies/:id", h.updateMovie)
	router.DELETE("/movies/:id", h.deleteMovie)

	router.GET("/actors", h.listActors)
	router.POST("/actors", h.createActor)
	router.GET("/actors/:id", h.getActor)
	router.PUT("/actors/:id", h.updateActor)
	router.DELETE("/actors/:id", h.deleteActor)

	router.GET("/likes", h.listLikes)
	router.POST("/likes", h.createLike)
	router.GET("/likes/:id", h.getLike)
	router.DELETE("/likes/:id", h.deleteLike)

	router.GET("/ratings", h.listRatings)
	router.POST("/ratings", h.createRating)
	router.GET("/ratings/:id", h.getRating)
	router.PUT("/ratings/:id", h.updateRating)
	router.DELETE("/ratings/:id", h.deleteRating)

	router.GET("/watches", h.listWatches)
	router.POST("/watches", h.createWatch)
	router.GET("/watches/:id", h.getWatch)
	router.DELETE("/watches/:id", h.deleteWatch)

	router.GET("/favorites", h.listFavorites)
	router.POST("/favorites", h.createFavorite)
	router.GET("/favorites/:id", h.getFavorite)
	router.DELETE("/favorites/:id", h.deleteFavorite)
}

// pathID parses the :id path parameter. Returns false after writing a 400
// response when the id is not an integer.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// respondError maps the error taxonomy onto HTTP statuses. Validation and
// referential failures are caller mistakes; everything else is a 500.
func (h *handlers) respondError(c *gin.Context, err error) {
	switch {
	case apperrors.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case apperrors.IsErrorType(err, apperrors.ErrorTypeReferential):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error("Request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// respondLookup is respondError for GET-by-id routes, where a referential
// miss is a 404 rather than a bad request.
func (h *handlers) respondLookup(c *gin.Context, err error) {
	if apperrors.IsNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	h.respondError(c, err)
}

// Users

func (h *handlers) listUsers(c *gin.Context) {
	users, err := h.users.GetAll(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *handlers) createUser(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Create(c.Request.Context(), domain.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *handlers) getUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	user, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondLookup(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *handlers) updateUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Update(c.Request.Context(), domain.User{
		ID:       id,
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.respondLookup(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *handlers) deleteUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) recommendations(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	limit := h.defaultLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	movies, err := h.recommender.RecommendMovies(c.Request.Context(), id, limit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, movies)
}

// Movies

func (h *handlers) listMovies(c *gin.Context) {
	movies, err := h.movies.GetAll(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, movies)
}

func (h *handlers) createMovie(c *gin.Context) {
	var req struct {
		Title       string  `json:"title" binding:"required"`
		Description string  `json:"description" binding:"required"`
		Year        int     `json:"year" binding:"required"`
		Genre       string  `json:"genre" binding:"required"`
		ActorIDs    []int64 `json:"actor_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	movie, err := h.movies.Create(c.Request.Context(), domain.Movie{
		Title:       req.Title,
		Description: req.Description,
		Year:        req.Year,
		Genre:       req.Genre,
	}, req.ActorIDs)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, movie)
}

func (h *handlers) getMovie(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	movie, err := h.movies.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondLookup(c, err)
		return
	}
	c.JSON(http.StatusOK, movie)
}

func (h *handlers) updateMovie(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description" binding:"required"`
		Year        int    `json:"year" binding:"required"`
		Genre       string `json:"genre" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	movie, err := h.movies.Update(c.Request.Context(), domain.Movie{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Year:        req.Year,
		Genre:       req.Genre,
	})
	if err != nil {
		h.respondLookup(c, err)
		return
	}
	c.JSON(http.StatusOK, movie)
}

func (h *handlers) deleteMovie(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.movies.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Actors

func (h *handlers) listActors(c *gin.Context) {
	actors, err := h.actors.GetAll(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, actors)
}

func (h *handlers) createActor(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
		Bio  string `json:"bio" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor, err := h.actors.Create(c.Request.Context(), domain.Actor{Name: req.Name, Bio: req.Bio})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, actor)
}

func (h *handlers) getActor(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	actor, err := h.actors.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondLookup(c, err)
		return
	}
	c.JSON(http.StatusOK, actor)
}

func (h *handlers) updateActor(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req struct {
		Name string `json:"name" binding:"required"`
		Bio  string `json:"bio" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor, err := h.actors.Update(c.Request.Context(), domain.Actor{ID: id, Name: req.Name, Bio: req.Bio})
	if err != nil {
		h.respondLookup(c, err)
		return
	}
	c.JSON(http.StatusOK, actor)
}

func (h *handlers) deleteActor(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.actors.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Likes

func (h *handlers) listLikes(c *gin.Context) {
	likes, err := h.likes.GetAll(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, likes)
}

func (h *handlers) createLike(c *gin.Context) {
	var req struct {
		UserID  int64 `json:"user_id" binding:"required"`
		MovieID int64 `json:"movie_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	like, err := h.likes.Create(c.Request.Context(), req.UserID, req.MovieID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, like)
}

func (h *handlers) getLike(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	like, err := h.likes.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondLookup(c, err)
		return
	}
	c.JSON(http.StatusOK, like)
}

func (h *handlers) deleteLike(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.likes.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Ratings

func (h *handlers) listRatings(c *gin.Context) {
	ratings, err := h.ratings.GetAll(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ratings)
}

func (h *handlers) createRating(c *gin.Context) {
	var req struct {
		UserID  int64 `json:"user_id" binding:"required"`
		MovieID int64 `json:"movie_id" binding:"required"`
		Rating  int   `json:"rating" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rating, err := h.ratings.Set(c.Request.Context(), req.UserID, req.MovieID, req.Rating)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rating)
}

func (h *handlers) getRating(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	rating, err := h.ratings.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondLookup(c, err)
		return
	}
	c.JSON(http.StatusOK, rating)
}

func (h *handlers) updateRating(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req struct {
		Rating int `json:"rating" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rating, err := h.ratings.UpdateValue(c.Request.Context(), id, req.Rating)
	if err != nil {
		h.respondLookup(c, err)
		return
	}
	c.JSON(http.StatusOK, rating)
}

func (h *handlers) deleteRating(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.ratings.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Watches and favorites

func (h *handlers) listWatches(c *gin.Context) {
	watches, err := h.watches.GetAll(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, watches)
}

func (h *handlers) createWatch(c *gin.Context) {
	var req struct {
		UserID  int64 `json:"user_id" binding:"required"`
		MovieID int64 `json:"movie_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	watch, err := h.watches.Create(c.Request.Context(), req.UserID, req.MovieID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, watch)
}

func (h *handlers) getWatch(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	watch, err := h.watches.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondLookup(c, err)
		return
	}
	c.JSON(http.StatusOK, watch)
}

func (h *handlers) deleteWatch(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.watches.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) listFavorites(c *gin.Context) {
	favorites, err := h.favorites.GetAll(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, favorites)
}

func (h *handlers) createFavorite(c *gin.Context) {
	var req struct {
		UserID  int64 `json:"user_id" binding:"required"`
		MovieID int64 `json:"movie_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	favorite, err := h.favorites.Create(c.Request.Context(), req.UserID, req.MovieID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, favorite)
}

func (h *handlers) getFavorite(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	favorite, err := h.favorites.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondLookup(c, err)
		return
	}
	c.JSON(http.StatusOK, favorite)
}

func (h *handlers) deleteFavorite(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.favorites.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
