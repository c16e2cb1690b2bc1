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

// LikeService manages like facts
type LikeService struct {
	store       *store.Store
	coordinator *propagate.Coordinator
	logger      *zap.Logger
}

// NewLikeService creates a like service
func NewLikeService(s *store.Store, c *propagate.Coordinator) *LikeService {
	return &LikeService{store: s, coordinator: c, logger: logger.Get()}
}

// Create records a like and mirrors the LIKES edge. Creating the same like
// twice returns the existing fact.
func (s *LikeService) Create(ctx context.Context, userID, movieID int64) (domain.Like, error) {
	created, err := s.store.CreateLike(ctx, userID, movieID)
	if err != nil {
		return domain.Like{}, err
	}
	_ = s.coordinator.Propagate(ctx, propagate.LikeCreated{UserID: created.UserID, MovieID: created.MovieID})
	return created, nil
}

// GetAll returns all likes
func (s *LikeService) GetAll(ctx context.Context) ([]domain.Like, error) {
	return s.store.ListLikes(ctx)
}

// GetByID returns a like by id
func (s *LikeService) GetByID(ctx context.Context, id int64) (domain.Like, error) {
	return s.store.GetLike(ctx, id)
}

// Delete removes a like from the primary store only
func (s *LikeService) Delete(ctx context.Context, id int64) error {
	return s.store.DeleteLike(ctx, id)
}

// RatingService manages rating facts
type RatingService struct {
	store       *store.Store
	coordinator *propagate.Coordinator
	logger      *zap.Logger
}

// NewRatingService creates a rating service
func NewRatingService(s *store.Store, c *propagate.Coordinator) *RatingService {
	return &RatingService{store: s, coordinator: c, logger: logger.Get()}
}

// Set validates and upserts a user's rating for a movie, then mirrors the
// RATED edge with the latest value.
func (s *RatingService) Set(ctx context.Context, userID, movieID int64, value int) (domain.Rating, error) {
	if !domain.ValidRating(value) {
		return domain.Rating{}, apperrors.NewRatingOutOfRange(value)
	}
	created, err := s.store.SetRating(ctx, userID, movieID, value)
	if err != nil {
		return domain.Rating{}, err
	}
	_ = s.coordinator.Propagate(ctx, propagate.RatingSet{
		UserID:  created.UserID,
		MovieID: created.MovieID,
		Value:   created.Value,
	})
	return created, nil
}

// GetAll returns all ratings
func (s *RatingService) GetAll(ctx context.Context) ([]domain.Rating, error) {
	return s.store.ListRatings(ctx)
}

// GetByID returns a rating by id
func (s *RatingService) GetByID(ctx context.Context, id int64) (domain.Rating, error) {
	return s.store.GetRating(ctx, id)
}

// UpdateValue overwrites an existing rating's value by rating id and
// re-mirrors the edge.
func (s *RatingService) UpdateValue(ctx context.Context, id int64, value int) (domain.Rating, error) {
	if !domain.ValidRating(value) {
		return domain.Rating{}, apperrors.NewRatingOutOfRange(value)
	}
	updated, err := s.store.UpdateRatingValue(ctx, id, value)
	if err != nil {
		return domain.Rating{}, err
	}
	_ = s.coordinator.Propagate(ctx, propagate.RatingSet{
		UserID:  updated.UserID,
		MovieID: updated.MovieID,
		Value:   updated.Value,
	})
	return updated, nil
}

// Delete removes a rating from the primary store only
func (s *RatingService) Delete(ctx context.Context, id int64) error {
	return s.store.DeleteRating(ctx, id)
}

// WatchService manages watch facts
type WatchService struct {
	store       *store.Store
	coordinator *propagate.Coordinator
	logger      *zap.Logger
}

// NewWatchService creates a watch service
func NewWatchService(s *store.Store, c *propagate.Coordinator) *WatchService {
	return &WatchService{store: s, coordinator: c, logger: logger.Get()}
}

// Create records a watch and mirrors the WATCHED edge
func (s *WatchService) Create(ctx context.Context, userID, movieID int64) (domain.Watch, error) {
	created, err := s.store.CreateWatch(ctx, userID, movieID)
	if err != nil {
		return domain.Watch{}, err
	}
	_ = s.coordinator.Propagate(ctx, propagate.WatchCreated{UserID: created.UserID, MovieID: created.MovieID})
	return created, nil
}

// GetAll returns all watches
func (s *WatchService) GetAll(ctx context.Context) ([]domain.Watch, error) {
	return s.store.ListWatches(ctx)
}

// GetByID returns a watch by id
func (s *WatchService) GetByID(ctx context.Context, id int64) (domain.Watch, error) {
	return s.store.GetWatch(ctx, id)
}

// Delete removes a watch from the primary store only
func (s *WatchService) Delete(ctx context.Context, id int64) error {
	return s.store.DeleteWatch(ctx, id)
}

// FavoriteService manages favorite facts
type FavoriteService struct {
	store       *store.Store
	coordinator *propagate.Coordinator
	logger      *zap.Logger
}

// NewFavoriteService creates a favorite service
func NewFavoriteService(s *store.Store, c *propagate.Coordinator) *FavoriteService {
	return &FavoriteService{store: s, coordinator: c, logger: logger.Get()}
}

// Create records a favorite and mirrors the FAVORITED edge
func (s *FavoriteService) Create(ctx context.Context, userID, movieID int64) (domain.Favorite, error) {
	created, err := s.store.CreateFavorite(ctx, userID, movieID)
	if err != nil {
		return domain.Favorite{}, err
	}
	_ = s.coordinator.Propagate(ctx, propagate.FavoriteCreated{UserID: created.UserID, MovieID: created.MovieID})
	return created, nil
}

// GetAll returns all favorites
func (s *FavoriteService) GetAll(ctx context.Context) ([]domain.Favorite, error) {
	return s.store.ListFavorites(ctx)
}

// GetByID returns a favorite by id
func (s *FavoriteService) GetByID(ctx context.Context, id int64) (domain.Favorite, error) {
	return s.store.GetFavorite(ctx, id)
}

// Delete removes a favorite from the primary store only
func (s *FavoriteService) Delete(ctx context.Context, id int64) error {
	return s.store.DeleteFavorite(ctx, id)
}
