package store

import (
	"context"
	"database/sql"

	"cinegraph/backend/internal/domain"
	apperrors "cinegraph/backend/pkg/errors"
)

// checkPair verifies both endpoints of a fact exist before the insert, so
// referential failures surface as typed not-found errors rather than raw
// constraint violations.
func (s *Store) checkPair(ctx context.Context, userID, movieID int64) error {
	var found int64
	err := s.db.QueryRowContext(ctx, "SELECT id FROM users WHERE id = ?", userID).Scan(&found)
	if err == sql.ErrNoRows {
		return apperrors.NewNotFound("user", userID)
	}
	if err != nil {
		return apperrors.NewStoreQueryFailed("check user", err)
	}
	err = s.db.QueryRowContext(ctx, "SELECT id FROM movies WHERE id = ?", movieID).Scan(&found)
	if err == sql.ErrNoRows {
		return apperrors.NewNotFound("movie", movieID)
	}
	if err != nil {
		return apperrors.NewStoreQueryFailed("check movie", err)
	}
	return nil
}

// createPairFact inserts an idempotent (user, movie) fact into table and
// returns the id of the surviving row. Repeated creation for the same pair
// returns the existing row instead of a duplicate.
func (s *Store) createPairFact(ctx context.Context, table string, userID, movieID int64) (int64, error) {
	if err := s.checkPair(ctx, userID, movieID); err != nil {
		return 0, err
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO "+table+" (user_id, movie_id) VALUES (?, ?) ON CONFLICT (user_id, movie_id) DO NOTHING",
		userID, movieID)
	if err != nil {
		return 0, apperrors.NewStoreQueryFailed("create "+table, err)
	}

	var id int64
	err = s.db.QueryRowContext(ctx,
		"SELECT id FROM "+table+" WHERE user_id = ? AND movie_id = ?", userID, movieID).Scan(&id)
	if err != nil {
		return 0, apperrors.NewStoreQueryFailed("create "+table, err)
	}
	return id, nil
}

// CreateLike records that a user likes a movie. Idempotent per pair.
func (s *Store) CreateLike(ctx context.Context, userID, movieID int64) (domain.Like, error) {
	id, err := s.createPairFact(ctx, "likes", userID, movieID)
	if err != nil {
		return domain.Like{}, err
	}
	return domain.Like{ID: id, UserID: userID, MovieID: movieID}, nil
}

// GetLike returns the like with the given id, or ErrNotFound.
func (s *Store) GetLike(ctx context.Context, id int64) (domain.Like, error) {
	var l domain.Like
	err := s.db.QueryRowContext(ctx,
		"SELECT id, user_id, movie_id FROM likes WHERE id = ?", id).
		Scan(&l.ID, &l.UserID, &l.MovieID)
	if err == sql.ErrNoRows {
		return domain.Like{}, apperrors.NewNotFound("like", id)
	}
	if err != nil {
		return domain.Like{}, apperrors.NewStoreQueryFailed("get like", err)
	}
	return l, nil
}

// ListLikes returns all likes ordered by id.
func (s *Store) ListLikes(ctx context.Context) ([]domain.Like, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, user_id, movie_id FROM likes ORDER BY id")
	if err != nil {
		return nil, apperrors.NewStoreQueryFailed("list likes", err)
	}
	defer rows.Close()

	likes := []domain.Like{}
	for rows.Next() {
		var l domain.Like
		if err := rows.Scan(&l.ID, &l.UserID, &l.MovieID); err != nil {
			return nil, apperrors.NewStoreQueryFailed("list likes", err)
		}
		likes = append(likes, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreQueryFailed("list likes", err)
	}
	return likes, nil
}

// DeleteLike removes a like by id. The graph index is left untouched;
// delete propagation is out of scope.
func (s *Store) DeleteLike(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM likes WHERE id = ?", id); err != nil {
		return apperrors.NewStoreQueryFailed("delete like", err)
	}
	return nil
}

// SetRating upserts a user's rating for a movie, overwriting any previous
// value for the pair.
func (s *Store) SetRating(ctx context.Context, userID, movieID int64, value int) (domain.Rating, error) {
	if err := s.checkPair(ctx, userID, movieID); err != nil {
		return domain.Rating{}, err
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO ratings (user_id, movie_id, value) VALUES (?, ?, ?)
		 ON CONFLICT (user_id, movie_id) DO UPDATE SET value = excluded.value`,
		userID, movieID, value)
	if err != nil {
		return domain.Rating{}, apperrors.NewStoreQueryFailed("set rating", err)
	}

	var r domain.Rating
	err = s.db.QueryRowContext(ctx,
		"SELECT id, user_id, movie_id, value FROM ratings WHERE user_id = ? AND movie_id = ?",
		userID, movieID).Scan(&r.ID, &r.UserID, &r.MovieID, &r.Value)
	if err != nil {
		return domain.Rating{}, apperrors.NewStoreQueryFailed("set rating", err)
	}
	return r, nil
}

// GetRating returns the rating with the given id, or ErrNotFound.
func (s *Store) GetRating(ctx context.Context, id int64) (domain.Rating, error) {
	var r domain.Rating
	err := s.db.QueryRowContext(ctx,
		"SELECT id, user_id, movie_id, value FROM ratings WHERE id = ?", id).
		Scan(&r.ID, &r.UserID, &r.MovieID, &r.Value)
	if err == sql.ErrNoRows {
		return domain.Rating{}, apperrors.NewNotFound("rating", id)
	}
	if err != nil {
		return domain.Rating{}, apperrors.NewStoreQueryFailed("get rating", err)
	}
	return r, nil
}

// ListRatings returns all ratings ordered by id.
func (s *Store) ListRatings(ctx context.Context) ([]domain.Rating, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, user_id, movie_id, value FROM ratings ORDER BY id")
	if err != nil {
		return nil, apperrors.NewStoreQueryFailed("list ratings", err)
	}
	defer rows.Close()

	ratings := []domain.Rating{}
	for rows.Next() {
		var r domain.Rating
		if err := rows.Scan(&r.ID, &r.UserID, &r.MovieID, &r.Value); err != nil {
			return nil, apperrors.NewStoreQueryFailed("list ratings", err)
		}
		ratings = append(ratings, r)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreQueryFailed("list ratings", err)
	}
	return ratings, nil
}

// UpdateRatingValue overwrites the value of an existing rating by id and
// returns the updated record, or ErrNotFound if no row matched.
func (s *Store) UpdateRatingValue(ctx context.Context, id int64, value int) (domain.Rating, error) {
	res, err := s.db.ExecContext(ctx, "UPDATE ratings SET value = ? WHERE id = ?", value, id)
	if err != nil {
		return domain.Rating{}, apperrors.NewStoreQueryFailed("update rating", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.Rating{}, apperrors.NewStoreQueryFailed("update rating", err)
	}
	if n == 0 {
		return domain.Rating{}, apperrors.NewNotFound("rating", id)
	}
	return s.GetRating(ctx, id)
}

// DeleteRating removes a rating by id. The graph index keeps the last
// mirrored value; delete propagation is out of scope.
func (s *Store) DeleteRating(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM ratings WHERE id = ?", id); err != nil {
		return apperrors.NewStoreQueryFailed("delete rating", err)
	}
	return nil
}

// CreateWatch records that a user watched a movie. Idempotent per pair.
func (s *Store) CreateWatch(ctx context.Context, userID, movieID int64) (domain.Watch, error) {
	id, err := s.createPairFact(ctx, "watches", userID, movieID)
	if err != nil {
		return domain.Watch{}, err
	}
	return domain.Watch{ID: id, UserID: userID, MovieID: movieID}, nil
}

// GetWatch returns the watch with the given id, or ErrNotFound.
func (s *Store) GetWatch(ctx context.Context, id int64) (domain.Watch, error) {
	var w domain.Watch
	err := s.db.QueryRowContext(ctx,
		"SELECT id, user_id, movie_id FROM watches WHERE id = ?", id).
		Scan(&w.ID, &w.UserID, &w.MovieID)
	if err == sql.ErrNoRows {
		return domain.Watch{}, apperrors.NewNotFound("watch", id)
	}
	if err != nil {
		return domain.Watch{}, apperrors.NewStoreQueryFailed("get watch", err)
	}
	return w, nil
}

// ListWatches returns all watches ordered by id.
func (s *Store) ListWatches(ctx context.Context) ([]domain.Watch, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, user_id, movie_id FROM watches ORDER BY id")
	if err != nil {
		return nil, apperrors.NewStoreQueryFailed("list watches", err)
	}
	defer rows.Close()

	watches := []domain.Watch{}
	for rows.Next() {
		var w domain.Watch
		if err := rows.Scan(&w.ID, &w.UserID, &w.MovieID); err != nil {
			return nil, apperrors.NewStoreQueryFailed("list watches", err)
		}
		watches = append(watches, w)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreQueryFailed("list watches", err)
	}
	return watches, nil
}

// DeleteWatch removes a watch by id. The graph index is left untouched.
func (s *Store) DeleteWatch(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM watches WHERE id = ?", id); err != nil {
		return apperrors.NewStoreQueryFailed("delete watch", err)
	}
	return nil
}

// CreateFavorite records that a user favorited a movie. Idempotent per pair.
func (s *Store) CreateFavorite(ctx context.Context, userID, movieID int64) (domain.Favorite, error) {
	id, err := s.createPairFact(ctx, "favorites", userID, movieID)
	if err != nil {
		return domain.Favorite{}, err
	}
	return domain.Favorite{ID: id, UserID: userID, MovieID: movieID}, nil
}

// GetFavorite returns the favorite with the given id, or ErrNotFound.
func (s *Store) GetFavorite(ctx context.Context, id int64) (domain.Favorite, error) {
	var f domain.Favorite
	err := s.db.QueryRowContext(ctx,
		"SELECT id, user_id, movie_id FROM favorites WHERE id = ?", id).
		Scan(&f.ID, &f.UserID, &f.MovieID)
	if err == sql.ErrNoRows {
		return domain.Favorite{}, apperrors.NewNotFound("favorite", id)
	}
	if err != nil {
		return domain.Favorite{}, apperrors.NewStoreQueryFailed("get favorite", err)
	}
	return f, nil
}

// ListFavorites returns all favorites ordered by id.
func (s *Store) ListFavorites(ctx context.Context) ([]domain.Favorite, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, user_id, movie_id FROM favorites ORDER BY id")
	if err != nil {
		return nil, apperrors.NewStoreQueryFailed("list favorites", err)
	}
	defer rows.Close()

	favorites := []domain.Favorite{}
	for rows.Next() {
		var f domain.Favorite
		if err := rows.Scan(&f.ID, &f.UserID, &f.MovieID); err != nil {
			return nil, apperrors.NewStoreQueryFailed("list favorites", err)
		}
		favorites = append(favorites, f)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreQueryFailed("list favorites", err)
	}
	return favorites, nil
}

// DeleteFavorite removes a favorite by id. The graph index is left untouched.
func (s *Store) DeleteFavorite(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM favorites WHERE id = ?", id); err != nil {
		return apperrors.NewStoreQueryFailed("delete favorite", err)
	}
	return nil
}

// AddMovieActor links an actor to a movie's cast. Idempotent per pair.
func (s *Store) AddMovieActor(ctx context.Context, movieID, actorID int64) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO movie_actors (movie_id, actor_id) VALUES (?, ?) ON CONFLICT (movie_id, actor_id) DO NOTHING",
		movieID, actorID)
	if err != nil {
		return apperrors.NewStoreQueryFailed("add movie actor", err)
	}
	return nil
}
