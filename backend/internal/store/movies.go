package store

import (
	"context"
	"database/sql"

	"cinegraph/backend/internal/domain"
	apperrors "cinegraph/backend/pkg/errors"
)

// CreateMovie inserts a new movie and returns it with its assigned id.
func (s *Store) CreateMovie(ctx context.Context, m domain.Movie) (domain.Movie, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO movies (title, description, year, genre) VALUES (?, ?, ?, ?)",
		m.Title, m.Description, m.Year, m.Genre)
	if err != nil {
		return domain.Movie{}, apperrors.NewStoreQueryFailed("create movie", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Movie{}, apperrors.NewStoreQueryFailed("create movie", err)
	}
	m.ID = id
	return m, nil
}

// GetMovie returns the movie with the given id, or ErrNotFound.
func (s *Store) GetMovie(ctx context.Context, id int64) (domain.Movie, error) {
	var m domain.Movie
	err := s.db.QueryRowContext(ctx,
		"SELECT id, title, description, year, genre FROM movies WHERE id = ?", id).
		Scan(&m.ID, &m.Title, &m.Description, &m.Year, &m.Genre)
	if err == sql.ErrNoRows {
		return domain.Movie{}, apperrors.NewNotFound("movie", id)
	}
	if err != nil {
		return domain.Movie{}, apperrors.NewStoreQueryFailed("get movie", err)
	}
	return m, nil
}

// ListMovies returns all movies ordered by id.
func (s *Store) ListMovies(ctx context.Context) ([]domain.Movie, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, title, description, year, genre FROM movies ORDER BY id")
	if err != nil {
		return nil, apperrors.NewStoreQueryFailed("list movies", err)
	}
	defer rows.Close()

	movies := []domain.Movie{}
	for rows.Next() {
		var m domain.Movie
		if err := rows.Scan(&m.ID, &m.Title, &m.Description, &m.Year, &m.Genre); err != nil {
			return nil, apperrors.NewStoreQueryFailed("list movies", err)
		}
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreQueryFailed("list movies", err)
	}
	return movies, nil
}

// UpdateMovie overwrites an existing movie's fields and returns the updated
// record, or ErrNotFound if no row matched.
func (s *Store) UpdateMovie(ctx context.Context, m domain.Movie) (domain.Movie, error) {
	res, err := s.db.ExecContext(ctx,
		"UPDATE movies SET title = ?, description = ?, year = ?, genre = ? WHERE id = ?",
		m.Title, m.Description, m.Year, m.Genre, m.ID)
	if err != nil {
		return domain.Movie{}, apperrors.NewStoreQueryFailed("update movie", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.Movie{}, apperrors.NewStoreQueryFailed("update movie", err)
	}
	if n == 0 {
		return domain.Movie{}, apperrors.NewNotFound("movie", m.ID)
	}
	return m, nil
}

// DeleteMovie removes a movie by id. Deleting a missing movie is a no-op.
func (s *Store) DeleteMovie(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM movies WHERE id = ?", id); err != nil {
		return apperrors.NewStoreQueryFailed("delete movie", err)
	}
	return nil
}
