package store

import (
	"context"
	"database/sql"

	"cinegraph/backend/internal/domain"
	apperrors "cinegraph/backend/pkg/errors"
)

// CreateActor inserts a new actor and returns it with its assigned id.
func (s *Store) CreateActor(ctx context.Context, a domain.Actor) (domain.Actor, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO actors (name, bio) VALUES (?, ?)", a.Name, a.Bio)
	if err != nil {
		return domain.Actor{}, apperrors.NewStoreQueryFailed("create actor", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Actor{}, apperrors.NewStoreQueryFailed("create actor", err)
	}
	a.ID = id
	return a, nil
}

// GetActor returns the actor with the given id, or ErrNotFound.
func (s *Store) GetActor(ctx context.Context, id int64) (domain.Actor, error) {
	var a domain.Actor
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, bio FROM actors WHERE id = ?", id).
		Scan(&a.ID, &a.Name, &a.Bio)
	if err == sql.ErrNoRows {
		return domain.Actor{}, apperrors.NewNotFound("actor", id)
	}
	if err != nil {
		return domain.Actor{}, apperrors.NewStoreQueryFailed("get actor", err)
	}
	return a, nil
}

// ListActors returns all actors ordered by id.
func (s *Store) ListActors(ctx context.Context) ([]domain.Actor, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, bio FROM actors ORDER BY id")
	if err != nil {
		return nil, apperrors.NewStoreQueryFailed("list actors", err)
	}
	defer rows.Close()

	actors := []domain.Actor{}
	for rows.Next() {
		var a domain.Actor
		if err := rows.Scan(&a.ID, &a.Name, &a.Bio); err != nil {
			return nil, apperrors.NewStoreQueryFailed("list actors", err)
		}
		actors = append(actors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreQueryFailed("list actors", err)
	}
	return actors, nil
}

// UpdateActor overwrites an existing actor's fields and returns the updated
// record, or ErrNotFound if no row matched.
func (s *Store) UpdateActor(ctx context.Context, a domain.Actor) (domain.Actor, error) {
	res, err := s.db.ExecContext(ctx,
		"UPDATE actors SET name = ?, bio = ? WHERE id = ?", a.Name, a.Bio, a.ID)
	if err != nil {
		return domain.Actor{}, apperrors.NewStoreQueryFailed("update actor", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.Actor{}, apperrors.NewStoreQueryFailed("update actor", err)
	}
	if n == 0 {
		return domain.Actor{}, apperrors.NewNotFound("actor", a.ID)
	}
	return a, nil
}

// DeleteActor removes an actor by id. Deleting a missing actor is a no-op.
func (s *Store) DeleteActor(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM actors WHERE id = ?", id); err != nil {
		return apperrors.NewStoreQueryFailed("delete actor", err)
	}
	return nil
}

// MissingActors returns the subset of ids that do not exist in the store.
func (s *Store) MissingActors(ctx context.Context, ids []int64) ([]int64, error) {
	missing := []int64{}
	for _, id := range ids {
		var found int64
		err := s.db.QueryRowContext(ctx, "SELECT id FROM actors WHERE id = ?", id).Scan(&found)
		if err == sql.ErrNoRows {
			missing = append(missing, id)
			continue
		}
		if err != nil {
			return nil, apperrors.NewStoreQueryFailed("check actors", err)
		}
	}
	return missing, nil
}
