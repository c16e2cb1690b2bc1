package store

import (
	"context"
	"database/sql"

	"cinegraph/backend/internal/domain"
	apperrors "cinegraph/backend/pkg/errors"
)

// CreateUser inserts a new user and returns it with its assigned id.
func (s *Store) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO users (name, email, password) VALUES (?, ?, ?)",
		u.Name, u.Email, u.Password)
	if err != nil {
		return domain.User{}, apperrors.NewStoreQueryFailed("create user", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.User{}, apperrors.NewStoreQueryFailed("create user", err)
	}
	u.ID = id
	return u, nil
}

// GetUser returns the user with the given id, or ErrNotFound.
func (s *Store) GetUser(ctx context.Context, id int64) (domain.User, error) {
	var u domain.User
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, email, password FROM users WHERE id = ?", id).
		Scan(&u.ID, &u.Name, &u.Email, &u.Password)
	if err == sql.ErrNoRows {
		return domain.User{}, apperrors.NewNotFound("user", id)
	}
	if err != nil {
		return domain.User{}, apperrors.NewStoreQueryFailed("get user", err)
	}
	return u, nil
}

// ListUsers returns all users ordered by id.
func (s *Store) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, email, password FROM users ORDER BY id")
	if err != nil {
		return nil, apperrors.NewStoreQueryFailed("list users", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Password); err != nil {
			return nil, apperrors.NewStoreQueryFailed("list users", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreQueryFailed("list users", err)
	}
	return users, nil
}

// UpdateUser overwrites an existing user's fields and returns the updated
// record, or ErrNotFound if no row matched.
func (s *Store) UpdateUser(ctx context.Context, u domain.User) (domain.User, error) {
	res, err := s.db.ExecContext(ctx,
		"UPDATE users SET name = ?, email = ?, password = ? WHERE id = ?",
		u.Name, u.Email, u.Password, u.ID)
	if err != nil {
		return domain.User{}, apperrors.NewStoreQueryFailed("update user", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.User{}, apperrors.NewStoreQueryFailed("update user", err)
	}
	if n == 0 {
		return domain.User{}, apperrors.NewNotFound("user", u.ID)
	}
	return u, nil
}

// DeleteUser removes a user by id. Deleting a missing user is a no-op.
func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id); err != nil {
		return apperrors.NewStoreQueryFailed("delete user", err)
	}
	return nil
}
