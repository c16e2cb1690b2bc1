package graph

import (
	"context"
	"fmt"

	"cinegraph/backend/internal/domain"
)

// Node upserts MERGE on id and then SET every mirrored property, so a
// repeated propagation overwrites stale values instead of duplicating the
// node.

// UpsertUser creates or updates a User node
func (r *Repository) UpsertUser(ctx context.Context, u domain.User) error {
	query := `
		MERGE (u:User {id: $id})
		SET u.name = $name, u.email = $email
	`
	err := r.write(ctx, query, map[string]interface{}{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert user node: %w", err)
	}
	return nil
}

// UpsertMovie creates or updates a Movie node
func (r *Repository) UpsertMovie(ctx context.Context, m domain.Movie) error {
	query := `
		MERGE (m:Movie {id: $id})
		SET m.title = $title, m.description = $description, m.year = $year, m.genre = $genre
	`
	err := r.write(ctx, query, map[string]interface{}{
		"id":          m.ID,
		"title":       m.Title,
		"description": m.Description,
		"year":        m.Year,
		"genre":       m.Genre,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert movie node: %w", err)
	}
	return nil
}

// UpsertActor creates or updates an Actor node
func (r *Repository) UpsertActor(ctx context.Context, a domain.Actor) error {
	query := `
		MERGE (a:Actor {id: $id})
		SET a.name = $name, a.bio = $bio
	`
	err := r.write(ctx, query, map[string]interface{}{
		"id":   a.ID,
		"name": a.Name,
		"bio":  a.Bio,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert actor node: %w", err)
	}
	return nil
}

// Edge upserts MERGE both endpoint nodes before the edge, so a fact can be
// mirrored even when an earlier node propagation was lost. Endpoint MERGEs
// run first within the single statement.

// MergeLike ensures a LIKES edge between a user and a movie
func (r *Repository) MergeLike(ctx context.Context, userID, movieID int64) error {
	query := `
		MERGE (u:User {id: $user_id})
		MERGE (m:Movie {id: $movie_id})
		MERGE (u)-[:LIKES]->(m)
	`
	err := r.write(ctx, query, map[string]interface{}{
		"user_id":  userID,
		"movie_id": movieID,
	})
	if err != nil {
		return fmt.Errorf("failed to merge LIKES edge: %w", err)
	}
	return nil
}

// MergeRating ensures a RATED edge between a user and a movie, always
// overwriting the value property with the latest write.
func (r *Repository) MergeRating(ctx context.Context, userID, movieID int64, value int) error {
	query := `
		MERGE (u:User {id: $user_id})
		MERGE (m:Movie {id: $movie_id})
		MERGE (u)-[r:RATED]->(m)
		SET r.value = $value
	`
	err := r.write(ctx, query, map[string]interface{}{
		"user_id":  userID,
		"movie_id": movieID,
		"value":    value,
	})
	if err != nil {
		return fmt.Errorf("failed to merge RATED edge: %w", err)
	}
	return nil
}

// MergeWatch ensures a WATCHED edge between a user and a movie
func (r *Repository) MergeWatch(ctx context.Context, userID, movieID int64) error {
	query := `
		MERGE (u:User {id: $user_id})
		MERGE (m:Movie {id: $movie_id})
		MERGE (u)-[:WATCHED]->(m)
	`
	err := r.write(ctx, query, map[string]interface{}{
		"user_id":  userID,
		"movie_id": movieID,
	})
	if err != nil {
		return fmt.Errorf("failed to merge WATCHED edge: %w", err)
	}
	return nil
}

// MergeFavorite ensures a FAVORITED edge between a user and a movie
func (r *Repository) MergeFavorite(ctx context.Context, userID, movieID int64) error {
	query := `
		MERGE (u:User {id: $user_id})
		MERGE (m:Movie {id: $movie_id})
		MERGE (u)-[:FAVORITED]->(m)
	`
	err := r.write(ctx, query, map[string]interface{}{
		"user_id":  userID,
		"movie_id": movieID,
	})
	if err != nil {
		return fmt.Errorf("failed to merge FAVORITED edge: %w", err)
	}
	return nil
}

// MergeActedIn ensures an ACTED_IN edge between an actor and a movie
func (r *Repository) MergeActedIn(ctx context.Context, actorID, movieID int64) error {
	query := `
		MERGE (a:Actor {id: $actor_id})
		MERGE (m:Movie {id: $movie_id})
		MERGE (a)-[:ACTED_IN]->(m)
	`
	err := r.write(ctx, query, map[string]interface{}{
		"actor_id": actorID,
		"movie_id": movieID,
	})
	if err != nil {
		return fmt.Errorf("failed to merge ACTED_IN edge: %w", err)
	}
	return nil
}
