package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// ScoredMovie is one traversal candidate: a movie id with its strategy
// score. Candidates arrive already ordered by the query.
type ScoredMovie struct {
	MovieID int64
	Score   float64
}

// GenreAffinity returns movies sharing a genre with the user's liked
// movies, scored by how many distinct liked movies share that genre.
// Excludes movies the user already likes or watched. Ties break on
// ascending movie id so output is stable across calls.
func (r *Repository) GenreAffinity(ctx context.Context, userID int64, limit int) ([]ScoredMovie, error) {
	query := `
		MATCH (u:User {id: $user_id})-[:LIKES]->(liked:Movie)
		MATCH (rec:Movie)
		WHERE rec.genre = liked.genre
		  AND NOT (u)-[:LIKES]->(rec)
		  AND NOT (u)-[:WATCHED]->(rec)
		WITH rec.id AS movie_id, COUNT(DISTINCT liked) AS score
		ORDER BY score DESC, movie_id ASC
		RETURN movie_id, score
		LIMIT $limit
	`
	return r.traverse(ctx, "genre affinity", query, map[string]interface{}{
		"user_id": userID,
		"limit":   limit,
	})
}

// CastAffinity returns movies sharing at least one actor with the user's
// liked movies, scored by the number of distinct shared actors. Excludes
// movies the user already likes or watched.
func (r *Repository) CastAffinity(ctx context.Context, userID int64, limit int) ([]ScoredMovie, error) {
	query := `
		MATCH (u:User {id: $user_id})-[:LIKES]->(liked:Movie)<-[:ACTED_IN]-(a:Actor)-[:ACTED_IN]->(rec:Movie)
		WHERE NOT (u)-[:LIKES]->(rec)
		  AND NOT (u)-[:WATCHED]->(rec)
		WITH rec.id AS movie_id, COUNT(DISTINCT a) AS score
		ORDER BY score DESC, movie_id ASC
		RETURN movie_id, score
		LIMIT $limit
	`
	return r.traverse(ctx, "cast affinity", query, map[string]interface{}{
		"user_id": userID,
		"limit":   limit,
	})
}

// TopRated returns movies with an average rating of at least 4.0 across at
// least two ratings, excluding movies the user likes or watched. Ordered
// by average rating, then rating count, then movie id.
func (r *Repository) TopRated(ctx context.Context, userID int64, limit int) ([]ScoredMovie, error) {
	query := `
		MATCH (m:Movie)<-[r:RATED]-(:User)
		WITH m, AVG(r.value) AS avg_rating, COUNT(r) AS rating_count
		WHERE avg_rating >= 4.0 AND rating_count >= 2
		  AND NOT EXISTS { MATCH (:User {id: $user_id})-[:LIKES]->(m) }
		  AND NOT EXISTS { MATCH (:User {id: $user_id})-[:WATCHED]->(m) }
		WITH m.id AS movie_id, avg_rating, rating_count
		ORDER BY avg_rating DESC, rating_count DESC, movie_id ASC
		RETURN movie_id, avg_rating AS score
		LIMIT $limit
	`
	return r.traverse(ctx, "top rated", query, map[string]interface{}{
		"user_id": userID,
		"limit":   limit,
	})
}

// Favorites returns movies the user favorited but has not watched. Unlike
// the other strategies this one deliberately does not exclude likes.
func (r *Repository) Favorites(ctx context.Context, userID int64, limit int) ([]ScoredMovie, error) {
	query := `
		MATCH (u:User {id: $user_id})-[:FAVORITED]->(m:Movie)
		WHERE NOT (u)-[:WATCHED]->(m)
		WITH DISTINCT m.id AS movie_id
		ORDER BY movie_id ASC
		RETURN movie_id, 1.0 AS score
		LIMIT $limit
	`
	return r.traverse(ctx, "favorites", query, map[string]interface{}{
		"user_id": userID,
		"limit":   limit,
	})
}

// traverse runs one read query and collects (movie_id, score) rows.
func (r *Repository) traverse(ctx context.Context, name, query string, params map[string]interface{}) ([]ScoredMovie, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.Run(ctx, query, params)
	if err != nil {
		return nil, fmt.Errorf("%s traversal failed: %w", name, err)
	}

	candidates := []ScoredMovie{}
	for result.Next(ctx) {
		record := result.Record()
		id, ok := getInt64(record, "movie_id")
		if !ok {
			continue
		}
		score, _ := getFloat64(record, "score")
		candidates = append(candidates, ScoredMovie{MovieID: id, Score: score})
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("%s traversal failed: %w", name, err)
	}
	return candidates, nil
}

// Helper functions

func getInt64(record *neo4j.Record, key string) (int64, bool) {
	val, ok := record.Get(key)
	if !ok {
		return 0, false
	}
	if i, ok := val.(int64); ok {
		return i, true
	}
	return 0, false
}

func getFloat64(record *neo4j.Record, key string) (float64, bool) {
	val, ok := record.Get(key)
	if !ok {
		return 0, false
	}
	switch v := val.(type) {
	case float64:
		return v, true
	case int64:
		// COUNT() aggregates come back as integers
		return float64(v), true
	}
	return 0, false
}
