package domain

// User is an account that interacts with movies
type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"-"`
}

// Movie is a catalog entry. The primary store owns the record; the graph
// index mirrors id, title, description, year and genre onto a Movie node.
type Movie struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Year        int    `json:"year"`
	Genre       string `json:"genre"`
}

// Actor is a cast member linked to movies through ActedIn
type Actor struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Bio  string `json:"bio"`
}

// Like records that a user likes a movie. At most one logical instance
// per (user, movie) pair.
type Like struct {
	ID      int64 `json:"id"`
	UserID  int64 `json:"user_id"`
	MovieID int64 `json:"movie_id"`
}

// Rating records a user's 1-5 score for a movie. A user holds at most one
// active rating per movie; later writes overwrite the value.
type Rating struct {
	ID      int64 `json:"id"`
	UserID  int64 `json:"user_id"`
	MovieID int64 `json:"movie_id"`
	Value   int   `json:"rating"`
}

// Watch records that a user watched a movie
type Watch struct {
	ID      int64 `json:"id"`
	UserID  int64 `json:"user_id"`
	MovieID int64 `json:"movie_id"`
}

// Favorite records that a user favorited a movie
type Favorite struct {
	ID      int64 `json:"id"`
	UserID  int64 `json:"user_id"`
	MovieID int64 `json:"movie_id"`
}

// MovieActor links an actor to a movie's cast
type MovieActor struct {
	MovieID int64 `json:"movie_id"`
	ActorID int64 `json:"actor_id"`
}

// RatingMin and RatingMax bound valid rating values
const (
	RatingMin = 1
	RatingMax = 5
)

// ValidRating reports whether value is inside the allowed rating range
func ValidRating(value int) bool {
	return value >= RatingMin && value <= RatingMax
}
