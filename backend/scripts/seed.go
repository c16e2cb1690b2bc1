package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"cinegraph/backend/internal/domain"
	"cinegraph/backend/internal/graph"
	"cinegraph/backend/internal/propagate"
	"cinegraph/backend/internal/services"
	"cinegraph/backend/internal/store"
	"cinegraph/backend/pkg/config"
	"cinegraph/backend/pkg/logger"
)

// Seeds a demo dataset through the service layer, so every write runs the
// same propagation path as the API. Run with: go run ./backend/scripts
func main() {
	seed := flag.Int64("seed", 42, "RNG seed for generated interactions")
	flag.Parse()

	if err := logger.Init("development"); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting database seeding...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	primary, err := store.Open(cfg.SQLitePath)
	if err != nil {
		log.Fatal("Failed to open primary store", zap.Error(err))
	}
	defer primary.Close()

	driver, err := neo4j.NewDriverWithContext(
		cfg.Neo4jURI,
		neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPassword, ""),
	)
	if err != nil {
		log.Fatal("Failed to create Neo4j driver", zap.Error(err))
	}
	defer driver.Close(context.Background())

	ctx := context.Background()
	if err := driver.VerifyConnectivity(ctx); err != nil {
		log.Warn("Graph index unreachable, seeding primary store only", zap.Error(err))
	}

	graphRepo := graph.NewRepository(driver)
	if err := graphRepo.EnsureConstraints(ctx); err != nil {
		log.Warn("Failed to create graph constraints (may already exist)", zap.Error(err))
	}

	coordinator := propagate.NewCoordinator(graphRepo, cfg.GraphTimeout)
	users := services.NewUserService(primary, coordinator)
	actors := services.NewActorService(primary, coordinator)
	movies := services.NewMovieService(primary, coordinator)
	likes := services.NewLikeService(primary, coordinator)
	ratings := services.NewRatingService(primary, coordinator)
	watches := services.NewWatchService(primary, coordinator)
	favorites := services.NewFavoriteService(primary, coordinator)

	rng := rand.New(rand.NewSource(*seed))

	userIDs, err := seedUsers(ctx, users)
	if err != nil {
		log.Fatal("Failed to seed users", zap.Error(err))
	}
	log.Info("Seeded users", zap.Int("count", len(userIDs)))

	actorIDs, err := seedActors(ctx, actors, rng)
	if err != nil {
		log.Fatal("Failed to seed actors", zap.Error(err))
	}
	log.Info("Seeded actors", zap.Int("count", len(actorIDs)))

	movieIDs, err := seedMovies(ctx, movies, actorIDs, rng)
	if err != nil {
		log.Fatal("Failed to seed movies", zap.Error(err))
	}
	log.Info("Seeded movies", zap.Int("count", len(movieIDs)))

	// Interactions for different users are independent, so fan out one
	// goroutine per user.
	g, gctx := errgroup.WithContext(ctx)
	for _, userID := range userIDs {
		userID := userID
		picks := pickMovies(rng, movieIDs)
		g.Go(func() error {
			for _, movieID := range picks.liked {
				if _, err := likes.Create(gctx, userID, movieID); err != nil {
					return err
				}
			}
			for _, movieID := range picks.watched {
				if _, err := watches.Create(gctx, userID, movieID); err != nil {
					return err
				}
			}
			for movieID, value := range picks.rated {
				if _, err := ratings.Set(gctx, userID, movieID, value); err != nil {
					return err
				}
			}
			for _, movieID := range picks.favorited {
				if _, err := favorites.Create(gctx, userID, movieID); err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatal("Failed to seed interactions", zap.Error(err))
	}

	log.Info("Seeding complete")
}

func seedUsers(ctx context.Context, users *services.UserService) ([]int64, error) {
	seedData := []domain.User{
		{Name: "Alice Johnson", Email: "alice@example.com", Password: "Passw0rd!"},
		{Name: "Bob Smith", Email: "bob@example.com", Password: "Passw0rd!"},
		{Name: "Carol White", Email: "carol@example.com", Password: "Passw0rd!"},
		{Name: "David Lee", Email: "david@example.com", Password: "Passw0rd!"},
		{Name: "Eve Turner", Email: "eve@example.com", Password: "Passw0rd!"},
	}
	ids := make([]int64, 0, len(seedData))
	for _, u := range seedData {
		created, err := users.Create(ctx, u)
		if err != nil {
			return nil, err
		}
		ids = append(ids, created.ID)
	}
	return ids, nil
}

func seedActors(ctx context.Context, actors *services.ActorService, rng *rand.Rand) ([]int64, error) {
	firstNames := []string{"Liam", "Olivia", "Noah", "Emma", "Ava", "Isabella", "Mason", "Sophia", "Lucas", "Mia"}
	lastNames := []string{"Brown", "Davis", "Miller", "Wilson", "Moore", "Taylor", "Anderson", "Thomas", "Jackson", "Harris"}

	ids := make([]int64, 0, 20)
	for i := 0; i < 20; i++ {
		name := firstNames[rng.Intn(len(firstNames))] + " " + lastNames[rng.Intn(len(lastNames))]
		created, err := actors.Create(ctx, domain.Actor{
			Name: name,
			Bio:  fmt.Sprintf("%s is known for versatile performances across genres. #%d", name, i+1),
		})
		if err != nil {
			return nil, err
		}
		ids = append(ids, created.ID)
	}
	return ids, nil
}

func seedMovies(ctx context.Context, movies *services.MovieService, actorIDs []int64, rng *rand.Rand) ([]int64, error) {
	seedData := []domain.Movie{
		{Title: "Eclipse of Fate", Description: "A thriller that bends reality.", Year: 2018, Genre: "Thriller"},
		{Title: "Starlight Sonata", Description: "A heartfelt journey among the stars.", Year: 2020, Genre: "Drama"},
		{Title: "Neon Horizon", Description: "Cops and hackers in a neon city.", Year: 2019, Genre: "Action"},
		{Title: "Quantum Drift", Description: "A physicist unravels parallel timelines.", Year: 2021, Genre: "SciFi"},
		{Title: "The Silent Grove", Description: "A village hides an ancient secret.", Year: 2017, Genre: "Mystery"},
		{Title: "Crimson Tides", Description: "A naval crew faces an impossible storm.", Year: 2016, Genre: "Action"},
		{Title: "Paper Lanterns", Description: "Two strangers meet at a festival.", Year: 2022, Genre: "Drama"},
		{Title: "Orbit Decay", Description: "A stranded station crew fights for home.", Year: 2023, Genre: "SciFi"},
		{Title: "Midnight Ledger", Description: "An accountant discovers a deadly secret.", Year: 2015, Genre: "Thriller"},
		{Title: "Garden of Echoes", Description: "A detective hears the past.", Year: 2019, Genre: "Mystery"},
	}

	ids := make([]int64, 0, len(seedData))
	for _, m := range seedData {
		// 2-4 cast members per movie
		cast := make([]int64, 0, 4)
		for _, idx := range rng.Perm(len(actorIDs))[:2+rng.Intn(3)] {
			cast = append(cast, actorIDs[idx])
		}
		created, err := movies.Create(ctx, m, cast)
		if err != nil {
			return nil, err
		}
		ids = append(ids, created.ID)
	}
	return ids, nil
}

type userPicks struct {
	liked     []int64
	watched   []int64
	rated     map[int64]int
	favorited []int64
}

// pickMovies draws this user's interactions up front, on the single RNG,
// so the goroutines below stay deterministic per seed.
func pickMovies(rng *rand.Rand, movieIDs []int64) userPicks {
	picks := userPicks{rated: make(map[int64]int)}
	for _, idx := range rng.Perm(len(movieIDs))[:3] {
		picks.liked = append(picks.liked, movieIDs[idx])
	}
	for _, idx := range rng.Perm(len(movieIDs))[:2] {
		picks.watched = append(picks.watched, movieIDs[idx])
	}
	for _, idx := range rng.Perm(len(movieIDs))[:4] {
		picks.rated[movieIDs[idx]] = 1 + rng.Intn(5)
	}
	for _, idx := range rng.Perm(len(movieIDs))[:2] {
		picks.favorited = append(picks.favorited, movieIDs[idx])
	}
	return picks
}
