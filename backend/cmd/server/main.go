package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"cinegraph/backend/internal/graph"
	"cinegraph/backend/internal/propagate"
	"cinegraph/backend/internal/recommend"
	"cinegraph/backend/internal/services"
	"cinegraph/backend/internal/store"
	"cinegraph/backend/pkg/config"
	"cinegraph/backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load configuration: %v", err))
	}

	// Initialize logger
	if err := logger.Init(cfg.Env); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting cinegraph server...")

	// Open the primary store
	primary, err := store.Open(cfg.SQLitePath)
	if err != nil {
		log.Fatal("Failed to open primary store", zap.Error(err))
	}
	defer primary.Close()

	// Initialize Neo4j driver
	driver, err := neo4j.NewDriverWithContext(
		cfg.Neo4jURI,
		neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPassword, ""),
	)
	if err != nil {
		log.Fatal("Failed to create Neo4j driver", zap.Error(err))
	}
	defer driver.Close(context.Background())

	// The graph index is not required for startup. An unreachable index
	// degrades recommendations to empty results and propagation to
	// warnings; user-facing writes keep working against the primary store.
	ctx := context.Background()
	if err := driver.VerifyConnectivity(ctx); err != nil {
		log.Warn("Graph index unreachable at startup, running degraded", zap.Error(err))
	}

	graphRepo := graph.NewRepository(driver)

	// Initialize services
	coordinator := propagate.NewCoordinator(graphRepo, cfg.GraphTimeout)
	engine := recommend.NewEngine(graphRepo, cfg.GraphTimeout)
	resolver := recommend.NewResolver(primary)
	recommender := recommend.NewService(engine, resolver)

	deps := &handlers{
		users:        services.NewUserService(primary, coordinator),
		movies:       services.NewMovieService(primary, coordinator),
		actors:       services.NewActorService(primary, coordinator),
		likes:        services.NewLikeService(primary, coordinator),
		ratings:      services.NewRatingService(primary, coordinator),
		watches:      services.NewWatchService(primary, coordinator),
		favorites:    services.NewFavoriteService(primary, coordinator),
		recommender:  recommender,
		defaultLimit: cfg.RecommendLimit,
		logger:       log,
	}

	// Setup Gin router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(requestID())
	router.Use(ginLogger(log))
	router.Use(gin.Recovery())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	deps.register(router)

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started", zap.String("port", cfg.Port))

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}

// requestID tags every request with a correlation id
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

func ginLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		if raw != "" {
			path = path + "?" + raw
		}

		log.Info("HTTP Request",
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Duration("latency", latency),
			zap.String("ip", c.ClientIP()),
			zap.String("request_id", c.GetString("request_id")),
		)
	}
}
