package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iamasit07/pong-arena/backend/internal/config"
	"github.com/iamasit07/pong-arena/backend/internal/metrics"
	"github.com/iamasit07/pong-arena/backend/internal/repository/postgres"
	"github.com/iamasit07/pong-arena/backend/internal/repository/redis"
	"github.com/iamasit07/pong-arena/backend/internal/service/game"
	"github.com/iamasit07/pong-arena/backend/internal/service/matchmaking"
	"github.com/iamasit07/pong-arena/backend/internal/service/outcome"
	"github.com/iamasit07/pong-arena/backend/internal/service/session"
	httptransport "github.com/iamasit07/pong-arena/backend/internal/transport/http"
	wstransport "github.com/iamasit07/pong-arena/backend/internal/transport/websocket"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg := config.LoadConfig()
	metrics.Init()

	db, err := postgres.InitDB(cfg.DatabaseURL, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns, cfg.DBConnMaxLifetimeMin)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := postgres.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if err := redis.InitRedis(); err != nil {
		log.Printf("[REDIS] Init error: %v", err)
	}
	defer redis.CloseRedis()

	userRepo := postgres.NewUserRepo(db)
	gameRepo := postgres.NewGameRepo(db)

	var cache session.CacheRepository
	if redis.IsRedisEnabled() {
		cache = redis.NewRedisCache(redis.RedisClient)
	}
	authService := session.NewAuthService(userRepo, cache)

	connManager := wstransport.NewConnectionManager()
	reporter := outcome.NewReporter(gameRepo, userRepo, authService)
	sessionManager := game.NewSessionManager(connManager, reporter)

	queue := matchmaking.NewQueue()
	go matchmaking.Listener(queue, sessionManager)

	gateway := wstransport.NewGateway(authService, queue, sessionManager, connManager)
	historyHandler := httptransport.NewHistoryHandler(gameRepo)
	playerHandler := httptransport.NewPlayerHandler(userRepo)

	router := gin.Default()
	router.Use(httptransport.CORSMiddleware(cfg.AllowedOrigins))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "activeSessions": sessionManager.ActiveSessions()})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/ws", gateway.HandleWS)

	api := router.Group("/api", httptransport.AuthMiddleware(authService))
	api.GET("/history", historyHandler.GetHistory)
	api.GET("/players/:username", playerHandler.GetPlayer)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Forced shutdown: %v", err)
	}
	log.Println("Server exited")
}
