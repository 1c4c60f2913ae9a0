package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"phonebook/internal/config"
	"phonebook/internal/handler"
	"phonebook/internal/logger"
	"phonebook/internal/middleware"
	"phonebook/internal/repository"
	"phonebook/internal/service"
	"phonebook/internal/utils"
	"phonebook/migrations"
)

func main() {
	log := logger.NewLogger("server")

	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found, relying on environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// --- Migrations ---
	migrationDB, err := sql.Open("pgx", cfg.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database for migrations")
	}
	if err := migrations.Migrate(migrationDB); err != nil {
		log.Fatal().Err(err).Msg("failed to apply migrations")
	}
	if err := migrationDB.Close(); err != nil {
		log.Fatal().Err(err).Msg("failed to close migration connection")
	}

	// --- Database Connection ---
	dbPool, err := config.ConnectDB(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer dbPool.Close()

	// --- Utilities ---
	jwtUtil := utils.NewJWTUtil(cfg.JWTSecret, cfg.JWTExpirationHours)

	// --- Repositories ---
	userRepo := repository.NewUserRepository(dbPool)
	contactRepo := repository.NewContactRepository(dbPool)

	// --- Services ---
	authService := service.NewAuthService(userRepo, jwtUtil)
	contactService := service.NewContactService(contactRepo)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService, log)
	contactHandler := handler.NewContactHandler(contactService, authService, log)

	// --- Router ---
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))

	jwtAuthMW := middleware.JWTAuthMiddleware(jwtUtil)

	authHandler.RegisterAuthRoutes(router)
	contactHandler.RegisterContactRoutes(router, jwtAuthMW)

	router.GET("/health", func(c *gin.Context) {
		if err := dbPool.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "db": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "healthy"})
	})

	// --- Start Server ---
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.ServerPort).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("listen failed")
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exiting")
}
