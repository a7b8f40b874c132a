package main

import (
	"context"
	"ctchen222/ShareBnB/internal/api/controller"
	"ctchen222/ShareBnB/internal/api/repository"
	"ctchen222/ShareBnB/internal/api/service"
	"ctchen222/ShareBnB/internal/auth"
	"ctchen222/ShareBnB/internal/config"
	"ctchen222/ShareBnB/internal/db"
	"ctchen222/ShareBnB/internal/logger"
	"ctchen222/ShareBnB/internal/metrics"
	"ctchen222/ShareBnB/internal/server"
	"ctchen222/ShareBnB/internal/storage"
	"ctchen222/ShareBnB/internal/telemetry"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Initialize telemetry
	shutdown, err := telemetry.InitOtel(ctx, cfg.OtelEndpoint)
	if err != nil {
		log.Fatalf("failed to initialize telemetry: %v", err)
	}
	defer func() {
		if err := shutdown(ctx); err != nil {
			log.Printf("Error shutting down telemetry: %v", err)
		}
	}()

	logger.Init(cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	// Initialize the datastore
	DB, dialect, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer DB.Close()
	if err := db.Migrate(ctx, DB, dialect); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// Token revocation needs Redis; without it logout is not offered.
	var revoker auth.Revoker
	if cfg.RedisConnStr != "" {
		rdb, err := db.NewRedisClient(ctx, cfg.RedisConnStr)
		if err != nil {
			log.Fatalf("failed to initialize redis: %v", err)
		}
		defer rdb.Close()
		revoker = auth.NewRedisRevoker(rdb)
	} else {
		slog.WarnContext(ctx, "REDIS_CONNSTRING not set, POST /logout is disabled")
	}

	// Object storage for listing images
	var (
		store  storage.ObjectStore
		images *controller.ImageController
	)
	switch cfg.StorageBackend {
	case config.StorageGridFS:
		client, err := db.NewMongoClient(ctx, cfg.MongoURI)
		if err != nil {
			log.Fatalf("failed to initialize mongo: %v", err)
		}
		defer client.Disconnect(context.Background())
		gridfs := storage.NewGridFSStore(client, cfg.MongoDatabase, cfg.PublicBaseURL)
		store = gridfs
		images = controller.NewImageController(gridfs)
	default:
		s3, err := storage.NewS3Store(ctx, cfg.S3Bucket, cfg.S3Region)
		if err != nil {
			log.Fatalf("failed to initialize s3: %v", err)
		}
		store = s3
	}

	// Create repositories
	userRepo := repository.NewUserRepository(DB)
	listingRepo := repository.NewListingRepository(DB, dialect)
	messageRepo := repository.NewMessageRepository(DB)

	// Create services
	issuer := auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)
	userService := service.NewUserService(userRepo, auth.NewPasswordHasher(cfg.BcryptCost), issuer, revoker)
	listingService := service.NewListingService(listingRepo, userRepo, store)
	messageService := service.NewMessageService(messageRepo, userRepo, listingRepo)

	srv := server.NewServer(server.Options{
		Users:    controller.NewUserController(userService),
		Listings: controller.NewListingController(listingService),
		Messages: controller.NewMessageController(messageService),
		Images:   images,
		Verifier: issuer,
		Revoker:  revoker,
		Metrics:  metrics.NewMetrics(prometheus.DefaultRegisterer),
		DB:       DB,

		CORSOrigins: cfg.CORSAllowedOrigins,
	})

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("http server started", "addr", httpServer.Addr, "storage.backend", cfg.StorageBackend)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("ListenAndServe: %v", err)
		}
	}()

	<-stop

	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		return
	}

	slog.Info("Server exiting")
}
