package main

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	"trustlens/internal/adapter/api"
	"trustlens/internal/adapter/api/handler"
	apimiddleware "trustlens/internal/adapter/api/middleware"
	"trustlens/internal/adapter/api/router"
	adapterrepository "trustlens/internal/adapter/repository"
	"trustlens/internal/domain/repository"
	"trustlens/internal/infrastructure/ratelimit"
	"trustlens/internal/infrastructure/websocket"
	"trustlens/internal/usecase"
	"trustlens/pkg/config"
	"trustlens/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var institutionRepo repository.InstitutionRepository
	var reviewRepo repository.ReviewRepository

	if cfg.StorageDriver == "memory" || cfg.FirestoreProject == "" {
		logger.Warn("Using in-memory ledger storage; state is lost on restart")
		ledger := adapterrepository.NewMemoryLedger()
		institutionRepo = ledger.Institutions()
		reviewRepo = ledger.Reviews()
	} else {
		var opt option.ClientOption

		// Try to get service account from environment variable (for production)
		serviceAccountJSON := os.Getenv("FIRESTORE_SERVICE_ACCOUNT_JSON")
		if serviceAccountJSON != "" {
			log.Printf("Using Firestore service account from environment variable")
			opt = option.WithCredentialsJSON([]byte(serviceAccountJSON))
		} else {
			// Fallback to file path (for local development)
			serviceAccountPath := os.Getenv("FIRESTORE_SERVICE_ACCOUNT_PATH")
			if serviceAccountPath == "" {
				log.Fatalf("FIRESTORE_SERVICE_ACCOUNT_JSON or FIRESTORE_SERVICE_ACCOUNT_PATH is required")
			}

			if _, err := os.Stat(serviceAccountPath); os.IsNotExist(err) {
				log.Fatalf("Service account file does not exist: %s", serviceAccountPath)
			}

			log.Printf("Using Firestore service account from file: %s", serviceAccountPath)
			opt = option.WithCredentialsFile(serviceAccountPath)
		}

		firestoreClient, err := firestore.NewClient(ctx, cfg.FirestoreProject, opt)
		if err != nil {
			log.Fatalf("Failed to create Firestore client: %v", err)
		}
		defer firestoreClient.Close()

		institutionRepo = adapterrepository.NewFirestoreInstitutionRepository(firestoreClient)
		reviewRepo = adapterrepository.NewFirestoreReviewRepository(firestoreClient)
	}

	hub := websocket.NewHub()
	hub.Start(ctx)

	sessionUseCase := usecase.NewSessionUseCase(cfg.JWTSecret, cfg.JWTExpiry)
	institutionUseCase := usecase.NewInstitutionUseCase(institutionRepo, hub)
	reviewUseCase := usecase.NewReviewUseCase(reviewRepo, hub)

	handler.Setup(sessionUseCase, institutionUseCase, reviewUseCase)

	limiter := ratelimit.NewRateLimiter()
	limiter.StartCleanupRoutine()

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(sessionUseCase)
	rateLimitMiddleware := apimiddleware.NewRateLimitMiddleware(limiter)

	wsHandler := handler.NewWebSocketHandler(hub)

	router.Setup(e, authMiddleware, rateLimitMiddleware)
	router.SetupWebSocketRouter(e, wsHandler)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
