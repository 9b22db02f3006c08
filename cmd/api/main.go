package main

import (
	"context"
	"log"

	firebaseapp "firebase.google.com/go/v4"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	"verslohub/internal/adapter/api"
	"verslohub/internal/adapter/api/handler"
	apimiddleware "verslohub/internal/adapter/api/middleware"
	"verslohub/internal/adapter/api/router"
	"verslohub/internal/adapter/repository"
	"verslohub/internal/infrastructure/events"
	"verslohub/internal/infrastructure/firebase"
	"verslohub/internal/infrastructure/ratelimit"
	"verslohub/internal/infrastructure/storage"
	"verslohub/internal/infrastructure/websocket"
	"verslohub/internal/usecase"
	"verslohub/pkg/config"
	"verslohub/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	var opts []option.ClientOption
	if cfg.ServiceAccount != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.ServiceAccount))
	}

	app, err := firebaseapp.NewApp(ctx, &firebaseapp.Config{ProjectID: cfg.FirebaseProject}, opts...)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase app: %v", err)
	}

	authSDK, err := app.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}
	authClient := firebase.NewAuthClient(authSDK)

	firestoreClient, err := app.Firestore(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firestore: %v", err)
	}
	defer firestoreClient.Close()

	storageClient, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, cfg.ServiceAccount)
	if err != nil {
		log.Fatalf("Failed to initialize Cloud Storage: %v", err)
	}
	defer storageClient.Close()

	var publisher events.Publisher
	if cfg.AMQPUrl != "" {
		publisher, err = events.NewAMQPPublisher(ctx, cfg.AMQPUrl, cfg.AMQPExchange)
		if err != nil {
			logger.Warn("Notification broker unavailable, continuing without it: %v", err)
			publisher = events.NewNoopPublisher()
		}
	} else {
		publisher = events.NewNoopPublisher()
	}
	defer publisher.Close()

	// Repositories
	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	vendorRepo := repository.NewFirestoreVendorRepository(firestoreClient)
	favoriteRepo := repository.NewFirestoreFavoriteRepository(firestoreClient)
	claimRepo := repository.NewFirestoreClaimRepository(firestoreClient)
	requestRepo := repository.NewFirestoreRequestRepository(firestoreClient)
	notificationRepo := repository.NewFirestoreNotificationRepository(firestoreClient)

	// Per-user action limits
	rateLimiter := ratelimit.NewRateLimiter()
	rateLimiter.StartCleanupRoutine()

	// Use cases
	notificationUseCase := usecase.NewNotificationUseCase(notificationRepo, claimRepo, vendorRepo, publisher)
	userUseCase := usecase.NewUserUseCase(userRepo, authClient)
	vendorUseCase := usecase.NewVendorUseCase(vendorRepo, claimRepo, storageClient)
	favoriteUseCase := usecase.NewFavoriteUseCase(favoriteRepo, vendorRepo)
	claimUseCase := usecase.NewClaimUseCase(claimRepo, vendorRepo)
	requestUseCase := usecase.NewRequestUseCase(requestRepo, vendorRepo, claimRepo, notificationUseCase, rateLimiter)
	chatUseCase := usecase.NewChatUseCase(requestRepo, claimRepo, vendorRepo, notificationUseCase, rateLimiter)

	// Live sessions
	wsManager := websocket.NewManager()
	wsManager.Start(ctx)
	notificationUseCase.SetRealtime(wsManager)

	e := echo.New()
	e.Validator = api.NewValidator()

	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(apimiddleware.GeneralRateLimit())

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient)
	adminMiddleware := apimiddleware.NewAdminMiddleware(userRepo)

	handler.Setup(
		userUseCase,
		vendorUseCase,
		favoriteUseCase,
		claimUseCase,
		requestUseCase,
		chatUseCase,
		notificationUseCase,
	)
	handler.SetupHealthHandler(firestoreClient)
	handler.SetupAdminHandler(claimUseCase)

	router.Setup(e, authMiddleware, adminMiddleware)

	wsHandler := handler.NewWebSocketHandler(wsManager, authMiddleware, requestUseCase, chatUseCase)
	router.SetupWebSocketRouter(e, wsHandler)

	logger.Info("Starting server on port %s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
