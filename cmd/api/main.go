package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/founderhub/founder-api/internal/config"
	"github.com/founderhub/founder-api/internal/email"
	"github.com/founderhub/founder-api/internal/handler"
	bookingHandler "github.com/founderhub/founder-api/internal/handler/booking"
	contentHandler "github.com/founderhub/founder-api/internal/handler/content"
	iamHandler "github.com/founderhub/founder-api/internal/handler/iam"
	pitchHandler "github.com/founderhub/founder-api/internal/handler/pitch"
	profileHandler "github.com/founderhub/founder-api/internal/handler/profile"
	"github.com/founderhub/founder-api/internal/middleware"
	"github.com/founderhub/founder-api/internal/repository/postgres"
	"github.com/founderhub/founder-api/internal/router"
	bookingService "github.com/founderhub/founder-api/internal/service/booking"
	contentService "github.com/founderhub/founder-api/internal/service/content"
	iamService "github.com/founderhub/founder-api/internal/service/iam"
	pitchService "github.com/founderhub/founder-api/internal/service/pitch"
	profileService "github.com/founderhub/founder-api/internal/service/profile"
	"github.com/founderhub/founder-api/pkg/auth"
	"github.com/founderhub/founder-api/pkg/clock"
	"github.com/founderhub/founder-api/pkg/logger"
	"github.com/founderhub/founder-api/pkg/metrics"
	"github.com/founderhub/founder-api/pkg/storage"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(nil)

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := postgres.Migrate(context.Background(), db, cfg.Database.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to apply migrations")
	}

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	contentRepo := postgres.NewContentRepository(db)
	pitchRepo := postgres.NewPitchRepository(db)

	// Shared infrastructure
	jwtSvc := auth.NewJWTService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)
	emailSvc := email.NewSMTPService(cfg.SMTP)
	appMetrics := metrics.NewMetrics("founder_api")

	objectStore, err := storage.NewMinioStore(storage.Config{
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Bucket:    cfg.Storage.Bucket,
		UseSSL:    cfg.Storage.UseSSL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to object storage")
	}

	// Services
	iamSvc := iamService.NewService(userRepo, jwtSvc, emailSvc, appLogger)
	profileSvc := profileService.NewService(profileRepo, appLogger)
	bookingSvc := bookingService.NewService(bookingRepo, userRepo, emailSvc, clock.System(), appLogger, appMetrics)
	contentSvc := contentService.NewService(contentRepo, appLogger)
	pitchSvc := pitchService.NewService(pitchRepo, profileRepo, objectStore, appLogger)

	// Middleware and handlers
	handler.RegisterValidators()
	authMiddleware := middleware.NewAuthMiddleware(jwtSvc)
	h := handler.NewHandler(db)

	r := router.NewRouter(
		authMiddleware,
		iamHandler.NewHandler(iamSvc),
		profileHandler.NewHandler(profileSvc),
		bookingHandler.NewHandler(bookingSvc),
		contentHandler.NewHandler(contentSvc),
		pitchHandler.NewHandler(pitchSvc),
		h,
		router.Config{
			RateLimitRPS:   float64(cfg.Server.RateLimitRPS),
			RateLimitBurst: cfg.Server.RateLimitBurst,
			RequestTimeout: time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
			CORSConfig:     middleware.DefaultCORSConfig(),
			MetricsPrefix:  "founder_api",
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		appLogger.Info("starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
}
