package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/duracem/nameplate-backend/api/controllers"
	"github.com/duracem/nameplate-backend/api/routes"
	"github.com/duracem/nameplate-backend/internal/auth"
	"github.com/duracem/nameplate-backend/internal/dashboard"
	"github.com/duracem/nameplate-backend/internal/hierarchy"
	"github.com/duracem/nameplate-backend/internal/nameplates"
	"github.com/duracem/nameplate-backend/internal/notifications"
	"github.com/duracem/nameplate-backend/internal/uploads"
	"github.com/duracem/nameplate-backend/internal/users"
	"github.com/duracem/nameplate-backend/pkg/config"
	"github.com/duracem/nameplate-backend/pkg/db"
	"github.com/duracem/nameplate-backend/pkg/env"
	"github.com/duracem/nameplate-backend/pkg/logger"
	"github.com/duracem/nameplate-backend/pkg/metrics"
	"github.com/duracem/nameplate-backend/pkg/migrate"
	"github.com/duracem/nameplate-backend/pkg/redis"
	"github.com/duracem/nameplate-backend/pkg/storage/s3"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	health := map[string]controllers.HealthPinger{
		"database": dbClient,
		"redis":    redisClient,
	}

	var uploader s3.Uploader
	if cfg.Storage.Configured() {
		storageClient, err := s3.New(context.Background(), cfg.Storage, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap object storage", err)
			os.Exit(1)
		}
		uploader = storageClient
		health["storage"] = storageClient
	} else {
		logg.Warn(context.Background(), "object storage not configured, uploads disabled")
		health["storage"] = nil
	}

	registry := prometheus.NewRegistry()
	nameplateMetrics := metrics.NewNameplateMetrics(registry)

	userRepo := users.NewRepository(dbClient.DB())
	nameplateRepo := nameplates.NewRepository(dbClient.DB())
	notificationRepo := notifications.NewRepository(dbClient.DB())

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:  userRepo,
		JWTConfig: cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	registerService, err := auth.NewRegisterService(auth.RegisterServiceParams{
		TxRunner:       dbClient,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create register service", err)
		os.Exit(1)
	}

	notificationsService, err := notifications.NewService(notificationRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create notifications service", err)
		os.Exit(1)
	}

	nameplatesService, err := nameplates.NewService(nameplates.ServiceParams{
		Repo:     nameplateRepo,
		TxRunner: dbClient,
		Notifier: notificationsService,
		Metrics:  nameplateMetrics,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create nameplates service", err)
		os.Exit(1)
	}

	hierarchyService, err := hierarchy.NewService(hierarchy.ServiceParams{
		UserRepo:      userRepo,
		NameplateRepo: nameplateRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create hierarchy service", err)
		os.Exit(1)
	}

	dashboardService, err := dashboard.NewService(dashboard.ServiceParams{
		UserRepo:      userRepo,
		NameplateRepo: nameplateRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create dashboard service", err)
		os.Exit(1)
	}

	uploadsService := uploads.NewService(uploads.ServiceParams{
		Store:   uploader,
		Config:  cfg.Upload,
		Metrics: nameplateMetrics,
	})

	addr := ":" + env.Get("PORT", cfg.App.Port)
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, routes.Services{
			Auth:          authService,
			Register:      registerService,
			Nameplates:    nameplatesService,
			Hierarchy:     hierarchyService,
			Dashboard:     dashboardService,
			Notifications: notificationsService,
			Uploads:       uploadsService,
		}, routes.Dependencies{
			Redis:    redisClient,
			Health:   health,
			Gatherer: registry,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
